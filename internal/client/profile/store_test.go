package profile

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

func TestFileStore_LoadMissingReturnsNil(t *testing.T) {
	s := NewFileStore(t.TempDir())
	u, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestFileStore_SaveLoadClear(t *testing.T) {
	s := NewFileStore(t.TempDir() + "/nested")
	want := &domain.User{
		ID:        "1",
		Username:  "alice",
		Bio:       "hi",
		CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, s.Save(want))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Username, got.Username)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	got, err = s.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStore_CorruptFile(t *testing.T) {
	s := NewFileStore(t.TempDir())
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))
	_, err := s.Load()
	assert.Error(t, err)
}
