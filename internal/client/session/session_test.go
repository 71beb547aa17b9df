package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/image-studio/internal/client/api"
	"github.com/pixelforge/image-studio/internal/core/domain"
)

type fakeBackend struct {
	generateFn func(api.GenerateRequest) (*domain.Image, error)
	saveFn     func(*domain.Image, string) (*domain.Image, error)
	createFn   func(username, email string) (*domain.User, error)

	saved      []*domain.Image
	saveKeys   []string
	likeCalls  int
	lists      map[domain.ListType]int
	toggled    []string
	deleted    []string
	updateArgs map[string]any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{lists: make(map[domain.ListType]int)}
}

func (f *fakeBackend) Generate(_ context.Context, req api.GenerateRequest) (*domain.Image, error) {
	if f.generateFn != nil {
		return f.generateFn(req)
	}
	return &domain.Image{ID: "img-1", Prompt: req.Prompt, URL: "https://img.test/1.png"}, nil
}

func (f *fakeBackend) ListImages(_ context.Context, listType domain.ListType, userID string) ([]*domain.Image, error) {
	f.lists[listType]++
	if listType == domain.ListUser {
		return []*domain.Image{{ID: "mine", UserID: userID}}, nil
	}
	return []*domain.Image{{ID: "pub", IsPublic: true}}, nil
}

func (f *fakeBackend) SaveImage(_ context.Context, img *domain.Image, key string) (*domain.Image, error) {
	f.saveKeys = append(f.saveKeys, key)
	if f.saveFn != nil {
		return f.saveFn(img, key)
	}
	f.saved = append(f.saved, img)
	return img, nil
}

func (f *fakeBackend) Like(context.Context, string) (int, error) {
	f.likeCalls++
	return f.likeCalls, nil
}

func (f *fakeBackend) TogglePublic(_ context.Context, id, _ string) (bool, error) {
	f.toggled = append(f.toggled, id)
	return true, nil
}

func (f *fakeBackend) DeleteImage(_ context.Context, id, _ string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) CreateUser(_ context.Context, username, email string) (*domain.User, error) {
	if f.createFn != nil {
		return f.createFn(username, email)
	}
	return &domain.User{ID: "u-1", Username: username, Email: email}, nil
}

func (f *fakeBackend) UpdateUser(_ context.Context, id string, updates map[string]any) (*domain.User, error) {
	f.updateArgs = updates
	bio, _ := updates["bio"].(string)
	return &domain.User{ID: id, Username: "alice", Bio: bio}, nil
}

type memProfiles struct {
	user    *domain.User
	loadErr error
	saves   int
}

func (m *memProfiles) Load() (*domain.User, error) { return m.user, m.loadErr }
func (m *memProfiles) Save(u *domain.User) error {
	m.saves++
	m.user = u
	return nil
}
func (m *memProfiles) Clear() error {
	m.user = nil
	return nil
}

func newSession(b Backend, p ProfileStore) *Session {
	return New(b, p, zerolog.Nop())
}

func TestGenerate_AnonymousIsNotSaved(t *testing.T) {
	b := newFakeBackend()
	s := newSession(b, &memProfiles{})

	img, err := s.Generate(context.Background(), "a cat", "1:1", "standard")
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousUserID, img.UserID)
	assert.Equal(t, AnonymousUsername, img.Username)
	assert.Empty(t, b.saved)

	st := s.State()
	assert.False(t, st.Generating)
	require.NotNil(t, st.LastImage)
	assert.Equal(t, "img-1", st.LastImage.ID)
	assert.Empty(t, st.LastError)
}

func TestGenerate_WithProfileSavesAndRefreshes(t *testing.T) {
	b := newFakeBackend()
	s := newSession(b, &memProfiles{user: &domain.User{ID: "u-1", Username: "alice"}})
	require.NoError(t, s.Restore(context.Background()))
	listsBefore := b.lists[domain.ListUser]

	img, err := s.Generate(context.Background(), "a cat", "", "")
	require.NoError(t, err)
	assert.Equal(t, "u-1", img.UserID)
	assert.Equal(t, "alice", img.Username)
	require.Len(t, b.saved, 1)
	assert.Equal(t, []string{"gen-img-1"}, b.saveKeys)
	assert.Equal(t, listsBefore+1, b.lists[domain.ListUser])
}

func TestGenerate_FailureSetsBannerAndClearsImage(t *testing.T) {
	b := newFakeBackend()
	s := newSession(b, &memProfiles{})
	_, err := s.Generate(context.Background(), "first", "", "")
	require.NoError(t, err)

	b.generateFn = func(api.GenerateRequest) (*domain.Image, error) {
		return nil, &api.Error{Status: http.StatusBadGateway, Message: "Image generation failed"}
	}
	_, err = s.Generate(context.Background(), "second", "", "")
	require.Error(t, err)

	st := s.State()
	assert.False(t, st.Generating)
	assert.Nil(t, st.LastImage)
	assert.Equal(t, "Image generation failed", st.LastError)

	s.DismissError()
	assert.Empty(t, s.State().LastError)
}

func TestGenerate_SaveFailureIsReported(t *testing.T) {
	b := newFakeBackend()
	b.saveFn = func(*domain.Image, string) (*domain.Image, error) {
		return nil, errors.New("connection refused")
	}
	s := newSession(b, &memProfiles{user: &domain.User{ID: "u-1", Username: "alice"}})
	require.NoError(t, s.Restore(context.Background()))

	img, err := s.Generate(context.Background(), "a cat", "", "")
	require.ErrorIs(t, err, ErrNotSaved)
	assert.Equal(t, "connection refused", s.State().LastError)

	require.NotNil(t, img, "the generated image is still returned")
	st := s.State()
	require.NotNil(t, st.LastImage, "the generated image stays on screen")
	assert.Equal(t, img.ID, st.LastImage.ID)
	assert.Equal(t, "u-1", st.LastImage.UserID)
	assert.False(t, st.Generating)
}

func TestGenerate_RejectsConcurrentRun(t *testing.T) {
	b := newFakeBackend()
	s := newSession(b, &memProfiles{})
	started := make(chan struct{})
	release := make(chan struct{})
	b.generateFn = func(api.GenerateRequest) (*domain.Image, error) {
		close(started)
		<-release
		return &domain.Image{ID: "slow"}, nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Generate(context.Background(), "slow", "", "")
		done <- err
	}()
	<-started
	assert.True(t, s.State().Generating)

	_, err := s.Generate(context.Background(), "fast", "", "")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
}

func TestLike_SecondLikeRefusedLocally(t *testing.T) {
	b := newFakeBackend()
	s := newSession(b, &memProfiles{})

	likes, err := s.Like(context.Background(), "pub")
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
	assert.True(t, s.Liked("pub"))

	_, err = s.Like(context.Background(), "pub")
	assert.ErrorIs(t, err, ErrAlreadyLiked)
	assert.Equal(t, 1, b.likeCalls)
}

func TestOwnerActionsRequireProfile(t *testing.T) {
	b := newFakeBackend()
	s := newSession(b, &memProfiles{})

	_, err := s.TogglePublic(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoProfile)
	assert.ErrorIs(t, s.Delete(context.Background(), "x"), ErrNoProfile)
	_, err = s.UpdateProfile(context.Background(), map[string]any{"bio": "hi"})
	assert.ErrorIs(t, err, ErrNoProfile)
	assert.Empty(t, b.toggled)
	assert.Empty(t, b.deleted)
}

func TestTogglePublic_UpdatesLastImage(t *testing.T) {
	b := newFakeBackend()
	s := newSession(b, &memProfiles{user: &domain.User{ID: "u-1", Username: "alice"}})
	require.NoError(t, s.Restore(context.Background()))
	_, err := s.Generate(context.Background(), "a cat", "", "")
	require.NoError(t, err)

	public, err := s.TogglePublic(context.Background(), "img-1")
	require.NoError(t, err)
	assert.True(t, public)
	assert.True(t, s.State().LastImage.IsPublic)
}

func TestDelete_RefreshesBothLists(t *testing.T) {
	b := newFakeBackend()
	s := newSession(b, &memProfiles{user: &domain.User{ID: "u-1", Username: "alice"}})
	require.NoError(t, s.Restore(context.Background()))
	before := b.lists[domain.ListCommunity]

	require.NoError(t, s.Delete(context.Background(), "mine"))
	assert.Equal(t, []string{"mine"}, b.deleted)
	assert.Equal(t, before+1, b.lists[domain.ListCommunity])
}

func TestCreateProfile_PersistsAndLoadsGallery(t *testing.T) {
	b := newFakeBackend()
	p := &memProfiles{}
	s := newSession(b, p)

	u, err := s.CreateProfile(context.Background(), "alice", "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, 1, p.saves)

	st := s.State()
	require.NotNil(t, st.CurrentUser)
	assert.Equal(t, "u-1", st.CurrentUser.ID)
	require.Len(t, st.UserImages, 1)
}

func TestCreateProfile_ConflictKeepsAnonymous(t *testing.T) {
	b := newFakeBackend()
	b.createFn = func(string, string) (*domain.User, error) {
		return nil, &api.Error{Status: http.StatusConflict, Message: "Username already exists"}
	}
	p := &memProfiles{}
	s := newSession(b, p)

	_, err := s.CreateProfile(context.Background(), "alice", "")
	require.Error(t, err)
	assert.Nil(t, s.State().CurrentUser)
	assert.Equal(t, "Username already exists", s.State().LastError)
	assert.Zero(t, p.saves)
}

func TestUpdateProfile_ReplacesCurrentUser(t *testing.T) {
	b := newFakeBackend()
	p := &memProfiles{user: &domain.User{ID: "u-1", Username: "alice"}}
	s := newSession(b, p)
	require.NoError(t, s.Restore(context.Background()))

	u, err := s.UpdateProfile(context.Background(), map[string]any{"bio": "painter"})
	require.NoError(t, err)
	assert.Equal(t, "painter", u.Bio)
	assert.Equal(t, "painter", s.State().CurrentUser.Bio)
	assert.Equal(t, "painter", p.user.Bio)
}

func TestRestore_CorruptProfileFails(t *testing.T) {
	s := newSession(newFakeBackend(), &memProfiles{loadErr: errors.New("bad json")})
	assert.Error(t, s.Restore(context.Background()))
}

func TestSignOut_ClearsProfile(t *testing.T) {
	p := &memProfiles{user: &domain.User{ID: "u-1", Username: "alice"}}
	s := newSession(newFakeBackend(), p)
	require.NoError(t, s.Restore(context.Background()))

	require.NoError(t, s.SignOut())
	st := s.State()
	assert.Nil(t, st.CurrentUser)
	assert.Empty(t, st.UserImages)
	assert.Nil(t, p.user)
}
