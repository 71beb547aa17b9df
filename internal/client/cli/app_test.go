package cli

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/image-studio/internal/client/api"
	"github.com/pixelforge/image-studio/internal/client/session"
	"github.com/pixelforge/image-studio/internal/core/domain"
)

type stubBackend struct {
	lastGenerate api.GenerateRequest
	generateErr  error
	saveErr      error
	images       map[string]*domain.Image
	deleted      []string
	updates      map[string]any
}

func newStubBackend() *stubBackend {
	return &stubBackend{images: map[string]*domain.Image{
		"pub-1": {ID: "pub-1", Username: "bob", Prompt: "a lighthouse", IsPublic: true, Likes: 3},
	}}
}

func (b *stubBackend) Generate(_ context.Context, req api.GenerateRequest) (*domain.Image, error) {
	b.lastGenerate = req
	if b.generateErr != nil {
		return nil, b.generateErr
	}
	return &domain.Image{
		ID:          "gen-1",
		Prompt:      req.Prompt,
		URL:         "https://img.test/gen-1.png",
		AspectRatio: req.AspectRatio,
		Quality:     domain.Quality(req.Quality),
	}, nil
}

func (b *stubBackend) ListImages(_ context.Context, listType domain.ListType, userID string) ([]*domain.Image, error) {
	var out []*domain.Image
	for _, img := range b.images {
		if listType == domain.ListCommunity && img.IsPublic {
			out = append(out, img)
		}
		if listType == domain.ListUser && img.UserID == userID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (b *stubBackend) SaveImage(_ context.Context, img *domain.Image, _ string) (*domain.Image, error) {
	if b.saveErr != nil {
		return nil, b.saveErr
	}
	b.images[img.ID] = img
	return img, nil
}

func (b *stubBackend) Like(_ context.Context, id string) (int, error) {
	img, ok := b.images[id]
	if !ok {
		return 0, &api.Error{Status: http.StatusNotFound, Message: "Image not found or action not supported"}
	}
	img.Likes++
	return img.Likes, nil
}

func (b *stubBackend) TogglePublic(_ context.Context, id, _ string) (bool, error) {
	img := b.images[id]
	img.IsPublic = !img.IsPublic
	return img.IsPublic, nil
}

func (b *stubBackend) DeleteImage(_ context.Context, id, _ string) error {
	b.deleted = append(b.deleted, id)
	delete(b.images, id)
	return nil
}

func (b *stubBackend) CreateUser(_ context.Context, username, email string) (*domain.User, error) {
	return &domain.User{ID: "u-1", Username: username, Email: email, Avatar: domain.DefaultAvatarURL}, nil
}

func (b *stubBackend) UpdateUser(_ context.Context, id string, updates map[string]any) (*domain.User, error) {
	b.updates = updates
	bio, _ := updates["bio"].(string)
	return &domain.User{ID: id, Username: "alice", Bio: bio}, nil
}

type nopProfiles struct{ user *domain.User }

func (p *nopProfiles) Load() (*domain.User, error) { return p.user, nil }
func (p *nopProfiles) Save(u *domain.User) error   { p.user = u; return nil }
func (p *nopProfiles) Clear() error                { p.user = nil; return nil }

func runApp(t *testing.T, b *stubBackend, p *nopProfiles, lines ...string) string {
	t.Helper()
	silence(t)
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var out bytes.Buffer
	sess := session.New(b, p, zerolog.Nop())
	app := NewApp(sess, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func TestApp_AnonymousGenerate(t *testing.T) {
	b := newStubBackend()
	out := runApp(t, b, &nopProfiles{}, "generate -a 16:9 -q high a red fox", "exit")

	assert.Equal(t, "a red fox", b.lastGenerate.Prompt)
	assert.Equal(t, "16:9", b.lastGenerate.AspectRatio)
	assert.Equal(t, "high", b.lastGenerate.Quality)
	assert.Contains(t, out, "Image ready: https://img.test/gen-1.png")
	assert.Contains(t, out, "signup")
	assert.NotContains(t, b.images, "gen-1", "anonymous images are not saved")
}

func TestApp_GenerateAsksForPrompt(t *testing.T) {
	b := newStubBackend()
	runApp(t, b, &nopProfiles{}, "generate", "a quiet harbor", "exit")

	assert.Equal(t, "a quiet harbor", b.lastGenerate.Prompt)
	assert.Equal(t, domain.DefaultAspectRatio, b.lastGenerate.AspectRatio)
	assert.Equal(t, "standard", b.lastGenerate.Quality)
}

func TestApp_GenerateFailureShowsServerMessage(t *testing.T) {
	b := newStubBackend()
	b.generateErr = &api.Error{Status: http.StatusBadGateway, Message: "Image generation failed", Details: "upstream down"}
	out := runApp(t, b, &nopProfiles{}, "generate a cat", "exit")

	assert.Contains(t, out, "Image generation failed: upstream down")
}

func TestApp_SignupThenGenerateSaves(t *testing.T) {
	b := newStubBackend()
	p := &nopProfiles{}
	out := runApp(t, b, p, "signup", "alice", "a@x.io", "generate a cat", "mine", "exit")

	require.NotNil(t, p.user)
	assert.Equal(t, "alice", p.user.Username)
	require.Contains(t, b.images, "gen-1")
	assert.Equal(t, "u-1", b.images["gen-1"].UserID)
	assert.Contains(t, out, "Welcome, alice!")
	assert.Contains(t, out, "private")
}

func TestApp_GenerateShowsImageWhenSaveFails(t *testing.T) {
	b := newStubBackend()
	b.saveErr = &api.Error{Status: http.StatusInternalServerError, Message: "Internal server error"}
	p := &nopProfiles{user: &domain.User{ID: "u-1", Username: "alice"}}
	out := runApp(t, b, p, "generate a cat", "exit")

	assert.Contains(t, out, "Image ready: https://img.test/gen-1.png")
	assert.Contains(t, out, "The image was not saved to your gallery.")
	assert.Contains(t, out, "Error: Internal server error")
	assert.NotContains(t, b.images, "gen-1")
}

func TestApp_LikeOncePerSession(t *testing.T) {
	b := newStubBackend()
	out := runApp(t, b, &nopProfiles{}, "like pub-1", "like pub-1", "community", "exit")

	assert.Equal(t, 4, b.images["pub-1"].Likes)
	assert.Contains(t, out, "Liked pub-1 (4 likes)")
	assert.Contains(t, out, session.ErrAlreadyLiked.Error())
	assert.Contains(t, out, "4 *")
}

func TestApp_DeleteNeedsConfirmation(t *testing.T) {
	b := newStubBackend()
	b.images["mine-1"] = &domain.Image{ID: "mine-1", UserID: "u-1"}
	p := &nopProfiles{user: &domain.User{ID: "u-1", Username: "alice"}}
	out := runApp(t, b, p, "delete mine-1", "n", "delete mine-1", "y", "exit")

	assert.Contains(t, out, "Cancelled")
	assert.Equal(t, []string{"mine-1"}, b.deleted)
	assert.Contains(t, out, "Deleted mine-1")
}

func TestApp_OwnerCommandsWithoutProfile(t *testing.T) {
	b := newStubBackend()
	out := runApp(t, b, &nopProfiles{}, "share pub-1", "mine", "exit")

	assert.Contains(t, out, session.ErrNoProfile.Error())
	assert.Contains(t, out, "Create a profile with 'signup' to see your images.")
	assert.True(t, b.images["pub-1"].IsPublic)
}

func TestApp_EditSendsOnlyChangedFields(t *testing.T) {
	b := newStubBackend()
	p := &nopProfiles{user: &domain.User{ID: "u-1", Username: "alice", Email: "a@x.io"}}
	out := runApp(t, b, p, "edit", "painter", "", "", "profile", "exit")

	assert.Equal(t, map[string]any{"bio": "painter"}, b.updates)
	assert.Contains(t, out, "Profile updated")
	assert.Contains(t, out, "painter")
	assert.Equal(t, "painter", p.user.Bio)
}

func TestApp_UsageErrors(t *testing.T) {
	out := runApp(t, newStubBackend(), &nopProfiles{}, "like", "delete", "exit")
	assert.Contains(t, out, "Usage: like <image-id>")
	assert.Contains(t, out, "Usage: delete <image-id>")
}
