// Package session holds the per-process state of the terminal client and
// the transitions user actions drive through it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pixelforge/image-studio/internal/client/api"
	"github.com/pixelforge/image-studio/internal/core/domain"
)

// AnonymousUsername is stamped on images generated without a profile.
const AnonymousUsername = "Anonymous"

var (
	ErrBusy         = errors.New("a generation is already in progress")
	ErrNoProfile    = errors.New("create a profile first")
	ErrAlreadyLiked = errors.New("you already liked this image")
	// ErrNotSaved accompanies a generated image the server failed to store.
	ErrNotSaved = errors.New("image generated but not saved")
)

// Backend is the subset of the server API the session drives.
type Backend interface {
	Generate(ctx context.Context, req api.GenerateRequest) (*domain.Image, error)
	ListImages(ctx context.Context, listType domain.ListType, userID string) ([]*domain.Image, error)
	SaveImage(ctx context.Context, img *domain.Image, idempotencyKey string) (*domain.Image, error)
	Like(ctx context.Context, imageID string) (int, error)
	TogglePublic(ctx context.Context, imageID, userID string) (bool, error)
	DeleteImage(ctx context.Context, imageID, userID string) error
	CreateUser(ctx context.Context, username, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, updates map[string]any) (*domain.User, error)
}

// ProfileStore persists the active profile across runs.
type ProfileStore interface {
	Load() (*domain.User, error)
	Save(u *domain.User) error
	Clear() error
}

// State is a point-in-time copy of the session for rendering.
type State struct {
	CurrentUser     *domain.User
	Generating      bool
	LastImage       *domain.Image
	LastError       string
	UserImages      []*domain.Image
	CommunityImages []*domain.Image
}

type Session struct {
	backend  Backend
	profiles ProfileStore
	log      zerolog.Logger

	mu              sync.Mutex
	currentUser     *domain.User
	generating      bool
	lastImage       *domain.Image
	lastError       string
	userImages      []*domain.Image
	communityImages []*domain.Image
	liked           map[string]struct{}
}

func New(backend Backend, profiles ProfileStore, log zerolog.Logger) *Session {
	return &Session{
		backend:  backend,
		profiles: profiles,
		log:      log,
		liked:    make(map[string]struct{}),
	}
}

// Restore rehydrates the saved profile and loads both galleries. Gallery
// failures are logged; only a corrupt profile file is returned.
func (s *Session) Restore(ctx context.Context) error {
	u, err := s.profiles.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.currentUser = u
	s.mu.Unlock()

	if err := s.RefreshCommunity(ctx); err != nil {
		s.log.Warn().Err(err).Msg("load community gallery")
	}
	if u != nil {
		if err := s.RefreshMine(ctx); err != nil {
			s.log.Warn().Err(err).Msg("load user gallery")
		}
	}
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Generating:      s.generating,
		LastError:       s.lastError,
		UserImages:      append([]*domain.Image(nil), s.userImages...),
		CommunityImages: append([]*domain.Image(nil), s.communityImages...),
	}
	if s.currentUser != nil {
		u := *s.currentUser
		st.CurrentUser = &u
	}
	if s.lastImage != nil {
		img := *s.lastImage
		st.LastImage = &img
	}
	return st
}

// Liked reports whether imageID was liked during this session.
func (s *Session) Liked(imageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liked[imageID]
	return ok
}

// Generate moves the session through in-progress to success or failure.
// With a profile, the new image is stamped with the owner, saved and the
// user gallery refreshed. A failed save keeps the image on screen: it is
// returned together with an error wrapping ErrNotSaved.
func (s *Session) Generate(ctx context.Context, prompt, aspectRatio, quality string) (*domain.Image, error) {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.generating = true
	s.lastError = ""
	s.lastImage = nil
	user := s.currentUser
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
	}()

	img, err := s.backend.Generate(ctx, api.GenerateRequest{Prompt: prompt, AspectRatio: aspectRatio, Quality: quality})
	if err != nil {
		return nil, s.fail(err)
	}

	img.UserID, img.Username = domain.AnonymousUserID, AnonymousUsername
	if user != nil {
		img.UserID, img.Username = user.ID, user.Username
	}

	s.setLastImage(img)
	if user == nil {
		return img, nil
	}

	saved, err := s.backend.SaveImage(ctx, img, "gen-"+img.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("image_id", img.ID).Msg("save generated image")
		return img, fmt.Errorf("%w: %w", ErrNotSaved, s.fail(err))
	}
	s.setLastImage(saved)

	if err := s.RefreshMine(ctx); err != nil {
		s.log.Warn().Err(err).Msg("refresh user gallery")
	}
	return saved, nil
}

func (s *Session) RefreshCommunity(ctx context.Context) error {
	images, err := s.backend.ListImages(ctx, domain.ListCommunity, "")
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.communityImages = images
	s.mu.Unlock()
	return nil
}

// RefreshMine reloads the current profile's images; without a profile it
// clears the list.
func (s *Session) RefreshMine(ctx context.Context) error {
	s.mu.Lock()
	user := s.currentUser
	s.mu.Unlock()
	if user == nil {
		s.mu.Lock()
		s.userImages = nil
		s.mu.Unlock()
		return nil
	}

	images, err := s.backend.ListImages(ctx, domain.ListUser, user.ID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.userImages = images
	s.mu.Unlock()
	return nil
}

// Like adds one like to a community image. A second like of the same image
// in this session is refused without calling the server.
func (s *Session) Like(ctx context.Context, imageID string) (int, error) {
	if s.Liked(imageID) {
		return 0, ErrAlreadyLiked
	}
	likes, err := s.backend.Like(ctx, imageID)
	if err != nil {
		return 0, s.fail(err)
	}
	s.mu.Lock()
	s.liked[imageID] = struct{}{}
	s.mu.Unlock()
	s.refreshAll(ctx)
	return likes, nil
}

// TogglePublic shares or unshares one of the profile's images.
func (s *Session) TogglePublic(ctx context.Context, imageID string) (bool, error) {
	user, err := s.requireProfile()
	if err != nil {
		return false, err
	}
	public, err := s.backend.TogglePublic(ctx, imageID, user.ID)
	if err != nil {
		return false, s.fail(err)
	}
	s.mu.Lock()
	if s.lastImage != nil && s.lastImage.ID == imageID {
		s.lastImage.IsPublic = public
	}
	s.mu.Unlock()
	s.refreshAll(ctx)
	return public, nil
}

func (s *Session) Delete(ctx context.Context, imageID string) error {
	user, err := s.requireProfile()
	if err != nil {
		return err
	}
	if err := s.backend.DeleteImage(ctx, imageID, user.ID); err != nil {
		return s.fail(err)
	}
	s.refreshAll(ctx)
	return nil
}

// CreateProfile signs up and makes the new profile current and persisted.
func (s *Session) CreateProfile(ctx context.Context, username, email string) (*domain.User, error) {
	u, err := s.backend.CreateUser(ctx, username, email)
	if err != nil {
		return nil, s.fail(err)
	}
	if err := s.setUser(u); err != nil {
		return nil, err
	}
	if err := s.RefreshMine(ctx); err != nil {
		s.log.Warn().Err(err).Msg("refresh user gallery")
	}
	return u, nil
}

// UpdateProfile edits the current profile. The server applies only bio,
// email and avatar.
func (s *Session) UpdateProfile(ctx context.Context, updates map[string]any) (*domain.User, error) {
	user, err := s.requireProfile()
	if err != nil {
		return nil, err
	}
	u, err := s.backend.UpdateUser(ctx, user.ID, updates)
	if err != nil {
		return nil, s.fail(err)
	}
	if err := s.setUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// SignOut forgets the current profile locally. The server profile is kept.
func (s *Session) SignOut() error {
	if err := s.profiles.Clear(); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.currentUser = nil
	s.userImages = nil
	s.mu.Unlock()
	return nil
}

// DismissError clears the error banner.
func (s *Session) DismissError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Session) setUser(u *domain.User) error {
	s.mu.Lock()
	s.currentUser = u
	s.mu.Unlock()
	if err := s.profiles.Save(u); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *Session) requireProfile() (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return nil, ErrNoProfile
	}
	return s.currentUser, nil
}

func (s *Session) refreshAll(ctx context.Context) {
	if err := s.RefreshMine(ctx); err != nil {
		s.log.Warn().Err(err).Msg("refresh user gallery")
	}
	if err := s.RefreshCommunity(ctx); err != nil {
		s.log.Warn().Err(err).Msg("refresh community gallery")
	}
}

// fail records err as the banner message and returns it unchanged.
func (s *Session) setLastImage(img *domain.Image) {
	s.mu.Lock()
	s.lastImage = img
	s.mu.Unlock()
}

func (s *Session) fail(err error) error {
	msg := err.Error()
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
	return err
}
