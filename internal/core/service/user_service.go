package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pixelforge/image-studio/internal/api/metrics"
	"github.com/pixelforge/image-studio/internal/core/domain"
	"github.com/pixelforge/image-studio/internal/core/ports"
)

// UserService implements profile creation, lookup and editing.
type UserService struct {
	repo      ports.UserRepository
	publisher ports.ActivityPublisher
	log       zerolog.Logger
	now       func() time.Time
}

func NewUserService(repo ports.UserRepository, publisher ports.ActivityPublisher, log zerolog.Logger) *UserService {
	if publisher == nil {
		publisher = discardPublisher{}
	}
	return &UserService{repo: repo, publisher: publisher, log: log, now: time.Now}
}

func (s *UserService) Create(ctx context.Context, username, email string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:        newID(now),
		Username:  username,
		Email:     email,
		Avatar:    domain.DefaultAvatarURL,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.publisher.Publish(domain.ActivityEvent{Kind: domain.ActivityUserCreated, UserID: user.ID, At: now})
	s.log.Info().Str("user_id", user.ID).Str("username", username).Msg("user created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, lookup ports.UserLookup) (*domain.User, error) {
	switch {
	case lookup.ID != "":
		return s.repo.FindByID(ctx, lookup.ID)
	case lookup.Username != "":
		return s.repo.FindByUsername(ctx, lookup.Username)
	default:
		return nil, fmt.Errorf("%w: userId or username is required", domain.ErrInvalidInput)
	}
}

func (s *UserService) List(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.UserSummary, len(users))
	for i, u := range users {
		out[i] = u.Summary()
	}
	return out, nil
}

// Update applies the allow-listed fields (bio, email, avatar) from updates.
// Any other key is silently ignored.
func (s *UserService) Update(ctx context.Context, userID string, updates map[string]any) (*domain.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}
	patch, err := buildPatch(updates)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(domain.ActivityEvent{Kind: domain.ActivityUserUpdated, UserID: userID, At: s.now().UTC()})
	return user, nil
}

func buildPatch(updates map[string]any) (domain.UserPatch, error) {
	var patch domain.UserPatch
	for key, raw := range updates {
		var target **string
		switch key {
		case "bio":
			target = &patch.Bio
		case "email":
			target = &patch.Email
		case "avatar":
			target = &patch.Avatar
		default:
			continue
		}
		v, ok := raw.(string)
		if !ok {
			return domain.UserPatch{}, fmt.Errorf("%w: %s must be a string", domain.ErrInvalidInput, key)
		}
		*target = &v
	}
	return patch, nil
}
