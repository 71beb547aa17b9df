package ports

import (
	"context"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

// UserLookup selects a profile by id or, when ID is empty, by username.
type UserLookup struct {
	ID       string
	Username string
}

// UserService defines use-case operations for profiles.
type UserService interface {
	Create(ctx context.Context, username, email string) (*domain.User, error)
	Get(ctx context.Context, lookup UserLookup) (*domain.User, error)
	List(ctx context.Context) ([]domain.UserSummary, error)
	// Update applies allow-listed fields from updates and ignores the rest.
	Update(ctx context.Context, userID string, updates map[string]any) (*domain.User, error)
}
