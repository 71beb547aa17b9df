package ports

import (
	"context"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

// UserRepository defines persistence operations for profiles.
type UserRepository interface {
	// Create fails with domain.ErrUserExists on an exact username match.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
}
