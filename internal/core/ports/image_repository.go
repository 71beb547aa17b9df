package ports

import (
	"context"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

// ImageRepository defines persistence operations for image records.
// Owner-only mutations take the caller's user id and match it against the
// stored owner inside the repository.
type ImageRepository interface {
	Create(ctx context.Context, img *domain.Image) error
	FindByID(ctx context.Context, imageID string) (*domain.Image, error)
	// ListByUser returns images in insertion order. An empty userID lists all.
	ListByUser(ctx context.Context, userID string) ([]*domain.Image, error)
	// ListCommunity returns public images ranked by likes, then recency.
	ListCommunity(ctx context.Context) ([]*domain.Image, error)
	// IncrementLikes adds one like to a public image and returns the new count.
	IncrementLikes(ctx context.Context, imageID string) (int, error)
	// TogglePublic flips visibility on the owner's image and returns the new flag.
	TogglePublic(ctx context.Context, imageID, ownerID string) (bool, error)
	// Delete removes the owner's image. Deleting a missing image is not an error.
	Delete(ctx context.Context, imageID, ownerID string) (bool, error)
}
