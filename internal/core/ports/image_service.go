package ports

import (
	"context"
	"time"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

// ImageGenerator calls the hosted generation endpoint with an already
// enhanced prompt and returns the image URL.
type ImageGenerator interface {
	Generate(ctx context.Context, enhancedPrompt string) (string, error)
}

// GenerateInput is the DTO passed from the transport layer to GenerationService.
type GenerateInput struct {
	Prompt      string
	AspectRatio string
	Quality     string
}

// GenerationService turns a prompt into an unsaved image record.
type GenerationService interface {
	Generate(ctx context.Context, in GenerateInput) (*domain.Image, error)
}

// CreateImageInput carries a caller-supplied image record. Empty ID, UserID
// and CreatedAt are filled with server defaults.
type CreateImageInput struct {
	ID             string
	UserID         string
	Username       string
	Prompt         string
	EnhancedPrompt string
	URL            string
	AspectRatio    string
	Quality        string
	IsPublic       bool
	CreatedAt      time.Time
	IdempotencyKey string
}

// CreateImageResult is returned by ImageService.Create.
type CreateImageResult struct {
	Image *domain.Image
	// Replayed is true when the Idempotency-Key matched an earlier create.
	Replayed bool
}

// ListImagesInput selects a listing.
type ListImagesInput struct {
	Type   domain.ListType
	UserID string
}

// ListImagesResult is returned by ImageService.List.
type ListImagesResult struct {
	Images []*domain.Image
	Total  int
}

// ImageService defines use-case operations for stored images.
type ImageService interface {
	Create(ctx context.Context, in CreateImageInput) (*CreateImageResult, error)
	List(ctx context.Context, in ListImagesInput) (*ListImagesResult, error)
	Like(ctx context.Context, imageID string) (int, error)
	TogglePublic(ctx context.Context, imageID, userID string) (bool, error)
	Delete(ctx context.Context, imageID, userID string) error
}
