package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pixelforge/image-studio/internal/api/metrics"
	"github.com/pixelforge/image-studio/internal/core/domain"
	"github.com/pixelforge/image-studio/internal/core/ports"
)

type ImageService struct {
	repo      ports.ImageRepository
	idem      ports.IdempotencyStore
	publisher ports.ActivityPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewImageService wires the image use cases. idem and publisher may be nil.
func NewImageService(repo ports.ImageRepository, idem ports.IdempotencyStore, publisher ports.ActivityPublisher, logger zerolog.Logger) *ImageService {
	if publisher == nil {
		publisher = discardPublisher{}
	}
	return &ImageService{repo: repo, idem: idem, publisher: publisher, logger: logger, now: time.Now}
}

// Create stores a caller-supplied record, filling server defaults. If an
// idempotency key is provided and already seen, the earlier image is
// returned without a second insert.
func (s *ImageService) Create(ctx context.Context, in ports.CreateImageInput) (*ports.CreateImageResult, error) {
	if in.IdempotencyKey != "" && s.idem != nil {
		if existing := s.replay(ctx, in.IdempotencyKey); existing != nil {
			return &ports.CreateImageResult{Image: existing, Replayed: true}, nil
		}
	}

	now := s.now().UTC()
	img := &domain.Image{
		ID:             in.ID,
		UserID:         in.UserID,
		Username:       in.Username,
		Prompt:         in.Prompt,
		EnhancedPrompt: in.EnhancedPrompt,
		URL:            in.URL,
		AspectRatio:    in.AspectRatio,
		Quality:        domain.Quality(in.Quality),
		IsPublic:       in.IsPublic,
		Likes:          0,
		CreatedAt:      in.CreatedAt.UTC(),
	}
	if img.ID == "" {
		img.ID = newID(now)
	}
	if img.UserID == "" {
		img.UserID = domain.AnonymousUserID
	}
	if in.CreatedAt.IsZero() {
		img.CreatedAt = now
	}
	if img.AspectRatio == "" {
		img.AspectRatio = domain.DefaultAspectRatio
	}
	if img.Quality == "" {
		img.Quality = domain.QualityStandard
	}

	if err := s.repo.Create(ctx, img); err != nil {
		s.logger.Error().Err(err).Msg("failed to save image")
		return nil, fmt.Errorf("create image: %w", err)
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, in.IdempotencyKey, img.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	metrics.ImagesCreatedTotal.WithLabelValues(metrics.Visibility(img.IsPublic)).Inc()
	s.publish(domain.ActivityImageCreated, img.ID, img.UserID, metrics.Visibility(img.IsPublic))
	s.logger.Info().Str("image_id", img.ID).Str("user_id", img.UserID).Bool("public", img.IsPublic).Msg("image saved")

	return &ports.CreateImageResult{Image: img}, nil
}

func (s *ImageService) replay(ctx context.Context, key string) *domain.Image {
	imageID, ok, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !ok {
		return nil
	}
	existing, err := s.repo.FindByID(ctx, imageID)
	if err != nil {
		// The image may have been deleted since; treat the key as unused.
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("image_id", imageID).Msg("idempotent replay")
	return existing
}

// List returns either the user-scoped or the community listing.
func (s *ImageService) List(ctx context.Context, in ports.ListImagesInput) (*ports.ListImagesResult, error) {
	var (
		images []*domain.Image
		err    error
	)
	switch in.Type {
	case domain.ListCommunity:
		images, err = s.repo.ListCommunity(ctx)
	case domain.ListUser, "":
		images, err = s.repo.ListByUser(ctx, in.UserID)
	default:
		return nil, fmt.Errorf("%w: unknown listing type %q", domain.ErrInvalidInput, in.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	if images == nil {
		images = []*domain.Image{}
	}
	return &ports.ListImagesResult{Images: images, Total: len(images)}, nil
}

// Like adds exactly one like to a community image. Repeated likes by the
// same caller are not deduplicated here.
func (s *ImageService) Like(ctx context.Context, imageID string) (int, error) {
	if imageID == "" {
		return 0, fmt.Errorf("%w: imageId is required", domain.ErrInvalidInput)
	}
	likes, err := s.repo.IncrementLikes(ctx, imageID)
	if err != nil {
		return 0, fmt.Errorf("like image: %w", err)
	}
	metrics.LikesTotal.Inc()
	s.publish(domain.ActivityImageLiked, imageID, "", "")
	return likes, nil
}

// TogglePublic flips visibility on the caller's own image.
func (s *ImageService) TogglePublic(ctx context.Context, imageID, userID string) (bool, error) {
	if imageID == "" {
		return false, fmt.Errorf("%w: imageId is required", domain.ErrInvalidInput)
	}
	public, err := s.repo.TogglePublic(ctx, imageID, userID)
	if err != nil {
		return false, fmt.Errorf("toggle visibility: %w", err)
	}
	metrics.VisibilityTogglesTotal.WithLabelValues(metrics.Visibility(public)).Inc()
	s.publish(domain.ActivityVisibilityChanged, imageID, userID, metrics.Visibility(public))
	return public, nil
}

// Delete removes the caller's image. Deleting an unknown image succeeds.
func (s *ImageService) Delete(ctx context.Context, imageID, userID string) error {
	if imageID == "" {
		return fmt.Errorf("%w: imageId is required", domain.ErrInvalidInput)
	}
	removed, err := s.repo.Delete(ctx, imageID, userID)
	if err != nil && !errors.Is(err, domain.ErrImageNotFound) {
		return fmt.Errorf("delete image: %w", err)
	}
	if removed {
		s.publish(domain.ActivityImageDeleted, imageID, userID, "")
	}
	return nil
}

func (s *ImageService) publish(kind domain.ActivityKind, imageID, userID, detail string) {
	s.publisher.Publish(domain.ActivityEvent{
		Kind:    kind,
		ImageID: imageID,
		UserID:  userID,
		Detail:  detail,
		At:      s.now().UTC(),
	})
}

type discardPublisher struct{}

func (discardPublisher) Publish(domain.ActivityEvent) {}
