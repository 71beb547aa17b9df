package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pixelforge/image-studio/internal/api/metrics"
	"github.com/pixelforge/image-studio/internal/core/domain"
	"github.com/pixelforge/image-studio/internal/core/ports"
)

type generationService struct {
	generator ports.ImageGenerator
	log       zerolog.Logger
	now       func() time.Time
}

// NewGenerationService returns a GenerationService backed by generator.
func NewGenerationService(generator ports.ImageGenerator, log zerolog.Logger) ports.GenerationService {
	return &generationService{generator: generator, log: log, now: time.Now}
}

// Generate validates the prompt, enhances it and makes a single upstream
// call. The returned record is not persisted.
func (s *generationService) Generate(ctx context.Context, in ports.GenerateInput) (*domain.Image, error) {
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, domain.ErrEmptyPrompt
	}

	quality := domain.Quality(in.Quality)
	if quality == "" {
		quality = domain.QualityStandard
	}
	if !quality.Valid() {
		return nil, fmt.Errorf("%w: unknown quality %q", domain.ErrInvalidInput, in.Quality)
	}
	aspect := in.AspectRatio
	if aspect == "" {
		aspect = domain.DefaultAspectRatio
	}

	enhanced := domain.EnhancePrompt(in.Prompt, quality)

	start := s.now()
	url, err := s.generator.Generate(ctx, enhanced)
	outcome := generationOutcome(err)
	metrics.GenerationsTotal.WithLabelValues(string(quality), outcome).Inc()
	metrics.GenerationDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Error().Err(err).Str("quality", string(quality)).Msg("image generation failed")
		return nil, fmt.Errorf("generate: %w", err)
	}

	now := s.now().UTC()
	img := &domain.Image{
		ID:             newID(now),
		UserID:         domain.AnonymousUserID,
		Prompt:         in.Prompt,
		EnhancedPrompt: enhanced,
		URL:            url,
		AspectRatio:    aspect,
		Quality:        quality,
		IsPublic:       false,
		CreatedAt:      now,
	}

	s.log.Info().Str("image_id", img.ID).Str("quality", string(quality)).Msg("image generated")
	return img, nil
}

func generationOutcome(err error) string {
	var upstream *domain.UpstreamError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &upstream):
		return "upstream_error"
	case errors.Is(err, domain.ErrNoImageURL):
		return "no_url"
	default:
		return "error"
	}
}
