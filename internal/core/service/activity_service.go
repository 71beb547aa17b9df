package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pixelforge/image-studio/internal/api/metrics"
	"github.com/pixelforge/image-studio/internal/core/domain"
	"github.com/pixelforge/image-studio/internal/core/ports"
)

// DefaultFeedLimit applies when a feed request names no limit.
const DefaultFeedLimit = 50

// ActivityService records audit events and serves the recent-activity feed.
type ActivityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, log: log}
}

// Record assigns an id when missing and appends the event to the audit trail.
func (s *ActivityService) Record(ctx context.Context, event domain.ActivityEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	metrics.ActivityRecordedTotal.WithLabelValues(string(event.Kind)).Inc()
	s.log.Debug().
		Str("kind", string(event.Kind)).
		Str("image_id", event.ImageID).
		Str("user_id", event.UserID).
		Msg("activity recorded")
	return nil
}

// Recent returns up to limit events, newest first. A non-positive limit
// uses DefaultFeedLimit.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]*domain.ActivityEvent, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	events, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	if events == nil {
		events = []*domain.ActivityEvent{}
	}
	return events, nil
}
