package ports

import (
	"context"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

// ActivityRepository persists the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
	Recent(ctx context.Context, limit int) ([]*domain.ActivityEvent, error)
}

// ActivityService records a single activity event.
type ActivityService interface {
	Record(ctx context.Context, event domain.ActivityEvent) error
}

// ActivityFeed reads back the audit trail, newest first.
type ActivityFeed interface {
	Recent(ctx context.Context, limit int) ([]*domain.ActivityEvent, error)
}

// ActivityPublisher hands events off for asynchronous recording.
type ActivityPublisher interface {
	Publish(event domain.ActivityEvent)
}

// IdempotencyStore remembers which image a client-supplied key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (imageID string, ok bool, err error)
	Remember(ctx context.Context, key, imageID string) error
}
