package memory

import (
	"context"
	"sync"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

const defaultActivityCapacity = 1024

// ActivityRepository keeps the most recent events in a fixed-size ring.
type ActivityRepository struct {
	mu     sync.Mutex
	events []*domain.ActivityEvent
	next   int
	full   bool
}

// NewActivityRepository creates a ring holding up to capacity events.
// A non-positive capacity uses defaultActivityCapacity.
func NewActivityRepository(capacity int) *ActivityRepository {
	if capacity <= 0 {
		capacity = defaultActivityCapacity
	}
	return &ActivityRepository{events: make([]*domain.ActivityEvent, capacity)}
}

func (r *ActivityRepository) Insert(_ context.Context, event *domain.ActivityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *event
	r.events[r.next] = &c
	r.next = (r.next + 1) % len(r.events)
	if r.next == 0 {
		r.full = true
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *ActivityRepository) Recent(_ context.Context, limit int) ([]*domain.ActivityEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := r.next
	if r.full {
		size = len(r.events)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]*domain.ActivityEvent, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.events)) % len(r.events)
		c := *r.events[idx]
		out = append(out, &c)
	}
	return out, nil
}
