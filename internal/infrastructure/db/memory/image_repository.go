// Package memory holds the process-local repositories used when no external
// datastore is configured. State lives only as long as the process.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

// ImageRepository keeps images in insertion order. The community listing is
// derived from the same slice, so a record is listed there iff it is public.
type ImageRepository struct {
	mu     sync.RWMutex
	images []*domain.Image
}

func NewImageRepository() *ImageRepository {
	return &ImageRepository{}
}

func cloneImage(img *domain.Image) *domain.Image {
	c := *img
	return &c
}

func (r *ImageRepository) Create(_ context.Context, img *domain.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(img.ID, nil) >= 0 {
		return domain.ErrImageExists
	}
	r.images = append(r.images, cloneImage(img))
	return nil
}

func (r *ImageRepository) FindByID(_ context.Context, imageID string) (*domain.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(imageID, nil); i >= 0 {
		return cloneImage(r.images[i]), nil
	}
	return nil, domain.ErrImageNotFound
}

func (r *ImageRepository) ListByUser(_ context.Context, userID string) ([]*domain.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Image, 0, len(r.images))
	for _, img := range r.images {
		if userID != "" && !img.OwnedBy(userID) {
			continue
		}
		out = append(out, cloneImage(img))
	}
	return out, nil
}

func (r *ImageRepository) ListCommunity(_ context.Context) ([]*domain.Image, error) {
	r.mu.RLock()
	out := make([]*domain.Image, 0, len(r.images))
	for _, img := range r.images {
		if img.IsPublic {
			out = append(out, cloneImage(img))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(a, b int) bool { return out[a].RanksBefore(out[b]) })
	return out, nil
}

func (r *ImageRepository) IncrementLikes(_ context.Context, imageID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(imageID, func(img *domain.Image) bool { return img.IsPublic })
	if i < 0 {
		return 0, domain.ErrImageNotFound
	}
	r.images[i].Likes++
	return r.images[i].Likes, nil
}

func (r *ImageRepository) TogglePublic(_ context.Context, imageID, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(imageID, func(img *domain.Image) bool { return img.OwnedBy(ownerID) })
	if i < 0 {
		return false, domain.ErrImageNotFound
	}
	r.images[i].IsPublic = !r.images[i].IsPublic
	return r.images[i].IsPublic, nil
}

func (r *ImageRepository) Delete(_ context.Context, imageID, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.images[:0]
	removed := false
	for _, img := range r.images {
		if img.ID == imageID && img.OwnedBy(ownerID) {
			removed = true
			continue
		}
		kept = append(kept, img)
	}
	for i := len(kept); i < len(r.images); i++ {
		r.images[i] = nil
	}
	r.images = kept
	return removed, nil
}

// indexOf returns the first image with imageID that also satisfies match, or -1.
// Callers must hold the lock.
func (r *ImageRepository) indexOf(imageID string, match func(*domain.Image) bool) int {
	for i, img := range r.images {
		if img.ID != imageID {
			continue
		}
		if match == nil || match(img) {
			return i
		}
	}
	return -1
}
