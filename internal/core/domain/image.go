package domain

import (
	"errors"
	"fmt"
	"time"
)

// AnonymousUserID owns every image saved without a profile.
const AnonymousUserID = "anonymous"

// DefaultAspectRatio is applied when a request omits the aspect ratio.
const DefaultAspectRatio = "1:1"

// Quality is the generation tier requested by the caller.
type Quality string

const (
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
)

// Valid reports whether q is a known tier.
func (q Quality) Valid() bool {
	return q == QualityStandard || q == QualityHigh
}

// ListType selects which image listing is returned.
type ListType string

const (
	ListUser      ListType = "user"
	ListCommunity ListType = "community"
)

// ImageAction is a mutation requested through PATCH /images.
type ImageAction string

const (
	ActionLike         ImageAction = "like"
	ActionTogglePublic ImageAction = "togglePublic"
)

var (
	ErrEmptyPrompt       = errors.New("prompt is required")
	ErrGenerationFailed  = errors.New("image generation failed")
	ErrNoImageURL        = errors.New("no image generated")
	ErrImageNotFound     = errors.New("image not found")
	ErrImageExists       = errors.New("image already exists")
	ErrUnsupportedAction = errors.New("action not supported")
	ErrInvalidInput      = errors.New("invalid input")
)

// UpstreamError is returned when the generation endpoint answers with a
// non-success status. It unwraps to ErrGenerationFailed.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("image generation failed: upstream status %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error { return ErrGenerationFailed }

// Image is a generated picture plus its ownership and visibility state.
// It is listed in the community gallery iff IsPublic is true.
type Image struct {
	ID             string    `json:"id" bson:"_id"`
	UserID         string    `json:"userId" bson:"userId"`
	Username       string    `json:"username,omitempty" bson:"username,omitempty"`
	Prompt         string    `json:"prompt" bson:"prompt"`
	EnhancedPrompt string    `json:"enhancedPrompt,omitempty" bson:"enhancedPrompt,omitempty"`
	URL            string    `json:"url" bson:"url"`
	AspectRatio    string    `json:"aspectRatio" bson:"aspectRatio"`
	Quality        Quality   `json:"quality" bson:"quality"`
	IsPublic       bool      `json:"isPublic" bson:"isPublic"`
	Likes          int       `json:"likes" bson:"likes"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// OwnedBy is the authorization predicate for owner-only mutations.
func (i *Image) OwnedBy(userID string) bool {
	return i.UserID == userID
}

// RanksBefore reports whether i sorts ahead of other in the community
// listing: more likes first, then the more recently created.
func (i *Image) RanksBefore(other *Image) bool {
	if i.Likes != other.Likes {
		return i.Likes > other.Likes
	}
	return i.CreatedAt.After(other.CreatedAt)
}

const promptQualifiers = ", high quality, detailed, professional photography, "

// EnhancePrompt appends the fixed quality-dependent qualifiers sent upstream.
func EnhancePrompt(prompt string, q Quality) string {
	if q == QualityHigh {
		return prompt + promptQualifiers + "ultra-detailed, 8K resolution"
	}
	return prompt + promptQualifiers + "sharp details"
}
