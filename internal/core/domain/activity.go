package domain

import "time"

// ActivityKind names a recorded state change.
type ActivityKind string

const (
	ActivityImageCreated      ActivityKind = "image_created"
	ActivityImageLiked        ActivityKind = "image_liked"
	ActivityVisibilityChanged ActivityKind = "image_visibility_changed"
	ActivityImageDeleted      ActivityKind = "image_deleted"
	ActivityUserCreated       ActivityKind = "user_created"
	ActivityUserUpdated       ActivityKind = "user_updated"
)

// ActivityEvent is an audit record of a successful mutation.
type ActivityEvent struct {
	ID      string       `json:"id" bson:"_id"`
	Kind    ActivityKind `json:"kind" bson:"kind"`
	ImageID string       `json:"imageId,omitempty" bson:"imageId,omitempty"`
	UserID  string       `json:"userId,omitempty" bson:"userId,omitempty"`
	Detail  string       `json:"detail,omitempty" bson:"detail,omitempty"`
	At      time.Time    `json:"at" bson:"at"`
}

// ShardKey returns the key that must be processed in order.
func (e ActivityEvent) ShardKey() string {
	if e.ImageID != "" {
		return e.ImageID
	}
	return e.UserID
}
