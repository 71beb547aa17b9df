package domain

import (
	"errors"
	"time"
)

// DefaultAvatarURL is assigned to every new profile.
const DefaultAvatarURL = "https://storage.googleapis.com/workspace-0f70711f-8b4e-4d94-86f1-2a93ccde5887/image/a89a3900-eaa9-4dc1-b914-cecaae1409ba.png"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already exists")
)

// User is a lightweight public profile. Counters are set at creation and
// never recomputed.
type User struct {
	ID          string    `json:"id" bson:"_id"`
	Username    string    `json:"username" bson:"username"`
	Email       string    `json:"email" bson:"email"`
	Avatar      string    `json:"avatar" bson:"avatar"`
	Bio         string    `json:"bio" bson:"bio"`
	TotalImages int       `json:"totalImages" bson:"totalImages"`
	TotalLikes  int       `json:"totalLikes" bson:"totalLikes"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero" bson:"updatedAt,omitempty"`
}

// UserSummary is the community view of a profile.
type UserSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar"`
	TotalImages int    `json:"totalImages"`
	TotalLikes  int    `json:"totalLikes"`
}

// Summary projects u onto its community view.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:          u.ID,
		Username:    u.Username,
		Avatar:      u.Avatar,
		TotalImages: u.TotalImages,
		TotalLikes:  u.TotalLikes,
	}
}

// UserPatch holds the mutable profile fields. A nil field is left unchanged.
type UserPatch struct {
	Bio    *string
	Email  *string
	Avatar *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Bio == nil && p.Email == nil && p.Avatar == nil
}

// Apply copies the set fields onto u and stamps UpdatedAt.
func (p UserPatch) Apply(u *User, now time.Time) {
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	u.UpdatedAt = now
}
