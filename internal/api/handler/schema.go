package handler

import (
	"time"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

// errorResponse is the error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// --- Generation ---

type generateRequest struct {
	Prompt      string `json:"prompt"      label:"Prompt" validate:"required"`
	AspectRatio string `json:"aspectRatio" validate:"omitempty,max=16"`
	Quality     string `json:"quality"     label:"Quality" validate:"omitempty,oneof=standard high"`
}

type generateResponse struct {
	Success bool          `json:"success"`
	Image   *domain.Image `json:"image"`
	Message string        `json:"message"`
}

type endpointInfoResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// --- Images ---

type listImagesQuery struct {
	Type   string `query:"type"   label:"Type" validate:"omitempty,oneof=user community"`
	UserID string `query:"userId"`
}

type listImagesResponse struct {
	Success bool            `json:"success"`
	Images  []*domain.Image `json:"images"`
	Total   int             `json:"total"`
}

// createImageRequest mirrors the image record a client saves. Likes is
// accepted for compatibility but always reset by the server.
type createImageRequest struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Username       string    `json:"username"`
	Prompt         string    `json:"prompt"`
	EnhancedPrompt string    `json:"enhancedPrompt"`
	URL            string    `json:"url"            label:"URL" validate:"omitempty,url"`
	AspectRatio    string    `json:"aspectRatio"    validate:"omitempty,max=16"`
	Quality        string    `json:"quality"        label:"Quality" validate:"omitempty,oneof=standard high"`
	IsPublic       bool      `json:"isPublic"`
	Likes          int       `json:"likes"`
	CreatedAt      time.Time `json:"createdAt"`
}

type imageResponse struct {
	Success bool          `json:"success"`
	Image   *domain.Image `json:"image"`
	Message string        `json:"message"`
}

type updateImageRequest struct {
	ImageID string `json:"imageId"`
	Action  string `json:"action"`
	UserID  string `json:"userId"`
}

type likeResponse struct {
	Success bool `json:"success"`
	Likes   int  `json:"likes"`
}

type visibilityResponse struct {
	Success  bool `json:"success"`
	IsPublic bool `json:"isPublic"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Users ---

type getUserQuery struct {
	UserID   string `query:"userId"`
	Username string `query:"username"`
}

type createUserRequest struct {
	Username string `json:"username" label:"Username" validate:"required"`
	Email    string `json:"email"    label:"Email" validate:"omitempty,email"`
}

type updateUserRequest struct {
	UserID  string         `json:"userId"  label:"User ID" validate:"required"`
	Updates map[string]any `json:"updates"`
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
	Message string       `json:"message,omitempty"`
}

type listUsersResponse struct {
	Success bool                 `json:"success"`
	Users   []domain.UserSummary `json:"users"`
}

// --- Activity ---

type activityQuery struct {
	Limit int `query:"limit" label:"Limit" validate:"omitempty,min=1,max=500"`
}

type activityResponse struct {
	Success bool                    `json:"success"`
	Events  []*domain.ActivityEvent `json:"events"`
	Total   int                     `json:"total"`
}
