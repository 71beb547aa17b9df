// Package api is a typed HTTP client for the image studio server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

// Error is a non-2xx reply decoded from the server's error envelope.
type Error struct {
	Status  int
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.Status, e.Details)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// Client calls the server's routes under baseURL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for baseURL. A zero timeout means no client-side limit,
// which generation calls may need.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, headers map[string]string, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode/100 != 2 {
		apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var env errorEnvelope
		if json.Unmarshal(raw, &env) == nil && env.Error != "" {
			apiErr.Message = env.Error
			apiErr.Details = env.Details
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// --- Generation ---

type GenerateRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio,omitempty"`
	Quality     string `json:"quality,omitempty"`
}

type imageEnvelope struct {
	Image *domain.Image `json:"image"`
}

// Generate asks the server for a new, unsaved image.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*domain.Image, error) {
	var out imageEnvelope
	if err := c.do(ctx, http.MethodPost, "/generate", nil, req, nil, &out); err != nil {
		return nil, err
	}
	return out.Image, nil
}

// --- Images ---

type imagesEnvelope struct {
	Images []*domain.Image `json:"images"`
	Total  int             `json:"total"`
}

// ListImages returns the user listing (optionally filtered by userID) or
// the community listing.
func (c *Client) ListImages(ctx context.Context, listType domain.ListType, userID string) ([]*domain.Image, error) {
	q := url.Values{}
	if listType != "" {
		q.Set("type", string(listType))
	}
	if userID != "" {
		q.Set("userId", userID)
	}
	var out imagesEnvelope
	if err := c.do(ctx, http.MethodGet, "/images", q, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Images, nil
}

// SaveImage stores img. A non-empty idempotencyKey makes retries safe.
func (c *Client) SaveImage(ctx context.Context, img *domain.Image, idempotencyKey string) (*domain.Image, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	var out imageEnvelope
	if err := c.do(ctx, http.MethodPost, "/images", nil, img, headers, &out); err != nil {
		return nil, err
	}
	return out.Image, nil
}

type updateImageRequest struct {
	ImageID string `json:"imageId"`
	Action  string `json:"action"`
	UserID  string `json:"userId,omitempty"`
}

// Like adds one like to a community image and returns the new count.
func (c *Client) Like(ctx context.Context, imageID string) (int, error) {
	var out struct {
		Likes int `json:"likes"`
	}
	req := updateImageRequest{ImageID: imageID, Action: string(domain.ActionLike)}
	if err := c.do(ctx, http.MethodPatch, "/images", nil, req, nil, &out); err != nil {
		return 0, err
	}
	return out.Likes, nil
}

// TogglePublic flips visibility of the caller's image and returns the new flag.
func (c *Client) TogglePublic(ctx context.Context, imageID, userID string) (bool, error) {
	var out struct {
		IsPublic bool `json:"isPublic"`
	}
	req := updateImageRequest{ImageID: imageID, Action: string(domain.ActionTogglePublic), UserID: userID}
	if err := c.do(ctx, http.MethodPatch, "/images", nil, req, nil, &out); err != nil {
		return false, err
	}
	return out.IsPublic, nil
}

func (c *Client) DeleteImage(ctx context.Context, imageID, userID string) error {
	q := url.Values{"imageId": {imageID}}
	if userID != "" {
		q.Set("userId", userID)
	}
	return c.do(ctx, http.MethodDelete, "/images", q, nil, nil, nil)
}

// --- Users ---

type userEnvelope struct {
	User *domain.User `json:"user"`
}

func (c *Client) CreateUser(ctx context.Context, username, email string) (*domain.User, error) {
	body := map[string]string{"username": username}
	if email != "" {
		body["email"] = email
	}
	var out userEnvelope
	if err := c.do(ctx, http.MethodPost, "/user", nil, body, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// GetUser fetches one profile by id.
func (c *Client) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/user", url.Values{"userId": {userID}}, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	var out struct {
		Users []domain.UserSummary `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// UpdateUser sends updates as-is; the server applies only bio, email and avatar.
func (c *Client) UpdateUser(ctx context.Context, userID string, updates map[string]any) (*domain.User, error) {
	body := map[string]any{"userId": userID, "updates": updates}
	var out userEnvelope
	if err := c.do(ctx, http.MethodPatch, "/user", nil, body, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}
