package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pixelforge/image-studio/internal/core/domain"
	"github.com/pixelforge/image-studio/internal/core/ports"
)

// --- stubs ---

type stubGenerationService struct {
	generateFn func(ctx context.Context, in ports.GenerateInput) (*domain.Image, error)
}

func (s *stubGenerationService) Generate(ctx context.Context, in ports.GenerateInput) (*domain.Image, error) {
	return s.generateFn(ctx, in)
}

type stubImageService struct {
	createFn       func(ctx context.Context, in ports.CreateImageInput) (*ports.CreateImageResult, error)
	listFn         func(ctx context.Context, in ports.ListImagesInput) (*ports.ListImagesResult, error)
	likeFn         func(ctx context.Context, imageID string) (int, error)
	togglePublicFn func(ctx context.Context, imageID, userID string) (bool, error)
	deleteFn       func(ctx context.Context, imageID, userID string) error
}

func (s *stubImageService) Create(ctx context.Context, in ports.CreateImageInput) (*ports.CreateImageResult, error) {
	return s.createFn(ctx, in)
}

func (s *stubImageService) List(ctx context.Context, in ports.ListImagesInput) (*ports.ListImagesResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubImageService) Like(ctx context.Context, imageID string) (int, error) {
	return s.likeFn(ctx, imageID)
}

func (s *stubImageService) TogglePublic(ctx context.Context, imageID, userID string) (bool, error) {
	return s.togglePublicFn(ctx, imageID, userID)
}

func (s *stubImageService) Delete(ctx context.Context, imageID, userID string) error {
	return s.deleteFn(ctx, imageID, userID)
}

type stubUserService struct {
	createFn func(ctx context.Context, username, email string) (*domain.User, error)
	getFn    func(ctx context.Context, lookup ports.UserLookup) (*domain.User, error)
	listFn   func(ctx context.Context) ([]domain.UserSummary, error)
	updateFn func(ctx context.Context, userID string, updates map[string]any) (*domain.User, error)
}

func (s *stubUserService) Create(ctx context.Context, username, email string) (*domain.User, error) {
	return s.createFn(ctx, username, email)
}

func (s *stubUserService) Get(ctx context.Context, lookup ports.UserLookup) (*domain.User, error) {
	return s.getFn(ctx, lookup)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.UserSummary, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Update(ctx context.Context, userID string, updates map[string]any) (*domain.User, error) {
	return s.updateFn(ctx, userID, updates)
}

// --- helpers ---

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp
}
