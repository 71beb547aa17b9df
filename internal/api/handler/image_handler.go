package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pixelforge/image-studio/internal/core/domain"
	"github.com/pixelforge/image-studio/internal/core/ports"
)

const msgImageNotFound = "Image not found or action not supported"

// ImageHandler handles the saved-image collection.
type ImageHandler struct {
	service ports.ImageService
}

func NewImageHandler(service ports.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// List handles GET /images.
//
// @Summary      List images
// @Description  type=user (default) returns images in save order, filtered by userId when given.
// @Description  type=community returns public images, most liked first.
// @Tags         images
// @Produce      json
// @Param        type    query     string  false  "user or community"
// @Param        userId  query     string  false  "Owner filter for type=user"
// @Success      200     {object}  listImagesResponse
// @Failure      400     {object}  errorResponse
// @Router       /images [get]
func (h *ImageHandler) List(c echo.Context) error {
	var q listImagesQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.List(c.Request().Context(), ports.ListImagesInput{
		Type:   domain.ListType(q.Type),
		UserID: q.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listImagesResponse{Success: true, Images: result.Images, Total: result.Total})
}

// Create handles POST /images.
//
// @Summary      Save an image record
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string              false  "Replays the first result for a repeated key"
// @Param        body             body      createImageRequest  true   "Image record"
// @Success      200              {object}  imageResponse
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /images [post]
func (h *ImageHandler) Create(c echo.Context) error {
	var req createImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateImageInput{
		ID:             req.ID,
		UserID:         req.UserID,
		Username:       req.Username,
		Prompt:         req.Prompt,
		EnhancedPrompt: req.EnhancedPrompt,
		URL:            req.URL,
		AspectRatio:    req.AspectRatio,
		Quality:        req.Quality,
		IsPublic:       req.IsPublic,
		CreatedAt:      req.CreatedAt,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrImageExists) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "Image already exists"})
		}
		return err
	}

	if result.Replayed {
		c.Response().Header().Set("Idempotent-Replayed", "true")
	}
	return c.JSON(http.StatusOK, imageResponse{Success: true, Image: result.Image, Message: "Image saved successfully"})
}

// Update handles PATCH /images.
//
// @Summary      Like an image or toggle its visibility
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        body  body      updateImageRequest  true  "action is like or togglePublic"
// @Success      200   {object}  likeResponse
// @Success      200   {object}  visibilityResponse
// @Failure      404   {object}  errorResponse
// @Router       /images [patch]
func (h *ImageHandler) Update(c echo.Context) error {
	var req updateImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	ctx := c.Request().Context()
	switch domain.ImageAction(req.Action) {
	case domain.ActionLike:
		likes, err := h.service.Like(ctx, req.ImageID)
		if err != nil {
			return h.updateError(c, err)
		}
		return c.JSON(http.StatusOK, likeResponse{Success: true, Likes: likes})
	case domain.ActionTogglePublic:
		public, err := h.service.TogglePublic(ctx, req.ImageID, req.UserID)
		if err != nil {
			return h.updateError(c, err)
		}
		return c.JSON(http.StatusOK, visibilityResponse{Success: true, IsPublic: public})
	default:
		return c.JSON(http.StatusNotFound, errorResponse{Error: msgImageNotFound})
	}
}

func (h *ImageHandler) updateError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrImageNotFound) || errors.Is(err, domain.ErrInvalidInput) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: msgImageNotFound})
	}
	return err
}

// Delete handles DELETE /images.
//
// @Summary      Delete one of the caller's images
// @Tags         images
// @Produce      json
// @Param        imageId  query     string  true   "Image id"
// @Param        userId   query     string  false  "Owner id"
// @Success      200      {object}  messageResponse
// @Failure      400      {object}  errorResponse
// @Router       /images [delete]
func (h *ImageHandler) Delete(c echo.Context) error {
	imageID := c.QueryParam("imageId")
	if imageID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Image ID is required"})
	}

	if err := h.service.Delete(c.Request().Context(), imageID, c.QueryParam("userId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Image deleted successfully"})
}
