package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pixelforge/image-studio/internal/core/domain"
	"github.com/pixelforge/image-studio/internal/core/ports"
)

// GenerateHandler exposes the prompt-to-image endpoint.
type GenerateHandler struct {
	service ports.GenerationService
}

func NewGenerateHandler(service ports.GenerationService) *GenerateHandler {
	return &GenerateHandler{service: service}
}

// Generate handles POST /generate.
//
// @Summary      Generate an image from a prompt
// @Tags         generate
// @Accept       json
// @Produce      json
// @Param        body  body      generateRequest  true  "Prompt and options"
// @Success      200   {object}  generateResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Failure      502   {object}  errorResponse  "Upstream status is passed through"
// @Router       /generate [post]
func (h *GenerateHandler) Generate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	img, err := h.service.Generate(c.Request().Context(), ports.GenerateInput{
		Prompt:      req.Prompt,
		AspectRatio: req.AspectRatio,
		Quality:     req.Quality,
	})
	if err != nil {
		var upstream *domain.UpstreamError
		switch {
		case errors.Is(err, domain.ErrEmptyPrompt):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Prompt is required"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.As(err, &upstream):
			return c.JSON(upstream.StatusCode, errorResponse{Error: "Image generation failed", Details: upstream.Body})
		case errors.Is(err, domain.ErrNoImageURL):
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "No image generated"})
		}
		return err
	}

	return c.JSON(http.StatusOK, generateResponse{
		Success: true,
		Image:   img,
		Message: "Image generated successfully",
	})
}

// Describe handles GET /generate.
//
// @Summary      Describe the generation endpoint
// @Tags         generate
// @Produce      json
// @Success      200  {object}  endpointInfoResponse
// @Router       /generate [get]
func (h *GenerateHandler) Describe(c echo.Context) error {
	return c.JSON(http.StatusOK, endpointInfoResponse{
		Message:   "Image generation API",
		Endpoints: map[string]string{"POST": "Generate new image with prompt"},
	})
}
