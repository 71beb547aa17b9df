package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pixelforge/image-studio/internal/core/domain"
	"github.com/pixelforge/image-studio/internal/core/ports"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Get handles GET /user.
//
// @Summary      Fetch a profile, or list all profiles
// @Description  With userId or username returns that profile; with neither returns summaries of every profile.
// @Tags         users
// @Produce      json
// @Param        userId    query     string  false  "Profile id"
// @Param        username  query     string  false  "Exact username"
// @Success      200       {object}  userResponse
// @Success      200       {object}  listUsersResponse
// @Failure      404       {object}  errorResponse
// @Router       /user [get]
func (h *UserHandler) Get(c echo.Context) error {
	var q getUserQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
	}
	ctx := c.Request().Context()

	if q.UserID == "" && q.Username == "" {
		users, err := h.service.List(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, listUsersResponse{Success: true, Users: users})
	}

	user, err := h.service.Get(ctx, ports.UserLookup{ID: q.UserID, Username: q.Username})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "User not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// Create handles POST /user.
//
// @Summary      Create a profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Username and optional email"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Create(c.Request().Context(), req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Username is required"})
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusConflict, errorResponse{Error: "Username already exists"})
		}
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user, Message: "User created successfully"})
}

// Update handles PATCH /user.
//
// @Summary      Edit a profile
// @Description  Only bio, email and avatar are applied; other keys in updates are ignored.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateUserRequest  true  "Profile id and field updates"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /user [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Update(c.Request().Context(), req.UserID, req.Updates)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: "User not found"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user, Message: "User updated successfully"})
}
