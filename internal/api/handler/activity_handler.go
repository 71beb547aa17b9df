package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pixelforge/image-studio/internal/core/ports"
)

// ActivityHandler serves the read-only audit feed.
type ActivityHandler struct {
	feed ports.ActivityFeed
}

func NewActivityHandler(feed ports.ActivityFeed) *ActivityHandler {
	return &ActivityHandler{feed: feed}
}

// Recent handles GET /activity.
//
// @Summary      Recent activity
// @Description  Successful mutations, newest first. Events are recorded asynchronously.
// @Tags         activity
// @Produce      json
// @Param        limit  query     int  false  "Maximum events to return (1-500, default 50)"
// @Success      200    {object}  activityResponse
// @Failure      400    {object}  errorResponse
// @Router       /activity [get]
func (h *ActivityHandler) Recent(c echo.Context) error {
	var q activityQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	events, err := h.feed.Recent(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activityResponse{Success: true, Events: events, Total: len(events)})
}
