package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

func TestHTTPErrorHandler_MapsErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "nope"},
		{fmt.Errorf("like image: %w", domain.ErrImageNotFound), http.StatusNotFound, "Image not found"},
		{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{fmt.Errorf("create image: %w", domain.ErrImageExists), http.StatusConflict, "Image already exists"},
		{domain.ErrUserExists, http.StatusConflict, "Username already exists"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)

		h(tc.err, c)

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if want := fmt.Sprintf(`{"error":%q}`, tc.msg); rec.Body.String() != want+"\n" {
			t.Fatalf("%v: unexpected body %q", tc.err, rec.Body.String())
		}
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Body.String() != "done" {
		t.Fatalf("body was overwritten: %q", rec.Body.String())
	}
}
