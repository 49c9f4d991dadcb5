package server

import (
	"log/slog"
	"net/http"

	apperrors "github.com/example/terve/internal/errors"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusOf maps an error code to its HTTP status
func statusOf(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidInput, apperrors.CodeInvalidSessionState:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}
		_ = c.JSON(httpErr.Code, errorResponse{Code: "HTTP_ERROR", Message: msg})
		return
	}

	code := apperrors.CodeOf(err)
	status := statusOf(code)
	msg := "Something went wrong. Please try again."
	var appErr *apperrors.Error
	if status != http.StatusInternalServerError && errors.As(err, &appErr) {
		msg = appErr.Message
	} else {
		slog.Error("request failed", slog.String("path", c.Path()), slog.String("error", err.Error()))
	}
	_ = c.JSON(status, errorResponse{Code: string(code), Message: msg})
}

// bind decodes the request body, reporting malformed input as InvalidInput
func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return apperrors.InvalidInput("malformed request body")
	}
	return nil
}
