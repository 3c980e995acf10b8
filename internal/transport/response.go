package transport

import (
	"errors"
	"net/http"

	"github.com/kollapso/booking/internal/entity"

	"github.com/gin-gonic/gin"
)

// SuccessResponse wraps a successful payload
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse wraps a failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// statusFromError maps the domain error taxonomy onto HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, entity.ErrUnauthenticated),
		errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrBookingNotFound),
		errors.Is(err, entity.ErrReservationNotFound),
		errors.Is(err, entity.ErrGameNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDateConflict),
		errors.Is(err, entity.ErrAlreadyCancelled),
		errors.Is(err, entity.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, entity.ErrPastDate),
		errors.Is(err, entity.ErrPastEventCancel),
		errors.Is(err, entity.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrStoreUnreachable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}
