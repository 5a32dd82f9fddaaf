package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

// Error renders a service error with the HTTP status its code maps to.
func Error(c *gin.Context, err error) {
	c.JSON(StatusOf(err), NewErrorResponse(err.Error()))
}

// StatusOf maps application error codes to HTTP statuses.
func StatusOf(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrValidation:
		return http.StatusUnprocessableEntity
	case apperrors.ErrBadRequest:
		return http.StatusBadRequest
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrConflict, apperrors.ErrInvalidTransition:
		return http.StatusConflict
	case apperrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrForbidden:
		return http.StatusForbidden
	case apperrors.ErrPersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
