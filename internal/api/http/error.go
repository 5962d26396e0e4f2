package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finflow/identity/internal/model"
)

func statusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrAccountSuspended):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrTokenMalformed),
		errors.Is(err, model.ErrTokenSignature),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("http: request failed", "error", err.Error())
		c.JSON(code, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
