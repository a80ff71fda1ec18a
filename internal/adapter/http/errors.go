package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Eddi3MS/delivery-bd/internal/adapter/http/middleware"
	"github.com/Eddi3MS/delivery-bd/internal/logging"
	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/gin-gonic/gin"
)

const genericFailure = "Something went wrong."

// statusOf maps a failure category to its response status. Missing records
// are 400, like any other rejected request.
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, usecase.ErrIntegrity),
		errors.Is(err, usecase.ErrForbidden),
		errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrInvalidState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError turns err into exactly one {"error": msg} response. Unexpected
// failures are logged and answered with a generic message.
func writeError(c *gin.Context, err error) {
	writeErrorStatus(c, statusOf(err), err)
}

func writeErrorStatus(c *gin.Context, status int, err error) {
	msg := usecase.Message(err)
	if msg == "" || status == http.StatusInternalServerError {
		logging.From(c).Error("request failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericFailure})
		return
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func confirm(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// bindJSON decodes the body; on failure it answers 400 with msg.
func bindJSON(c *gin.Context, dst any, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(err)
		badRequest(c, msg)
		return false
	}
	return true
}

// actor is set by middleware.Authn.Required on every authenticated route.
func actor(c *gin.Context) usecase.Identity {
	id, _ := middleware.CurrentIdentity(c)
	return id
}
