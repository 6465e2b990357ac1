package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	roidomain "github.com/markproof/portal/internal/roi/domain"
	subscriptiondomain "github.com/markproof/portal/internal/subscription/domain"
	trialdomain "github.com/markproof/portal/internal/trial/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid request body")

// ErrorHandlingMiddleware maps unhandled gin errors to JSON responses. The
// checkout and webhook handlers write their own responses and never reach
// this mapper.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: lastErr.Err.Error()})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, trialdomain.ErrMissingFields):
		return http.StatusBadRequest
	case errors.Is(err, trialdomain.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, subscriptiondomain.ErrNotFound),
		errors.Is(err, roidomain.ErrPresetNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
