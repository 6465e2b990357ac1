package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	subscriptiondomain "github.com/markproof/portal/internal/subscription/domain"
)

// GetSubscriptionBySession looks up the subscription created for a checkout
// session. The success page polls this to confirm activation.
func (s *Server) GetSubscriptionBySession(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("sessionId"))
	if sessionID == "" {
		AbortWithError(c, subscriptiondomain.ErrNotFound)
		return
	}

	record, err := s.subscriptionRep.FindBySessionID(c.Request.Context(), s.db, sessionID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}
