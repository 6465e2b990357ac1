package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	webhookdomain "github.com/markproof/portal/internal/webhook/domain"
)

// HandleStripeWebhook ingests provider events. Response codes are part of the
// provider contract: 200 acknowledges (including unrecognized types), 400
// rejects a bad signature, 500 asks Stripe to redeliver.
func (s *Server) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Webhook handler failed"})
		return
	}

	err = s.webhookSvc.HandleEvent(c.Request.Context(), payload, c.Request.Header)
	switch {
	case err == nil:
		s.recordWebhook(c, "success")
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, webhookdomain.ErrInvalidSignature):
		s.recordWebhook(c, "invalid_signature")
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid signature"})
	case errors.Is(err, webhookdomain.ErrInvalidPayload):
		s.recordWebhook(c, "invalid_payload")
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid payload"})
	default:
		s.recordWebhook(c, "error")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Webhook handler failed"})
	}
}

func (s *Server) recordWebhook(c *gin.Context, outcome string) {
	if s.obsMetrics == nil {
		return
	}
	s.obsMetrics.RecordWebhookEvent(c.Request.Context(), "stripe", outcome)
}
