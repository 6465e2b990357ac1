package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	checkoutdomain "github.com/markproof/portal/internal/checkout/domain"
)

// CreateCheckoutSession creates a Stripe-hosted checkout session. Every
// failure, validation included, answers 500 with the error message; the
// storefront only distinguishes "got a URL" from "did not".
func (s *Server) CreateCheckoutSession(c *gin.Context) {
	var req checkoutdomain.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.recordCheckout(c, req.PlanName, "error")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInvalidRequest.Error()})
		return
	}
	req.Origin = c.GetHeader("Origin")

	resp, err := s.checkoutSvc.CreateSession(c.Request.Context(), req)
	if err != nil {
		s.recordCheckout(c, req.PlanName, "error")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.recordCheckout(c, req.PlanName, "success")
	c.JSON(http.StatusOK, resp)
}

func (s *Server) recordCheckout(c *gin.Context, planName, outcome string) {
	if s.obsMetrics == nil {
		return
	}
	s.obsMetrics.RecordCheckoutSession(c.Request.Context(), planName, outcome)
}
