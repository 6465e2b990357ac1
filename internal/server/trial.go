package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	trialdomain "github.com/markproof/portal/internal/trial/domain"
)

// CreateTrialSignup captures a trial lead and sends the welcome email.
func (s *Server) CreateTrialSignup(c *gin.Context) {
	var req trialdomain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.trialSvc.Signup(c.Request.Context(), req)
	if err != nil {
		if s.obsMetrics != nil {
			s.obsMetrics.RecordTrialSignup(c.Request.Context(), "error")
		}
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordTrialSignup(c.Request.Context(), "success")
	}
	c.JSON(http.StatusOK, result)
}
