package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPlans returns the seeded plan catalog ordered by price.
func (s *Server) ListPlans(c *gin.Context) {
	plans, err := s.planRepo.List(c.Request.Context(), s.db)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}
