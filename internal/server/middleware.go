package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"
	webhookPathPart  = "/webhooks/"
)

// CORSMiddleware answers preflight requests and stamps every response with
// the open CORS policy the marketing site relies on. Webhook routes allow the
// provider's signature header on top of the base set.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed := corsAllowHeaders
		if strings.Contains(c.Request.URL.Path, webhookPathPart) {
			allowed += ", stripe-signature"
		}

		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", allowed)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
