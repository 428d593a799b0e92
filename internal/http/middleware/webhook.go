package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const WebhookSecretHeader = "X-Webhook-Secret"

// WebhookSecret gates voice-platform webhooks on a static shared secret.
// A mismatch rejects the request before any handler runs, so a bad secret
// can never cause a store mutation.
func WebhookSecret(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader(WebhookSecretHeader)
		if required == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(required)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid webhook secret",
				},
			})
			return
		}
		c.Next()
	}
}
