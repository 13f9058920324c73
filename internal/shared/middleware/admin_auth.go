package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogcms-backend/pkg/token"
)

// AdminAuth gates mutating endpoints behind the admin trust marker.
// The marker travels in an http-only cookie; validity is whatever the
// configured issuer says it is. On failure the response never hints
// which part of the credential check failed.
func AdminAuth(cookieName string, issuer token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		marker, err := c.Cookie(cookieName)
		if err != nil || !issuer.Verify(marker) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"message": "Unauthorized",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
