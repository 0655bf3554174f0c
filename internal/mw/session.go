package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenValidator reports whether a session token is live.
type TokenValidator interface {
	Validate(token string) bool
}

// RequireSession guards routes behind a bearer session token issued by the
// login endpoint.
func RequireSession(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" || !v.Validate(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}
