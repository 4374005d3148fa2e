package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"rescue-service/helper"
	"rescue-service/internal/auth"
	"rescue-service/pkg/constants"

	"github.com/gin-gonic/gin"
)

// Secured validates the Authorization bearer token and exposes the
// caller's identity on the gin context.
func Secured(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			helper.SendError(c, http.StatusUnauthorized, fmt.Errorf("missing bearer token"), helper.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			helper.SendError(c, http.StatusUnauthorized, fmt.Errorf("invalid token"), helper.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(constants.Token, raw)
		c.Set(constants.UserID, claims.Subject)
		c.Set(constants.UserName, claims.Name)
		c.Set(constants.UserRole, claims.Role)

		c.Next()
	}
}
