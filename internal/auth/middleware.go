package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAuth returns a Gin middleware that extracts and validates the
// bearer token and attaches the resulting principal to the request
// context. Downstream guards (roles, policies) read the principal from
// there. Any failure aborts with 401; the internal reason is logged
// but not disclosed to the caller.
func RequireAuth(ex Extractor, v Validator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ex.Extract(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		p, err := v.Validate(c.Request.Context(), token)
		if err != nil {
			log.Debug("token rejected",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}
