package rbac

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskguard/internal/auth"
)

// RequireRoles returns a Gin middleware enforcing the requirement.
// A missing principal means the auth middleware did not run: that is
// 401, not 403. A known but under-privileged principal gets 403 with
// the required roles named.
func RequireRoles(req Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !req.Check(p) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":          "forbidden",
				"required_roles": req.Roles,
			})
			return
		}
		c.Next()
	}
}
