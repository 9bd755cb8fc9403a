package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskguard/internal/auth"
)

// Me returns the authenticated principal plus the raw claim payload.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"principal": p,
			"claims":    p.RawClaims,
		})
	}
}
