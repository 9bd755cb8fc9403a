package audit

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"taskguard/internal/auth"
	"taskguard/internal/models"
)

// Recorder returns a Gin middleware that writes one AuditLog row per
// request after the handler chain finishes. It must sit in front of
// the auth middleware in the chain so denied requests are recorded
// too. Writes are best-effort: a failing audit insert is logged and
// never fails the request.
func Recorder(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		decision := "allow"
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			decision = "deny"
		}

		var actor string
		if p, ok := auth.PrincipalFrom(c); ok {
			actor = p.ID
		}

		details, _ := json.Marshal(map[string]any{"status": status})
		entry := models.AuditLog{
			ActorID:   actor,
			Action:    c.Request.Method + " " + c.Request.URL.Path,
			Decision:  decision,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Details:   datatypes.JSON(details),
		}

		if err := db.Create(&entry).Error; err != nil {
			log.Warn("audit write failed", zap.Error(err))
		}
	}
}
