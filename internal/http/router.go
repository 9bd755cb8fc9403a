package httpserver

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskguard/internal/abac"
	"taskguard/internal/audit"
	"taskguard/internal/auth"
	"taskguard/internal/http/handlers"
	"taskguard/internal/rbac"
)

// NewRouter wires the guard chains. Every protected route declares its
// requirements explicitly in order: audit recorder, token validation,
// role check, policy check, handler.
func NewRouter(db *gorm.DB, ex auth.Extractor, v auth.Validator, ev *abac.Evaluator, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", handlers.Health())

	authMW := auth.RequireAuth(ex, v, log)

	// Recorder sits before auth so denied requests land in the audit
	// trail too.
	api := r.Group("/api/v1", audit.Recorder(db, log), authMW)

	api.GET("/me", handlers.Me())

	// Every task route carries the IP veto alongside the default
	// policy: a satisfied deny always beats the allow.
	guard := func(action string) gin.HandlerFunc {
		return abac.Require(ev, action, abac.GuardOptions{
			Policies: []string{abac.PolicyDefault, abac.PolicyAllowedIP},
		})
	}

	tasks := api.Group("/tasks")
	{
		tasks.GET("", guard("tasks:list"), handlers.ListTasks(db))
		tasks.POST("", guard("tasks:create"), handlers.CreateTask(db))
		tasks.GET("/:id", guard("tasks:read"), handlers.GetTask(db))
		tasks.PATCH("/:id", guard("tasks:update"), handlers.UpdateTask(db))
		tasks.DELETE("/:id",
			rbac.RequireRoles(rbac.NewRequirement("admin", "manager")),
			guard("tasks:delete"),
			handlers.DeleteTask(db),
		)
	}

	api.GET("/audit",
		rbac.RequireRoles(rbac.NewRequirement("admin")),
		handlers.ListAudit(db),
	)

	return r
}
