package abac

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskguard/internal/auth"
)

// GuardOptions selects which policies a route guard evaluates.
type GuardOptions struct {
	Policies   []string
	RequireAll bool
}

// Require returns a Gin middleware that evaluates the given policies
// for the named action. The resource attribute bag is populated from
// the route parameters, so a route like /users/:userId feeds the
// resource-owner policy directly. Denial is 403 naming the action.
func Require(ev *Evaluator, action string, opts GuardOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		req := &Request{
			Principal: p,
			Action:    action,
			Resource:  resourceFromParams(c),
			Environment: Environment{
				Timestamp: time.Now(),
				Method:    c.Request.Method,
				Path:      c.Request.URL.Path,
				IP:        c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
			},
		}

		if d := ev.Evaluate(req, opts.Policies, opts.RequireAll); !d.Allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":  "forbidden",
				"action": action,
			})
			return
		}
		c.Next()
	}
}

// RequireResourceOwner is sugar for guarding a route whose :userId
// param must match the caller.
func RequireResourceOwner(ev *Evaluator, action string) gin.HandlerFunc {
	return Require(ev, action, GuardOptions{Policies: []string{PolicyResourceOwner}})
}

// RequireSameTenant is sugar for tenant-isolation guarded routes.
func RequireSameTenant(ev *Evaluator, action string) gin.HandlerFunc {
	return Require(ev, action, GuardOptions{Policies: []string{PolicySameTenant}})
}

// RequireBusinessHours is sugar for routes only usable 09:00-18:00.
func RequireBusinessHours(ev *Evaluator, action string) gin.HandlerFunc {
	return Require(ev, action, GuardOptions{Policies: []string{PolicyBusinessHours}})
}

func resourceFromParams(c *gin.Context) map[string]any {
	res := make(map[string]any, len(c.Params))
	for _, p := range c.Params {
		res[p.Key] = p.Value
	}
	return res
}
