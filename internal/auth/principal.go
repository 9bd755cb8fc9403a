package auth

import "github.com/gin-gonic/gin"

// Principal is the authenticated identity derived from a validated token.
// It is built fresh per request and never persisted.
type Principal struct {
	ID          string         `json:"id"`
	Email       string         `json:"email,omitempty"`
	Username    string         `json:"username,omitempty"`
	TenantID    string         `json:"tenant_id,omitempty"`
	Roles       []string       `json:"roles"`
	Permissions []string       `json:"permissions"`
	RawClaims   map[string]any `json:"-"`
}

// HasRole reports whether the principal holds the given role.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasPermission reports whether the principal holds the given permission.
func (p *Principal) HasPermission(perm string) bool {
	for _, s := range p.Permissions {
		if s == perm {
			return true
		}
	}
	return false
}

const principalKey = "principal"

// SetPrincipal attaches the principal to the request context.
func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal attached by the auth middleware.
func PrincipalFrom(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}

// RolesFrom returns just the roles of the authenticated principal.
func RolesFrom(c *gin.Context) []string {
	if p, ok := PrincipalFrom(c); ok {
		return p.Roles
	}
	return nil
}

// PermissionsFrom returns just the permissions of the authenticated principal.
func PermissionsFrom(c *gin.Context) []string {
	if p, ok := PrincipalFrom(c); ok {
		return p.Permissions
	}
	return nil
}

// ClaimsFrom returns the raw decoded claim set of the authenticated principal.
func ClaimsFrom(c *gin.Context) map[string]any {
	if p, ok := PrincipalFrom(c); ok {
		return p.RawClaims
	}
	return nil
}
