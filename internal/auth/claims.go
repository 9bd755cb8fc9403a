package auth

import (
	"fmt"
	"strings"
)

// ClaimKeys names the claims a Principal is read from. Issuers differ
// on where they put roles and tenant information, so these are
// configurable; the defaults match the common OIDC-ish shape.
type ClaimKeys struct {
	UserID      string
	Roles       string
	Permissions string
	TenantID    string
}

func DefaultClaimKeys() ClaimKeys {
	return ClaimKeys{
		UserID:      "sub",
		Roles:       "roles",
		Permissions: "permissions",
		TenantID:    "tenant_id",
	}
}

func (k ClaimKeys) withDefaults() ClaimKeys {
	def := DefaultClaimKeys()
	if k.UserID == "" {
		k.UserID = def.UserID
	}
	if k.Roles == "" {
		k.Roles = def.Roles
	}
	if k.Permissions == "" {
		k.Permissions = def.Permissions
	}
	if k.TenantID == "" {
		k.TenantID = def.TenantID
	}
	return k
}

// PrincipalFromClaims maps a decoded claim set onto a Principal using
// the configured key names. The user id claim is required; username
// falls back to email when absent.
func PrincipalFromClaims(claims map[string]any, keys ClaimKeys) (*Principal, error) {
	keys = keys.withDefaults()

	id := claimString(claims, keys.UserID)
	if id == "" {
		return nil, ErrMissingSubject
	}

	p := &Principal{
		ID:          id,
		Email:       claimString(claims, "email"),
		Roles:       claimStrings(claims, keys.Roles),
		Permissions: claimStrings(claims, keys.Permissions),
		TenantID:    claimString(claims, keys.TenantID),
		RawClaims:   claims,
	}

	p.Username = claimString(claims, "username")
	if p.Username == "" {
		p.Username = claimString(claims, "preferred_username")
	}
	if p.Username == "" {
		p.Username = p.Email
	}

	return p, nil
}

// claimString reads a claim as a string. Numeric subjects are common
// enough (issuers that use DB ids) that numbers are stringified.
func claimString(claims map[string]any, key string) string {
	v, ok := claims[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case int64:
		return fmt.Sprintf("%d", t)
	default:
		return ""
	}
}

// claimStrings reads a claim as a string set. Accepts a JSON array,
// a native string slice, or a comma-separated string.
func claimStrings(claims map[string]any, key string) []string {
	v, ok := claims[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		parts := strings.Split(t, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}
