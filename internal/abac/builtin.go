package abac

// Builtin policy names.
const (
	PolicyDefault       = "default"
	PolicyBusinessHours = "business-hours"
	PolicyResourceOwner = "resource-owner"
	PolicySameTenant    = "same-tenant"
	PolicyAllowedIP     = "allowed-ip"
)

// BuiltinPolicies returns the stock policy set. allowedIPs feeds the
// allowed-ip veto; with an empty list that policy never fires.
func BuiltinPolicies(allowedIPs []string) []Policy {
	return []Policy{
		{
			Name:     PolicyDefault,
			Effect:   EffectAllow,
			Priority: 0,
			Rules: []Rule{
				{Name: "principal-present", Check: func(req *Request) bool {
					return req.Principal != nil && req.Principal.ID != ""
				}},
			},
		},
		{
			Name:     PolicyBusinessHours,
			Effect:   EffectAllow,
			Priority: 10,
			Rules: []Rule{
				{Name: "within-business-hours", Check: func(req *Request) bool {
					h := req.Environment.Timestamp.Hour()
					return h >= 9 && h < 18
				}},
			},
		},
		{
			Name:     PolicyResourceOwner,
			Effect:   EffectAllow,
			Priority: 50,
			Rules: []Rule{
				{Name: "owns-resource", Check: func(req *Request) bool {
					if req.Principal == nil || req.Principal.ID == "" {
						return false
					}
					owner, _ := req.Resource["userId"].(string)
					return owner != "" && owner == req.Principal.ID
				}},
			},
		},
		{
			Name:     PolicySameTenant,
			Effect:   EffectAllow,
			Priority: 40,
			Rules: []Rule{
				// Absent tenant on either side means no isolation to
				// enforce, so the rule passes.
				{Name: "tenant-match", Check: func(req *Request) bool {
					if req.Principal == nil {
						return false
					}
					tenant, _ := req.Resource["tenantId"].(string)
					if req.Principal.TenantID == "" || tenant == "" {
						return true
					}
					return req.Principal.TenantID == tenant
				}},
			},
		},
		{
			// Deny-effect veto: satisfied (and therefore denying) when
			// the caller IP is outside the allow-list. Highest priority
			// so it is evaluated first, though deny wins regardless of
			// ordering.
			Name:     PolicyAllowedIP,
			Effect:   EffectDeny,
			Priority: 100,
			Rules: []Rule{
				{Name: "ip-not-allowed", Check: func(req *Request) bool {
					if len(allowedIPs) == 0 {
						return false
					}
					for _, ip := range allowedIPs {
						if ip == req.Environment.IP {
							return false
						}
					}
					return true
				}},
			},
		},
	}
}
