package abac

import "fmt"

// Registry holds the named policies available to the evaluator. It is
// built once during bootstrap and read-only afterwards, so concurrent
// request handling needs no locking.
type Registry struct {
	policies map[string]Policy
}

// NewRegistry builds a registry from the given policies. Duplicate
// names are a bootstrap bug and fail loudly.
func NewRegistry(policies ...Policy) (*Registry, error) {
	m := make(map[string]Policy, len(policies))
	for _, p := range policies {
		if p.Name == "" {
			return nil, fmt.Errorf("abac: policy with empty name")
		}
		if _, dup := m[p.Name]; dup {
			return nil, fmt.Errorf("abac: duplicate policy %q", p.Name)
		}
		if p.Effect != EffectAllow && p.Effect != EffectDeny {
			return nil, fmt.Errorf("abac: policy %q has invalid effect %q", p.Name, p.Effect)
		}
		m[p.Name] = p
	}
	return &Registry{policies: m}, nil
}

// Lookup resolves a policy by name.
func (r *Registry) Lookup(name string) (Policy, bool) {
	p, ok := r.policies[name]
	return p, ok
}

// Names returns the registered policy names, for startup logging.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.policies))
	for name := range r.policies {
		out = append(out, name)
	}
	return out
}
