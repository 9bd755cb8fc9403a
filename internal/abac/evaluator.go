package abac

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow(reason string) Decision { return Decision{Allowed: true, Reason: reason} }
func deny(reason string) Decision  { return Decision{Allowed: false, Reason: reason} }

// Evaluator runs named policies against a Request. An explicit deny
// always wins; a misconfigured allow policy can never override a
// security veto like the IP allow-list.
type Evaluator struct {
	reg *Registry
	log *zap.Logger
}

func NewEvaluator(reg *Registry, log *zap.Logger) *Evaluator {
	return &Evaluator{reg: reg, log: log}
}

// Evaluate resolves the named policies (["default"] when none given)
// and decides:
//
//  1. no names resolve -> deny (fail-closed)
//  2. policies evaluated in priority order, highest first
//  3. a satisfied deny-effect policy denies immediately
//  4. otherwise allow iff at least one allow-effect policy was
//     satisfied, or all of them when requireAll is set
//
// A panic inside a rule fails the whole evaluation closed.
func (e *Evaluator) Evaluate(req *Request, names []string, requireAll bool) Decision {
	if len(names) == 0 {
		names = []string{PolicyDefault}
	}

	resolved := make([]Policy, 0, len(names))
	for _, name := range names {
		p, ok := e.reg.Lookup(name)
		if !ok {
			e.log.Warn("unknown policy requested", zap.String("policy", name))
			continue
		}
		resolved = append(resolved, p)
	}
	if len(resolved) == 0 {
		return deny("no policies resolved")
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Priority > resolved[j].Priority
	})

	var allowTotal, allowSatisfied int
	for _, p := range resolved {
		if p.Effect == EffectAllow {
			allowTotal++
		}

		satisfied, err := e.evaluatePolicy(p, req)
		if err != nil {
			e.log.Error("policy evaluation panicked, failing closed",
				zap.String("policy", p.Name),
				zap.String("action", req.Action),
				zap.Error(err),
			)
			return deny(fmt.Sprintf("policy %q evaluation error", p.Name))
		}
		if !satisfied {
			continue
		}

		if p.Effect == EffectDeny {
			return deny(fmt.Sprintf("denied by policy %q", p.Name))
		}
		allowSatisfied++
	}

	if requireAll {
		if allowTotal > 0 && allowSatisfied == allowTotal {
			return allow("all policies satisfied")
		}
		return deny("not all policies satisfied")
	}
	if allowSatisfied > 0 {
		return allow("policy satisfied")
	}
	return deny("no policy satisfied")
}

// evaluatePolicy ANDs the policy's rules, short-circuiting on the
// first failure. Rule panics are recovered and reported as an error,
// never propagated into the request goroutine's crash handler.
func (e *Evaluator) evaluatePolicy(p Policy, req *Request) (satisfied bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			satisfied = false
			err = fmt.Errorf("rule panicked: %v", r)
		}
	}()

	for _, rule := range p.Rules {
		if !rule.Check(req) {
			return false, nil
		}
	}
	return true, nil
}
