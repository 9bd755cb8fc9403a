package abac

import (
	"time"

	"taskguard/internal/auth"
)

// Effect is the policy outcome when all of its rules match.
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// Environment captures request-time attributes for rule evaluation.
type Environment struct {
	Timestamp time.Time
	Method    string
	Path      string
	IP        string
	UserAgent string
}

// Request is one access decision: who is doing what to which resource,
// under which conditions. Built per call, never reused.
type Request struct {
	Principal   *auth.Principal
	Action      string
	Resource    map[string]any
	Environment Environment
}

// Rule is a named boolean predicate over a Request. Rules must be pure:
// no side effects, no stored state.
type Rule struct {
	Name  string
	Check func(req *Request) bool
}

// Policy is an ordered list of rules with an effect. A policy is
// satisfied only when every rule returns true.
type Policy struct {
	Name     string
	Effect   Effect
	Priority int
	Rules    []Rule
}
