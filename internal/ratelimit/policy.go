package ratelimit

import (
	"context"
	"time"
)

// Store records requests and reports how many fall inside a sliding window.
type Store interface {
	// Record records a request and returns the count of requests in the current window.
	// Expired entries are pruned as a side effect.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

// LimitConfig caps the number of requests allowed within a window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps each scope to the limits enforced for it.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// DefaultPolicy returns the limits applied when no policy is configured.
// The auth scope is kept tight because it guards credential checks.
func DefaultPolicy() *Policy {
	return &Policy{
		Limits: map[Scope][]LimitConfig{
			ScopeGlobal: {
				{Window: time.Minute, Max: 300},
			},
			ScopeRead: {
				{Window: time.Minute, Max: 200},
			},
			ScopeWrite: {
				{Window: time.Minute, Max: 30},
				{Window: time.Hour, Max: 500},
			},
			ScopeAuth: {
				{Window: time.Minute, Max: 10},
				{Window: time.Hour, Max: 100},
			},
		},
	}
}

// PolicyBuilder assembles a Policy one limit at a time.
type PolicyBuilder struct {
	policy *Policy
}

// NewPolicyBuilder starts an empty policy.
func NewPolicyBuilder() *PolicyBuilder {
	return &PolicyBuilder{policy: &Policy{Limits: make(map[Scope][]LimitConfig)}}
}

// AddLimit allows at most maxRequests per window for scope.
func (b *PolicyBuilder) AddLimit(scope Scope, maxRequests int64, window time.Duration) *PolicyBuilder {
	b.policy.Limits[scope] = append(b.policy.Limits[scope], LimitConfig{Window: window, Max: maxRequests})

	return b
}

// Build returns the assembled policy.
func (b *PolicyBuilder) Build() *Policy {
	return b.policy
}
