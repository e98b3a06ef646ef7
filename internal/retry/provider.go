package retry

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-mobile-messaging/internal/config"
)

// Names of the predefined policies.
const (
	PolicyDefault  = "default"
	PolicyOneRetry = "one-retry"
	PolicyNoRetry  = "no-retry"
)

// OverrideSource supplies persisted overrides of the default policy. A
// missing value leaves the configured one in place.
type OverrideSource interface {
	MaxRetriesOverride(ctx context.Context) (int, bool)
	BackoffMultiplierOverride(ctx context.Context) (float64, bool)
}

// Provider hands out named policies. The default policy is built from
// configuration; persisted overrides win over it.
type Provider struct {
	base      Policy
	overrides OverrideSource

	mu    sync.RWMutex
	named map[string]Policy
}

// NewProvider builds a provider from cfg. overrides may be nil.
func NewProvider(cfg config.Retry, overrides OverrideSource) *Provider {
	maxRetries := config.DefaultMaxRetries
	if cfg.MaxRetries != nil {
		maxRetries = *cfg.MaxRetries
	}

	return &Provider{
		base:      NewPolicy(maxRetries, cfg.BackoffMultiplier, cfg.MinBackoff, cfg.MaxBackoff),
		overrides: overrides,
		named:     make(map[string]Policy),
	}
}

// Default returns the default policy with persisted overrides applied.
func (p *Provider) Default(ctx context.Context) Policy {
	policy := p.base
	if p.overrides == nil {
		return policy
	}

	if maxRetries, ok := p.overrides.MaxRetriesOverride(ctx); ok {
		policy.MaxRetries = maxRetries
	}
	if multiplier, ok := p.overrides.BackoffMultiplierOverride(ctx); ok {
		policy.BackoffMultiplier = multiplier
	}

	return policy.normalize()
}

// OneRetry returns the default policy limited to a single retry.
func (p *Provider) OneRetry(ctx context.Context) Policy {
	policy := p.Default(ctx)
	policy.MaxRetries = 1
	return policy
}

// NoRetry returns a single-attempt policy.
func (p *Provider) NoRetry() Policy {
	return NoRetry()
}

// Register adds or replaces a named policy.
func (p *Provider) Register(name string, policy Policy) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.named[name] = policy.normalize()
}

// Named returns the policy registered under name. The predefined names map
// to Default, OneRetry and NoRetry; unknown names fall back to Default.
func (p *Provider) Named(ctx context.Context, name string) Policy {
	p.mu.RLock()
	policy, ok := p.named[name]
	p.mu.RUnlock()
	if ok {
		return policy
	}

	switch name {
	case PolicyOneRetry:
		return p.OneRetry(ctx)
	case PolicyNoRetry:
		return p.NoRetry()
	default:
		return p.Default(ctx)
	}
}
