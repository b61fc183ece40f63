// Package provider implements the ordered fallback chain over the configured
// LLM backends. The manager is constructed explicitly and injected into the
// assessment controller; there is no package-level singleton.
package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/avenirlabs/scorecard-ai/internal/core"
	"github.com/avenirlabs/scorecard-ai/internal/logging"
)

// Manager selects a working provider and retries generation calls down the
// chain. The policy is deliberately simple: linear order, no backoff, no
// circuit breaker, and never a second attempt against the same provider
// within one call.
type Manager struct {
	providers []core.Provider
	logger    *logging.Logger

	mu      sync.Mutex
	current int
}

// Option configures the manager.
type Option func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(logger *logging.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a manager over an ordered provider list. The order is
// the fallback order.
func NewManager(providers []core.Provider, opts ...Option) (*Manager, error) {
	if len(providers) == 0 {
		return nil, core.ErrValidation("NO_PROVIDERS", "at least one provider must be configured")
	}
	m := &Manager{
		providers: providers,
		logger:    logging.NewNop(),
		current:   -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Initialize probes the providers in order and selects the first one whose
// availability check succeeds. All probes failing is fatal to the assessment
// flow: without a backend the question loop cannot proceed.
func (m *Manager) Initialize(ctx context.Context) error {
	for i, p := range m.providers {
		if err := p.Ping(ctx); err != nil {
			m.logger.Warn("provider probe failed", "provider", p.Name(), "error", err)
			continue
		}
		m.mu.Lock()
		m.current = i
		m.mu.Unlock()
		m.logger.Info("provider selected", "provider", p.Name())
		return nil
	}
	return core.ErrExhausted("no providers available")
}

// Current returns the name of the selected provider, or "" before
// initialization.
func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current < 0 {
		return ""
	}
	return m.providers[m.current].Name()
}

// Names returns the configured provider names in fallback order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return names
}

// SetProvider overrides the current provider by name.
func (m *Manager) SetProvider(name string) error {
	for i, p := range m.providers {
		if p.Name() == name {
			m.mu.Lock()
			m.current = i
			m.mu.Unlock()
			return nil
		}
	}
	return core.ErrNotFound("provider", name)
}

// GenerateNextQuestion invokes the current provider, falling back down the
// chain on failure.
func (m *Manager) GenerateNextQuestion(ctx context.Context, systemPrompt, userPrompt string) (*core.NextQuestion, error) {
	var next *core.NextQuestion
	err := m.withFallback(ctx, "next-question", func(ctx context.Context, p core.Provider) error {
		q, err := p.GenerateNextQuestion(ctx, systemPrompt, userPrompt)
		if err != nil {
			return err
		}
		next = q
		return nil
	})
	return next, err
}

// GenerateReport invokes the current provider, falling back down the chain
// on failure.
func (m *Manager) GenerateReport(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var markdown string
	err := m.withFallback(ctx, "report", func(ctx context.Context, p core.Provider) error {
		md, err := p.GenerateReport(ctx, systemPrompt, userPrompt)
		if err != nil {
			return err
		}
		markdown = md
		return nil
	})
	return markdown, err
}

// PingAll probes every provider concurrently. Used by the doctor and status
// surfaces, never by the generation path.
func (m *Manager) PingAll(ctx context.Context) map[string]error {
	results := make(map[string]error, len(m.providers))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range m.providers {
		g.Go(func() error {
			err := p.Ping(ctx)
			mu.Lock()
			results[p.Name()] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// withFallback runs call against the current provider, then the remaining
// providers in list order, skipping the current one. The first success
// becomes the new current provider. Every provider failing raises one
// aggregate error carrying the per-provider causes.
func (m *Manager) withFallback(ctx context.Context, op string, call func(context.Context, core.Provider) error) error {
	m.mu.Lock()
	start := m.current
	m.mu.Unlock()
	if start < 0 {
		return core.ErrState("NOT_INITIALIZED", "provider manager is not initialized")
	}

	tried := make([]string, 0, len(m.providers))
	var failures []string

	attempt := func(idx int) error {
		p := m.providers[idx]
		tried = append(tried, p.Name())
		err := call(ctx, p)
		if err == nil {
			m.mu.Lock()
			m.current = idx
			m.mu.Unlock()
			return nil
		}
		switch core.CategoryOf(err) {
		case core.ErrCatBadResponse:
			m.logger.Warn("provider returned malformed response",
				"op", op, "provider", p.Name(), "error", err)
		default:
			m.logger.Debug("provider unavailable, trying next",
				"op", op, "provider", p.Name(), "error", err)
		}
		failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))
		return err
	}

	if err := attempt(start); err == nil {
		return nil
	}
	for i := range m.providers {
		if i == start {
			continue
		}
		if err := attempt(i); err == nil {
			return nil
		}
	}

	m.logger.Error("all providers failed", "op", op, "tried", tried)
	return core.ErrExhausted(fmt.Sprintf("all providers failed for %s", op)).
		WithDetail("failures", strings.Join(failures, "; "))
}
