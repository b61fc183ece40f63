// Package core defines the domain model and the ports the adapters implement.
package core

import "context"

// Provider abstracts one LLM backend. Implementations live in
// internal/adapters/llm; the fallback chain in internal/provider owns the
// ordering between them.
type Provider interface {
	// Name returns the configured provider name (e.g. "openai", "groq").
	Name() string

	// Ping probes availability with a cheap authenticated call. An error
	// means "skip this provider", not "abort the assessment".
	Ping(ctx context.Context) error

	// GenerateNextQuestion asks the backend for a JSON-formatted next
	// question and parses it. A response that is not the expected JSON
	// (an HTML error page, prose, truncated output) is a bad_response
	// error, never silently-returned garbage.
	GenerateNextQuestion(ctx context.Context, systemPrompt, userPrompt string) (*NextQuestion, error)

	// GenerateReport asks the backend for the full markdown report.
	GenerateReport(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ReportStore persists completed report documents.
type ReportStore interface {
	Save(ctx context.Context, report *Report) error
	Get(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context) ([]*Report, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
