package logging

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// Logger wraps slog.Logger and keeps the secret sanitizer reachable so
// callers can scrub strings headed for errors or API responses too.
type Logger struct {
	*slog.Logger
	sanitizer *Sanitizer
}

// Config configures the logger. Format is one of auto, text, json;
// auto picks the pretty handler on a TTY and JSON otherwise.
type Config struct {
	Level     string
	Format    string
	Output    io.Writer
	AddSource bool
}

func DefaultConfig() Config {
	return Config{Level: "info", Format: "auto", Output: os.Stdout}
}

// New creates a logger from cfg. All output passes through the
// sanitizing handler regardless of format.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	sanitizer := NewSanitizer()
	inner := buildHandler(cfg, parseLevel(cfg.Level))
	return &Logger{
		Logger:    slog.New(NewSanitizingHandler(inner, sanitizer)),
		sanitizer: sanitizer,
	}
}

// NewNop creates a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		sanitizer: NewSanitizer(),
	}
}

func buildHandler(cfg Config, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource}
	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(cfg.Output, opts)
	case "text":
		return slog.NewTextHandler(cfg.Output, opts)
	default:
		if isTerminal(cfg.Output) {
			return NewPrettyHandler(cfg.Output, level)
		}
		return slog.NewJSONHandler(cfg.Output, opts)
	}
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (l *Logger) derive(sl *slog.Logger) *Logger {
	return &Logger{Logger: sl, sanitizer: l.sanitizer}
}

// WithSession returns a logger with assessment session context.
func (l *Logger) WithSession(sessionID string) *Logger {
	return l.derive(l.Logger.With("session_id", sessionID))
}

// WithProvider returns a logger with LLM provider context.
func (l *Logger) WithProvider(name string) *Logger {
	return l.derive(l.Logger.With("provider", name))
}

// WithReport returns a logger with report context.
func (l *Logger) WithReport(reportID string) *Logger {
	return l.derive(l.Logger.With("report_id", reportID))
}

// With returns a logger with custom fields.
func (l *Logger) With(args ...any) *Logger {
	return l.derive(l.Logger.With(args...))
}

// Sanitize scrubs known secret shapes from input.
func (l *Logger) Sanitize(input string) string {
	return l.sanitizer.Sanitize(input)
}

// Sanitizer returns the sanitizer used by this logger.
func (l *Logger) Sanitizer() *Sanitizer {
	return l.sanitizer
}
