package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for values the application cannot run
// with. It returns all problems at once rather than the first one.
func Validate(cfg *Config) error {
	var errs ValidationErrors
	add := func(field string, value any, msg string) {
		errs = append(errs, ValidationError{Field: field, Value: value, Message: msg})
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		add("log.level", cfg.Log.Level, "must be one of debug, info, warn, error")
	}
	switch cfg.Log.Format {
	case "auto", "text", "json":
	default:
		add("log.format", cfg.Log.Format, "must be one of auto, text, json")
	}

	if cfg.Server.Addr == "" {
		add("server.addr", cfg.Server.Addr, "must not be empty")
	}

	if cfg.Assessment.MaxQuestions < 1 {
		add("assessment.max_questions", cfg.Assessment.MaxQuestions, "must be at least 1")
	}
	if cfg.Assessment.HardCap < cfg.Assessment.MaxQuestions {
		add("assessment.hard_cap", cfg.Assessment.HardCap, "must not be below assessment.max_questions")
	}
	if cfg.Assessment.HardCap > 30 {
		add("assessment.hard_cap", cfg.Assessment.HardCap, "must not exceed 30")
	}

	if len(cfg.Providers) == 0 {
		add("providers", nil, "at least one provider must be configured")
	}
	seen := make(map[string]bool)
	for i, p := range cfg.Providers {
		field := fmt.Sprintf("providers[%d]", i)
		if p.Name == "" {
			add(field+".name", p.Name, "must not be empty")
		} else if seen[p.Name] {
			add(field+".name", p.Name, "duplicate provider name")
		}
		seen[p.Name] = true
		if p.Model == "" {
			add(field+".model", p.Model, "must not be empty")
		}
		if p.Timeout != "" {
			if _, err := time.ParseDuration(p.Timeout); err != nil {
				add(field+".timeout", p.Timeout, "must be a valid duration")
			}
		}
	}

	if cfg.Session.TTL != "" {
		if _, err := time.ParseDuration(cfg.Session.TTL); err != nil {
			add("session.ttl", cfg.Session.TTL, "must be a valid duration")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
