package logging

import "regexp"

const redactedPlaceholder = "[REDACTED]"

// secretPatterns covers the key formats of the providers this tool
// talks to plus generic bearer/api-key/secret shapes.
var secretPatterns = compilePatterns(
	`sk-ant-[a-zA-Z0-9-]{40,}`, // Anthropic
	`sk-[A-Za-z0-9]{20,}`,      // OpenAI
	`gsk_[A-Za-z0-9]{20,}`,     // Groq
	`AIza[a-zA-Z0-9_-]{35}`,    // Google AI
	`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`,
	`(?i)api[_-]?key["'\s:=]+[a-zA-Z0-9_-]{20,}`,
	`(?i)secret["'\s:=]+[a-zA-Z0-9_-]{20,}`,
	`(?i)token["'\s:=]+[a-zA-Z0-9_-]{20,}`,
)

func compilePatterns(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		compiled[i] = regexp.MustCompile(e)
	}
	return compiled
}

// Sanitizer redacts credential-shaped substrings from text.
type Sanitizer struct {
	patterns []*regexp.Regexp
	redacted string
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{patterns: secretPatterns, redacted: redactedPlaceholder}
}

// Sanitize replaces every match of the known secret patterns.
func (s *Sanitizer) Sanitize(input string) string {
	out := input
	for _, p := range s.patterns {
		out = p.ReplaceAllString(out, s.redacted)
	}
	return out
}

// SanitizeMap redacts string values in a map, descending into nested maps.
func (s *Sanitizer) SanitizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case string:
			out[k] = s.Sanitize(val)
		case map[string]any:
			out[k] = s.SanitizeMap(val)
		default:
			out[k] = v
		}
	}
	return out
}

// AddPattern registers an extra redaction pattern.
func (s *Sanitizer) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	// copy-on-grow so the shared default slice stays untouched
	s.patterns = append(s.patterns[:len(s.patterns):len(s.patterns)], re)
	return nil
}

// SetRedactedPlaceholder overrides the replacement text.
func (s *Sanitizer) SetRedactedPlaceholder(placeholder string) {
	s.redacted = placeholder
}
