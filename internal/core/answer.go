package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnswerKind tags the concrete shape of an AnswerValue.
type AnswerKind string

const (
	AnswerText        AnswerKind = "text"
	AnswerChoice      AnswerKind = "radio"
	AnswerMultiChoice AnswerKind = "checkbox"
	AnswerScale       AnswerKind = "scale"
)

// ScaleMin and ScaleMax bound scale answers.
const (
	ScaleMin = 1
	ScaleMax = 5
)

// AnswerValue is a tagged union over the answer shapes a question can take.
// Exactly one of the payload fields is meaningful, selected by kind.
type AnswerValue struct {
	kind   AnswerKind
	text   string
	choice string
	multi  []string
	scale  int
}

// Text creates a free-text answer.
func Text(s string) AnswerValue {
	return AnswerValue{kind: AnswerText, text: s}
}

// Choice creates a single-choice answer.
func Choice(s string) AnswerValue {
	return AnswerValue{kind: AnswerChoice, choice: s}
}

// MultiChoice creates a multiple-choice answer.
func MultiChoice(opts []string) AnswerValue {
	cp := make([]string, len(opts))
	copy(cp, opts)
	return AnswerValue{kind: AnswerMultiChoice, multi: cp}
}

// Scale creates a 1-5 scale answer.
func Scale(n int) AnswerValue {
	return AnswerValue{kind: AnswerScale, scale: n}
}

// Kind returns the union tag.
func (a AnswerValue) Kind() AnswerKind { return a.kind }

// IsZero reports whether the value was never set.
func (a AnswerValue) IsZero() bool { return a.kind == "" }

// TextValue returns the free-text payload. Valid only for AnswerText.
func (a AnswerValue) TextValue() string { return a.text }

// ChoiceValue returns the selected option. Valid only for AnswerChoice.
func (a AnswerValue) ChoiceValue() string { return a.choice }

// MultiValue returns the selected options. Valid only for AnswerMultiChoice.
func (a AnswerValue) MultiValue() []string { return a.multi }

// ScaleValue returns the numeric rating. Valid only for AnswerScale.
func (a AnswerValue) ScaleValue() int { return a.scale }

// Display renders the answer as the string that goes into prompts and logs.
func (a AnswerValue) Display() string {
	switch a.kind {
	case AnswerText:
		return a.text
	case AnswerChoice:
		return a.choice
	case AnswerMultiChoice:
		return strings.Join(a.multi, ", ")
	case AnswerScale:
		return strconv.Itoa(a.scale)
	default:
		return ""
	}
}

// Validate checks the answer against its kind and, when options are offered,
// against the offered option set.
func (a AnswerValue) Validate(options []string) error {
	switch a.kind {
	case AnswerText:
		if strings.TrimSpace(a.text) == "" {
			return ErrValidation("EMPTY_ANSWER", "text answer must not be empty")
		}
	case AnswerChoice:
		if a.choice == "" {
			return ErrValidation("EMPTY_ANSWER", "choice answer must not be empty")
		}
		if len(options) > 0 && !containsOption(options, a.choice) {
			return ErrValidation("UNKNOWN_OPTION", fmt.Sprintf("%q is not an offered option", a.choice))
		}
	case AnswerMultiChoice:
		if len(a.multi) == 0 {
			return ErrValidation("EMPTY_ANSWER", "at least one option must be selected")
		}
		for _, sel := range a.multi {
			if len(options) > 0 && !containsOption(options, sel) {
				return ErrValidation("UNKNOWN_OPTION", fmt.Sprintf("%q is not an offered option", sel))
			}
		}
	case AnswerScale:
		if a.scale < ScaleMin || a.scale > ScaleMax {
			return ErrValidation("SCALE_RANGE", fmt.Sprintf("scale answer must be between %d and %d", ScaleMin, ScaleMax))
		}
	default:
		return ErrValidation("UNKNOWN_KIND", "answer has no recognized kind")
	}
	return nil
}

func containsOption(options []string, sel string) bool {
	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(sel)) {
			return true
		}
	}
	return false
}

// answerWire is the JSON form: {"type": "...", "value": ...}.
type answerWire struct {
	Type  AnswerKind      `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON implements json.Marshaler.
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	var payload any
	switch a.kind {
	case AnswerText:
		payload = a.text
	case AnswerChoice:
		payload = a.choice
	case AnswerMultiChoice:
		payload = a.multi
	case AnswerScale:
		payload = a.scale
	default:
		return nil, fmt.Errorf("marshaling answer: unknown kind %q", a.kind)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(answerWire{Type: a.kind, Value: raw})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var w answerWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case AnswerText:
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return fmt.Errorf("unmarshaling text answer: %w", err)
		}
		*a = Text(s)
	case AnswerChoice:
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return fmt.Errorf("unmarshaling choice answer: %w", err)
		}
		*a = Choice(s)
	case AnswerMultiChoice:
		var opts []string
		if err := json.Unmarshal(w.Value, &opts); err != nil {
			return fmt.Errorf("unmarshaling multi-choice answer: %w", err)
		}
		*a = MultiChoice(opts)
	case AnswerScale:
		// Scale values arrive as numbers, but the legacy funnel sent them
		// as numeric strings. Accept both.
		var n int
		if err := json.Unmarshal(w.Value, &n); err != nil {
			var s string
			if serr := json.Unmarshal(w.Value, &s); serr != nil {
				return fmt.Errorf("unmarshaling scale answer: %w", err)
			}
			parsed, perr := strconv.Atoi(strings.TrimSpace(s))
			if perr != nil {
				return fmt.Errorf("unmarshaling scale answer %q: %w", s, perr)
			}
			n = parsed
		}
		*a = Scale(n)
	default:
		return fmt.Errorf("unmarshaling answer: unknown type %q", w.Type)
	}
	return nil
}
