package core

import (
	"strings"
	"time"
)

// AnswerHistoryEntry records one answered question. Entries are append-only:
// the controller creates one per submission and never mutates it afterwards.
type AnswerHistoryEntry struct {
	Question   string      `json:"question"`
	Answer     AnswerValue `json:"answer"`
	PhaseName  string      `json:"phaseName,omitempty"`
	AnswerType AnswerKind  `json:"answerType,omitempty"`
	Options    []string    `json:"options,omitempty"`
	Reasoning  string      `json:"reasoningText,omitempty"`
	AnsweredAt time.Time   `json:"answeredAt"`
}

// NextQuestion is the structured object every provider must return from a
// next-question call. Done is the explicit termination signal: a response
// with Done=false and an empty question text is malformed, never an implicit
// "complete".
type NextQuestion struct {
	Done       bool       `json:"done"`
	Question   string     `json:"question,omitempty"`
	AnswerType AnswerKind `json:"answerType,omitempty"`
	Options    []string   `json:"options,omitempty"`
	PhaseName  string     `json:"phaseName,omitempty"`
	Reasoning  string     `json:"reasoning,omitempty"`
}

// Validate enforces the provider contract on a next-question response.
func (q *NextQuestion) Validate() error {
	if q.Done {
		return nil
	}
	if strings.TrimSpace(q.Question) == "" {
		return ErrBadResponse("EMPTY_QUESTION", "next-question response has no question text and done=false")
	}
	switch q.AnswerType {
	case AnswerText, AnswerScale:
	case AnswerChoice, AnswerMultiChoice:
		if len(q.Options) == 0 {
			return ErrBadResponse("MISSING_OPTIONS", "choice question offers no options")
		}
	default:
		return ErrBadResponse("UNKNOWN_ANSWER_TYPE", "next-question response has unrecognized answerType "+string(q.AnswerType))
	}
	return nil
}

// LeadInfo identifies the person taking the assessment.
type LeadInfo struct {
	Name     string `json:"name,omitempty"`
	Company  string `json:"company,omitempty"`
	Industry string `json:"industry,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Report is one completed assessment's scored markdown report. Immutable
// after creation; the document store is its system of record.
type Report struct {
	ID        string               `json:"id"`
	Markdown  string               `json:"markdown"`
	Tier      Tier                 `json:"tier"`
	Lead      LeadInfo             `json:"lead"`
	History   []AnswerHistoryEntry `json:"questionAnswerHistory"`
	CreatedAt time.Time            `json:"createdAt"`
}
