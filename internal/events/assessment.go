package events

import "github.com/avenirlabs/scorecard-ai/internal/core"

// Assessment event types.
const (
	TypeQuestionAsked    = "question_asked"
	TypeAnswerRecorded   = "answer_recorded"
	TypePhaseChanged     = "phase_changed"
	TypeAutoStarted      = "autocomplete_started"
	TypeAutoStopped      = "autocomplete_stopped"
	TypeReportStarted    = "report_started"
	TypeReportReady      = "report_ready"
	TypeAssessmentFailed = "assessment_failed"
)

// QuestionAsked fires when the provider returns the next question.
type QuestionAsked struct {
	BaseEvent
	Question  string `json:"question"`
	PhaseName string `json:"phase_name,omitempty"`
	Number    int    `json:"number"`
}

// NewQuestionAsked creates a question event.
func NewQuestionAsked(sessionID string, q *core.NextQuestion, number int) QuestionAsked {
	return QuestionAsked{
		BaseEvent: NewBaseEvent(TypeQuestionAsked, sessionID),
		Question:  q.Question,
		PhaseName: q.PhaseName,
		Number:    number,
	}
}

// AnswerRecorded fires when an answer is appended to the history.
type AnswerRecorded struct {
	BaseEvent
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Count    int    `json:"count"`
}

// NewAnswerRecorded creates an answer event.
func NewAnswerRecorded(sessionID string, entry core.AnswerHistoryEntry, count int) AnswerRecorded {
	return AnswerRecorded{
		BaseEvent: NewBaseEvent(TypeAnswerRecorded, sessionID),
		Question:  entry.Question,
		Answer:    entry.Answer.Display(),
		Count:     count,
	}
}

// PhaseChanged fires when the provider assigns a new phase name.
type PhaseChanged struct {
	BaseEvent
	PhaseName string `json:"phase_name"`
}

// NewPhaseChanged creates a phase event.
func NewPhaseChanged(sessionID, phaseName string) PhaseChanged {
	return PhaseChanged{
		BaseEvent: NewBaseEvent(TypePhaseChanged, sessionID),
		PhaseName: phaseName,
	}
}

// AutoComplete fires on auto-complete start and stop.
type AutoComplete struct {
	BaseEvent
	Persona string `json:"persona,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// NewAutoStarted creates an autocomplete start event.
func NewAutoStarted(sessionID string, persona core.Tier) AutoComplete {
	return AutoComplete{
		BaseEvent: NewBaseEvent(TypeAutoStarted, sessionID),
		Persona:   persona.String(),
	}
}

// NewAutoStopped creates an autocomplete stop event.
func NewAutoStopped(sessionID, reason string) AutoComplete {
	return AutoComplete{
		BaseEvent: NewBaseEvent(TypeAutoStopped, sessionID),
		Reason:    reason,
	}
}

// ReportProgress fires on report generation start, completion and failure.
type ReportProgress struct {
	BaseEvent
	ReportID string `json:"report_id,omitempty"`
	Tier     string `json:"tier,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewReportStarted creates a report-started event.
func NewReportStarted(sessionID string) ReportProgress {
	return ReportProgress{BaseEvent: NewBaseEvent(TypeReportStarted, sessionID)}
}

// NewReportReady creates a report-ready event.
func NewReportReady(sessionID, reportID string, tier core.Tier) ReportProgress {
	return ReportProgress{
		BaseEvent: NewBaseEvent(TypeReportReady, sessionID),
		ReportID:  reportID,
		Tier:      tier.String(),
	}
}

// NewAssessmentFailed creates a failure event.
func NewAssessmentFailed(sessionID string, err error) ReportProgress {
	return ReportProgress{
		BaseEvent: NewBaseEvent(TypeAssessmentFailed, sessionID),
		Error:     err.Error(),
	}
}
