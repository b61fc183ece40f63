package assessment

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/avenirlabs/scorecard-ai/internal/core"
	"github.com/avenirlabs/scorecard-ai/internal/events"
	"github.com/avenirlabs/scorecard-ai/internal/logging"
	"github.com/avenirlabs/scorecard-ai/internal/report"
	"github.com/avenirlabs/scorecard-ai/internal/session"
)

const (
	// DefaultMaxQuestions bounds a normal assessment run.
	DefaultMaxQuestions = 20
	// HardQuestionCap is the absolute ceiling, enforced independently of the
	// configured maximum so an auto-complete loop can never run away.
	HardQuestionCap = 30
)

// Generator produces questions and reports. *provider.Manager satisfies it.
type Generator interface {
	GenerateNextQuestion(ctx context.Context, systemPrompt, userPrompt string) (*core.NextQuestion, error)
	GenerateReport(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Controller drives the question loop: it owns the session state machine,
// answer validation, auto-complete and report generation.
type Controller struct {
	gen          Generator
	sessions     *session.Store
	reports      core.ReportStore
	bus          *events.Bus
	logger       *logging.Logger
	maxQuestions int
	hardCap      int

	mu    sync.Mutex
	stops map[string]*atomic.Bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithBus sets the event bus for progress events.
func WithBus(bus *events.Bus) Option {
	return func(c *Controller) { c.bus = bus }
}

// WithMaxQuestions overrides the configured question maximum.
func WithMaxQuestions(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxQuestions = n
		}
	}
}

// WithHardCap overrides the absolute question ceiling.
func WithHardCap(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.hardCap = n
		}
	}
}

// NewController wires the question loop to its collaborators.
func NewController(gen Generator, sessions *session.Store, reports core.ReportStore, opts ...Option) *Controller {
	c := &Controller{
		gen:          gen,
		sessions:     sessions,
		reports:      reports,
		logger:       logging.NewNop(),
		maxQuestions: DefaultMaxQuestions,
		hardCap:      HardQuestionCap,
		stops:        make(map[string]*atomic.Bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxQuestions > c.hardCap {
		c.maxQuestions = c.hardCap
	}
	return c
}

// Start creates a session and fetches the first question. A provider that
// signals done on the first call yields a session ready for report
// generation with an empty history.
func (c *Controller) Start(ctx context.Context, lead core.LeadInfo) (*session.Session, error) {
	sess := c.sessions.Create(lead)
	log := c.logger.WithSession(sess.ID)
	log.Info("assessment started", "company", lead.Company)

	q, err := c.requestNext(ctx, lead, nil)
	if err != nil {
		return nil, c.fail(sess.ID, err)
	}
	return c.applyNext(sess.ID, q, "")
}

// Submit records the answer to the pending question and advances the loop.
// All session mutation happens inside a single store update, so concurrent
// submissions to one session cannot interleave.
func (c *Controller) Submit(ctx context.Context, sessionID string, answer core.AnswerValue) (*session.Session, error) {
	var entry core.AnswerHistoryEntry
	sess, err := c.sessions.Update(sessionID, func(s *session.Session) error {
		if s.State != session.StateAwaitingAnswer || s.Pending == nil {
			return core.ErrState("NO_PENDING_QUESTION", "session has no question awaiting an answer")
		}
		pending := s.Pending
		if answer.Kind() != pending.AnswerType {
			return core.ErrValidation("ANSWER_KIND_MISMATCH",
				"answer type "+string(answer.Kind())+" does not match question type "+string(pending.AnswerType))
		}
		if err := answer.Validate(pending.Options); err != nil {
			return err
		}
		entry = core.AnswerHistoryEntry{
			Question:   pending.Question,
			Answer:     answer,
			PhaseName:  pending.PhaseName,
			AnswerType: pending.AnswerType,
			Options:    pending.Options,
			Reasoning:  pending.Reasoning,
			AnsweredAt: time.Now(),
		}
		s.History = append(s.History, entry)
		s.Pending = nil
		s.State = session.StateRequestingNext
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.publish(events.NewAnswerRecorded(sessionID, entry, len(sess.History)))

	if len(sess.History) >= c.maxQuestions {
		return c.finishQuestions(sessionID)
	}

	q, err := c.requestNext(ctx, sess.Lead, sess.History)
	if err != nil {
		return nil, c.fail(sessionID, err)
	}
	return c.applyNext(sessionID, q, entry.PhaseName)
}

// AutoComplete answers the remaining questions in the persona's voice until
// the loop terminates, Stop is called, or the context is cancelled. History
// accumulated before a failure stays on the session.
func (c *Controller) AutoComplete(ctx context.Context, sessionID string, persona core.Tier) error {
	if !persona.Known() {
		return core.ErrValidation("UNKNOWN_PERSONA", "persona must be one of Dabbler, Enabler, Leader")
	}
	sess, err := c.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if sess.State != session.StateAwaitingAnswer || sess.Pending == nil {
		return core.ErrState("NOT_ANSWERABLE", "session has no question to auto-complete")
	}

	stop := c.stopFlag(sessionID)
	stop.Store(false)
	defer c.clearStop(sessionID)

	log := c.logger.WithSession(sessionID)
	log.Info("auto-complete started", "persona", persona)
	c.publish(events.NewAutoStarted(sessionID, persona))

	for i := 0; i < c.hardCap; i++ {
		if stop.Load() {
			log.Info("auto-complete stopped")
			c.publish(events.NewAutoStopped(sessionID, "stopped"))
			return nil
		}
		if err := ctx.Err(); err != nil {
			c.publish(events.NewAutoStopped(sessionID, "cancelled"))
			return err
		}

		sess, err = c.sessions.Get(sessionID)
		if err != nil {
			return err
		}
		if sess.State != session.StateAwaitingAnswer || sess.Pending == nil {
			break
		}

		answer := c.synthesizeAnswer(ctx, persona, sess.Pending)
		if sess, err = c.Submit(ctx, sessionID, answer); err != nil {
			c.publish(events.NewAutoStopped(sessionID, "failed"))
			return err
		}
	}

	c.publish(events.NewAutoStopped(sessionID, "complete"))
	return nil
}

// Stop halts a running auto-complete loop before its next iteration. The
// in-flight provider call is not aborted.
func (c *Controller) Stop(sessionID string) {
	c.stopFlag(sessionID).Store(true)
}

// GenerateReport produces, validates and persists the report for a session
// whose questioning is complete.
func (c *Controller) GenerateReport(ctx context.Context, sessionID string) (*core.Report, error) {
	sess, err := c.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	switch sess.State {
	case session.StateGeneratingReport:
	case session.StateDone:
		return nil, core.ErrState("ALREADY_DONE", "report already generated").WithDetail("report_id", sess.ReportID)
	default:
		return nil, core.ErrState("QUESTIONS_PENDING", "assessment is not ready for report generation")
	}

	log := c.logger.WithSession(sessionID)
	c.publish(events.NewReportStarted(sessionID))

	markdown, err := c.generateValidated(ctx, sess.Lead, sess.History, log)
	if err != nil {
		return nil, c.fail(sessionID, err)
	}

	rep := &core.Report{
		ID:        uuid.NewString(),
		Markdown:  markdown,
		Tier:      report.ExtractTier(markdown),
		Lead:      sess.Lead,
		History:   sess.History,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.reports.Save(ctx, rep); err != nil {
		return nil, c.fail(sessionID, err)
	}

	if _, err := c.sessions.Update(sessionID, func(s *session.Session) error {
		s.State = session.StateDone
		s.ReportID = rep.ID
		return nil
	}); err != nil {
		return nil, err
	}

	log.WithReport(rep.ID).Info("report ready", "tier", rep.Tier, "questions", len(rep.History))
	c.publish(events.NewReportReady(sessionID, rep.ID, rep.Tier))
	return rep, nil
}

// generateValidated calls the provider and checks the report's structure
// against the required heading set, regenerating once when headings are
// missing. After the retry the report is accepted as long as its tier
// resolves.
func (c *Controller) generateValidated(ctx context.Context, lead core.LeadInfo, history []core.AnswerHistoryEntry, log *logging.Logger) (string, error) {
	userPrompt := buildReportUserPrompt(lead, history)

	markdown, err := c.gen.GenerateReport(ctx, reportSystemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	missing := report.MissingRequired(report.ExtractSections(markdown))
	if len(missing) == 0 {
		return markdown, nil
	}

	log.Warn("report missing required sections, regenerating", "missing", missing)
	retryPrompt := userPrompt + "\n\nYour previous attempt omitted these required headings: " +
		joinQuoted(missing) + ". Include every required heading this time."
	markdown, err = c.gen.GenerateReport(ctx, reportSystemPrompt, retryPrompt)
	if err != nil {
		return "", err
	}
	if !report.ExtractTier(markdown).Known() {
		return "", core.ErrBadResponse("REPORT_STRUCTURE",
			"regenerated report resolves no overall tier").
			WithDetail("missing", report.MissingRequired(report.ExtractSections(markdown)))
	}
	return markdown, nil
}

// requestNext fetches the next question, or a synthetic done signal once the
// history has hit the absolute cap.
func (c *Controller) requestNext(ctx context.Context, lead core.LeadInfo, history []core.AnswerHistoryEntry) (*core.NextQuestion, error) {
	if len(history) >= c.hardCap {
		return &core.NextQuestion{Done: true}, nil
	}
	return c.gen.GenerateNextQuestion(ctx, questionSystemPrompt,
		buildQuestionUserPrompt(lead, history, c.maxQuestions))
}

// applyNext stores a provider response on the session and emits the
// corresponding events. prevPhase is the phase of the last answered question.
func (c *Controller) applyNext(sessionID string, q *core.NextQuestion, prevPhase string) (*session.Session, error) {
	if q.Done {
		return c.finishQuestions(sessionID)
	}
	sess, err := c.sessions.Update(sessionID, func(s *session.Session) error {
		s.Pending = q
		s.State = session.StateAwaitingAnswer
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.publish(events.NewQuestionAsked(sessionID, q, len(sess.History)+1))
	if q.PhaseName != "" && q.PhaseName != prevPhase {
		c.publish(events.NewPhaseChanged(sessionID, q.PhaseName))
	}
	return sess, nil
}

// finishQuestions transitions a session out of the question loop.
func (c *Controller) finishQuestions(sessionID string) (*session.Session, error) {
	return c.sessions.Update(sessionID, func(s *session.Session) error {
		s.Pending = nil
		s.State = session.StateGeneratingReport
		return nil
	})
}

// fail marks the session failed, keeping its history, and returns err.
func (c *Controller) fail(sessionID string, err error) error {
	c.logger.WithSession(sessionID).Error("assessment failed", "error", err)
	if _, uerr := c.sessions.Update(sessionID, func(s *session.Session) error {
		s.State = session.StateFailed
		s.LastError = err.Error()
		return nil
	}); uerr != nil {
		c.logger.Warn("could not record session failure", "error", uerr)
	}
	c.publish(events.NewAssessmentFailed(sessionID, err))
	return err
}

func (c *Controller) publish(e events.Event) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

func (c *Controller) stopFlag(sessionID string) *atomic.Bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	flag, ok := c.stops[sessionID]
	if !ok {
		flag = &atomic.Bool{}
		c.stops[sessionID] = flag
	}
	return flag
}

func (c *Controller) clearStop(sessionID string) {
	c.mu.Lock()
	delete(c.stops, sessionID)
	c.mu.Unlock()
}

func joinQuoted(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += "\"" + s + "\""
	}
	return out
}
