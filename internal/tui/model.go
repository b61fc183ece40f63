// Package tui implements the interactive terminal assessment.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avenirlabs/scorecard-ai/internal/assessment"
	"github.com/avenirlabs/scorecard-ai/internal/core"
	"github.com/avenirlabs/scorecard-ai/internal/session"
)

type phase int

const (
	phaseWorking phase = iota // waiting on a provider call
	phaseQuestion
	phaseDone
	phaseFailed
)

// Messages produced by the async provider commands.
type (
	sessionMsg struct{ sess *session.Session }
	reportMsg  struct{ report *core.Report }
	errMsg     struct{ err error }
)

// Model runs one assessment end to end: question loop, then report.
type Model struct {
	controller *assessment.Controller
	lead       core.LeadInfo

	phase     phase
	sess      *session.Session
	input     textinput.Model
	spin      spinner.Model
	cursor    int
	checked   map[int]bool
	report    *core.Report
	err       error
	answered  int
	width     int
}

// New creates a TUI model for a fresh assessment.
func New(controller *assessment.Controller, lead core.LeadInfo) Model {
	ti := textinput.New()
	ti.Placeholder = "type your answer"
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		controller: controller,
		lead:       lead,
		phase:      phaseWorking,
		input:      ti,
		spin:       sp,
		checked:    make(map[int]bool),
	}
}

// Run starts the program and blocks until the assessment ends. It returns
// the finished report when one was generated.
func Run(controller *assessment.Controller, lead core.LeadInfo) (*core.Report, error) {
	final, err := tea.NewProgram(New(controller, lead)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// Init kicks off the session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.startCmd())
}

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		sess, err := m.controller.Start(context.Background(), m.lead)
		if err != nil {
			return errMsg{err}
		}
		return sessionMsg{sess}
	}
}

func (m Model) submitCmd(answer core.AnswerValue) tea.Cmd {
	sessionID := m.sess.ID
	return func() tea.Msg {
		sess, err := m.controller.Submit(context.Background(), sessionID, answer)
		if err != nil {
			return errMsg{err}
		}
		return sessionMsg{sess}
	}
}

func (m Model) reportCmd() tea.Cmd {
	sessionID := m.sess.ID
	return func() tea.Msg {
		rep, err := m.controller.GenerateReport(context.Background(), sessionID)
		if err != nil {
			return errMsg{err}
		}
		return reportMsg{rep}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionMsg:
		m.sess = msg.sess
		m.answered = len(msg.sess.History)
		if msg.sess.State == session.StateGeneratingReport {
			m.phase = phaseWorking
			return m, m.reportCmd()
		}
		m.phase = phaseQuestion
		m.cursor = 0
		m.checked = make(map[int]bool)
		m.input.SetValue("")
		return m, nil

	case reportMsg:
		m.report = msg.report
		m.phase = phaseDone
		return m, tea.Quit

	case errMsg:
		m.err = msg.err
		m.phase = phaseFailed
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || (m.phase != phaseQuestion && msg.String() == "q") {
		return m, tea.Quit
	}
	if m.phase != phaseQuestion || m.sess == nil || m.sess.Pending == nil {
		return m, nil
	}

	pending := m.sess.Pending
	switch pending.AnswerType {
	case core.AnswerText:
		if msg.Type == tea.KeyEnter {
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.phase = phaseWorking
			return m, m.submitCmd(core.Text(text))
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case core.AnswerScale:
		return m.handleListKey(msg, core.ScaleMax, func() (core.AnswerValue, bool) {
			return core.Scale(m.cursor + core.ScaleMin), true
		})

	case core.AnswerChoice:
		return m.handleListKey(msg, len(pending.Options), func() (core.AnswerValue, bool) {
			return core.Choice(pending.Options[m.cursor]), true
		})

	case core.AnswerMultiChoice:
		if msg.String() == " " {
			m.checked[m.cursor] = !m.checked[m.cursor]
			return m, nil
		}
		return m.handleListKey(msg, len(pending.Options), func() (core.AnswerValue, bool) {
			var picked []string
			for i, opt := range pending.Options {
				if m.checked[i] {
					picked = append(picked, opt)
				}
			}
			if len(picked) == 0 {
				return core.AnswerValue{}, false
			}
			return core.MultiChoice(picked), true
		})
	}
	return m, nil
}

// handleListKey moves the cursor over n rows and submits on enter.
func (m Model) handleListKey(msg tea.KeyMsg, n int, build func() (core.AnswerValue, bool)) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "enter":
		answer, ok := build()
		if !ok {
			return m, nil
		}
		m.phase = phaseWorking
		return m, m.submitCmd(answer)
	}
	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("AI Maturity Assessment"))
	b.WriteString("\n")

	switch m.phase {
	case phaseWorking:
		if m.report == nil && m.sess == nil {
			fmt.Fprintf(&b, "%s starting assessment...\n", m.spin.View())
		} else if m.sess != nil && m.sess.State == session.StateGeneratingReport {
			fmt.Fprintf(&b, "%s generating your report...\n", m.spin.View())
		} else {
			fmt.Fprintf(&b, "%s thinking...\n", m.spin.View())
		}

	case phaseQuestion:
		b.WriteString(m.viewQuestion())

	case phaseDone:
		summary := fmt.Sprintf("Assessment complete after %d questions.\n\nTier: %s\nReport: %s",
			m.answered, TierStyle.Render(m.report.Tier.String()), m.report.ID)
		b.WriteString(BoxStyle.Render(summary))
		b.WriteString("\n")

	case phaseFailed:
		b.WriteString(ErrorStyle.Render("assessment failed: " + m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewQuestion() string {
	pending := m.sess.Pending
	var b strings.Builder

	if pending.PhaseName != "" {
		b.WriteString(PhaseStyle.Render(pending.PhaseName))
		b.WriteString("  ")
	}
	b.WriteString(HelpStyle.Render(fmt.Sprintf("question %d", m.answered+1)))
	b.WriteString("\n")
	b.WriteString(QuestionStyle.Render(pending.Question))
	b.WriteString("\n")

	switch pending.AnswerType {
	case core.AnswerText:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("enter to submit • ctrl+c to quit"))

	case core.AnswerScale:
		for i := core.ScaleMin; i <= core.ScaleMax; i++ {
			b.WriteString(m.renderRow(i-core.ScaleMin, fmt.Sprintf("%d", i), false))
		}
		b.WriteString(HelpStyle.Render("↑/↓ to choose • enter to submit"))

	case core.AnswerChoice:
		for i, opt := range pending.Options {
			b.WriteString(m.renderRow(i, opt, false))
		}
		b.WriteString(HelpStyle.Render("↑/↓ to choose • enter to submit"))

	case core.AnswerMultiChoice:
		for i, opt := range pending.Options {
			b.WriteString(m.renderRow(i, opt, true))
		}
		b.WriteString(HelpStyle.Render("space to toggle • enter to submit"))
	}
	return b.String()
}

func (m Model) renderRow(i int, label string, checkbox bool) string {
	if checkbox {
		mark := "[ ]"
		if m.checked[i] {
			mark = "[x]"
		}
		label = mark + " " + label
	}
	if i == m.cursor {
		return SelectedOptionStyle.Render("> "+label) + "\n"
	}
	return OptionStyle.Render("  "+label) + "\n"
}
