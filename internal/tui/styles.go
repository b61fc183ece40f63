package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#7c3aed")
	ColorSuccess   = lipgloss.Color("#22c55e")
	ColorError     = lipgloss.Color("#ef4444")
	ColorText      = lipgloss.Color("#e2e8f0")
	ColorTextMuted = lipgloss.Color("#64748b")
	ColorHighlight = lipgloss.Color("#312e81")
)

var (
	// TitleStyle is for the header line.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// PhaseStyle labels the current question phase.
	PhaseStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true)

	// QuestionStyle is for question text.
	QuestionStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	// OptionStyle is for unselected options.
	OptionStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			PaddingLeft(2)

	// SelectedOptionStyle is for the option under the cursor.
	SelectedOptionStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorHighlight).
				Bold(true).
				PaddingLeft(2)

	// HelpStyle is for the footer key hints.
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)

	// TierStyle highlights the final tier.
	TierStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	// ErrorStyle is for terminal failures.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(1, 2)

	// BoxStyle frames the finished-report summary.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)
)
