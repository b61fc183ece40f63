package assessment

import (
	"fmt"
	"strings"

	"github.com/avenirlabs/scorecard-ai/internal/core"
	"github.com/avenirlabs/scorecard-ai/internal/report"
)

const questionSystemPrompt = `You are an AI-maturity assessment interviewer. You ask one question at a
time to gauge how far an organization has come in adopting AI: strategy,
data readiness, tooling, team skills and governance. Adapt each question to
the answers given so far instead of following a fixed script.

Respond with a single JSON object and nothing else:
{
  "done": false,
  "question": "the question text",
  "answerType": "text" | "radio" | "checkbox" | "scale",
  "options": ["..."],
  "phaseName": "short phase label",
  "reasoning": "one sentence on why you ask this next"
}

Rules:
- "radio" and "checkbox" questions MUST include 2-5 options.
- "scale" questions are answered 1-5; do not include options.
- Set "done": true (and omit the other fields) once you have enough signal
  to score the organization. Never pad with filler questions.`

const reportSystemPrompt = `You are an AI-maturity analyst. Given an interview transcript, write a
markdown assessment report. The report MUST contain exactly these level-2
headings, in this order, each with substantive content:

## Overall Tier
## Key Findings
## Strategic Action Plan
## Detailed Analysis
## Benchmarks
## Learning Path

"Overall Tier" starts with a line of the form "Overall Tier: <tier>" where
<tier> is one of Dabbler, Enabler or Leader. "Key Findings" lists bullet
strengths, then a "**Weaknesses:**" marker followed by bullet weaknesses.
"Strategic Action Plan" is a numbered list where each item opens with a
**bold title**. Output raw markdown only, no code fences, no preamble.`

const personaSystemPrompt = `You are role-playing a person answering an AI-maturity questionnaire on
behalf of their organization. Stay in character for the persona described
and answer only the question asked. Reply with the answer text alone: no
quotes, no restating the question, no explanation.`

// personaVoices characterizes each tier for answer synthesis.
var personaVoices = map[core.Tier]string{
	core.TierDabbler: "an organization experimenting informally with AI: a few individuals use chat tools, there is no budget, no policy and no measurable outcomes",
	core.TierEnabler: "an organization with real but uneven AI adoption: a couple of production use cases, a small data team, early governance, executive interest but no coherent strategy",
	core.TierLeader:  "an organization where AI is a board-level priority: dedicated teams, production ML systems, model governance, measured ROI and ongoing staff enablement",
}

// formatHistory serializes the transcript for a prompt, one block per entry.
func formatHistory(history []core.AnswerHistoryEntry) string {
	if len(history) == 0 {
		return "(no questions answered yet)"
	}
	var b strings.Builder
	for i, e := range history {
		fmt.Fprintf(&b, "Q%d", i+1)
		if e.PhaseName != "" {
			fmt.Fprintf(&b, " [%s]", e.PhaseName)
		}
		fmt.Fprintf(&b, ": %s\n", e.Question)
		if len(e.Options) > 0 {
			fmt.Fprintf(&b, "Options: %s\n", strings.Join(e.Options, " | "))
		}
		fmt.Fprintf(&b, "A%d (%s): %s\n\n", i+1, e.AnswerType, e.Answer.Display())
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildQuestionUserPrompt(lead core.LeadInfo, history []core.AnswerHistoryEntry, maxQuestions int) string {
	var b strings.Builder
	b.WriteString("Organization context:\n")
	if lead.Company != "" {
		fmt.Fprintf(&b, "- Company: %s\n", lead.Company)
	}
	if lead.Industry != "" {
		fmt.Fprintf(&b, "- Industry: %s\n", lead.Industry)
	}
	if lead.Name != "" {
		fmt.Fprintf(&b, "- Respondent: %s\n", lead.Name)
	}
	fmt.Fprintf(&b, "\nQuestions asked so far: %d of at most %d.\n\n", len(history), maxQuestions)
	b.WriteString("Transcript:\n")
	b.WriteString(formatHistory(history))
	b.WriteString("\n\nProduce the next question, or done:true if the picture is complete.")
	return b.String()
}

func buildReportUserPrompt(lead core.LeadInfo, history []core.AnswerHistoryEntry) string {
	var b strings.Builder
	b.WriteString("Write the assessment report for this interview.\n\n")
	if lead.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", lead.Company)
	}
	if lead.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", lead.Industry)
	}
	fmt.Fprintf(&b, "\nRequired headings: %s\n\n", strings.Join(report.RequiredSections(), ", "))
	b.WriteString("Transcript:\n")
	b.WriteString(formatHistory(history))
	return b.String()
}

func buildPersonaUserPrompt(persona core.Tier, q *core.NextQuestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Persona: you speak for %s.\n\n", personaVoices[persona])
	fmt.Fprintf(&b, "Question: %s\n", q.Question)
	switch q.AnswerType {
	case core.AnswerChoice:
		fmt.Fprintf(&b, "Pick exactly one of: %s\n", strings.Join(q.Options, " | "))
	case core.AnswerMultiChoice:
		fmt.Fprintf(&b, "Pick one or more of (comma-separated): %s\n", strings.Join(q.Options, " | "))
	case core.AnswerScale:
		b.WriteString("Answer with a single number from 1 to 5.\n")
	default:
		b.WriteString("Answer in one or two sentences.\n")
	}
	return b.String()
}
