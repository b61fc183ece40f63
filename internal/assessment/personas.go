package assessment

import (
	"context"
	"strconv"
	"strings"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

// scaleBands maps a persona to the 1-5 value it self-reports.
var scaleBands = map[core.Tier]int{
	core.TierDabbler: 2,
	core.TierEnabler: 3,
	core.TierLeader:  5,
}

// synthesizeAnswer produces a persona-voiced answer for the pending question.
// The LLM reply is coerced into the question's answer kind; when the reply
// cannot be coerced (or the call fails), a deterministic persona answer is
// substituted so an auto-complete run never stalls on one bad completion.
func (c *Controller) synthesizeAnswer(ctx context.Context, persona core.Tier, q *core.NextQuestion) core.AnswerValue {
	raw, err := c.gen.GenerateReport(ctx, personaSystemPrompt, buildPersonaUserPrompt(persona, q))
	if err != nil {
		c.logger.Warn("persona answer synthesis failed, using fallback",
			"persona", persona, "error", err)
		return fallbackAnswer(persona, q)
	}
	if a, ok := coerceAnswer(strings.TrimSpace(raw), q); ok {
		return a
	}
	c.logger.Warn("persona answer did not fit the question, using fallback",
		"persona", persona, "answer_type", q.AnswerType)
	return fallbackAnswer(persona, q)
}

// coerceAnswer fits a free-text reply to the question's answer kind.
func coerceAnswer(raw string, q *core.NextQuestion) (core.AnswerValue, bool) {
	if raw == "" {
		return core.AnswerValue{}, false
	}
	switch q.AnswerType {
	case core.AnswerChoice:
		if opt, ok := matchOption(raw, q.Options); ok {
			return core.Choice(opt), true
		}
		return core.AnswerValue{}, false
	case core.AnswerMultiChoice:
		var picked []string
		for _, part := range strings.Split(raw, ",") {
			if opt, ok := matchOption(part, q.Options); ok && !contains(picked, opt) {
				picked = append(picked, opt)
			}
		}
		if len(picked) == 0 {
			return core.AnswerValue{}, false
		}
		return core.MultiChoice(picked), true
	case core.AnswerScale:
		// Tolerate replies like "4 - we review models quarterly".
		field := strings.FieldsFunc(raw, func(r rune) bool {
			return r < '0' || r > '9'
		})
		if len(field) == 0 {
			return core.AnswerValue{}, false
		}
		n, err := strconv.Atoi(field[0])
		if err != nil || n < core.ScaleMin || n > core.ScaleMax {
			return core.AnswerValue{}, false
		}
		return core.Scale(n), true
	default:
		return core.Text(raw), true
	}
}

// fallbackAnswer synthesizes an answer without the LLM.
func fallbackAnswer(persona core.Tier, q *core.NextQuestion) core.AnswerValue {
	switch q.AnswerType {
	case core.AnswerChoice:
		return core.Choice(q.Options[optionIndex(persona, len(q.Options))])
	case core.AnswerMultiChoice:
		idx := optionIndex(persona, len(q.Options))
		return core.MultiChoice(q.Options[:idx+1])
	case core.AnswerScale:
		return core.Scale(scaleBands[persona])
	default:
		return core.Text(fallbackText(persona))
	}
}

// optionIndex places a persona along the option list, assuming options run
// from least to most mature as the question prompt requests.
func optionIndex(persona core.Tier, n int) int {
	if n == 0 {
		return 0
	}
	var pos float64
	switch persona {
	case core.TierDabbler:
		pos = 0
	case core.TierLeader:
		pos = 1
	default:
		pos = 0.5
	}
	idx := int(pos * float64(n-1))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

func fallbackText(persona core.Tier) string {
	switch persona {
	case core.TierDabbler:
		return "A few of us try AI tools on our own, but there is no plan or budget for it."
	case core.TierLeader:
		return "We run AI in production with dedicated teams, governance and measured ROI."
	default:
		return "We have a couple of AI projects live and a small team, but adoption is uneven."
	}
}

func matchOption(raw string, options []string) (string, bool) {
	needle := strings.ToLower(strings.Trim(strings.TrimSpace(raw), `"'.`))
	for _, opt := range options {
		if strings.ToLower(opt) == needle {
			return opt, true
		}
	}
	// Second pass: the reply may embed the option in a sentence.
	for _, opt := range options {
		if strings.Contains(needle, strings.ToLower(opt)) {
			return opt, true
		}
	}
	return "", false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
