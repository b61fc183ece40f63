package report

import (
	"regexp"
	"strings"
)

// Findings is the Key Findings section split into its two lists.
type Findings struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// The model writes the divider as "**Weaknesses:**", "**Weaknesses**" or a
// bare "Weaknesses:" depending on its mood.
var weaknessMarkerRe = regexp.MustCompile(`(?im)^\s*(?:\*\*)?\s*weaknesses\s*:?\s*(?:\*\*)?\s*:?\s*$`)

var strengthMarkerRe = regexp.MustCompile(`(?im)^\s*(?:\*\*)?\s*strengths\s*:?\s*(?:\*\*)?\s*:?\s*$`)

// ParseFindings splits a Key Findings body into strengths and weaknesses.
// Everything before the weaknesses marker is strengths; without a marker the
// whole body parses as strengths and the weakness list stays empty.
func ParseFindings(body string) Findings {
	strengthPart := body
	weaknessPart := ""

	if loc := weaknessMarkerRe.FindStringIndex(body); loc != nil {
		strengthPart = body[:loc[0]]
		weaknessPart = body[loc[1]:]
	}

	// A leading "**Strengths:**" marker is decoration, not an item.
	strengthPart = strengthMarkerRe.ReplaceAllString(strengthPart, "")

	return Findings{
		Strengths:  parseBullets(strengthPart),
		Weaknesses: parseBullets(weaknessPart),
	}
}

var bulletRe = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+(.*)$`)

// parseBullets extracts list items from markdown, accepting "-", "*", "+"
// and numbered markers. Lines that are not list items extend the previous
// item (soft wraps), or are ignored when no item is open.
func parseBullets(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if match := bulletRe.FindStringSubmatch(line); match != nil {
			if item := cleanInline(match[1]); item != "" {
				items = append(items, item)
			}
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(items) == 0 {
			continue
		}
		items[len(items)-1] += " " + cleanInline(trimmed)
	}
	return items
}

// cleanInline strips bold/italic markers the renderer has no use for.
func cleanInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return strings.TrimSpace(s)
}
