package report

import (
	"regexp"
	"strings"
)

// Action is one card of the Strategic Action Plan.
type Action struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

var actionItemRe = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`)

// A bolded lead phrase, optionally ending in a colon, becomes the card title.
var boldLeadRe = regexp.MustCompile(`^\*\*([^*]+?)\*\*:?\s*`)

// ParseActions splits a Strategic Action Plan body into numbered action
// cards. A body with no numbered items yields one untitled card holding the
// whole text, or nothing when the body is blank.
func ParseActions(body string) []Action {
	locs := actionItemRe.FindAllStringIndex(body, -1)
	if len(locs) == 0 {
		text := strings.TrimSpace(body)
		if text == "" {
			return nil
		}
		return []Action{splitTitle(text)}
	}

	actions := make([]Action, 0, len(locs))
	for i, loc := range locs {
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		item := strings.TrimSpace(body[loc[1]:end])
		if item == "" {
			continue
		}
		actions = append(actions, splitTitle(item))
	}
	return actions
}

func splitTitle(item string) Action {
	if match := boldLeadRe.FindStringSubmatch(item); match != nil {
		return Action{
			Title:  strings.TrimSuffix(strings.TrimSpace(match[1]), ":"),
			Detail: cleanInline(item[len(match[0]):]),
		}
	}
	return Action{Detail: cleanInline(item)}
}
