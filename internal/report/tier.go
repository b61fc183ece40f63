package report

import (
	"regexp"
	"strings"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

var tierLineRe = regexp.MustCompile(`(?i)overall\s+tier\s*:?\s*([A-Za-z]+)`)

// ExtractTier resolves the maturity tier from a report.
//
// It first matches "Overall Tier: <word>" against the Overall Tier section's
// heading and first line. When the structured pattern is absent it falls back
// to scanning the whole blob for the first tier keyword by document position.
// Nothing matching yields core.TierUnknown; callers render a neutral state.
func ExtractTier(markdown string) core.Tier {
	sections := ExtractSections(markdown)
	if s, ok := sections.Get(SectionOverallTier); ok {
		head := s.Raw
		if idx := strings.Index(head, "\n\n"); idx >= 0 {
			head = head[:idx]
		}
		if match := tierLineRe.FindStringSubmatch(head); match != nil {
			if tier := core.ParseTier(match[1]); tier.Known() {
				return tier
			}
		}
		// The section exists but its first line has no structured tier;
		// try the section body before scanning the whole document.
		if tier := scanKeywords(s.Body); tier.Known() {
			return tier
		}
	}
	return scanKeywords(markdown)
}

func scanKeywords(text string) core.Tier {
	lower := strings.ToLower(text)
	best := core.TierUnknown
	bestIdx := -1
	for _, tier := range core.Tiers() {
		idx := strings.Index(lower, strings.ToLower(tier.String()))
		if idx >= 0 && (bestIdx == -1 || idx < bestIdx) {
			best = tier
			bestIdx = idx
		}
	}
	return best
}
