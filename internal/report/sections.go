// Package report is the single home for report markdown parsing. The upstream
// LLM emits one loosely structured markdown blob; everything that slices it
// into sections, tiers, findings or action items lives here so the renderers
// cannot drift apart.
package report

import (
	"regexp"
	"strings"
)

// Canonical section titles the report prompt requires. SectionOverallTier is
// the only one extraction guarantees best-effort normalization for; the rest
// are looked up verbatim.
const (
	SectionOverallTier      = "Overall Tier"
	SectionKeyFindings      = "Key Findings"
	SectionActionPlan       = "Strategic Action Plan"
	SectionDetailedAnalysis = "Detailed Analysis"
	SectionBenchmarks       = "Benchmarks"
	SectionLearningPath     = "Learning Path"
)

// RequiredSections lists the headings the report generation prompt demands.
func RequiredSections() []string {
	return []string{
		SectionOverallTier,
		SectionKeyFindings,
		SectionActionPlan,
		SectionDetailedAnalysis,
		SectionBenchmarks,
		SectionLearningPath,
	}
}

// Section is one heading-delimited block of the report.
type Section struct {
	// Title is the normalized map key.
	Title string
	// Raw is the original heading line plus body, so concatenating sections
	// in order reconstructs the document.
	Raw string
	// Body is the content below the heading, trimmed of outer blank lines.
	Body string
}

// SectionMap maps heading text to its section, preserving document order.
type SectionMap struct {
	order    []string
	sections map[string]*Section
}

// Get returns the section for a title.
func (m *SectionMap) Get(title string) (*Section, bool) {
	s, ok := m.sections[title]
	return s, ok
}

// Body returns a section's body, or "" when the section is absent. Renderers
// treat "" as "content not available", not as an error.
func (m *SectionMap) Body(title string) string {
	if s, ok := m.sections[title]; ok {
		return s.Body
	}
	return ""
}

// Titles returns the section titles in document order.
func (m *SectionMap) Titles() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of distinct sections.
func (m *SectionMap) Len() int {
	return len(m.order)
}

// Concat rebuilds the sectioned portion of the document in original order.
func (m *SectionMap) Concat() string {
	parts := make([]string, 0, len(m.order))
	for _, title := range m.order {
		parts = append(parts, m.sections[title].Raw)
	}
	return strings.Join(parts, "\n")
}

var headingRe = regexp.MustCompile(`(?m)^##\s+?`)

// ExtractSections splits a markdown report on level-2 headings.
//
// Rules, matching the behavior every renderer depends on:
//   - a blob with no "##" headings yields an empty map;
//   - heading text is the "##"-stripped, whitespace-trimmed line;
//   - any heading starting (case-insensitively) with "overall tier" is
//     normalized to the literal key "Overall Tier", because the model writes
//     "## Overall Tier: Enabler" one day and "## Overall tier" the next;
//   - a repeated heading concatenates bodies instead of overwriting, since
//     the model occasionally emits the same heading twice;
//   - content before the first heading is ignored; trailing content belongs
//     to the last heading; a whitespace-only body is an empty-string value,
//     not a missing key.
func ExtractSections(markdown string) *SectionMap {
	m := &SectionMap{sections: make(map[string]*Section)}

	locs := headingRe.FindAllStringIndex(markdown, -1)
	if len(locs) == 0 {
		return m
	}

	for i, loc := range locs {
		end := len(markdown)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := markdown[loc[0]:end]

		headingLine, body, _ := strings.Cut(block, "\n")
		title := normalizeTitle(headingLine)
		if title == "" {
			continue
		}

		raw := strings.TrimRight(block, "\n")
		body = strings.Trim(body, "\n")

		if existing, ok := m.sections[title]; ok {
			existing.Raw += "\n" + raw
			if body != "" {
				if existing.Body != "" {
					existing.Body += "\n"
				}
				existing.Body += body
			}
			continue
		}

		m.order = append(m.order, title)
		m.sections[title] = &Section{Title: title, Raw: raw, Body: body}
	}

	return m
}

func normalizeTitle(headingLine string) string {
	title := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(headingLine), "##"))
	if strings.HasPrefix(strings.ToLower(title), "overall tier") {
		return SectionOverallTier
	}
	return title
}

// MissingRequired returns the required headings absent from the map, used to
// validate a freshly generated report before accepting it.
func MissingRequired(m *SectionMap) []string {
	var missing []string
	for _, title := range RequiredSections() {
		if _, ok := m.Get(title); !ok {
			missing = append(missing, title)
		}
	}
	return missing
}
