package report

import (
	"strings"
	"testing"
)

const sampleReport = `## Overall Tier: Leader

Your organization leads its peers.

## Key Findings

**Strengths:**
- Dedicated AI team
- Measured ROI

**Weaknesses:**
- Vendor lock-in risk

## Strategic Action Plan

1. **Expand the platform.** Move two more workflows onto it.
2. Review vendor contracts.
`

func TestExtractSections_Basic(t *testing.T) {
	m := ExtractSections(sampleReport)

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (titles: %v)", m.Len(), m.Titles())
	}

	want := []string{SectionOverallTier, SectionKeyFindings, SectionActionPlan}
	for i, title := range m.Titles() {
		if title != want[i] {
			t.Errorf("Titles()[%d] = %q, want %q", i, title, want[i])
		}
	}

	tier, ok := m.Get(SectionOverallTier)
	if !ok {
		t.Fatal("Overall Tier section missing")
	}
	if !strings.Contains(tier.Raw, "## Overall Tier: Leader") {
		t.Errorf("Raw lost the heading line: %q", tier.Raw)
	}
	if tier.Body != "Your organization leads its peers." {
		t.Errorf("Body = %q", tier.Body)
	}
}

func TestExtractSections_OverallTierNormalization(t *testing.T) {
	variants := []string{
		"## Overall Tier: Enabler\n\nbody",
		"## Overall tier\n\nEnabler, roughly.",
		"##   overall TIER assessment\n\nbody",
	}
	for _, md := range variants {
		m := ExtractSections(md)
		if _, ok := m.Get(SectionOverallTier); !ok {
			t.Errorf("variant %q did not normalize to %q (titles: %v)", md, SectionOverallTier, m.Titles())
		}
	}
}

func TestExtractSections_NoHeadings(t *testing.T) {
	m := ExtractSections("Just a paragraph.\n\nAnother one.")
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	if body := m.Body(SectionKeyFindings); body != "" {
		t.Errorf("Body(missing) = %q, want empty", body)
	}
}

func TestExtractSections_RepeatedHeadingConcatenates(t *testing.T) {
	md := "## Key Findings\n\nfirst block\n\n## Key Findings\n\nsecond block\n"
	m := ExtractSections(md)

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	body := m.Body(SectionKeyFindings)
	if !strings.Contains(body, "first block") || !strings.Contains(body, "second block") {
		t.Errorf("concatenated body = %q", body)
	}
}

func TestExtractSections_WhitespaceBodyKeepsKey(t *testing.T) {
	md := "## Benchmarks\n   \n## Learning Path\n\ncontent"
	m := ExtractSections(md)

	s, ok := m.Get(SectionBenchmarks)
	if !ok {
		t.Fatal("whitespace-only section dropped; want empty-string value")
	}
	if strings.TrimSpace(s.Body) != "" {
		t.Errorf("Body = %q, want whitespace only", s.Body)
	}
}

func TestExtractSections_TrailingContentBelongsToLastHeading(t *testing.T) {
	md := "## Detailed Analysis\n\nanalysis text\n\ntrailing paragraph with no further heading"
	m := ExtractSections(md)

	body := m.Body(SectionDetailedAnalysis)
	if !strings.Contains(body, "trailing paragraph") {
		t.Errorf("trailing content lost: %q", body)
	}
}

func TestExtractSections_RoundTrip(t *testing.T) {
	m := ExtractSections(sampleReport)

	normalize := func(s string) string {
		var lines []string
		for _, line := range strings.Split(s, "\n") {
			line = strings.TrimRight(line, " \t")
			if line != "" {
				lines = append(lines, line)
			}
		}
		return strings.Join(lines, "\n")
	}

	if got, want := normalize(m.Concat()), normalize(sampleReport); got != want {
		t.Errorf("Concat() round trip mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestMissingRequired(t *testing.T) {
	m := ExtractSections(sampleReport)
	missing := MissingRequired(m)

	want := map[string]bool{
		SectionDetailedAnalysis: true,
		SectionBenchmarks:       true,
		SectionLearningPath:     true,
	}
	if len(missing) != len(want) {
		t.Fatalf("MissingRequired = %v", missing)
	}
	for _, title := range missing {
		if !want[title] {
			t.Errorf("unexpected missing title %q", title)
		}
	}

	full := ExtractSections(MockReport("x").Markdown)
	if m := MissingRequired(full); len(m) != 0 {
		t.Errorf("mock report missing sections: %v", m)
	}
}
