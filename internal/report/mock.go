package report

import (
	"time"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

// MockReport returns the fixed fallback document the HTML view serves when
// the store is unreachable or the requested id does not exist. Keeping the
// page renderable beats a blank error screen in the funnel.
func MockReport(id string) *core.Report {
	return &core.Report{
		ID:        id,
		Markdown:  mockMarkdown,
		Tier:      core.TierEnabler,
		Lead:      core.LeadInfo{Name: "Sample Lead", Company: "Example Co", Industry: "Retail"},
		CreatedAt: time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
	}
}

const mockMarkdown = `## Overall Tier: Enabler

Your organization applies AI in several workflows but has not yet built the
governance and measurement practices of market leaders.

## Key Findings

**Strengths:**
- Marketing team experiments with generative tools weekly
- Leadership sponsors a budget line for AI initiatives
- Customer data is centralized and accessible

**Weaknesses:**
- No documented AI usage policy
- Results are not measured against business KPIs
- Skills are concentrated in a single team

## Strategic Action Plan

1. **Publish an AI usage policy.** Draft a one-page policy covering approved
   tools, data handling, and review steps.
2. **Instrument two pilot workflows.** Pick the two highest-volume uses and
   attach a KPI to each before expanding further.
3. **Run a cross-team enablement session.** Spread the existing know-how
   beyond the current power users.

## Detailed Analysis

Adoption is real but uneven. The teams closest to customer content move
fastest, while operations and finance have no exposure yet.

## Benchmarks

Compared with similar-sized companies in your industry, you sit slightly
above the median on experimentation and below it on governance.

## Learning Path

Start with the prompting fundamentals course, then the measurement module.
`
