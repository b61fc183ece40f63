package report

import (
	"reflect"
	"testing"
)

func TestParseFindings_BoldMarker(t *testing.T) {
	body := `**Strengths:**
- Dedicated AI team
- Measured ROI across campaigns

**Weaknesses:**
- Vendor lock-in risk
- No usage policy`

	f := ParseFindings(body)

	wantStrengths := []string{"Dedicated AI team", "Measured ROI across campaigns"}
	wantWeaknesses := []string{"Vendor lock-in risk", "No usage policy"}

	if !reflect.DeepEqual(f.Strengths, wantStrengths) {
		t.Errorf("Strengths = %v, want %v", f.Strengths, wantStrengths)
	}
	if !reflect.DeepEqual(f.Weaknesses, wantWeaknesses) {
		t.Errorf("Weaknesses = %v, want %v", f.Weaknesses, wantWeaknesses)
	}
}

func TestParseFindings_MarkerVariants(t *testing.T) {
	variants := []string{
		"- up\n\n**Weaknesses**\n- down",
		"- up\n\nWeaknesses:\n- down",
		"- up\n\n  **weaknesses:**  \n- down",
	}
	for _, body := range variants {
		f := ParseFindings(body)
		if len(f.Strengths) != 1 || len(f.Weaknesses) != 1 {
			t.Errorf("body %q: got %d strengths, %d weaknesses, want 1 and 1", body, len(f.Strengths), len(f.Weaknesses))
		}
	}
}

func TestParseFindings_NoMarker(t *testing.T) {
	f := ParseFindings("- only strengths here\n- and here")
	if len(f.Strengths) != 2 {
		t.Errorf("Strengths = %v, want 2 items", f.Strengths)
	}
	if len(f.Weaknesses) != 0 {
		t.Errorf("Weaknesses = %v, want none", f.Weaknesses)
	}
}

func TestParseFindings_WrappedLinesAndBold(t *testing.T) {
	body := "- **Centralized data** available to\n  every team\n\n**Weaknesses:**\n1. Training gaps"
	f := ParseFindings(body)

	if len(f.Strengths) != 1 || f.Strengths[0] != "Centralized data available to every team" {
		t.Errorf("Strengths = %v", f.Strengths)
	}
	if len(f.Weaknesses) != 1 || f.Weaknesses[0] != "Training gaps" {
		t.Errorf("Weaknesses = %v", f.Weaknesses)
	}
}

func TestParseFindings_Empty(t *testing.T) {
	f := ParseFindings("")
	if len(f.Strengths) != 0 || len(f.Weaknesses) != 0 {
		t.Errorf("empty body parsed to %v", f)
	}
}
