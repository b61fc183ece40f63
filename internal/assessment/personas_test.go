package assessment

import (
	"testing"

	"github.com/avenirlabs/scorecard-ai/internal/core"
)

func TestCoerceAnswer_Choice(t *testing.T) {
	q := &core.NextQuestion{AnswerType: core.AnswerChoice, Options: []string{"Never", "Monthly", "Weekly"}}

	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"Weekly", "Weekly", true},
		{"weekly", "Weekly", true},
		{`"Monthly".`, "Monthly", true},
		{"We ship monthly at best", "Monthly", true},
		{"Quarterly", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		a, ok := coerceAnswer(tt.raw, q)
		if ok != tt.ok {
			t.Errorf("coerceAnswer(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if ok && a.ChoiceValue() != tt.want {
			t.Errorf("coerceAnswer(%q) = %q, want %q", tt.raw, a.ChoiceValue(), tt.want)
		}
	}
}

func TestCoerceAnswer_MultiChoice(t *testing.T) {
	q := &core.NextQuestion{AnswerType: core.AnswerMultiChoice, Options: []string{"Chatbots", "Forecasting", "Search"}}

	a, ok := coerceAnswer("chatbots, Search, chatbots", q)
	if !ok {
		t.Fatal("coerceAnswer rejected a valid multi-choice reply")
	}
	got := a.MultiValue()
	if len(got) != 2 || got[0] != "Chatbots" || got[1] != "Search" {
		t.Errorf("MultiValue = %v, want [Chatbots Search]", got)
	}
}

func TestCoerceAnswer_Scale(t *testing.T) {
	q := &core.NextQuestion{AnswerType: core.AnswerScale}

	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"4", 4, true},
		{"4 - we review quarterly", 4, true},
		{"about a 3", 3, true},
		{"9", 0, false},
		{"none", 0, false},
	}
	for _, tt := range tests {
		a, ok := coerceAnswer(tt.raw, q)
		if ok != tt.ok {
			t.Errorf("coerceAnswer(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if ok && a.ScaleValue() != tt.want {
			t.Errorf("coerceAnswer(%q) = %d, want %d", tt.raw, a.ScaleValue(), tt.want)
		}
	}
}

func TestFallbackAnswer_PersonaBands(t *testing.T) {
	scale := &core.NextQuestion{AnswerType: core.AnswerScale}
	if got := fallbackAnswer(core.TierDabbler, scale).ScaleValue(); got != 2 {
		t.Errorf("Dabbler scale = %d, want 2", got)
	}
	if got := fallbackAnswer(core.TierLeader, scale).ScaleValue(); got != 5 {
		t.Errorf("Leader scale = %d, want 5", got)
	}

	choice := &core.NextQuestion{AnswerType: core.AnswerChoice, Options: []string{"None", "Some", "Extensive"}}
	if got := fallbackAnswer(core.TierDabbler, choice).ChoiceValue(); got != "None" {
		t.Errorf("Dabbler choice = %q, want None", got)
	}
	if got := fallbackAnswer(core.TierEnabler, choice).ChoiceValue(); got != "Some" {
		t.Errorf("Enabler choice = %q, want Some", got)
	}
	if got := fallbackAnswer(core.TierLeader, choice).ChoiceValue(); got != "Extensive" {
		t.Errorf("Leader choice = %q, want Extensive", got)
	}
}

func TestFallbackAnswer_TextValidates(t *testing.T) {
	q := &core.NextQuestion{AnswerType: core.AnswerText}
	for _, persona := range core.Tiers() {
		a := fallbackAnswer(persona, q)
		if err := a.Validate(nil); err != nil {
			t.Errorf("fallback text for %s invalid: %v", persona, err)
		}
	}
}
