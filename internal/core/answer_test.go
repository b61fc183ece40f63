package core

import (
	"encoding/json"
	"testing"
)

func TestAnswerValue_Kinds(t *testing.T) {
	tests := []struct {
		name    string
		answer  AnswerValue
		kind    AnswerKind
		display string
	}{
		{"text", Text("We use ChatGPT ad hoc"), AnswerText, "We use ChatGPT ad hoc"},
		{"choice", Choice("Weekly"), AnswerChoice, "Weekly"},
		{"multi", MultiChoice([]string{"Marketing", "Sales"}), AnswerMultiChoice, "Marketing, Sales"},
		{"scale", Scale(4), AnswerScale, "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.answer.Kind(); got != tt.kind {
				t.Errorf("Kind() = %q, want %q", got, tt.kind)
			}
			if got := tt.answer.Display(); got != tt.display {
				t.Errorf("Display() = %q, want %q", got, tt.display)
			}
		})
	}
}

func TestAnswerValue_Validate(t *testing.T) {
	options := []string{"Daily", "Weekly", "Never"}

	if err := Choice("Weekly").Validate(options); err != nil {
		t.Errorf("Validate(offered option) = %v, want nil", err)
	}
	if err := Choice("Hourly").Validate(options); err == nil {
		t.Error("Validate(unoffered option) = nil, want error")
	}
	if err := MultiChoice([]string{"Daily", "Never"}).Validate(options); err != nil {
		t.Errorf("Validate(multi, offered) = %v, want nil", err)
	}
	if err := MultiChoice(nil).Validate(options); err == nil {
		t.Error("Validate(empty multi) = nil, want error")
	}
	if err := Scale(3).Validate(nil); err != nil {
		t.Errorf("Validate(scale 3) = %v, want nil", err)
	}
	if err := Scale(6).Validate(nil); err == nil {
		t.Error("Validate(scale 6) = nil, want error")
	}
	if err := Text("  ").Validate(nil); err == nil {
		t.Error("Validate(blank text) = nil, want error")
	}
	var zero AnswerValue
	if err := zero.Validate(nil); err == nil {
		t.Error("Validate(zero value) = nil, want error")
	}
}

func TestAnswerValue_JSONRoundTrip(t *testing.T) {
	answers := []AnswerValue{
		Text("free text"),
		Choice("Option B"),
		MultiChoice([]string{"a", "b"}),
		Scale(5),
	}

	for _, in := range answers {
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", in, err)
		}
		var out AnswerValue
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", data, err)
		}
		if out.Kind() != in.Kind() || out.Display() != in.Display() {
			t.Errorf("round trip = %v/%q, want %v/%q", out.Kind(), out.Display(), in.Kind(), in.Display())
		}
	}
}

func TestAnswerValue_UnmarshalScaleString(t *testing.T) {
	// The legacy funnel serialized scale answers as numeric strings.
	var a AnswerValue
	if err := json.Unmarshal([]byte(`{"type":"scale","value":"4"}`), &a); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if a.Kind() != AnswerScale || a.ScaleValue() != 4 {
		t.Errorf("got %v/%d, want scale/4", a.Kind(), a.ScaleValue())
	}
}

func TestNextQuestion_Validate(t *testing.T) {
	done := &NextQuestion{Done: true}
	if err := done.Validate(); err != nil {
		t.Errorf("Validate(done) = %v, want nil", err)
	}

	empty := &NextQuestion{}
	if err := empty.Validate(); err == nil {
		t.Error("Validate(no question, done=false) = nil, want error")
	}

	noOpts := &NextQuestion{Question: "Pick one", AnswerType: AnswerChoice}
	if err := noOpts.Validate(); err == nil {
		t.Error("Validate(choice without options) = nil, want error")
	}

	ok := &NextQuestion{Question: "Rate it", AnswerType: AnswerScale, PhaseName: "Discovery"}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate(scale question) = %v, want nil", err)
	}
}
