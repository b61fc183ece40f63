package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Matching(t *testing.T) {
	err := ErrProviderUnavailable("groq", "connection refused")

	if CategoryOf(err) != ErrCatUnavailable {
		t.Errorf("CategoryOf = %q, want %q", CategoryOf(err), ErrCatUnavailable)
	}
	if !errors.Is(err, &DomainError{Category: ErrCatUnavailable}) {
		t.Error("errors.Is with category-only target = false, want true")
	}
	if errors.Is(err, &DomainError{Category: ErrCatBadResponse}) {
		t.Error("errors.Is with wrong category = true, want false")
	}
}

func TestDomainError_WrapsThroughFmt(t *testing.T) {
	inner := ErrNotFound("report", "abc-123")
	wrapped := fmt.Errorf("loading report view: %w", inner)

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound(wrapped) = false, want true")
	}

	var de *DomainError
	if !errors.As(wrapped, &de) {
		t.Fatal("errors.As failed to find DomainError")
	}
	if de.Details["id"] != "abc-123" {
		t.Errorf("Details[id] = %v, want abc-123", de.Details["id"])
	}
}

func TestDomainError_CauseChain(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := ErrBadResponse("PARSE_JSON", "content is not JSON").WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if CategoryOf(errors.New("plain")) != ErrCatInternal {
		t.Error("plain errors should map to internal category")
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"Leader", TierLeader},
		{" enabler ", TierEnabler},
		{"DABBLER", TierDabbler},
		{"Expert", TierUnknown},
		{"", TierUnknown},
	}
	for _, tt := range tests {
		if got := ParseTier(tt.in); got != tt.want {
			t.Errorf("ParseTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
