package core

import "strings"

// Tier is the maturity classification an assessment produces.
type Tier string

const (
	TierDabbler Tier = "Dabbler"
	TierEnabler Tier = "Enabler"
	TierLeader  Tier = "Leader"

	// TierUnknown is the sentinel for "no tier could be determined".
	// Callers render a neutral state for it; it is not an error.
	TierUnknown Tier = "Unknown"
)

// Tiers lists the known tiers in ascending maturity order.
func Tiers() []Tier {
	return []Tier{TierDabbler, TierEnabler, TierLeader}
}

// ParseTier matches a string against the known tiers, case-insensitively.
// Unrecognized input yields TierUnknown.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dabbler":
		return TierDabbler
	case "enabler":
		return TierEnabler
	case "leader":
		return TierLeader
	default:
		return TierUnknown
	}
}

// Known reports whether t is one of the three assessment tiers.
func (t Tier) Known() bool {
	return t == TierDabbler || t == TierEnabler || t == TierLeader
}

func (t Tier) String() string {
	return string(t)
}
