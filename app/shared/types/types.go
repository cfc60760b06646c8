package sharedtypes

import "strings"

// HouseKey identifies one of the two competing houses. There is no dynamic
// house creation; every valid key is one of the two constants below.
type HouseKey string

const (
	HouseVeridian HouseKey = "house_veridian"
	FeatheredHost HouseKey = "feathered_host"
)

// HouseKeys returns both house keys in canonical iteration order. This order
// is load-bearing: house inference for a member holding roles of both houses
// resolves to the first match in this order.
func HouseKeys() []HouseKey {
	return []HouseKey{HouseVeridian, FeatheredHost}
}

// IsValid reports whether k is one of the two known houses.
func (k HouseKey) IsValid() bool {
	return k == HouseVeridian || k == FeatheredHost
}

// DisplayName returns the human-facing house name.
func (k HouseKey) DisplayName() string {
	switch k {
	case HouseVeridian:
		return "House Veridian"
	case FeatheredHost:
		return "Feathered Host"
	}
	return string(k)
}

// UserID is an external platform user identifier.
type UserID string

// RoleID is an external platform role identifier.
type RoleID string

// ChannelID is an external platform channel identifier.
type ChannelID string

// MessageID is an external platform message identifier.
type MessageID string

// Target selects what a scoring operation applies to.
type Target string

const (
	TargetHouse  Target = "house"
	TargetPlayer Target = "player"
)

// RoundingMode selects how weighted house points are rounded to an integer.
type RoundingMode string

const (
	RoundingRound RoundingMode = "round"
	RoundingFloor RoundingMode = "floor"
	RoundingCeil  RoundingMode = "ceil"
)

// ParseRoundingMode normalizes s into a RoundingMode, reporting whether it
// named a known mode.
func ParseRoundingMode(s string) (RoundingMode, bool) {
	switch RoundingMode(strings.ToLower(strings.TrimSpace(s))) {
	case RoundingRound:
		return RoundingRound, true
	case RoundingFloor:
		return RoundingFloor, true
	case RoundingCeil:
		return RoundingCeil, true
	}
	return "", false
}

// HouseCounts carries live member counts supplied by the caller at each
// weighted scoring call. The engine never queries the platform itself.
type HouseCounts struct {
	Veridian  int `json:"house_veridian"`
	Feathered int `json:"feathered_host"`
}

// Count returns the member count for the given house.
func (c HouseCounts) Count(k HouseKey) int {
	if k == HouseVeridian {
		return c.Veridian
	}
	return c.Feathered
}

// NormalizeAnswer applies the normalization used for every solution
// comparison: lowercase and surrounding whitespace stripped.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
