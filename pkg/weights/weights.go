// Package weights holds the pure numeric functions behind house-size
// weighting: the size-based multiplier and configurable integer rounding.
package weights

import (
	"math"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// ComputeMultiplier returns the scaling factor applied to a house-level
// award: the larger house's member count divided by the target house's
// count, both floor-clamped at 1 so an empty house never divides by zero.
// The minority house is scaled up proportionally; the majority house gets
// a multiplier of 1.
func ComputeMultiplier(house sharedtypes.HouseKey, veridianCount, featheredCount int) float64 {
	largest := veridianCount
	if featheredCount > largest {
		largest = featheredCount
	}
	if largest < 1 {
		largest = 1
	}

	this := featheredCount
	if house == sharedtypes.HouseVeridian {
		this = veridianCount
	}
	if this < 1 {
		this = 1
	}

	return float64(largest) / float64(this)
}

// ApplyRounding maps a weighted float award back to an integer point value.
// Round ties resolve half away from zero.
func ApplyRounding(value float64, mode sharedtypes.RoundingMode) int {
	switch mode {
	case sharedtypes.RoundingFloor:
		return int(math.Floor(value))
	case sharedtypes.RoundingCeil:
		return int(math.Ceil(value))
	default:
		return int(math.Round(value))
	}
}
