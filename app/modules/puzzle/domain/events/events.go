// Package puzzleevents defines the puzzle module's event topics and
// payloads.
package puzzleevents

import (
	"time"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// Topics published by the puzzle module.
const (
	HouseSolvedTopic  = "puzzle.house.solved"
	HouseExpiredTopic = "puzzle.house.expired"
)

// HouseSolvedPayload is emitted when a house solves a puzzle: the single
// global winner of an untimed puzzle, or one house's slot of a timed one.
// Subscribers turn PointsAwarded into a ledger update.
type HouseSolvedPayload struct {
	PuzzleID      string               `json:"puzzle_id"`
	Title         string               `json:"title"`
	UserID        sharedtypes.UserID   `json:"user_id"`
	House         sharedtypes.HouseKey `json:"house"`
	PointsAwarded int                  `json:"points_awarded"`
	Timed         bool                 `json:"timed"`
	Timestamp     time.Time            `json:"timestamp"`
}

// HouseExpiredPayload is emitted by the expiry sweep for each house slot
// that ran out of time unsolved.
type HouseExpiredPayload struct {
	PuzzleID  string               `json:"puzzle_id"`
	Title     string               `json:"title"`
	House     sharedtypes.HouseKey `json:"house"`
	Timestamp time.Time            `json:"timestamp"`
}
