// Package seasonevents defines the season module's event topics and
// payloads.
package seasonevents

import (
	"time"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// Topics published by the season module.
const (
	StageSolvedTopic = "season.stage.solved"
)

// StageSolvedPayload is emitted when a house solves the current stage. The
// season state machine never touches the score ledger itself; subscribers
// turn PointsAwarded into a ledger update.
type StageSolvedPayload struct {
	SeasonID      int                  `json:"season_id"`
	StageID       int                  `json:"stage_id"`
	StageName     string               `json:"stage_name"`
	UserID        sharedtypes.UserID   `json:"user_id"`
	House         sharedtypes.HouseKey `json:"house"`
	SolvePosition int                  `json:"solve_position"`
	PointsAwarded int                  `json:"points_awarded"`
	Timestamp     time.Time            `json:"timestamp"`
}
