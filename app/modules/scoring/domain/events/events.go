// Package scoringevents defines the score ledger's event topics and
// payloads.
package scoringevents

import (
	"time"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// Topics published by the scoring module.
const (
	ScoreUpdatedTopic = "score.updated"
)

// ScoreUpdatedPayload is emitted after every points-changing operation,
// zero-effect operations included. It mirrors the appended audit event plus
// the resulting house totals for display refreshes.
type ScoreUpdatedPayload struct {
	EventID             string                       `json:"event_id"`
	Timestamp           time.Time                    `json:"timestamp"`
	ActorID             sharedtypes.UserID           `json:"actor_id"`
	Target              sharedtypes.Target           `json:"target"`
	TargetID            string                       `json:"target_id"`
	BasePoints          int                          `json:"base_points"`
	Weighted            bool                         `json:"weighted"`
	HousePointsAwarded  int                          `json:"house_points_awarded"`
	PlayerPointsAwarded int                          `json:"player_points_awarded"`
	Reason              string                       `json:"reason"`
	HouseTotals         map[sharedtypes.HouseKey]int `json:"house_totals"`
}
