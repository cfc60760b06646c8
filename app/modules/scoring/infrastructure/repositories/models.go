package scoringdb

import (
	"time"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// AuditEvent is one immutable row of the append-only scoring log.
type AuditEvent struct {
	ID                  string             `json:"id"`
	Timestamp           time.Time          `json:"timestamp"`
	ActorID             sharedtypes.UserID `json:"actor_id"`
	Target              sharedtypes.Target `json:"target"`
	TargetID            string             `json:"target_id"`
	BasePoints          int                `json:"base_points"`
	Weighted            bool               `json:"weighted"`
	HousePointsAwarded  int                `json:"house_points_awarded"`
	PlayerPointsAwarded int                `json:"player_points_awarded"`
	Reason              string             `json:"reason"`
}

// ScoreData is the persisted scores document. PlayerOrder records the order
// players first scored; leaderboard ties break on it so tie order stays
// deterministic across loads.
type ScoreData struct {
	Houses      map[sharedtypes.HouseKey]int `json:"houses"`
	Players     map[sharedtypes.UserID]int   `json:"players"`
	PlayerOrder []sharedtypes.UserID         `json:"player_order"`
	Events      []AuditEvent                 `json:"events"`
}

// DefaultScoreData is the self-heal payload for an absent or corrupt scores
// document.
func DefaultScoreData() ScoreData {
	return ScoreData{
		Houses: map[sharedtypes.HouseKey]int{
			sharedtypes.HouseVeridian: 0,
			sharedtypes.FeatheredHost: 0,
		},
		Players: map[sharedtypes.UserID]int{},
	}
}

// PlayerTotal is one leaderboard row.
type PlayerTotal struct {
	UserID sharedtypes.UserID `json:"user_id"`
	Total  int                `json:"total"`
}

// Application is the atomic unit a scoring operation applies to the ledger:
// optional player delta, optional house delta, and exactly one audit event.
type Application struct {
	PlayerID    sharedtypes.UserID
	PlayerDelta int

	House      sharedtypes.HouseKey
	HouseDelta int

	Event AuditEvent
}
