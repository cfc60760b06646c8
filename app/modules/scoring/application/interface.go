package scoringservice

import (
	"context"

	scoringdb "github.com/hearthvale/house-ledger/app/modules/scoring/infrastructure/repositories"
	"github.com/hearthvale/house-ledger/app/shared/results"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// AddPointsInput describes one scoring operation. MemberRoles and
// HouseCounts are supplied by the caller at each call site: the ledger never
// queries the chat platform itself.
type AddPointsInput struct {
	ActorID    sharedtypes.UserID `json:"actor_id"`
	Target     sharedtypes.Target `json:"target"`
	TargetID   string             `json:"target_id"`
	BasePoints int                `json:"base_points"`
	Reason     string             `json:"reason"`
	Weighted   bool               `json:"weighted"`

	// MemberRoles are the target player's current role IDs, used to infer
	// the player's house. Ignored for house targets.
	MemberRoles []sharedtypes.RoleID `json:"member_roles,omitempty"`

	// HouseCounts are the live house member counts used by weighting.
	HouseCounts sharedtypes.HouseCounts `json:"house_counts"`
}

// PointsAwarded reports the deltas actually applied, for caller display.
type PointsAwarded struct {
	PlayerPointsAwarded int                          `json:"player_points_awarded"`
	HousePointsAwarded  int                          `json:"house_points_awarded"`
	House               sharedtypes.HouseKey         `json:"house,omitempty"`
	HouseTotals         map[sharedtypes.HouseKey]int `json:"house_totals"`
}

// Failure is the domain failure payload for scoring operations.
type Failure struct {
	Reason string `json:"reason"`
}

// Result is the operation envelope used across the scoring service.
type Result = results.OperationResult[PointsAwarded, Failure]

// Service is the score ledger surface.
type Service interface {
	AddPoints(ctx context.Context, in AddPointsInput) (Result, error)
	RemovePoints(ctx context.Context, in AddPointsInput) (Result, error)
	HouseTotals(ctx context.Context) map[sharedtypes.HouseKey]int
	PlayerTotal(ctx context.Context, userID sharedtypes.UserID) int
	TopPlayers(ctx context.Context, limit int) []scoringdb.PlayerTotal
	Events(ctx context.Context) []scoringdb.AuditEvent
}
