package scoringdb

import (
	"context"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// Repository owns the scores document. Apply is the only mutation and runs
// atomically with respect to every other call on the repository.
type Repository interface {
	Apply(ctx context.Context, app Application) (houseTotals map[sharedtypes.HouseKey]int, err error)
	HouseTotals(ctx context.Context) map[sharedtypes.HouseKey]int
	PlayerTotal(ctx context.Context, userID sharedtypes.UserID) int
	TopPlayers(ctx context.Context, limit int) []PlayerTotal
	Events(ctx context.Context) []AuditEvent
}
