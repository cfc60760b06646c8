package seasondb

import (
	"context"
	"errors"
	"time"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// ErrStageHasSolvers rejects a solution change on a stage a house has
// already solved; the solution and point value are frozen once credit has
// been handed out.
var ErrStageHasSolvers = errors.New("stage already has solvers; advance to a new stage instead")

// Repository owns the season_state document. Every mutation is atomic with
// respect to every other call, which is what makes the submit path's
// check-then-record safe.
type Repository interface {
	SetStageSolution(ctx context.Context, solution string, points int) error
	Submit(ctx context.Context, userID sharedtypes.UserID, house sharedtypes.HouseKey, answer string, now time.Time) (SubmitOutcome, error)
	AdvanceStage(ctx context.Context) (seasonID, stageID int, err error)
	AdvanceSeason(ctx context.Context, now time.Time) (int, error)
	StageStats(ctx context.Context) StageStats
	SeasonStats(ctx context.Context) SeasonStats
}
