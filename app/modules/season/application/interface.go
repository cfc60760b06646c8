package seasonservice

import (
	"context"

	seasondb "github.com/hearthvale/house-ledger/app/modules/season/infrastructure/repositories"
	"github.com/hearthvale/house-ledger/app/shared/results"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// AdvanceResult reports the new pointer after an advance operation.
type AdvanceResult struct {
	SeasonID int `json:"season_id"`
	StageID  int `json:"stage_id"`
}

// SolutionResult confirms a stored stage solution.
type SolutionResult struct {
	Points int `json:"points"`
}

// Failure is the domain failure payload for season operations.
type Failure struct {
	Reason string `json:"reason"`
}

// Service is the season/stage state machine surface.
type Service interface {
	SetStageSolution(ctx context.Context, solution string, points int) (results.OperationResult[SolutionResult, Failure], error)
	SubmitAnswer(ctx context.Context, userID sharedtypes.UserID, house sharedtypes.HouseKey, answer string) (results.OperationResult[seasondb.SubmitOutcome, Failure], error)
	AdvanceStage(ctx context.Context) (results.OperationResult[AdvanceResult, Failure], error)
	AdvanceSeason(ctx context.Context) (results.OperationResult[AdvanceResult, Failure], error)
	StageStats(ctx context.Context) seasondb.StageStats
	SeasonStats(ctx context.Context) seasondb.SeasonStats
}
