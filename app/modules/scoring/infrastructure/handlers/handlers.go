// Package scoringhandlers reacts to solve events from the season and puzzle
// modules. The state machines return awards without touching the ledger;
// these handlers are the caller that turns an award into a score update.
package scoringhandlers

import (
	"context"
	"log/slog"

	puzzleevents "github.com/hearthvale/house-ledger/app/modules/puzzle/domain/events"
	seasonevents "github.com/hearthvale/house-ledger/app/modules/season/domain/events"
	scoringservice "github.com/hearthvale/house-ledger/app/modules/scoring/application"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// Handlers bundles the scoring module's event handlers.
type Handlers struct {
	service scoringservice.Service
	logger  *slog.Logger
}

// NewHandlers creates the scoring handlers.
func NewHandlers(service scoringservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// HandleStageSolved credits a stage solve to the solving house. Stage
// awards are fixed by solve order, so weighting never applies.
func (h *Handlers) HandleStageSolved(ctx context.Context, payload *seasonevents.StageSolvedPayload) error {
	if payload.PointsAwarded == 0 {
		return nil
	}
	return h.award(ctx, payload.UserID, payload.House, payload.PointsAwarded, "stage solved: "+payload.StageName)
}

// HandlePuzzleHouseSolved credits a puzzle solve to the solving house.
// Timed awards carry the decayed value computed at solve time.
func (h *Handlers) HandlePuzzleHouseSolved(ctx context.Context, payload *puzzleevents.HouseSolvedPayload) error {
	if payload.PointsAwarded == 0 {
		return nil
	}
	return h.award(ctx, payload.UserID, payload.House, payload.PointsAwarded, "puzzle solved: "+payload.Title)
}

func (h *Handlers) award(ctx context.Context, actor sharedtypes.UserID, house sharedtypes.HouseKey, points int, reason string) error {
	result, err := h.service.AddPoints(ctx, scoringservice.AddPointsInput{
		ActorID:    actor,
		Target:     sharedtypes.TargetHouse,
		TargetID:   string(house),
		BasePoints: points,
		Reason:     reason,
		Weighted:   false,
	})
	if err != nil {
		return err
	}
	if result.IsFailure() {
		h.logger.ErrorContext(ctx, "solve award rejected by ledger",
			slog.String("house", string(house)),
			slog.String("reason", result.Failure.Reason),
		)
	}
	return nil
}
