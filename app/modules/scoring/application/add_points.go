package scoringservice

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	scoringevents "github.com/hearthvale/house-ledger/app/modules/scoring/domain/events"
	scoringdb "github.com/hearthvale/house-ledger/app/modules/scoring/infrastructure/repositories"
	"github.com/hearthvale/house-ledger/app/shared/results"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"github.com/hearthvale/house-ledger/pkg/weights"
)

// AddPoints applies one scoring operation. Player targets always receive
// the raw base points on their personal total; house points are applied
// additionally when a house can be inferred from the supplied roles. House
// targets receive house points only. Weighting touches house points only,
// and only when both the call and the global policy ask for it. Exactly one
// audit event is appended per call, zero-effect calls included.
func (s *ScoreService) AddPoints(ctx context.Context, in AddPointsInput) (Result, error) {
	return s.withTelemetry(ctx, "AddPoints", in, func(ctx context.Context) (Result, error) {
		var (
			app   scoringdb.Application
			house sharedtypes.HouseKey
		)

		switch in.Target {
		case sharedtypes.TargetPlayer:
			app.PlayerID = sharedtypes.UserID(in.TargetID)
			app.PlayerDelta = in.BasePoints
			house, _ = s.guild.ResolveHouse(ctx, in.MemberRoles)

		case sharedtypes.TargetHouse:
			house = sharedtypes.HouseKey(in.TargetID)
			if !house.IsValid() {
				return failure(ErrInvalidHouse.Error()), nil
			}

		default:
			// Programming error at the call site: fail loudly, no state
			// mutation, no audit entry.
			return Result{}, ErrUnknownTarget
		}

		if house != "" {
			app.House = house
			app.HouseDelta = s.housePoints(ctx, house, in)
		}

		app.Event = scoringdb.AuditEvent{
			ID:                  uuid.NewString(),
			Timestamp:           s.now().UTC(),
			ActorID:             in.ActorID,
			Target:              in.Target,
			TargetID:            in.TargetID,
			BasePoints:          in.BasePoints,
			Weighted:            in.Weighted,
			HousePointsAwarded:  app.HouseDelta,
			PlayerPointsAwarded: app.PlayerDelta,
			Reason:              in.Reason,
		}

		totals, err := s.repo.Apply(ctx, app)
		if err != nil {
			return failure(err.Error()), err
		}

		s.publishScoreUpdated(ctx, app, totals)

		return results.SuccessResult[PointsAwarded, Failure](PointsAwarded{
			PlayerPointsAwarded: app.PlayerDelta,
			HousePointsAwarded:  app.HouseDelta,
			House:               app.House,
			HouseTotals:         totals,
		}), nil
	})
}

// RemovePoints is AddPoints with the base points negated; subtraction is
// not a separate code path.
func (s *ScoreService) RemovePoints(ctx context.Context, in AddPointsInput) (Result, error) {
	magnitude := in.BasePoints
	if magnitude < 0 {
		magnitude = -magnitude
	}
	in.BasePoints = -magnitude
	return s.AddPoints(ctx, in)
}

// housePoints computes the house-level delta, weighting it by relative
// house size when the call and the global policy both opt in.
func (s *ScoreService) housePoints(ctx context.Context, house sharedtypes.HouseKey, in AddPointsInput) int {
	settings := s.guild.GetSettings(ctx)
	if !in.Weighted || !settings.Weighting.Enabled {
		return in.BasePoints
	}

	multiplier := weights.ComputeMultiplier(house, in.HouseCounts.Veridian, in.HouseCounts.Feathered)
	return weights.ApplyRounding(float64(in.BasePoints)*multiplier, settings.Weighting.Rounding)
}

func (s *ScoreService) publishScoreUpdated(ctx context.Context, app scoringdb.Application, totals map[sharedtypes.HouseKey]int) {
	payload := scoringevents.ScoreUpdatedPayload{
		EventID:             app.Event.ID,
		Timestamp:           app.Event.Timestamp,
		ActorID:             app.Event.ActorID,
		Target:              app.Event.Target,
		TargetID:            app.Event.TargetID,
		BasePoints:          app.Event.BasePoints,
		Weighted:            app.Event.Weighted,
		HousePointsAwarded:  app.Event.HousePointsAwarded,
		PlayerPointsAwarded: app.Event.PlayerPointsAwarded,
		Reason:              app.Event.Reason,
		HouseTotals:         totals,
	}

	// The ledger mutation is already durable; a notification publish
	// failure is logged, not propagated.
	if err := s.eventBus.Publish(ctx, scoringevents.ScoreUpdatedTopic, payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish score update",
			slog.String("event_id", app.Event.ID),
			slog.Any("error", err),
		)
	}
}

func failure(reason string) Result {
	return results.FailureResult[PointsAwarded, Failure](Failure{Reason: reason})
}
