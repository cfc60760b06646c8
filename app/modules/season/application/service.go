package seasonservice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hearthvale/house-ledger/app/eventbus"
	seasonevents "github.com/hearthvale/house-ledger/app/modules/season/domain/events"
	seasondb "github.com/hearthvale/house-ledger/app/modules/season/infrastructure/repositories"
	"github.com/hearthvale/house-ledger/app/shared/results"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidHouse reports a submission for a house key outside the two
// known houses.
var ErrInvalidHouse = errors.New("unknown house key")

// ErrEmptySolution rejects setting a blank stage solution.
var ErrEmptySolution = errors.New("solution must not be empty")

// SeasonService implements the Service interface.
type SeasonService struct {
	repo     seasondb.Repository
	eventBus eventbus.EventBus
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewSeasonService creates a new SeasonService.
func NewSeasonService(
	repo seasondb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	tracer trace.Tracer,
) *SeasonService {
	return &SeasonService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		tracer:   tracer,
		now:      time.Now,
	}
}

func span(ctx context.Context, tracer trace.Tracer, operationName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
}

// SetStageSolution stores the solution and point value for the current
// stage. Stages that already have solvers are frozen.
func (s *SeasonService) SetStageSolution(ctx context.Context, solution string, points int) (results.OperationResult[SolutionResult, Failure], error) {
	ctx, sp := span(ctx, s.tracer, "SetStageSolution")
	defer sp.End()

	if sharedtypes.NormalizeAnswer(solution) == "" {
		return results.FailureResult[SolutionResult, Failure](Failure{Reason: ErrEmptySolution.Error()}), nil
	}

	if err := s.repo.SetStageSolution(ctx, solution, points); err != nil {
		if errors.Is(err, seasondb.ErrStageHasSolvers) {
			return results.FailureResult[SolutionResult, Failure](Failure{Reason: err.Error()}), nil
		}
		sp.RecordError(err)
		return results.FailureResult[SolutionResult, Failure](Failure{Reason: err.Error()}), err
	}

	stats := s.repo.StageStats(ctx)
	s.logger.InfoContext(ctx, "stage solution set",
		slog.String("stage", stats.StageName),
		slog.Int("points", stats.Points),
	)
	return results.SuccessResult[SolutionResult, Failure](SolutionResult{Points: stats.Points}), nil
}

// SubmitAnswer runs one answer attempt through the stage state machine and,
// on a solve, publishes the award for the scoring subscriber to apply.
func (s *SeasonService) SubmitAnswer(ctx context.Context, userID sharedtypes.UserID, house sharedtypes.HouseKey, answer string) (results.OperationResult[seasondb.SubmitOutcome, Failure], error) {
	ctx, sp := span(ctx, s.tracer, "SubmitAnswer")
	defer sp.End()

	if !house.IsValid() {
		return results.FailureResult[seasondb.SubmitOutcome, Failure](Failure{Reason: ErrInvalidHouse.Error()}), nil
	}

	outcome, err := s.repo.Submit(ctx, userID, house, answer, s.now().UTC())
	if err != nil {
		sp.RecordError(err)
		return results.FailureResult[seasondb.SubmitOutcome, Failure](Failure{Reason: err.Error()}), err
	}

	s.logger.InfoContext(ctx, "answer submitted",
		slog.String("user_id", string(userID)),
		slog.String("house", string(house)),
		slog.String("status", string(outcome.Status)),
	)

	if outcome.Status == seasondb.SubmitCorrect {
		payload := seasonevents.StageSolvedPayload{
			SeasonID:      outcome.SeasonID,
			StageID:       outcome.StageID,
			StageName:     outcome.StageName,
			UserID:        userID,
			House:         house,
			SolvePosition: outcome.SolvePosition,
			PointsAwarded: outcome.PointsAwarded,
			Timestamp:     outcome.Timestamp,
		}
		if err := s.eventBus.Publish(ctx, seasonevents.StageSolvedTopic, payload); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish stage solved event",
				slog.String("stage", outcome.StageName),
				slog.Any("error", err),
			)
		}
	}

	return results.SuccessResult[seasondb.SubmitOutcome, Failure](outcome), nil
}

// AdvanceStage moves to the next stage.
func (s *SeasonService) AdvanceStage(ctx context.Context) (results.OperationResult[AdvanceResult, Failure], error) {
	ctx, sp := span(ctx, s.tracer, "AdvanceStage")
	defer sp.End()

	seasonID, stageID, err := s.repo.AdvanceStage(ctx)
	if err != nil {
		sp.RecordError(err)
		return results.FailureResult[AdvanceResult, Failure](Failure{Reason: err.Error()}), err
	}

	s.logger.InfoContext(ctx, "advanced stage", slog.Int("stage_id", stageID))
	return results.SuccessResult[AdvanceResult, Failure](AdvanceResult{
		SeasonID: seasonID,
		StageID:  stageID,
	}), nil
}

// AdvanceSeason moves to the next season.
func (s *SeasonService) AdvanceSeason(ctx context.Context) (results.OperationResult[AdvanceResult, Failure], error) {
	ctx, sp := span(ctx, s.tracer, "AdvanceSeason")
	defer sp.End()

	seasonID, err := s.repo.AdvanceSeason(ctx, s.now().UTC())
	if err != nil {
		sp.RecordError(err)
		return results.FailureResult[AdvanceResult, Failure](Failure{Reason: err.Error()}), err
	}

	s.logger.InfoContext(ctx, "advanced season", slog.Int("season_id", seasonID))
	return results.SuccessResult[AdvanceResult, Failure](AdvanceResult{
		SeasonID: seasonID,
		StageID:  1,
	}), nil
}

// StageStats summarizes the current stage.
func (s *SeasonService) StageStats(ctx context.Context) seasondb.StageStats {
	return s.repo.StageStats(ctx)
}

// SeasonStats summarizes the current season.
func (s *SeasonService) SeasonStats(ctx context.Context) seasondb.SeasonStats {
	return s.repo.SeasonStats(ctx)
}

var _ Service = (*SeasonService)(nil)
