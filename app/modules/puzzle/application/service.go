package puzzleservice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hearthvale/house-ledger/app/eventbus"
	puzzleevents "github.com/hearthvale/house-ledger/app/modules/puzzle/domain/events"
	puzzledb "github.com/hearthvale/house-ledger/app/modules/puzzle/infrastructure/repositories"
	"github.com/hearthvale/house-ledger/app/shared/results"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrInvalidHouse reports an attempt for a house key outside the two
	// known houses.
	ErrInvalidHouse = errors.New("unknown house key")
	// ErrMissingFields rejects puzzle creation without the required fields.
	ErrMissingFields = errors.New("puzzle needs id, title, and solution")
	// ErrBadDuration rejects a timed activation with a non-positive window.
	ErrBadDuration = errors.New("timer duration must be positive")
)

// PuzzleService implements the Service interface.
type PuzzleService struct {
	repo     puzzledb.Repository
	eventBus eventbus.EventBus
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewPuzzleService creates a new PuzzleService.
func NewPuzzleService(
	repo puzzledb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	tracer trace.Tracer,
) *PuzzleService {
	return &PuzzleService{
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

func failure[S any](reason string) results.OperationResult[S, Failure] {
	return results.FailureResult[S, Failure](Failure{Reason: reason})
}

// CreatePuzzle adds the puzzle to the catalogue, inactive. Creating under
// an existing ID replaces that puzzle.
func (s *PuzzleService) CreatePuzzle(ctx context.Context, in CreateInput) (results.OperationResult[PuzzleResult, Failure], error) {
	ctx, sp := span(ctx, s.tracer, "CreatePuzzle")
	defer sp.End()

	if in.ID == "" || in.Title == "" || sharedtypes.NormalizeAnswer(in.Solution) == "" {
		return failure[PuzzleResult](ErrMissingFields.Error()), nil
	}

	puzzle := puzzledb.Puzzle{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Solution:    in.Solution,
		Points:      in.Points,
		Hint:        in.Hint,
		ImageURL:    in.ImageURL,
	}
	if err := s.repo.Upsert(ctx, puzzle); err != nil {
		sp.RecordError(err)
		return failure[PuzzleResult](err.Error()), err
	}

	s.logger.InfoContext(ctx, "puzzle created",
		slog.String("puzzle_id", in.ID),
		slog.String("title", in.Title),
	)
	return results.SuccessResult[PuzzleResult, Failure](PuzzleResult{PuzzleID: in.ID, Title: in.Title}), nil
}

// SetChannels binds the puzzle's per-house posting channels.
func (s *PuzzleService) SetChannels(ctx context.Context, id string, veridian, feathered sharedtypes.ChannelID) (results.OperationResult[PuzzleResult, Failure], error) {
	ctx, sp := span(ctx, s.tracer, "SetChannels")
	defer sp.End()

	if err := s.repo.SetChannels(ctx, id, veridian, feathered); err != nil {
		if errors.Is(err, puzzledb.ErrNotFound) {
			return failure[PuzzleResult](err.Error()), nil
		}
		sp.RecordError(err)
		return failure[PuzzleResult](err.Error()), err
	}
	return s.confirm(ctx, id)
}

// Activate opens the puzzle as a single-winner untimed run.
func (s *PuzzleService) Activate(ctx context.Context, id string) (results.OperationResult[PuzzleResult, Failure], error) {
	ctx, sp := span(ctx, s.tracer, "Activate")
	defer sp.End()

	if err := s.repo.Activate(ctx, id); err != nil {
		if errors.Is(err, puzzledb.ErrNotFound) {
			return failure[PuzzleResult](err.Error()), nil
		}
		sp.RecordError(err)
		return failure[PuzzleResult](err.Error()), err
	}

	s.logger.InfoContext(ctx, "puzzle activated", slog.String("puzzle_id", id))
	return s.confirm(ctx, id)
}

// ActivateTimed opens the puzzle with an independent countdown per house.
func (s *PuzzleService) ActivateTimed(ctx context.Context, id string, activation TimedActivation) (results.OperationResult[PuzzleResult, Failure], error) {
	ctx, sp := span(ctx, s.tracer, "ActivateTimed")
	defer sp.End()

	if activation.VeridianMinutes <= 0 || activation.FeatheredMinutes <= 0 {
		return failure[PuzzleResult](ErrBadDuration.Error()), nil
	}

	err := s.repo.ActivateTimed(ctx, id,
		activation.BasePoints, activation.VeridianMinutes, activation.FeatheredMinutes, s.now().UTC())
	if err != nil {
		if errors.Is(err, puzzledb.ErrNotFound) {
			return failure[PuzzleResult](err.Error()), nil
		}
		sp.RecordError(err)
		return failure[PuzzleResult](err.Error()), err
	}

	s.logger.InfoContext(ctx, "timed puzzle activated",
		slog.String("puzzle_id", id),
		slog.Int("veridian_minutes", activation.VeridianMinutes),
		slog.Int("feathered_minutes", activation.FeatheredMinutes),
	)
	return s.confirm(ctx, id)
}

// Deactivate closes the puzzle without a winner.
func (s *PuzzleService) Deactivate(ctx context.Context, id string) (results.OperationResult[PuzzleResult, Failure], error) {
	ctx, sp := span(ctx, s.tracer, "Deactivate")
	defer sp.End()

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, puzzledb.ErrNotFound) {
			return failure[PuzzleResult](err.Error()), nil
		}
		sp.RecordError(err)
		return failure[PuzzleResult](err.Error()), err
	}
	return s.confirm(ctx, id)
}

func (s *PuzzleService) confirm(ctx context.Context, id string) (results.OperationResult[PuzzleResult, Failure], error) {
	puzzle, err := s.repo.Get(ctx, id)
	if err != nil {
		return failure[PuzzleResult](err.Error()), err
	}
	return results.SuccessResult[PuzzleResult, Failure](PuzzleResult{PuzzleID: puzzle.ID, Title: puzzle.Title}), nil
}

// SubmitAnswer runs one answer attempt and, on a solve, publishes the
// award for the scoring subscriber to apply.
func (s *PuzzleService) SubmitAnswer(ctx context.Context, id string, userID sharedtypes.UserID, house sharedtypes.HouseKey, answer string) (results.OperationResult[puzzledb.SubmitOutcome, Failure], error) {
	ctx, sp := span(ctx, s.tracer, "SubmitAnswer")
	defer sp.End()

	if !house.IsValid() {
		return failure[puzzledb.SubmitOutcome](ErrInvalidHouse.Error()), nil
	}

	outcome, err := s.repo.Submit(ctx, id, userID, house, answer, s.now().UTC())
	if err != nil {
		if errors.Is(err, puzzledb.ErrNotFound) || errors.Is(err, puzzledb.ErrNotActive) {
			return failure[puzzledb.SubmitOutcome](err.Error()), nil
		}
		sp.RecordError(err)
		return failure[puzzledb.SubmitOutcome](err.Error()), err
	}

	s.logger.InfoContext(ctx, "puzzle answer submitted",
		slog.String("puzzle_id", outcome.PuzzleID),
		slog.String("user_id", string(userID)),
		slog.String("house", string(house)),
		slog.String("status", string(outcome.Status)),
	)

	if outcome.Status == puzzledb.SubmitCorrect {
		s.publishSolved(ctx, outcome, userID)
	}
	return results.SuccessResult[puzzledb.SubmitOutcome, Failure](outcome), nil
}

// SubmitAnswerForChannel resolves the active puzzle bound to the channel
// and runs the attempt against it.
func (s *PuzzleService) SubmitAnswerForChannel(ctx context.Context, channelID sharedtypes.ChannelID, userID sharedtypes.UserID, house sharedtypes.HouseKey, answer string) (results.OperationResult[puzzledb.SubmitOutcome, Failure], error) {
	ctx, sp := span(ctx, s.tracer, "SubmitAnswerForChannel")
	defer sp.End()

	puzzle, err := s.repo.ForChannel(ctx, channelID)
	if err != nil {
		if errors.Is(err, puzzledb.ErrNotFound) {
			return failure[puzzledb.SubmitOutcome]("no active puzzle in this channel"), nil
		}
		sp.RecordError(err)
		return failure[puzzledb.SubmitOutcome](err.Error()), err
	}
	return s.SubmitAnswer(ctx, puzzle.ID, userID, house, answer)
}

func (s *PuzzleService) publishSolved(ctx context.Context, outcome puzzledb.SubmitOutcome, userID sharedtypes.UserID) {
	puzzle, err := s.repo.Get(ctx, outcome.PuzzleID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to reload solved puzzle",
			slog.String("puzzle_id", outcome.PuzzleID),
			slog.Any("error", err),
		)
		return
	}
	payload := puzzleevents.HouseSolvedPayload{
		PuzzleID:      outcome.PuzzleID,
		Title:         outcome.Title,
		UserID:        userID,
		House:         outcome.House,
		PointsAwarded: outcome.PointsAwarded,
		Timed:         puzzle.Timed,
		Timestamp:     outcome.Timestamp,
	}
	if err := s.eventBus.Publish(ctx, puzzleevents.HouseSolvedTopic, payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish puzzle solved event",
			slog.String("puzzle_id", outcome.PuzzleID),
			slog.Any("error", err),
		)
	}
}

// GetPuzzle returns the puzzle with the given ID.
func (s *PuzzleService) GetPuzzle(ctx context.Context, id string) (puzzledb.Puzzle, error) {
	return s.repo.Get(ctx, id)
}

// ListPuzzles returns every authored puzzle.
func (s *PuzzleService) ListPuzzles(ctx context.Context) ([]puzzledb.Puzzle, error) {
	return s.repo.List(ctx)
}

// ActivePuzzles returns the puzzles currently accepting answers.
func (s *PuzzleService) ActivePuzzles(ctx context.Context) ([]puzzledb.Puzzle, error) {
	return s.repo.Active(ctx)
}

// ExpireTimers sweeps timed windows past their deadline and publishes one
// expiry event per zeroed slot. The clock ticker calls this on an interval.
func (s *PuzzleService) ExpireTimers(ctx context.Context, now time.Time) ([]puzzledb.ExpiredSlot, error) {
	ctx, sp := span(ctx, s.tracer, "ExpireTimers")
	defer sp.End()

	expired, err := s.repo.SweepExpired(ctx, now)
	if err != nil {
		sp.RecordError(err)
		return nil, err
	}

	for _, slot := range expired {
		s.logger.InfoContext(ctx, "puzzle timer expired",
			slog.String("puzzle_id", slot.PuzzleID),
			slog.String("house", string(slot.House)),
		)
		payload := puzzleevents.HouseExpiredPayload{
			PuzzleID:  slot.PuzzleID,
			Title:     slot.Title,
			House:     slot.House,
			Timestamp: now,
		}
		if err := s.eventBus.Publish(ctx, puzzleevents.HouseExpiredTopic, payload); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish puzzle expired event",
				slog.String("puzzle_id", slot.PuzzleID),
				slog.Any("error", err),
			)
		}
	}
	return expired, nil
}

var _ Service = (*PuzzleService)(nil)
