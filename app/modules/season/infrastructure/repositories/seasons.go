package seasondb

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"github.com/hearthvale/house-ledger/internal/docstore"
)

// SeasonRepository keeps the season_state document in memory under a mutex
// and flushes it after every mutation.
type SeasonRepository struct {
	store docstore.Store

	mu    sync.RWMutex
	state SeasonState
}

// NewSeasonRepository loads the season_state document, initializing it with
// the default payload when absent or corrupt.
func NewSeasonRepository(ctx context.Context, store docstore.Store) (*SeasonRepository, error) {
	repo := &SeasonRepository{store: store}
	if err := store.Load(ctx, docstore.DocSeasonState, DefaultSeasonState(), &repo.state); err != nil {
		return nil, fmt.Errorf("failed to load season state document: %w", err)
	}
	if repo.state.Seasons == nil {
		repo.state = DefaultSeasonState()
	}
	return repo, nil
}

// currentSeasonLocked lazily materializes the pointed-at season so a
// hand-edited document can never leave the pointer dangling.
func (r *SeasonRepository) currentSeasonLocked() *Season {
	key := strconv.Itoa(r.state.CurrentSeason)
	season, ok := r.state.Seasons[key]
	if !ok {
		season = newSeason(r.state.CurrentSeason, nil)
		r.state.Seasons[key] = season
	}
	return season
}

func (r *SeasonRepository) currentStageLocked() *Stage {
	season := r.currentSeasonLocked()
	key := strconv.Itoa(season.CurrentStage)
	stage, ok := season.Stages[key]
	if !ok {
		stage = newStage(season.CurrentStage)
		if season.Stages == nil {
			season.Stages = map[string]*Stage{}
		}
		season.Stages[key] = stage
	}
	return stage
}

func (r *SeasonRepository) saveLocked(ctx context.Context) error {
	if err := r.store.Save(ctx, docstore.DocSeasonState, r.state); err != nil {
		return fmt.Errorf("failed to save season state document: %w", err)
	}
	return nil
}

// SetStageSolution stores the normalized solution and point value for the
// current stage. Re-setting is allowed and idempotent until a house has
// solved the stage; after that the stage is frozen.
func (r *SeasonRepository) SetStageSolution(ctx context.Context, solution string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage := r.currentStageLocked()
	if len(stage.Solvers) > 0 {
		return ErrStageHasSolvers
	}

	stage.Solution = sharedtypes.NormalizeAnswer(solution)
	if points <= 0 {
		points = DefaultStagePoints
	}
	stage.Points = points

	return r.saveLocked(ctx)
}

// Submit runs the full state machine for one answer attempt. Rejections
// before the submission append (no solution set, house already credited)
// write nothing at all, so post-solve noise never skews submission stats.
func (r *SeasonRepository) Submit(ctx context.Context, userID sharedtypes.UserID, house sharedtypes.HouseKey, answer string, now time.Time) (SubmitOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	season := r.currentSeasonLocked()
	stage := r.currentStageLocked()

	outcome := SubmitOutcome{
		SeasonID:  r.state.CurrentSeason,
		StageID:   season.CurrentStage,
		StageName: stage.Name,
		House:     house,
		Timestamp: now,
	}

	if stage.Solution == "" {
		outcome.Status = SubmitNoSolution
		return outcome, nil
	}

	for _, solver := range stage.Solvers {
		if solver.House == house {
			outcome.Status = SubmitAlreadySolved
			return outcome, nil
		}
	}

	normalized := sharedtypes.NormalizeAnswer(answer)
	correct := normalized == stage.Solution

	stage.Submissions = append(stage.Submissions, Submission{
		UserID:    userID,
		House:     house,
		Answer:    normalized,
		Timestamp: now,
		Correct:   correct,
	})
	season.TotalSubmissions++

	if !correct {
		outcome.Status = SubmitIncorrect
		return outcome, r.saveLocked(ctx)
	}

	position := len(stage.Solvers) + 1
	awarded := solveAward(stage.Points, position)
	stage.Solvers = append(stage.Solvers, Solver{
		UserID:        userID,
		House:         house,
		Timestamp:     now,
		PointsAwarded: awarded,
		SolvePosition: position,
	})

	outcome.Status = SubmitCorrect
	outcome.SolvePosition = position
	outcome.PointsAwarded = awarded
	return outcome, r.saveLocked(ctx)
}

// AdvanceStage moves the stage pointer forward by exactly one, lazily
// materializing the next stage. The pointer never regresses or skips.
func (r *SeasonRepository) AdvanceStage(ctx context.Context) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	season := r.currentSeasonLocked()
	next := season.CurrentStage + 1
	key := strconv.Itoa(next)
	if _, ok := season.Stages[key]; !ok {
		season.Stages[key] = newStage(next)
	}
	season.CurrentStage = next

	return r.state.CurrentSeason, next, r.saveLocked(ctx)
}

// AdvanceSeason moves the season pointer forward by exactly one, lazily
// materializing the next season with a fresh stage 1.
func (r *SeasonRepository) AdvanceSeason(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.state.CurrentSeason + 1
	key := strconv.Itoa(next)
	if _, ok := r.state.Seasons[key]; !ok {
		start := now
		r.state.Seasons[key] = newSeason(next, &start)
	}
	r.state.CurrentSeason = next

	return next, r.saveLocked(ctx)
}

// StageStats summarizes the current stage.
func (r *SeasonRepository) StageStats(_ context.Context) StageStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage := r.currentStageLocked()
	correct := 0
	for _, s := range stage.Submissions {
		if s.Correct {
			correct++
		}
	}

	return StageStats{
		StageName:          stage.Name,
		TotalSubmissions:   len(stage.Submissions),
		CorrectSubmissions: correct,
		UniqueSolvers:      len(stage.Solvers),
		HasSolution:        stage.Solution != "",
		Completed:          len(stage.Solvers) >= 2,
		Points:             stage.Points,
	}
}

// SeasonStats summarizes the current season.
func (r *SeasonRepository) SeasonStats(_ context.Context) SeasonStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	season := r.currentSeasonLocked()
	return SeasonStats{
		SeasonName:       season.Name,
		TotalSubmissions: season.TotalSubmissions,
		CurrentStage:     season.CurrentStage,
		TotalStages:      len(season.Stages),
	}
}

var _ Repository = (*SeasonRepository)(nil)
