package puzzledb

import (
	"context"
	"fmt"
	"sync"
	"time"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"github.com/hearthvale/house-ledger/internal/docstore"
)

// PuzzleRepository keeps the puzzles document in memory and flushes the
// whole document after every mutation. The mutex makes each answer attempt
// and each expiry sweep a single atomic check-and-set.
type PuzzleRepository struct {
	store docstore.Store

	mu   sync.RWMutex
	data PuzzleData
}

// NewPuzzleRepository loads (or initializes) the puzzles document.
func NewPuzzleRepository(ctx context.Context, store docstore.Store) (*PuzzleRepository, error) {
	r := &PuzzleRepository{store: store}
	if err := store.Load(ctx, docstore.DocPuzzles, DefaultPuzzleData(), &r.data); err != nil {
		return nil, fmt.Errorf("load puzzles: %w", err)
	}
	return r, nil
}

func (r *PuzzleRepository) save(ctx context.Context) error {
	if err := r.store.Save(ctx, docstore.DocPuzzles, r.data); err != nil {
		return fmt.Errorf("save puzzles: %w", err)
	}
	return nil
}

// findLocked returns the live puzzle pointer; callers hold r.mu.
func (r *PuzzleRepository) findLocked(id string) *Puzzle {
	for _, p := range r.data.Puzzles {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Upsert inserts the puzzle or replaces the existing one with the same ID.
func (r *PuzzleRepository) Upsert(ctx context.Context, puzzle Puzzle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.findLocked(puzzle.ID); existing != nil {
		*existing = puzzle
	} else {
		p := puzzle
		r.data.Puzzles = append(r.data.Puzzles, &p)
	}
	return r.save(ctx)
}

// Get returns a copy of the puzzle with the given ID.
func (r *PuzzleRepository) Get(ctx context.Context, id string) (Puzzle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.findLocked(id)
	if p == nil {
		return Puzzle{}, ErrNotFound
	}
	return *p, nil
}

// List returns copies of all puzzles in authored order.
func (r *PuzzleRepository) List(ctx context.Context) ([]Puzzle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Puzzle, 0, len(r.data.Puzzles))
	for _, p := range r.data.Puzzles {
		out = append(out, *p)
	}
	return out, nil
}

// Active returns copies of the currently active puzzles.
func (r *PuzzleRepository) Active(ctx context.Context) ([]Puzzle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Puzzle
	for _, p := range r.data.Puzzles {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

// ForChannel resolves the active puzzle bound to the given channel.
func (r *PuzzleRepository) ForChannel(ctx context.Context, channelID sharedtypes.ChannelID) (Puzzle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.data.Puzzles {
		if p.Active && p.BoundToChannel(channelID) {
			return *p, nil
		}
	}
	return Puzzle{}, ErrNotFound
}

// SetChannels binds the puzzle's per-house posting channels.
func (r *PuzzleRepository) SetChannels(ctx context.Context, id string, veridian, feathered sharedtypes.ChannelID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findLocked(id)
	if p == nil {
		return ErrNotFound
	}
	p.VeridianChannel = veridian
	p.FeatheredChannel = feathered
	return r.save(ctx)
}

// Activate opens the puzzle for answers. Reactivation clears a previous
// winner so the puzzle can be run again.
func (r *PuzzleRepository) Activate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findLocked(id)
	if p == nil {
		return ErrNotFound
	}
	p.Active = true
	p.SolvedBy = nil
	p.TimedConfig = nil
	p.Timed = false
	return r.save(ctx)
}

// Deactivate closes the puzzle without recording a winner.
func (r *PuzzleRepository) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findLocked(id)
	if p == nil {
		return ErrNotFound
	}
	p.Active = false
	return r.save(ctx)
}

// ActivateTimed opens the puzzle with an independent countdown window per
// house. Durations are minutes; both windows start at now.
func (r *PuzzleRepository) ActivateTimed(ctx context.Context, id string, basePoints, veridianMinutes, featheredMinutes int, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findLocked(id)
	if p == nil {
		return ErrNotFound
	}
	if basePoints <= 0 {
		basePoints = p.Points
	}
	p.Active = true
	p.SolvedBy = nil
	p.Timed = true
	p.TimedConfig = &TimedConfig{
		BasePoints: basePoints,
		Veridian:   newTimer(veridianMinutes, now),
		Feathered:  newTimer(featheredMinutes, now),
	}
	return r.save(ctx)
}

func newTimer(minutes int, now time.Time) *HouseTimer {
	return &HouseTimer{
		DurationMinutes: minutes,
		StartTime:       now,
		EndTime:         now.Add(time.Duration(minutes) * time.Minute),
	}
}

// Submit evaluates an answer attempt. Untimed puzzles have one winner in
// total; timed puzzles have at most one winner per house, worth the decayed
// value at the moment of the attempt. Correct timed solves on an already
// expired window score nothing.
func (r *PuzzleRepository) Submit(ctx context.Context, id string, userID sharedtypes.UserID, house sharedtypes.HouseKey, answer string, now time.Time) (SubmitOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findLocked(id)
	if p == nil {
		return SubmitOutcome{}, ErrNotFound
	}

	outcome := SubmitOutcome{
		PuzzleID:  p.ID,
		Title:     p.Title,
		House:     house,
		Timestamp: now,
	}

	if p.Timed && p.TimedConfig != nil {
		return r.submitTimedLocked(ctx, p, userID, house, answer, now, outcome)
	}

	// Terminal states classify even after the puzzle auto-deactivates.
	if p.SolvedBy != nil {
		outcome.Status = SubmitAlreadySolved
		return outcome, nil
	}
	if !p.Active {
		return SubmitOutcome{}, ErrNotActive
	}
	if sharedtypes.NormalizeAnswer(answer) != sharedtypes.NormalizeAnswer(p.Solution) {
		outcome.Status = SubmitIncorrect
		return outcome, nil
	}

	p.SolvedBy = &SolveRecord{UserID: userID, House: house, Timestamp: now}
	p.Active = false
	outcome.Status = SubmitCorrect
	outcome.PointsAwarded = p.Points
	outcome.PuzzleDone = true
	if err := r.save(ctx); err != nil {
		return SubmitOutcome{}, err
	}
	return outcome, nil
}

func (r *PuzzleRepository) submitTimedLocked(ctx context.Context, p *Puzzle, userID sharedtypes.UserID, house sharedtypes.HouseKey, answer string, now time.Time, outcome SubmitOutcome) (SubmitOutcome, error) {
	timer := p.TimedConfig.Timer(house)
	if timer == nil {
		return SubmitOutcome{}, ErrNotActive
	}

	switch timer.State(now) {
	case TimerSolved:
		outcome.Status = SubmitAlreadySolved
		return outcome, nil
	case TimerExpired:
		outcome.Status = SubmitExpired
		return outcome, nil
	}
	if !p.Active {
		return SubmitOutcome{}, ErrNotActive
	}

	if sharedtypes.NormalizeAnswer(answer) != sharedtypes.NormalizeAnswer(p.Solution) {
		outcome.Status = SubmitIncorrect
		return outcome, nil
	}

	points := timer.CurrentValue(p.TimedConfig.BasePoints, now)
	timer.Solved = true
	timer.SolverID = &userID
	timer.PointsAwarded = &points
	if p.TimedConfig.Done() {
		p.Active = false
	}

	outcome.Status = SubmitCorrect
	outcome.PointsAwarded = points
	outcome.PuzzleDone = p.TimedConfig.Done()
	if err := r.save(ctx); err != nil {
		return SubmitOutcome{}, err
	}
	return outcome, nil
}

// SweepExpired zeroes every timed house window whose deadline has passed
// without a solve. The sweep is idempotent: already-terminal slots are
// skipped and a second pass at the same instant returns nothing.
func (r *PuzzleRepository) SweepExpired(ctx context.Context, now time.Time) ([]ExpiredSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []ExpiredSlot
	for _, p := range r.data.Puzzles {
		if !p.Active || !p.Timed || p.TimedConfig == nil {
			continue
		}
		for _, house := range sharedtypes.HouseKeys() {
			timer := p.TimedConfig.Timer(house)
			if timer == nil || timer.Solved {
				continue
			}
			if now.Before(timer.EndTime) {
				continue
			}
			zero := 0
			timer.Solved = true
			timer.SolverID = nil
			timer.PointsAwarded = &zero
			expired = append(expired, ExpiredSlot{PuzzleID: p.ID, Title: p.Title, House: house})
		}
		if p.TimedConfig.Done() {
			p.Active = false
		}
	}

	if len(expired) == 0 {
		return nil, nil
	}
	if err := r.save(ctx); err != nil {
		return nil, err
	}
	return expired, nil
}
