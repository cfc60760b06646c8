package puzzledb

import (
	"math"
	"time"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// TimerState is the tagged view of a house timer. The persisted shape
// conflates "solved" and "expired" behind one boolean; code always reads
// the state through this variant instead.
type TimerState string

const (
	TimerRunning TimerState = "running"
	TimerSolved  TimerState = "solved"
	TimerExpired TimerState = "expired"
)

// HouseTimer is one house's independent countdown window on a timed puzzle.
// Both terminal states set Solved; an expired-but-unsolved slot persists as
// solved=true, solver_id=null, points_awarded=0. That shape is contractual.
type HouseTimer struct {
	DurationMinutes int                    `json:"duration_minutes"`
	StartTime       time.Time              `json:"start_time"`
	EndTime         time.Time              `json:"end_time"`
	Solved          bool                   `json:"solved"`
	SolverID        *sharedtypes.UserID    `json:"solver_id"`
	PointsAwarded   *int                   `json:"points_awarded"`
	MessageID       *sharedtypes.MessageID `json:"message_id"`
}

// State derives the tagged state at time now. A slot past its end time
// reads as expired even before the sweep has persisted the expiry.
func (t *HouseTimer) State(now time.Time) TimerState {
	if t.Solved {
		if t.SolverID != nil {
			return TimerSolved
		}
		return TimerExpired
	}
	if !now.Before(t.EndTime) {
		return TimerExpired
	}
	return TimerRunning
}

// CurrentValue returns the points a solve is worth at time now: linear
// decay from basePoints down to a floor of 1 while any time remains, 0 at
// or after expiry.
func (t *HouseTimer) CurrentValue(basePoints int, now time.Time) int {
	remaining := t.EndTime.Sub(now)
	if remaining <= 0 {
		return 0
	}
	ratio := remaining.Minutes() / float64(t.DurationMinutes)
	points := int(math.Floor(float64(basePoints) * ratio))
	if points < 1 {
		return 1
	}
	return points
}

// TimedConfig holds the per-house windows of a timed puzzle.
type TimedConfig struct {
	BasePoints int         `json:"base_points"`
	Veridian   *HouseTimer `json:"house_veridian"`
	Feathered  *HouseTimer `json:"feathered_host"`
}

// Timer returns the window for the given house.
func (c *TimedConfig) Timer(house sharedtypes.HouseKey) *HouseTimer {
	if house == sharedtypes.HouseVeridian {
		return c.Veridian
	}
	return c.Feathered
}

// Done reports whether both house slots have reached a terminal state.
func (c *TimedConfig) Done() bool {
	return c.Veridian != nil && c.Veridian.Solved &&
		c.Feathered != nil && c.Feathered.Solved
}

// SolveRecord is the single-winner record of an untimed puzzle.
type SolveRecord struct {
	UserID    sharedtypes.UserID   `json:"user_id"`
	House     sharedtypes.HouseKey `json:"house"`
	Timestamp time.Time            `json:"timestamp"`
}

// Puzzle is one authored puzzle. IDs are externally assigned and unique.
type Puzzle struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Content          string                `json:"puzzle_content"`
	Solution         string                `json:"solution"`
	Points           int                   `json:"points"`
	Hint             string                `json:"hint,omitempty"`
	ImageURL         string                `json:"image_url,omitempty"`
	Active           bool                  `json:"active"`
	SolvedBy         *SolveRecord          `json:"solved_by"`
	VeridianChannel  sharedtypes.ChannelID `json:"house_veridian_channel"`
	FeatheredChannel sharedtypes.ChannelID `json:"feathered_host_channel"`
	Timed            bool                  `json:"timed"`
	TimedConfig      *TimedConfig          `json:"timed_config,omitempty"`
}

// BoundToChannel reports whether the puzzle posts into the given channel.
func (p *Puzzle) BoundToChannel(channelID sharedtypes.ChannelID) bool {
	return channelID != "" &&
		(p.VeridianChannel == channelID || p.FeatheredChannel == channelID)
}

// PuzzleData is the persisted puzzles document.
type PuzzleData struct {
	Puzzles []*Puzzle `json:"puzzles"`
}

// DefaultPuzzleData is the self-heal payload: no puzzles.
func DefaultPuzzleData() PuzzleData {
	return PuzzleData{Puzzles: []*Puzzle{}}
}

// SubmitStatus classifies a puzzle answer attempt.
type SubmitStatus string

const (
	SubmitCorrect       SubmitStatus = "correct"
	SubmitIncorrect     SubmitStatus = "incorrect"
	SubmitAlreadySolved SubmitStatus = "already_solved"
	SubmitExpired       SubmitStatus = "expired"
)

// SubmitOutcome reports what an answer attempt did. PointsAwarded carries
// the decayed value for timed solves; the caller credits the ledger.
type SubmitOutcome struct {
	Status        SubmitStatus         `json:"status"`
	PuzzleID      string               `json:"puzzle_id"`
	Title         string               `json:"title"`
	House         sharedtypes.HouseKey `json:"house"`
	PointsAwarded int                  `json:"points_awarded,omitempty"`
	PuzzleDone    bool                 `json:"puzzle_done"`
	Timestamp     time.Time            `json:"timestamp"`
}

// ExpiredSlot identifies one house window newly zeroed by the sweep.
type ExpiredSlot struct {
	PuzzleID string               `json:"puzzle_id"`
	Title    string               `json:"title"`
	House    sharedtypes.HouseKey `json:"house"`
}
