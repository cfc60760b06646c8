package puzzleservice

import (
	"context"
	"time"

	puzzledb "github.com/hearthvale/house-ledger/app/modules/puzzle/infrastructure/repositories"
	"github.com/hearthvale/house-ledger/app/shared/results"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// CreateInput is the authoring payload for a puzzle.
type CreateInput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"puzzle_content"`
	Solution    string `json:"solution"`
	Points      int    `json:"points"`
	Hint        string `json:"hint,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// TimedActivation configures a timed run of a puzzle. Zero BasePoints
// falls back to the puzzle's authored point value.
type TimedActivation struct {
	BasePoints       int `json:"base_points"`
	VeridianMinutes  int `json:"veridian_minutes"`
	FeatheredMinutes int `json:"feathered_minutes"`
}

// PuzzleResult confirms a catalogue mutation.
type PuzzleResult struct {
	PuzzleID string `json:"puzzle_id"`
	Title    string `json:"title"`
}

// Failure is the domain failure payload for puzzle operations.
type Failure struct {
	Reason string `json:"reason"`
}

// Service is the puzzle engine surface.
type Service interface {
	CreatePuzzle(ctx context.Context, in CreateInput) (results.OperationResult[PuzzleResult, Failure], error)
	SetChannels(ctx context.Context, id string, veridian, feathered sharedtypes.ChannelID) (results.OperationResult[PuzzleResult, Failure], error)
	Activate(ctx context.Context, id string) (results.OperationResult[PuzzleResult, Failure], error)
	ActivateTimed(ctx context.Context, id string, activation TimedActivation) (results.OperationResult[PuzzleResult, Failure], error)
	Deactivate(ctx context.Context, id string) (results.OperationResult[PuzzleResult, Failure], error)

	SubmitAnswer(ctx context.Context, id string, userID sharedtypes.UserID, house sharedtypes.HouseKey, answer string) (results.OperationResult[puzzledb.SubmitOutcome, Failure], error)
	SubmitAnswerForChannel(ctx context.Context, channelID sharedtypes.ChannelID, userID sharedtypes.UserID, house sharedtypes.HouseKey, answer string) (results.OperationResult[puzzledb.SubmitOutcome, Failure], error)

	GetPuzzle(ctx context.Context, id string) (puzzledb.Puzzle, error)
	ListPuzzles(ctx context.Context) ([]puzzledb.Puzzle, error)
	ActivePuzzles(ctx context.Context) ([]puzzledb.Puzzle, error)

	ExpireTimers(ctx context.Context, now time.Time) ([]puzzledb.ExpiredSlot, error)
}
