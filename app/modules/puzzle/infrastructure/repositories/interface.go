package puzzledb

import (
	"context"
	"errors"
	"time"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

var (
	// ErrNotFound means no puzzle exists under the given ID.
	ErrNotFound = errors.New("puzzle not found")
	// ErrNotActive means the puzzle exists but is not accepting answers.
	ErrNotActive = errors.New("puzzle is not active")
)

// Repository is the puzzle catalogue and solve engine. Submit and
// SweepExpired are check-and-set atomic with respect to each other.
type Repository interface {
	Upsert(ctx context.Context, puzzle Puzzle) error
	Get(ctx context.Context, id string) (Puzzle, error)
	List(ctx context.Context) ([]Puzzle, error)
	Active(ctx context.Context) ([]Puzzle, error)
	ForChannel(ctx context.Context, channelID sharedtypes.ChannelID) (Puzzle, error)
	SetChannels(ctx context.Context, id string, veridian, feathered sharedtypes.ChannelID) error

	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	ActivateTimed(ctx context.Context, id string, basePoints, veridianMinutes, featheredMinutes int, now time.Time) error

	Submit(ctx context.Context, id string, userID sharedtypes.UserID, house sharedtypes.HouseKey, answer string, now time.Time) (SubmitOutcome, error)
	SweepExpired(ctx context.Context, now time.Time) ([]ExpiredSlot, error)
}
