package scoringdb

import (
	"context"
	"fmt"
	"sort"
	"sync"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"github.com/hearthvale/house-ledger/internal/docstore"
)

// ScoreRepository keeps the scores document in memory under a mutex and
// flushes it through the document store after every applied operation.
type ScoreRepository struct {
	store docstore.Store

	mu   sync.RWMutex
	data ScoreData
}

// NewScoreRepository loads the scores document, initializing it with the
// default payload when absent or corrupt.
func NewScoreRepository(ctx context.Context, store docstore.Store) (*ScoreRepository, error) {
	repo := &ScoreRepository{store: store}
	if err := store.Load(ctx, docstore.DocScores, DefaultScoreData(), &repo.data); err != nil {
		return nil, fmt.Errorf("failed to load scores document: %w", err)
	}
	if repo.data.Houses == nil {
		repo.data.Houses = DefaultScoreData().Houses
	}
	if repo.data.Players == nil {
		repo.data.Players = map[sharedtypes.UserID]int{}
	}
	return repo, nil
}

// Apply performs one scoring operation: player delta, house delta, and the
// audit event append, then one save. The audit log is append-only; nothing
// here ever rewrites or removes an event.
func (r *ScoreRepository) Apply(ctx context.Context, app Application) (map[sharedtypes.HouseKey]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if app.PlayerID != "" {
		if _, seen := r.data.Players[app.PlayerID]; !seen {
			r.data.PlayerOrder = append(r.data.PlayerOrder, app.PlayerID)
		}
		r.data.Players[app.PlayerID] += app.PlayerDelta
	}

	if app.House != "" {
		// Unmapped house keys auto-initialize to zero on first use.
		if _, seen := r.data.Houses[app.House]; !seen {
			r.data.Houses[app.House] = 0
		}
		r.data.Houses[app.House] += app.HouseDelta
	}

	r.data.Events = append(r.data.Events, app.Event)

	if err := r.store.Save(ctx, docstore.DocScores, r.data); err != nil {
		return nil, fmt.Errorf("failed to save scores document: %w", err)
	}
	return r.houseTotalsLocked(), nil
}

func (r *ScoreRepository) houseTotalsLocked() map[sharedtypes.HouseKey]int {
	totals := make(map[sharedtypes.HouseKey]int, len(r.data.Houses))
	for _, house := range sharedtypes.HouseKeys() {
		totals[house] = r.data.Houses[house]
	}
	for house, total := range r.data.Houses {
		totals[house] = total
	}
	return totals
}

// HouseTotals returns a copy of the current house totals, both known houses
// always present.
func (r *ScoreRepository) HouseTotals(_ context.Context) map[sharedtypes.HouseKey]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.houseTotalsLocked()
}

// PlayerTotal returns the player's raw total, zero for unknown players.
func (r *ScoreRepository) PlayerTotal(_ context.Context, userID sharedtypes.UserID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data.Players[userID]
}

// TopPlayers returns up to limit players sorted by total descending. Ties
// keep first-score order: the slice starts in PlayerOrder order and the
// sort is stable.
func (r *ScoreRepository) TopPlayers(_ context.Context, limit int) []PlayerTotal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]PlayerTotal, 0, len(r.data.Players))
	for _, id := range r.data.PlayerOrder {
		if total, ok := r.data.Players[id]; ok {
			rows = append(rows, PlayerTotal{UserID: id, Total: total})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// Events returns a copy of the append-only audit log.
func (r *ScoreRepository) Events(_ context.Context) []AuditEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]AuditEvent, len(r.data.Events))
	copy(out, r.data.Events)
	return out
}

var _ Repository = (*ScoreRepository)(nil)
