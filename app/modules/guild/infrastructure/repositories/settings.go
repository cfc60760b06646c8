package guilddb

import (
	"context"
	"fmt"
	"sync"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"github.com/hearthvale/house-ledger/internal/docstore"
)

// SettingsRepository keeps the config document in memory under a mutex and
// writes it through the document store after each mutation.
type SettingsRepository struct {
	store docstore.Store

	mu       sync.RWMutex
	settings Settings
}

// NewSettingsRepository loads the config document, initializing it with the
// default payload when absent or corrupt.
func NewSettingsRepository(ctx context.Context, store docstore.Store) (*SettingsRepository, error) {
	repo := &SettingsRepository{store: store}
	if err := store.Load(ctx, docstore.DocConfig, DefaultSettings(), &repo.settings); err != nil {
		return nil, fmt.Errorf("failed to load config document: %w", err)
	}
	if repo.settings.HouseRoleIDs == nil {
		repo.settings.HouseRoleIDs = DefaultSettings().HouseRoleIDs
	}
	return repo, nil
}

// Get returns a snapshot of the current settings.
func (r *SettingsRepository) Get(_ context.Context) Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings.Clone()
}

func (r *SettingsRepository) mutate(ctx context.Context, fn func(*Settings)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.settings)
	if err := r.store.Save(ctx, docstore.DocConfig, r.settings); err != nil {
		return fmt.Errorf("failed to save config document: %w", err)
	}
	return nil
}

// SetWeighting updates the weighting toggle and rounding mode.
func (r *SettingsRepository) SetWeighting(ctx context.Context, enabled bool, rounding sharedtypes.RoundingMode) error {
	return r.mutate(ctx, func(s *Settings) {
		s.Weighting.Enabled = enabled
		s.Weighting.Rounding = rounding
	})
}

// SetHouseRoles replaces the ordered role list mapped to a house.
func (r *SettingsRepository) SetHouseRoles(ctx context.Context, house sharedtypes.HouseKey, roles []sharedtypes.RoleID) error {
	return r.mutate(ctx, func(s *Settings) {
		list := make(RoleList, len(roles))
		copy(list, roles)
		if s.HouseRoleIDs == nil {
			s.HouseRoleIDs = map[sharedtypes.HouseKey]RoleList{}
		}
		s.HouseRoleIDs[house] = list
	})
}

// SetDisplay updates the live scoreboard message pointer.
func (r *SettingsRepository) SetDisplay(ctx context.Context, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID) error {
	return r.mutate(ctx, func(s *Settings) {
		s.Display.ChannelID = channelID
		s.Display.MessageID = messageID
	})
}

// SetLogChannel updates the audit notification channel pointer.
func (r *SettingsRepository) SetLogChannel(ctx context.Context, channelID sharedtypes.ChannelID) error {
	return r.mutate(ctx, func(s *Settings) {
		s.LogChannelID = channelID
	})
}

// SetModRole updates the moderator role used by the boundary permission
// check.
func (r *SettingsRepository) SetModRole(ctx context.Context, roleID sharedtypes.RoleID) error {
	return r.mutate(ctx, func(s *Settings) {
		s.ModRoleID = roleID
	})
}

var _ Repository = (*SettingsRepository)(nil)
