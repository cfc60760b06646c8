package guildservice

import (
	"context"

	guilddb "github.com/hearthvale/house-ledger/app/modules/guild/infrastructure/repositories"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// fakeRepo is an in-memory stand-in for the settings repository. Setting
// failErr makes every mutation fail with that error.
type fakeRepo struct {
	settings guilddb.Settings
	failErr  error
	saves    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{settings: guilddb.DefaultSettings()}
}

func (f *fakeRepo) Get(context.Context) guilddb.Settings {
	return f.settings.Clone()
}

func (f *fakeRepo) mutate(fn func(*guilddb.Settings)) error {
	if f.failErr != nil {
		return f.failErr
	}
	fn(&f.settings)
	f.saves++
	return nil
}

func (f *fakeRepo) SetWeighting(_ context.Context, enabled bool, rounding sharedtypes.RoundingMode) error {
	return f.mutate(func(s *guilddb.Settings) {
		s.Weighting = guilddb.Weighting{Enabled: enabled, Rounding: rounding}
	})
}

func (f *fakeRepo) SetHouseRoles(_ context.Context, house sharedtypes.HouseKey, roles []sharedtypes.RoleID) error {
	return f.mutate(func(s *guilddb.Settings) {
		s.HouseRoleIDs[house] = guilddb.RoleList(roles)
	})
}

func (f *fakeRepo) SetDisplay(_ context.Context, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID) error {
	return f.mutate(func(s *guilddb.Settings) {
		s.Display = guilddb.Display{ChannelID: channelID, MessageID: messageID}
	})
}

func (f *fakeRepo) SetLogChannel(_ context.Context, channelID sharedtypes.ChannelID) error {
	return f.mutate(func(s *guilddb.Settings) {
		s.LogChannelID = channelID
	})
}

func (f *fakeRepo) SetModRole(_ context.Context, roleID sharedtypes.RoleID) error {
	return f.mutate(func(s *guilddb.Settings) {
		s.ModRoleID = roleID
	})
}

var _ guilddb.Repository = (*fakeRepo)(nil)
