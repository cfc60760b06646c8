package guilddb

import (
	"context"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// Repository owns the config document: one in-memory copy, flushed whole
// after every mutation.
type Repository interface {
	Get(ctx context.Context) Settings
	SetWeighting(ctx context.Context, enabled bool, rounding sharedtypes.RoundingMode) error
	SetHouseRoles(ctx context.Context, house sharedtypes.HouseKey, roles []sharedtypes.RoleID) error
	SetDisplay(ctx context.Context, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID) error
	SetLogChannel(ctx context.Context, channelID sharedtypes.ChannelID) error
	SetModRole(ctx context.Context, roleID sharedtypes.RoleID) error
}
