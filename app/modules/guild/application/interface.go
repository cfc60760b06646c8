package guildservice

import (
	"context"

	guilddb "github.com/hearthvale/house-ledger/app/modules/guild/infrastructure/repositories"
	"github.com/hearthvale/house-ledger/app/shared/results"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// SettingsResult carries the settings snapshot after a successful operation.
type SettingsResult struct {
	Settings guilddb.Settings `json:"settings"`
}

// Failure is the domain failure payload for settings operations.
type Failure struct {
	Reason string `json:"reason"`
}

// Result is the operation envelope used across the guild settings service.
type Result = results.OperationResult[SettingsResult, Failure]

// Service is the guild settings surface: weighting policy, house role
// mappings, channel pointers, and house inference.
type Service interface {
	GetSettings(ctx context.Context) guilddb.Settings
	SetWeighting(ctx context.Context, enabled bool, rounding string) (Result, error)
	SetHouseRoles(ctx context.Context, house sharedtypes.HouseKey, roles []sharedtypes.RoleID) (Result, error)
	SetDisplay(ctx context.Context, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID) (Result, error)
	SetLogChannel(ctx context.Context, channelID sharedtypes.ChannelID) (Result, error)
	SetModRole(ctx context.Context, roleID sharedtypes.RoleID) (Result, error)
	ResolveHouse(ctx context.Context, roles []sharedtypes.RoleID) (sharedtypes.HouseKey, bool)
}
