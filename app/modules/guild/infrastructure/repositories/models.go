package guilddb

import (
	"encoding/json"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// RoleList is an ordered list of role IDs mapping to one house. Older
// persisted documents stored a single role ID string per house; both shapes
// unmarshal to a list.
type RoleList []sharedtypes.RoleID

// UnmarshalJSON accepts either a JSON array of role IDs or a legacy single
// string value. Empty strings collapse to an empty list.
func (r *RoleList) UnmarshalJSON(data []byte) error {
	var list []sharedtypes.RoleID
	if err := json.Unmarshal(data, &list); err == nil {
		*r = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*r = RoleList{}
		return nil
	}
	*r = RoleList{sharedtypes.RoleID(single)}
	return nil
}

// Weighting holds the house-size weighting policy.
type Weighting struct {
	Enabled  bool                     `json:"enabled"`
	Rounding sharedtypes.RoundingMode `json:"rounding"`
}

// Display points at the single externally-rendered live scoreboard message.
type Display struct {
	ChannelID sharedtypes.ChannelID `json:"channel_id"`
	MessageID sharedtypes.MessageID `json:"message_id"`
}

// Settings is the persisted config document: weighting policy, house role
// mappings, and channel pointers.
type Settings struct {
	Weighting    Weighting                         `json:"weighting"`
	HouseRoleIDs map[sharedtypes.HouseKey]RoleList `json:"house_role_ids"`
	Display      Display                           `json:"display"`
	LogChannelID sharedtypes.ChannelID             `json:"log_channel_id"`
	ModRoleID    sharedtypes.RoleID                `json:"mod_role_id"`
}

// DefaultSettings is the self-heal payload for an absent or corrupt config
// document.
func DefaultSettings() Settings {
	return Settings{
		Weighting: Weighting{Enabled: false, Rounding: sharedtypes.RoundingRound},
		HouseRoleIDs: map[sharedtypes.HouseKey]RoleList{
			sharedtypes.HouseVeridian: {},
			sharedtypes.FeatheredHost: {},
		},
	}
}

// RolesFor returns the configured role list for a house, empty when unset.
func (s Settings) RolesFor(house sharedtypes.HouseKey) RoleList {
	return s.HouseRoleIDs[house]
}

// ResolveHouse maps a member's roles to at most one house. Houses are
// checked in canonical order and the first hit wins, so a member holding
// roles of both houses resolves to the earlier house. That order-dependence
// is deliberate and relied upon.
func (s Settings) ResolveHouse(roles []sharedtypes.RoleID) (sharedtypes.HouseKey, bool) {
	held := make(map[sharedtypes.RoleID]struct{}, len(roles))
	for _, r := range roles {
		held[r] = struct{}{}
	}

	for _, house := range sharedtypes.HouseKeys() {
		for _, id := range s.HouseRoleIDs[house] {
			if id == "" {
				continue
			}
			if _, ok := held[id]; ok {
				return house, true
			}
		}
	}
	return "", false
}

// Clone returns a deep copy so callers can hold a snapshot without racing
// repository mutations.
func (s Settings) Clone() Settings {
	out := s
	out.HouseRoleIDs = make(map[sharedtypes.HouseKey]RoleList, len(s.HouseRoleIDs))
	for k, v := range s.HouseRoleIDs {
		list := make(RoleList, len(v))
		copy(list, v)
		out.HouseRoleIDs[k] = list
	}
	return out
}
