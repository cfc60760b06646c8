package guilddb

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

func TestRoleListUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want RoleList
	}{
		{"list of ids", `["1", "2"]`, RoleList{"1", "2"}},
		{"legacy single string", `"12345"`, RoleList{"12345"}},
		{"legacy empty string", `""`, RoleList{}},
		{"empty list", `[]`, RoleList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RoleList
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RoleList mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSettingsResolveHouse(t *testing.T) {
	settings := Settings{
		HouseRoleIDs: map[sharedtypes.HouseKey]RoleList{
			sharedtypes.HouseVeridian: {"100", "101"},
			sharedtypes.FeatheredHost: {"200"},
		},
	}

	tests := []struct {
		name      string
		roles     []sharedtypes.RoleID
		wantHouse sharedtypes.HouseKey
		wantOK    bool
	}{
		{"veridian role", []sharedtypes.RoleID{"101"}, sharedtypes.HouseVeridian, true},
		{"feathered role", []sharedtypes.RoleID{"200"}, sharedtypes.FeatheredHost, true},
		{"no mapped roles", []sharedtypes.RoleID{"999"}, "", false},
		{"no roles at all", nil, "", false},
		// A member holding roles of both houses resolves to the first house
		// in canonical order, regardless of the order the roles arrive in.
		{"both houses resolves to veridian", []sharedtypes.RoleID{"200", "100"}, sharedtypes.HouseVeridian, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			house, ok := settings.ResolveHouse(tt.roles)
			if house != tt.wantHouse || ok != tt.wantOK {
				t.Errorf("ResolveHouse(%v) = (%q, %v), want (%q, %v)",
					tt.roles, house, ok, tt.wantHouse, tt.wantOK)
			}
		})
	}
}

func TestSettingsCloneIsIndependent(t *testing.T) {
	orig := DefaultSettings()
	orig.HouseRoleIDs[sharedtypes.HouseVeridian] = RoleList{"1"}

	clone := orig.Clone()
	clone.HouseRoleIDs[sharedtypes.HouseVeridian][0] = "changed"
	clone.HouseRoleIDs[sharedtypes.FeatheredHost] = RoleList{"2"}

	if orig.HouseRoleIDs[sharedtypes.HouseVeridian][0] != "1" {
		t.Error("mutating a clone leaked into the original role list")
	}
	if len(orig.HouseRoleIDs[sharedtypes.FeatheredHost]) != 0 {
		t.Error("mutating a clone leaked into the original map")
	}
}
