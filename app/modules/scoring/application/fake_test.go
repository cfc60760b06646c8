package scoringservice

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hearthvale/house-ledger/app/eventbus"
	guildservice "github.com/hearthvale/house-ledger/app/modules/guild/application"
	guilddb "github.com/hearthvale/house-ledger/app/modules/guild/infrastructure/repositories"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// fakeGuild serves fixed settings and role-based house resolution.
type fakeGuild struct {
	settings guilddb.Settings
}

func newFakeGuild() *fakeGuild {
	return &fakeGuild{settings: guilddb.DefaultSettings()}
}

func (f *fakeGuild) GetSettings(context.Context) guilddb.Settings {
	return f.settings.Clone()
}

func (f *fakeGuild) ResolveHouse(_ context.Context, roles []sharedtypes.RoleID) (sharedtypes.HouseKey, bool) {
	return f.settings.ResolveHouse(roles)
}

func (f *fakeGuild) SetWeighting(context.Context, bool, string) (guildservice.Result, error) {
	return guildservice.Result{}, nil
}

func (f *fakeGuild) SetHouseRoles(context.Context, sharedtypes.HouseKey, []sharedtypes.RoleID) (guildservice.Result, error) {
	return guildservice.Result{}, nil
}

func (f *fakeGuild) SetDisplay(context.Context, sharedtypes.ChannelID, sharedtypes.MessageID) (guildservice.Result, error) {
	return guildservice.Result{}, nil
}

func (f *fakeGuild) SetLogChannel(context.Context, sharedtypes.ChannelID) (guildservice.Result, error) {
	return guildservice.Result{}, nil
}

func (f *fakeGuild) SetModRole(context.Context, sharedtypes.RoleID) (guildservice.Result, error) {
	return guildservice.Result{}, nil
}

var _ guildservice.Service = (*fakeGuild)(nil)

// fakeBus records published events.
type fakeBus struct {
	mu        sync.Mutex
	published []publishedEvent
}

type publishedEvent struct {
	topic   string
	payload any
}

func (f *fakeBus) Publish(_ context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, publishedEvent{topic: topic, payload: payload})
	return nil
}

func (f *fakeBus) Subscriber() message.Subscriber { return nil }

func (f *fakeBus) Close() error { return nil }

var _ eventbus.EventBus = (*fakeBus)(nil)

func (f *fakeBus) topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.published))
	for i, p := range f.published {
		out[i] = p.topic
	}
	return out
}
