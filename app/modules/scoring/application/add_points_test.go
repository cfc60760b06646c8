package scoringservice

import (
	"context"
	"log/slog"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	guilddb "github.com/hearthvale/house-ledger/app/modules/guild/infrastructure/repositories"
	scoringdb "github.com/hearthvale/house-ledger/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"github.com/hearthvale/house-ledger/internal/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type scoringFixture struct {
	service *ScoreService
	repo    *scoringdb.ScoreRepository
	guild   *fakeGuild
	bus     *fakeBus
}

func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()

	repo, err := scoringdb.NewScoreRepository(context.Background(), docstore.NewMemStore())
	require.NoError(t, err)

	guild := newFakeGuild()
	bus := &fakeBus{}
	service := NewScoreService(repo, guild, bus,
		slog.New(slog.DiscardHandler),
		noop.NewTracerProvider().Tracer("test"),
	)
	return &scoringFixture{service: service, repo: repo, guild: guild, bus: bus}
}

func TestAddPointsHouseTarget(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	got, err := f.service.AddPoints(ctx, AddPointsInput{
		ActorID:    "mod-1",
		Target:     sharedtypes.TargetHouse,
		TargetID:   string(sharedtypes.HouseVeridian),
		BasePoints: 7,
		Reason:     "trivia night",
	})
	require.NoError(t, err)
	require.True(t, got.IsSuccess())

	assert.Equal(t, 0, got.Success.PlayerPointsAwarded)
	assert.Equal(t, 7, got.Success.HousePointsAwarded)
	assert.Equal(t, 7, f.service.HouseTotals(ctx)[sharedtypes.HouseVeridian])
	assert.Equal(t, 0, f.service.HouseTotals(ctx)[sharedtypes.FeatheredHost])
}

func TestAddPointsPlayerInfersHouse(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()
	f.guild.settings.HouseRoleIDs[sharedtypes.FeatheredHost] = guilddb.RoleList{"role-fh"}

	got, err := f.service.AddPoints(ctx, AddPointsInput{
		ActorID:     "mod-1",
		Target:      sharedtypes.TargetPlayer,
		TargetID:    "player-1",
		BasePoints:  5,
		Reason:      "helpful answer",
		MemberRoles: []sharedtypes.RoleID{"role-fh"},
	})
	require.NoError(t, err)
	require.True(t, got.IsSuccess())

	assert.Equal(t, 5, got.Success.PlayerPointsAwarded)
	assert.Equal(t, 5, got.Success.HousePointsAwarded)
	assert.Equal(t, sharedtypes.FeatheredHost, got.Success.House)
	assert.Equal(t, 5, f.service.PlayerTotal(ctx, "player-1"))
	assert.Equal(t, 5, f.service.HouseTotals(ctx)[sharedtypes.FeatheredHost])
}

func TestAddPointsPlayerWithoutHouse(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	got, err := f.service.AddPoints(ctx, AddPointsInput{
		ActorID:    "mod-1",
		Target:     sharedtypes.TargetPlayer,
		TargetID:   "player-1",
		BasePoints: 5,
	})
	require.NoError(t, err)
	require.True(t, got.IsSuccess())

	assert.Equal(t, 5, got.Success.PlayerPointsAwarded)
	assert.Equal(t, 0, got.Success.HousePointsAwarded)
	assert.Equal(t, 0, f.service.HouseTotals(ctx)[sharedtypes.HouseVeridian])
	assert.Equal(t, 0, f.service.HouseTotals(ctx)[sharedtypes.FeatheredHost])
}

// Weighting scenario: Veridian has 30 members, Feathered Host 10. A
// weighted award of 6 to Feathered Host triples to 18; Veridian stays
// untouched.
func TestAddPointsWeightedMinorityHouse(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()
	f.guild.settings.Weighting = guilddb.Weighting{Enabled: true, Rounding: sharedtypes.RoundingRound}

	got, err := f.service.AddPoints(ctx, AddPointsInput{
		ActorID:     "mod-1",
		Target:      sharedtypes.TargetHouse,
		TargetID:    string(sharedtypes.FeatheredHost),
		BasePoints:  6,
		Weighted:    true,
		HouseCounts: sharedtypes.HouseCounts{Veridian: 30, Feathered: 10},
	})
	require.NoError(t, err)
	require.True(t, got.IsSuccess())

	assert.Equal(t, 18, got.Success.HousePointsAwarded)
	assert.Equal(t, 18, f.service.HouseTotals(ctx)[sharedtypes.FeatheredHost])
	assert.Equal(t, 0, f.service.HouseTotals(ctx)[sharedtypes.HouseVeridian])
}

// The player's raw total always moves by the base points; weighting only
// touches the house side.
func TestAddPointsWeightedPlayerKeepsRawTotal(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()
	f.guild.settings.Weighting = guilddb.Weighting{Enabled: true, Rounding: sharedtypes.RoundingRound}
	f.guild.settings.HouseRoleIDs[sharedtypes.FeatheredHost] = guilddb.RoleList{"role-fh"}

	got, err := f.service.AddPoints(ctx, AddPointsInput{
		ActorID:     "mod-1",
		Target:      sharedtypes.TargetPlayer,
		TargetID:    "player-1",
		BasePoints:  6,
		Weighted:    true,
		MemberRoles: []sharedtypes.RoleID{"role-fh"},
		HouseCounts: sharedtypes.HouseCounts{Veridian: 30, Feathered: 10},
	})
	require.NoError(t, err)
	require.True(t, got.IsSuccess())

	assert.Equal(t, 6, got.Success.PlayerPointsAwarded)
	assert.Equal(t, 18, got.Success.HousePointsAwarded)
	assert.Equal(t, 6, f.service.PlayerTotal(ctx, "player-1"))
}

// Weighted flag on the call is ignored while the global policy is off.
func TestAddPointsWeightedFlagNeedsGlobalEnable(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	got, err := f.service.AddPoints(ctx, AddPointsInput{
		ActorID:     "mod-1",
		Target:      sharedtypes.TargetHouse,
		TargetID:    string(sharedtypes.FeatheredHost),
		BasePoints:  6,
		Weighted:    true,
		HouseCounts: sharedtypes.HouseCounts{Veridian: 30, Feathered: 10},
	})
	require.NoError(t, err)
	require.True(t, got.IsSuccess())
	assert.Equal(t, 6, got.Success.HousePointsAwarded)
}

func TestRemovePointsAlwaysSubtracts(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	for _, base := range []int{4, -4} {
		got, err := f.service.RemovePoints(ctx, AddPointsInput{
			ActorID:    "mod-1",
			Target:     sharedtypes.TargetHouse,
			TargetID:   string(sharedtypes.HouseVeridian),
			BasePoints: base,
		})
		require.NoError(t, err)
		require.True(t, got.IsSuccess())
		assert.Equal(t, -4, got.Success.HousePointsAwarded)
	}
	assert.Equal(t, -8, f.service.HouseTotals(ctx)[sharedtypes.HouseVeridian])
}

// remove_points then add_points of the same magnitude returns totals to
// their prior values.
func TestRemoveThenAddRestoresTotals(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	seed := AddPointsInput{
		ActorID:    "mod-1",
		Target:     sharedtypes.TargetHouse,
		TargetID:   string(sharedtypes.FeatheredHost),
		BasePoints: 11,
	}
	_, err := f.service.AddPoints(ctx, seed)
	require.NoError(t, err)
	before := f.service.HouseTotals(ctx)

	_, err = f.service.RemovePoints(ctx, seed)
	require.NoError(t, err)
	_, err = f.service.AddPoints(ctx, seed)
	require.NoError(t, err)

	assert.Equal(t, before, f.service.HouseTotals(ctx))
}

func TestAddPointsUnknownTargetFailsLoudly(t *testing.T) {
	f := newScoringFixture(t)

	_, err := f.service.AddPoints(context.Background(), AddPointsInput{
		ActorID:    "mod-1",
		Target:     "guild",
		TargetID:   "whatever",
		BasePoints: 1,
	})
	require.ErrorIs(t, err, ErrUnknownTarget)
	assert.Empty(t, f.service.Events(context.Background()), "programmer error must not log an audit event")
}

func TestAddPointsMalformedHouseRejected(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	got, err := f.service.AddPoints(ctx, AddPointsInput{
		ActorID:    "mod-1",
		Target:     sharedtypes.TargetHouse,
		TargetID:   "house_unknown",
		BasePoints: 3,
	})
	require.NoError(t, err)
	require.True(t, got.IsFailure())
	assert.Empty(t, f.service.Events(ctx), "rejection must not mutate state or log")
}

// Every points-changing call appends exactly one audit event, zero-effect
// calls included.
func TestAuditEventPerCall(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	inputs := []AddPointsInput{
		{ActorID: "a", Target: sharedtypes.TargetHouse, TargetID: string(sharedtypes.HouseVeridian), BasePoints: 3, Reason: gofakeit.Sentence(3)},
		{ActorID: "a", Target: sharedtypes.TargetHouse, TargetID: string(sharedtypes.FeatheredHost), BasePoints: 0, Reason: "zero effect"},
		{ActorID: "a", Target: sharedtypes.TargetPlayer, TargetID: "p1", BasePoints: -2, Reason: gofakeit.Sentence(3)},
	}
	for _, in := range inputs {
		_, err := f.service.AddPoints(ctx, in)
		require.NoError(t, err)
	}

	events := f.service.Events(ctx)
	require.Len(t, events, len(inputs))
	for i, ev := range events {
		assert.NotEmpty(t, ev.ID)
		assert.Equal(t, inputs[i].Reason, ev.Reason)
		assert.Equal(t, inputs[i].BasePoints, ev.BasePoints)
	}

	assert.Len(t, f.bus.topics(), len(inputs), "one score.updated per call")
}

func TestTopPlayersDeterministicTieOrder(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	// Three players land on the same total in a known first-score order.
	for _, id := range []string{"first", "second", "third"} {
		_, err := f.service.AddPoints(ctx, AddPointsInput{
			ActorID: "a", Target: sharedtypes.TargetPlayer, TargetID: id, BasePoints: 10,
		})
		require.NoError(t, err)
	}
	_, err := f.service.AddPoints(ctx, AddPointsInput{
		ActorID: "a", Target: sharedtypes.TargetPlayer, TargetID: "leader", BasePoints: 25,
	})
	require.NoError(t, err)

	for range 5 {
		top := f.service.TopPlayers(ctx, 10)
		require.Len(t, top, 4)
		assert.Equal(t, sharedtypes.UserID("leader"), top[0].UserID)
		assert.Equal(t, sharedtypes.UserID("first"), top[1].UserID)
		assert.Equal(t, sharedtypes.UserID("second"), top[2].UserID)
		assert.Equal(t, sharedtypes.UserID("third"), top[3].UserID)
	}

	limited := f.service.TopPlayers(ctx, 2)
	require.Len(t, limited, 2)
	assert.Equal(t, sharedtypes.UserID("leader"), limited[0].UserID)
}

func TestPlayerTotalUnknownDefaultsZero(t *testing.T) {
	f := newScoringFixture(t)
	assert.Equal(t, 0, f.service.PlayerTotal(context.Background(), "ghost"))
}
