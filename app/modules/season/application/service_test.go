package seasonservice

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hearthvale/house-ledger/app/eventbus"
	seasonevents "github.com/hearthvale/house-ledger/app/modules/season/domain/events"
	seasondb "github.com/hearthvale/house-ledger/app/modules/season/infrastructure/repositories"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"github.com/hearthvale/house-ledger/internal/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingBus struct {
	mu        sync.Mutex
	published map[string][]any
}

func (b *recordingBus) Publish(_ context.Context, topic string, payload any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.published == nil {
		b.published = map[string][]any{}
	}
	b.published[topic] = append(b.published[topic], payload)
	return nil
}

func (b *recordingBus) Subscriber() message.Subscriber { return nil }
func (b *recordingBus) Close() error                   { return nil }

var _ eventbus.EventBus = (*recordingBus)(nil)

func newTestService(t *testing.T) (*SeasonService, *recordingBus) {
	t.Helper()
	repo, err := seasondb.NewSeasonRepository(context.Background(), docstore.NewMemStore())
	require.NoError(t, err)

	bus := &recordingBus{}
	service := NewSeasonService(repo, bus,
		slog.New(slog.DiscardHandler),
		noop.NewTracerProvider().Tracer("test"),
	)
	return service, bus
}

func TestSubmitAnswerPublishesSolveEvent(t *testing.T) {
	service, bus := newTestService(t)
	ctx := context.Background()

	_, err := service.SetStageSolution(ctx, "raven", 10)
	require.NoError(t, err)

	got, err := service.SubmitAnswer(ctx, "u1", sharedtypes.HouseVeridian, "raven")
	require.NoError(t, err)
	require.True(t, got.IsSuccess())
	assert.Equal(t, seasondb.SubmitCorrect, got.Success.Status)

	events := bus.published[seasonevents.StageSolvedTopic]
	require.Len(t, events, 1)
	payload := events[0].(seasonevents.StageSolvedPayload)
	assert.Equal(t, sharedtypes.HouseVeridian, payload.House)
	assert.Equal(t, 10, payload.PointsAwarded)
	assert.Equal(t, 1, payload.SolvePosition)
}

func TestSubmitAnswerIncorrectPublishesNothing(t *testing.T) {
	service, bus := newTestService(t)
	ctx := context.Background()

	_, err := service.SetStageSolution(ctx, "raven", 10)
	require.NoError(t, err)

	got, err := service.SubmitAnswer(ctx, "u1", sharedtypes.HouseVeridian, "crow")
	require.NoError(t, err)
	require.True(t, got.IsSuccess())
	assert.Equal(t, seasondb.SubmitIncorrect, got.Success.Status)
	assert.Empty(t, bus.published[seasonevents.StageSolvedTopic])
}

func TestSubmitAnswerInvalidHouse(t *testing.T) {
	service, _ := newTestService(t)

	got, err := service.SubmitAnswer(context.Background(), "u1", "house_unknown", "raven")
	require.NoError(t, err)
	require.True(t, got.IsFailure())
	assert.Equal(t, ErrInvalidHouse.Error(), got.Failure.Reason)
}

func TestSetStageSolutionEmptyRejected(t *testing.T) {
	service, _ := newTestService(t)

	got, err := service.SetStageSolution(context.Background(), "   ", 10)
	require.NoError(t, err)
	require.True(t, got.IsFailure())
	assert.Equal(t, ErrEmptySolution.Error(), got.Failure.Reason)
}

func TestSetStageSolutionFrozenAfterSolve(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.SetStageSolution(ctx, "raven", 10)
	require.NoError(t, err)
	_, err = service.SubmitAnswer(ctx, "u1", sharedtypes.FeatheredHost, "raven")
	require.NoError(t, err)

	got, err := service.SetStageSolution(ctx, "crow", 10)
	require.NoError(t, err, "frozen stage is a domain failure, not an infrastructure error")
	require.True(t, got.IsFailure())
}

func TestAdvanceOperations(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	stage, err := service.AdvanceStage(ctx)
	require.NoError(t, err)
	require.True(t, stage.IsSuccess())
	assert.Equal(t, 2, stage.Success.StageID)
	assert.Equal(t, 1, stage.Success.SeasonID)

	season, err := service.AdvanceSeason(ctx)
	require.NoError(t, err)
	require.True(t, season.IsSuccess())
	assert.Equal(t, 2, season.Success.SeasonID)
	assert.Equal(t, 1, season.Success.StageID)
	assert.Equal(t, 1, service.SeasonStats(ctx).CurrentStage)
}
