package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hearthvale/house-ledger/app/eventbus"
	guildservice "github.com/hearthvale/house-ledger/app/modules/guild/application"
	guilddb "github.com/hearthvale/house-ledger/app/modules/guild/infrastructure/repositories"
	puzzleservice "github.com/hearthvale/house-ledger/app/modules/puzzle/application"
	puzzledb "github.com/hearthvale/house-ledger/app/modules/puzzle/infrastructure/repositories"
	scoringservice "github.com/hearthvale/house-ledger/app/modules/scoring/application"
	scoringdb "github.com/hearthvale/house-ledger/app/modules/scoring/infrastructure/repositories"
	seasonservice "github.com/hearthvale/house-ledger/app/modules/season/application"
	seasondb "github.com/hearthvale/house-ledger/app/modules/season/infrastructure/repositories"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"github.com/hearthvale/house-ledger/internal/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type nopBus struct{}

func (nopBus) Publish(context.Context, string, any) error { return nil }
func (nopBus) Subscriber() message.Subscriber             { return nil }
func (nopBus) Close() error                               { return nil }

var _ eventbus.EventBus = nopBus{}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)
	tracer := noop.NewTracerProvider().Tracer("test")
	bus := nopBus{}
	store := docstore.NewMemStore()

	guildRepo, err := guilddb.NewSettingsRepository(ctx, store)
	require.NoError(t, err)
	guild := guildservice.NewGuildService(guildRepo, logger, tracer)

	scoreRepo, err := scoringdb.NewScoreRepository(ctx, store)
	require.NoError(t, err)
	scoring := scoringservice.NewScoreService(scoreRepo, guild, bus, logger, tracer)

	seasonRepo, err := seasondb.NewSeasonRepository(ctx, store)
	require.NoError(t, err)
	season := seasonservice.NewSeasonService(seasonRepo, bus, logger, tracer)

	puzzleRepo, err := puzzledb.NewPuzzleRepository(ctx, store)
	require.NoError(t, err)
	puzzle := puzzleservice.NewPuzzleService(puzzleRepo, bus, logger, tracer)

	return NewServer(guild, scoring, season, puzzle, logger).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPut, "/settings/weighting", weightingDto{Enabled: true, Rounding: "floor"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/settings/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var settings guilddb.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.True(t, settings.Weighting.Enabled)
	assert.Equal(t, sharedtypes.RoundingFloor, settings.Weighting.Rounding)
}

func TestSetWeightingRejectsUnknownMode(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPut, "/settings/weighting", weightingDto{Enabled: true, Rounding: "banker"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAwardPointsAndTotals(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/scores/award", scoringservice.AddPointsInput{
		ActorID:    "mod-1",
		Target:     sharedtypes.TargetHouse,
		TargetID:   string(sharedtypes.HouseVeridian),
		BasePoints: 12,
		Reason:     "trivia night",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/scores/houses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var totals map[sharedtypes.HouseKey]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.Equal(t, 12, totals[sharedtypes.HouseVeridian])
	assert.Equal(t, 0, totals[sharedtypes.FeatheredHost])
}

func TestAwardPointsUnknownHouseIsUnprocessable(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/scores/award", scoringservice.AddPointsInput{
		ActorID:    "mod-1",
		Target:     sharedtypes.TargetHouse,
		TargetID:   "house_unknown",
		BasePoints: 12,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/scores/award", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboardLimitValidation(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/scores/leaderboard?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/scores/leaderboard?limit=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSeasonAnswerFlow(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPut, "/season/stage/solution", solutionDto{Solution: "raven", Points: 10})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodPost, "/season/stage/answers", answerDto{
		UserID: "u1",
		House:  sharedtypes.FeatheredHost,
		Answer: "RAVEN",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var outcome seasondb.SubmitOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, seasondb.SubmitCorrect, outcome.Status)
	assert.Equal(t, 10, outcome.PointsAwarded)

	rec = doJSON(t, h, http.MethodPost, "/season/stage/advance", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPuzzleFlowHidesSolution(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/puzzles/", puzzleservice.CreateInput{
		ID:       "p1",
		Title:    "The Locked Aviary",
		Solution: "a piano",
		Points:   25,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/puzzles/p1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "a piano")
	assert.NotContains(t, rec.Body.String(), "\"solution\"")

	rec = doJSON(t, h, http.MethodPost, "/puzzles/p1/activate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/puzzles/p1/answers", answerDto{
		UserID: "u1",
		House:  sharedtypes.HouseVeridian,
		Answer: "a piano",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var outcome puzzledb.SubmitOutcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, puzzledb.SubmitCorrect, outcome.Status)
	assert.Equal(t, 25, outcome.PointsAwarded)

	rec = doJSON(t, h, http.MethodGet, "/puzzles/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSweepEndpointReturnsEmptyList(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/puzzles/sweep", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
