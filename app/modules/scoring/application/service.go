package scoringservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/hearthvale/house-ledger/app/eventbus"
	guildservice "github.com/hearthvale/house-ledger/app/modules/guild/application"
	scoringdb "github.com/hearthvale/house-ledger/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ScoreService implements the Service interface.
type ScoreService struct {
	repo     scoringdb.Repository
	guild    guildservice.Service
	eventBus eventbus.EventBus
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewScoreService creates a new ScoreService.
func NewScoreService(
	repo scoringdb.Repository,
	guild guildservice.Service,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	tracer trace.Tracer,
) *ScoreService {
	return &ScoreService{
		repo:     repo,
		guild:    guild,
		eventBus: eventBus,
		logger:   logger,
		tracer:   tracer,
		now:      time.Now,
	}
}

func (s *ScoreService) withTelemetry(ctx context.Context, operationName string, in AddPointsInput, op func(ctx context.Context) (Result, error)) (Result, error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("target", string(in.Target)),
		attribute.String("target_id", in.TargetID),
		attribute.Int("base_points", in.BasePoints),
	))
	defer span.End()

	s.logger.InfoContext(ctx, operationName+" triggered",
		slog.String("operation", operationName),
		slog.String("target", string(in.Target)),
		slog.String("target_id", in.TargetID),
		slog.Int("base_points", in.BasePoints),
		slog.Bool("weighted", in.Weighted),
	)

	result, err := op(ctx)
	if err != nil {
		span.RecordError(err)
	}
	return result, err
}

// HouseTotals returns both house totals.
func (s *ScoreService) HouseTotals(ctx context.Context) map[sharedtypes.HouseKey]int {
	return s.repo.HouseTotals(ctx)
}

// PlayerTotal returns a player's total, zero for unknown players.
func (s *ScoreService) PlayerTotal(ctx context.Context, userID sharedtypes.UserID) int {
	return s.repo.PlayerTotal(ctx, userID)
}

// TopPlayers returns the leaderboard, descending by total with
// first-score-order ties.
func (s *ScoreService) TopPlayers(ctx context.Context, limit int) []scoringdb.PlayerTotal {
	return s.repo.TopPlayers(ctx, limit)
}

// Events returns the append-only audit log.
func (s *ScoreService) Events(ctx context.Context) []scoringdb.AuditEvent {
	return s.repo.Events(ctx)
}

var _ Service = (*ScoreService)(nil)
