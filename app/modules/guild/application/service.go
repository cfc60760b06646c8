package guildservice

import (
	"context"
	"log/slog"

	guilddb "github.com/hearthvale/house-ledger/app/modules/guild/infrastructure/repositories"
	"github.com/hearthvale/house-ledger/app/shared/results"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GuildService implements the Service interface over the settings
// repository.
type GuildService struct {
	repo   guilddb.Repository
	logger *slog.Logger
	tracer trace.Tracer
}

// NewGuildService creates a new GuildService.
func NewGuildService(repo guilddb.Repository, logger *slog.Logger, tracer trace.Tracer) *GuildService {
	return &GuildService{repo: repo, logger: logger, tracer: tracer}
}

func (s *GuildService) withTelemetry(ctx context.Context, operationName string, op func(ctx context.Context) (Result, error)) (Result, error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.logger.InfoContext(ctx, operationName+" triggered",
		slog.String("operation", operationName),
	)

	result, err := op(ctx)
	if err != nil {
		span.RecordError(err)
	}
	return result, err
}

func failure(err error) Result {
	return results.FailureResult[SettingsResult, Failure](Failure{Reason: err.Error()})
}

func (s *GuildService) success(ctx context.Context) Result {
	return results.SuccessResult[SettingsResult, Failure](SettingsResult{Settings: s.repo.Get(ctx)})
}

// GetSettings returns a snapshot of the current settings.
func (s *GuildService) GetSettings(ctx context.Context) guilddb.Settings {
	return s.repo.Get(ctx)
}

// SetWeighting updates the weighting toggle and rounding mode.
func (s *GuildService) SetWeighting(ctx context.Context, enabled bool, rounding string) (Result, error) {
	return s.withTelemetry(ctx, "SetWeighting", func(ctx context.Context) (Result, error) {
		mode, ok := sharedtypes.ParseRoundingMode(rounding)
		if !ok {
			return failure(ErrInvalidRounding), nil
		}
		if err := s.repo.SetWeighting(ctx, enabled, mode); err != nil {
			return failure(err), err
		}
		return s.success(ctx), nil
	})
}

// SetHouseRoles replaces the role mapping for one house.
func (s *GuildService) SetHouseRoles(ctx context.Context, house sharedtypes.HouseKey, roles []sharedtypes.RoleID) (Result, error) {
	return s.withTelemetry(ctx, "SetHouseRoles", func(ctx context.Context) (Result, error) {
		if !house.IsValid() {
			return failure(ErrInvalidHouse), nil
		}
		if err := s.repo.SetHouseRoles(ctx, house, roles); err != nil {
			return failure(err), err
		}
		return s.success(ctx), nil
	})
}

// SetDisplay updates the live scoreboard message pointer.
func (s *GuildService) SetDisplay(ctx context.Context, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID) (Result, error) {
	return s.withTelemetry(ctx, "SetDisplay", func(ctx context.Context) (Result, error) {
		if err := s.repo.SetDisplay(ctx, channelID, messageID); err != nil {
			return failure(err), err
		}
		return s.success(ctx), nil
	})
}

// SetLogChannel updates the audit notification channel pointer.
func (s *GuildService) SetLogChannel(ctx context.Context, channelID sharedtypes.ChannelID) (Result, error) {
	return s.withTelemetry(ctx, "SetLogChannel", func(ctx context.Context) (Result, error) {
		if err := s.repo.SetLogChannel(ctx, channelID); err != nil {
			return failure(err), err
		}
		return s.success(ctx), nil
	})
}

// SetModRole updates the moderator role pointer.
func (s *GuildService) SetModRole(ctx context.Context, roleID sharedtypes.RoleID) (Result, error) {
	return s.withTelemetry(ctx, "SetModRole", func(ctx context.Context) (Result, error) {
		if err := s.repo.SetModRole(ctx, roleID); err != nil {
			return failure(err), err
		}
		return s.success(ctx), nil
	})
}

// ResolveHouse infers a member's house from role membership, first house in
// canonical order winning on ambiguity.
func (s *GuildService) ResolveHouse(ctx context.Context, roles []sharedtypes.RoleID) (sharedtypes.HouseKey, bool) {
	return s.repo.Get(ctx).ResolveHouse(roles)
}

var _ Service = (*GuildService)(nil)
