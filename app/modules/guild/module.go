// Package guild wires the guild settings module together.
package guild

import (
	"context"
	"fmt"
	"log/slog"

	guildservice "github.com/hearthvale/house-ledger/app/modules/guild/application"
	guilddb "github.com/hearthvale/house-ledger/app/modules/guild/infrastructure/repositories"
	"github.com/hearthvale/house-ledger/internal/docstore"
	"go.opentelemetry.io/otel/trace"
)

// Module is the assembled guild settings module.
type Module struct {
	Service guildservice.Service
}

// NewModule loads the settings document and builds the service.
func NewModule(ctx context.Context, store docstore.Store, logger *slog.Logger, tracer trace.Tracer) (*Module, error) {
	repo, err := guilddb.NewSettingsRepository(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("init guild module: %w", err)
	}
	return &Module{
		Service: guildservice.NewGuildService(repo, logger, tracer),
	}, nil
}
