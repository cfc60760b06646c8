// Package app assembles the ledger: document store, event bus, the four
// modules, the notification adapter, and the HTTP command surface.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/hearthvale/house-ledger/api"
	"github.com/hearthvale/house-ledger/app/adapters"
	"github.com/hearthvale/house-ledger/app/eventbus"
	"github.com/hearthvale/house-ledger/app/modules/guild"
	"github.com/hearthvale/house-ledger/app/modules/puzzle"
	"github.com/hearthvale/house-ledger/app/modules/scoring"
	"github.com/hearthvale/house-ledger/app/modules/season"
	"github.com/hearthvale/house-ledger/config"
	"github.com/hearthvale/house-ledger/internal/docstore"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// App is the assembled process.
type App struct {
	Config *config.Config

	Guild   *guild.Module
	Scoring *scoring.Module
	Season  *season.Module
	Puzzle  *puzzle.Module

	store      docstore.Store
	bus        eventbus.EventBus
	router     *message.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// NewApp wires the application from configuration.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	bus := eventbus.New(logger)
	tracer := otel.Tracer("house-ledger")

	router, err := newMessageRouter(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}

	a := &App{
		Config: cfg,
		store:  store,
		bus:    bus,
		router: router,
		logger: logger,
	}

	if err := a.initModules(ctx, tracer); err != nil {
		return nil, err
	}

	server := api.NewServer(
		a.Guild.Service,
		a.Scoring.Service,
		a.Season.Service,
		a.Puzzle.Service,
		logger,
	)
	a.httpServer = &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: server.Router(),
	}
	return a, nil
}

func (a *App) initModules(ctx context.Context, tracer trace.Tracer) error {
	guildModule, err := guild.NewModule(ctx, a.store, a.logger, tracer)
	if err != nil {
		return err
	}
	scoringModule, err := scoring.NewModule(ctx, a.store, guildModule.Service, a.bus, a.router, a.logger, tracer)
	if err != nil {
		return err
	}
	seasonModule, err := season.NewModule(ctx, a.store, a.bus, a.logger, tracer)
	if err != nil {
		return err
	}
	puzzleModule, err := puzzle.NewModule(ctx, a.store, a.bus, a.logger, tracer)
	if err != nil {
		return err
	}

	notifier := adapters.NewNotifier(guildModule.Service, a.logger)
	adapters.Configure(a.router, a.bus, notifier, a.logger, tracer)

	a.Guild = guildModule
	a.Scoring = scoringModule
	a.Season = seasonModule
	a.Puzzle = puzzleModule
	return nil
}

func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (docstore.Store, error) {
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		store, err := docstore.NewBunStore(ctx, cfg.Storage.PostgresDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres store: %w", err)
		}
		return store, nil
	default:
		store, err := docstore.NewJSONStore(cfg.Storage.DataDir, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize json store: %w", err)
		}
		return store, nil
	}
}

// Close releases the bus and any closable store backend.
func (a *App) Close() error {
	var firstErr error
	if err := a.bus.Close(); err != nil {
		firstErr = err
	}
	if closer, ok := a.store.(io.Closer); ok {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
