package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Run starts the message router, the timer sweep, and the HTTP server,
// then blocks until the context is canceled. Shutdown drains the HTTP
// server before closing the rest.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)

	go func() {
		if err := a.router.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait until the subscriptions are live before accepting commands.
	select {
	case <-a.router.Running():
	case <-ctx.Done():
		return ctx.Err()
	}

	go a.runSweep(ctx)

	go func() {
		a.logger.InfoContext(ctx, "http server listening",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	if err := a.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// runSweep expires overdue puzzle timers on the configured interval.
func (a *App) runSweep(ctx context.Context) {
	ticker := time.NewTicker(a.Config.Puzzle.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := a.Puzzle.Service.ExpireTimers(ctx, now.UTC()); err != nil {
				a.logger.ErrorContext(ctx, "timer sweep failed", slog.Any("error", err))
			}
		}
	}
}
