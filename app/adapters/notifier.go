// Package adapters holds outbound adapters that react to published
// domain events. The chat frontend is out of scope, so the notifier
// renders announcements as structured log lines addressed at the
// configured log channel.
package adapters

import (
	"context"
	"log/slog"

	guildservice "github.com/hearthvale/house-ledger/app/modules/guild/application"
	puzzleevents "github.com/hearthvale/house-ledger/app/modules/puzzle/domain/events"
	scoringevents "github.com/hearthvale/house-ledger/app/modules/scoring/domain/events"
)

// Notifier announces score changes and puzzle expiries.
type Notifier struct {
	guild  guildservice.Service
	logger *slog.Logger
}

// NewNotifier creates a new Notifier.
func NewNotifier(guild guildservice.Service, logger *slog.Logger) *Notifier {
	return &Notifier{guild: guild, logger: logger}
}

func (n *Notifier) logChannel(ctx context.Context) string {
	return string(n.guild.GetSettings(ctx).LogChannelID)
}

// HandleScoreUpdated announces one ledger application.
func (n *Notifier) HandleScoreUpdated(ctx context.Context, payload *scoringevents.ScoreUpdatedPayload) error {
	n.logger.InfoContext(ctx, "score updated",
		slog.String("log_channel", n.logChannel(ctx)),
		slog.String("event_id", payload.EventID),
		slog.String("actor_id", string(payload.ActorID)),
		slog.String("target", string(payload.Target)),
		slog.String("target_id", payload.TargetID),
		slog.Int("house_points", payload.HousePointsAwarded),
		slog.Int("player_points", payload.PlayerPointsAwarded),
		slog.String("reason", payload.Reason),
	)
	return nil
}

// HandlePuzzleExpired announces a house window closing unsolved.
func (n *Notifier) HandlePuzzleExpired(ctx context.Context, payload *puzzleevents.HouseExpiredPayload) error {
	n.logger.InfoContext(ctx, "puzzle window expired unsolved",
		slog.String("log_channel", n.logChannel(ctx)),
		slog.String("puzzle_id", payload.PuzzleID),
		slog.String("title", payload.Title),
		slog.String("house", string(payload.House)),
	)
	return nil
}
