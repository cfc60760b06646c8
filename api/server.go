// Package api exposes the full command surface over HTTP. The chat
// frontend drives these endpoints; everything it can do maps to one
// route here.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	guildservice "github.com/hearthvale/house-ledger/app/modules/guild/application"
	puzzleservice "github.com/hearthvale/house-ledger/app/modules/puzzle/application"
	scoringservice "github.com/hearthvale/house-ledger/app/modules/scoring/application"
	seasonservice "github.com/hearthvale/house-ledger/app/modules/season/application"
)

// Server holds the module services behind the HTTP surface.
type Server struct {
	guild   guildservice.Service
	scoring scoringservice.Service
	season  seasonservice.Service
	puzzle  puzzleservice.Service
	logger  *slog.Logger
}

// NewServer creates a new Server.
func NewServer(
	guild guildservice.Service,
	scoring scoringservice.Service,
	season seasonservice.Service,
	puzzle puzzleservice.Service,
	logger *slog.Logger,
) *Server {
	return &Server{
		guild:   guild,
		scoring: scoring,
		season:  season,
		puzzle:  puzzle,
		logger:  logger,
	}
}

// Router builds the chi router for the command surface.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Mount("/settings", s.settingsRoutes())
	r.Mount("/scores", s.scoreRoutes())
	r.Mount("/season", s.seasonRoutes())
	r.Mount("/puzzles", s.puzzleRoutes())
	return r
}
