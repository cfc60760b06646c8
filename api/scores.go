package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	scoringservice "github.com/hearthvale/house-ledger/app/modules/scoring/application"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

type playerTotalDto struct {
	UserID sharedtypes.UserID `json:"user_id"`
	Total  int                `json:"total"`
}

func (s *Server) scoreRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/award", s.awardPoints)
	r.Post("/remove", s.removePoints)
	r.Get("/houses", s.houseTotals)
	r.Get("/players/{userID}", s.playerTotal)
	r.Get("/leaderboard", s.leaderboard)
	r.Get("/events", s.scoreEvents)
	return r
}

func (s *Server) awardPoints(w http.ResponseWriter, r *http.Request) {
	var input scoringservice.AddPointsInput
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.scoring.AddPoints(r.Context(), input)
	writeResult(w, res, err)
}

func (s *Server) removePoints(w http.ResponseWriter, r *http.Request) {
	var input scoringservice.AddPointsInput
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.scoring.RemovePoints(r.Context(), input)
	writeResult(w, res, err)
}

func (s *Server) houseTotals(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.scoring.HouseTotals(r.Context()))
}

func (s *Server) playerTotal(w http.ResponseWriter, r *http.Request) {
	userID := sharedtypes.UserID(chi.URLParam(r, "userID"))
	respondJSON(w, http.StatusOK, playerTotalDto{
		UserID: userID,
		Total:  s.scoring.PlayerTotal(r.Context(), userID),
	})
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	respondJSON(w, http.StatusOK, s.scoring.TopPlayers(r.Context(), limit))
}

func (s *Server) scoreEvents(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.scoring.Events(r.Context()))
}
