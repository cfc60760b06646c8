package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

type solutionDto struct {
	Solution string `json:"solution"`
	Points   int    `json:"points"`
}

type answerDto struct {
	UserID sharedtypes.UserID   `json:"user_id"`
	House  sharedtypes.HouseKey `json:"house"`
	Answer string               `json:"answer"`
}

func (s *Server) seasonRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.seasonStats)
	r.Get("/stage", s.stageStats)
	r.Put("/stage/solution", s.setStageSolution)
	r.Post("/stage/answers", s.submitStageAnswer)
	r.Post("/stage/advance", s.advanceStage)
	r.Post("/advance", s.advanceSeason)
	return r
}

func (s *Server) seasonStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.season.SeasonStats(r.Context()))
}

func (s *Server) stageStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.season.StageStats(r.Context()))
}

func (s *Server) setStageSolution(w http.ResponseWriter, r *http.Request) {
	var input solutionDto
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.season.SetStageSolution(r.Context(), input.Solution, input.Points)
	writeResult(w, res, err)
}

func (s *Server) submitStageAnswer(w http.ResponseWriter, r *http.Request) {
	var input answerDto
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.season.SubmitAnswer(r.Context(), input.UserID, input.House, input.Answer)
	writeResult(w, res, err)
}

func (s *Server) advanceStage(w http.ResponseWriter, r *http.Request) {
	res, err := s.season.AdvanceStage(r.Context())
	writeResult(w, res, err)
}

func (s *Server) advanceSeason(w http.ResponseWriter, r *http.Request) {
	res, err := s.season.AdvanceSeason(r.Context())
	writeResult(w, res, err)
}
