package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	puzzleservice "github.com/hearthvale/house-ledger/app/modules/puzzle/application"
	puzzledb "github.com/hearthvale/house-ledger/app/modules/puzzle/infrastructure/repositories"
	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

type puzzleChannelsDto struct {
	VeridianChannel  sharedtypes.ChannelID `json:"house_veridian_channel"`
	FeatheredChannel sharedtypes.ChannelID `json:"feathered_host_channel"`
}

type channelAnswerDto struct {
	ChannelID sharedtypes.ChannelID `json:"channel_id"`
	UserID    sharedtypes.UserID    `json:"user_id"`
	House     sharedtypes.HouseKey  `json:"house"`
	Answer    string                `json:"answer"`
}

// puzzleView is the outward shape of a puzzle; the solution never leaves
// the process.
type puzzleView struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Content          string                `json:"puzzle_content"`
	Points           int                   `json:"points"`
	Hint             string                `json:"hint,omitempty"`
	ImageURL         string                `json:"image_url,omitempty"`
	Active           bool                  `json:"active"`
	SolvedBy         *puzzledb.SolveRecord `json:"solved_by"`
	VeridianChannel  sharedtypes.ChannelID `json:"house_veridian_channel"`
	FeatheredChannel sharedtypes.ChannelID `json:"feathered_host_channel"`
	Timed            bool                  `json:"timed"`
	TimedConfig      *puzzledb.TimedConfig `json:"timed_config,omitempty"`
}

func viewOf(p puzzledb.Puzzle) puzzleView {
	return puzzleView{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		Content:          p.Content,
		Points:           p.Points,
		Hint:             p.Hint,
		ImageURL:         p.ImageURL,
		Active:           p.Active,
		SolvedBy:         p.SolvedBy,
		VeridianChannel:  p.VeridianChannel,
		FeatheredChannel: p.FeatheredChannel,
		Timed:            p.Timed,
		TimedConfig:      p.TimedConfig,
	}
}

func viewsOf(puzzles []puzzledb.Puzzle) []puzzleView {
	out := make([]puzzleView, 0, len(puzzles))
	for _, p := range puzzles {
		out = append(out, viewOf(p))
	}
	return out
}

func (s *Server) puzzleRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", s.createPuzzle)
	r.Get("/", s.listPuzzles)
	r.Get("/active", s.activePuzzles)
	r.Get("/{puzzleID}", s.getPuzzle)
	r.Put("/{puzzleID}/channels", s.setPuzzleChannels)
	r.Post("/{puzzleID}/activate", s.activatePuzzle)
	r.Post("/{puzzleID}/activate-timed", s.activateTimedPuzzle)
	r.Post("/{puzzleID}/deactivate", s.deactivatePuzzle)
	r.Post("/{puzzleID}/answers", s.submitPuzzleAnswer)
	r.Post("/answers", s.submitChannelAnswer)
	r.Post("/sweep", s.sweepTimers)
	return r
}

func (s *Server) createPuzzle(w http.ResponseWriter, r *http.Request) {
	var input puzzleservice.CreateInput
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.puzzle.CreatePuzzle(r.Context(), input)
	writeResult(w, res, err)
}

func (s *Server) listPuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := s.puzzle.ListPuzzles(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, viewsOf(puzzles))
}

func (s *Server) activePuzzles(w http.ResponseWriter, r *http.Request) {
	puzzles, err := s.puzzle.ActivePuzzles(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, viewsOf(puzzles))
}

func (s *Server) getPuzzle(w http.ResponseWriter, r *http.Request) {
	puzzle, err := s.puzzle.GetPuzzle(r.Context(), chi.URLParam(r, "puzzleID"))
	if err != nil {
		if errors.Is(err, puzzledb.ErrNotFound) {
			respondError(w, http.StatusNotFound, "puzzle not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, viewOf(puzzle))
}

func (s *Server) setPuzzleChannels(w http.ResponseWriter, r *http.Request) {
	var input puzzleChannelsDto
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.puzzle.SetChannels(r.Context(), chi.URLParam(r, "puzzleID"),
		input.VeridianChannel, input.FeatheredChannel)
	writeResult(w, res, err)
}

func (s *Server) activatePuzzle(w http.ResponseWriter, r *http.Request) {
	res, err := s.puzzle.Activate(r.Context(), chi.URLParam(r, "puzzleID"))
	writeResult(w, res, err)
}

func (s *Server) activateTimedPuzzle(w http.ResponseWriter, r *http.Request) {
	var input puzzleservice.TimedActivation
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.puzzle.ActivateTimed(r.Context(), chi.URLParam(r, "puzzleID"), input)
	writeResult(w, res, err)
}

func (s *Server) deactivatePuzzle(w http.ResponseWriter, r *http.Request) {
	res, err := s.puzzle.Deactivate(r.Context(), chi.URLParam(r, "puzzleID"))
	writeResult(w, res, err)
}

func (s *Server) submitPuzzleAnswer(w http.ResponseWriter, r *http.Request) {
	var input answerDto
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.puzzle.SubmitAnswer(r.Context(), chi.URLParam(r, "puzzleID"),
		input.UserID, input.House, input.Answer)
	writeResult(w, res, err)
}

func (s *Server) submitChannelAnswer(w http.ResponseWriter, r *http.Request) {
	var input channelAnswerDto
	if !decodeBody(w, r, &input) {
		return
	}
	res, err := s.puzzle.SubmitAnswerForChannel(r.Context(), input.ChannelID,
		input.UserID, input.House, input.Answer)
	writeResult(w, res, err)
}

func (s *Server) sweepTimers(w http.ResponseWriter, r *http.Request) {
	expired, err := s.puzzle.ExpireTimers(r.Context(), time.Now().UTC())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if expired == nil {
		expired = []puzzledb.ExpiredSlot{}
	}
	respondJSON(w, http.StatusOK, expired)
}
