package seasondb

import (
	"fmt"
	"time"

	sharedtypes "github.com/hearthvale/house-ledger/app/shared/types"
)

// DefaultStagePoints is the point value a stage carries unless the solution
// setter overrides it.
const DefaultStagePoints = 10

// Submission is one answer attempt, recorded for audit whether or not it
// was correct.
type Submission struct {
	UserID    sharedtypes.UserID   `json:"user_id"`
	House     sharedtypes.HouseKey `json:"house_key"`
	Answer    string               `json:"answer"`
	Timestamp time.Time            `json:"timestamp"`
	Correct   bool                 `json:"correct"`
}

// Solver is one house's solve credit for a stage. Each house appears at
// most once; SolvePosition is 1-indexed insertion order.
type Solver struct {
	UserID        sharedtypes.UserID   `json:"user_id"`
	House         sharedtypes.HouseKey `json:"house_key"`
	Timestamp     time.Time            `json:"timestamp"`
	PointsAwarded int                  `json:"points_awarded"`
	SolvePosition int                  `json:"solve_position"`
}

// Stage is a single riddle within a season.
type Stage struct {
	Name        string       `json:"name"`
	Solution    string       `json:"solution"`
	Points      int          `json:"points"`
	Submissions []Submission `json:"submissions"`
	Solvers     []Solver     `json:"solvers"`
}

// Season holds sequential stages and season-level counters. Map keys are
// stringified stage IDs, matching the persisted document shape.
type Season struct {
	Name             string            `json:"name"`
	StartDate        *time.Time        `json:"start_date"`
	EndDate          *time.Time        `json:"end_date"`
	TotalSubmissions int               `json:"total_submissions"`
	Stages           map[string]*Stage `json:"stages"`
	CurrentStage     int               `json:"current_stage"`
}

// SeasonState is the persisted season_state document.
type SeasonState struct {
	CurrentSeason int                `json:"current_season"`
	Seasons       map[string]*Season `json:"seasons"`
}

func newStage(id int) *Stage {
	return &Stage{
		Name:   fmt.Sprintf("Stage %d", id),
		Points: DefaultStagePoints,
	}
}

func newSeason(id int, start *time.Time) *Season {
	return &Season{
		Name:         fmt.Sprintf("Season %d", id),
		StartDate:    start,
		Stages:       map[string]*Stage{"1": newStage(1)},
		CurrentStage: 1,
	}
}

// DefaultSeasonState is the self-heal payload: season 1, stage 1, nothing
// solved.
func DefaultSeasonState() SeasonState {
	return SeasonState{
		CurrentSeason: 1,
		Seasons:       map[string]*Season{"1": newSeason(1, nil)},
	}
}

// solveAward prices a solve by position: the first house earns the full
// stage points, the second earns half rounded down. Only two houses exist,
// so no later position occurs.
func solveAward(stagePoints, position int) int {
	if position == 1 {
		return stagePoints
	}
	return stagePoints * 5 / 10
}

// SubmitStatus classifies the outcome of an answer submission.
type SubmitStatus string

const (
	SubmitCorrect       SubmitStatus = "correct"
	SubmitIncorrect     SubmitStatus = "incorrect"
	SubmitNoSolution    SubmitStatus = "no_solution"
	SubmitAlreadySolved SubmitStatus = "already_solved"
)

// SubmitOutcome reports what a submission did. PointsAwarded is the value
// the caller is responsible for crediting; this module never touches the
// score ledger.
type SubmitOutcome struct {
	Status        SubmitStatus         `json:"status"`
	SeasonID      int                  `json:"season_id"`
	StageID       int                  `json:"stage_id"`
	StageName     string               `json:"stage_name"`
	House         sharedtypes.HouseKey `json:"house"`
	SolvePosition int                  `json:"solve_position,omitempty"`
	PointsAwarded int                  `json:"points_awarded,omitempty"`
	Timestamp     time.Time            `json:"timestamp"`
}

// StageStats summarizes the current stage.
type StageStats struct {
	StageName          string `json:"stage_name"`
	TotalSubmissions   int    `json:"total_submissions"`
	CorrectSubmissions int    `json:"correct_submissions"`
	UniqueSolvers      int    `json:"unique_solvers"`
	HasSolution        bool   `json:"has_solution"`
	Completed          bool   `json:"completed"`
	Points             int    `json:"points"`
}

// SeasonStats summarizes the current season.
type SeasonStats struct {
	SeasonName       string `json:"season_name"`
	TotalSubmissions int    `json:"total_submissions"`
	CurrentStage     int    `json:"current_stage"`
	TotalStages      int    `json:"total_stages"`
}
