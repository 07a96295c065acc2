package solver

import "github.com/vancomm/sokoban-server/internal/sokoban"

// Result is the uniform report returned by the Bot for every solve attempt.
// A failed search is a normal Result with Success == false, never an error.
type Result struct {
	Success        bool                `json:"success"`
	Algorithm      string              `json:"algorithm"`
	Moves          []sokoban.Direction `json:"moves"`
	MoveCount      int                 `json:"move_count"`
	SolveTime      float64             `json:"solve_time"`
	Optimal        bool                `json:"optimal"`
	IterationsUsed int                 `json:"iterations_used"`
	TimeLimit      float64             `json:"time_limit"`
	Error          string              `json:"error,omitempty"`
}
