// Package solver implements automated Sokoban solvers: exhaustive
// breadth-first search, heuristic A*, and simulated annealing, plus the
// Bot orchestrator that dispatches between them.
package solver

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

var Log = logrus.New()

// Solver is the shared contract of the three search algorithms. Solve
// returns the move list, or nil when no solution was found within budget.
// The annealing solver may return a best-effort move list that does not
// complete the level; callers must check completion independently.
type Solver interface {
	Solve() []sokoban.Direction
	Statistics() Statistics
}

// Statistics is a uniform post-run report. Fields not meaningful for an
// algorithm are left at their zero value.
type Statistics struct {
	Algorithm     string  `json:"algorithm"`
	Iterations    int     `json:"iterations"`
	VisitedStates int     `json:"visited_states"`
	SolutionFound bool    `json:"solution_found"`
	QueueTrims    int     `json:"queue_trims"`
	BestFitness   float64 `json:"best_fitness,omitempty"`
	CacheSize     int     `json:"cache_size,omitempty"`
}

// deadline converts a wall-clock budget into an absolute instant. The limit
// is checked once per iteration; cancellation is cooperative, not
// preemptive.
func deadline(limit time.Duration) time.Time {
	return time.Now().Add(limit)
}
