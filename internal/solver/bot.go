package solver

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

type Algorithm string

const (
	AlgorithmBFS       Algorithm = "bfs"
	AlgorithmAStar     Algorithm = "astar"
	AlgorithmAnnealing Algorithm = "sa"
)

// Options overrides an algorithm's default budgets. Zero values keep the
// defaults.
type Options struct {
	MaxIterations int
	TimeLimit     time.Duration
}

type algorithmInfo struct {
	Name          string
	Description   string
	Optimal       bool
	MaxIterations int
	TimeLimit     time.Duration
}

const defaultTimeLimit = 60 * time.Second

var algorithms = map[Algorithm]algorithmInfo{
	AlgorithmBFS: {
		Name:          "Breadth-First Search",
		Description:   "guarantees the shortest solution but may be slow on complex levels",
		Optimal:       true,
		MaxIterations: 4000,
		TimeLimit:     defaultTimeLimit,
	},
	AlgorithmAStar: {
		Name:          "A* Search",
		Description:   "fast, usually finds good solutions via heuristics",
		Optimal:       false,
		MaxIterations: 3000,
		TimeLimit:     defaultTimeLimit,
	},
	AlgorithmAnnealing: {
		Name:          "Simulated Annealing",
		Description:   "probabilistic search that can escape local optima",
		Optimal:       false,
		MaxIterations: 6000,
		TimeLimit:     defaultTimeLimit,
	},
}

// Algorithms lists the known algorithm identifiers in dispatch preference
// order (the AutoSolve order).
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmAStar, AlgorithmBFS, AlgorithmAnnealing}
}

// ParseAlgorithm validates an algorithm identifier from user input.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(s)
	if _, ok := algorithms[a]; !ok {
		return "", fmt.Errorf("unknown algorithm %q (known: bfs, astar, sa)", s)
	}
	return a, nil
}

// Bot configures and runs solvers, normalizing every attempt into a
// Result. Bot never mutates the level it is given; each solver works on a
// private clone.
type Bot struct {
	rnd *rand.Rand
}

func NewBot(rnd *rand.Rand) *Bot {
	return &Bot{rnd: rnd}
}

func (b *Bot) newSolver(level *sokoban.Level, algo Algorithm, iterations int, limit time.Duration) Solver {
	switch algo {
	case AlgorithmBFS:
		return NewBFS(level, iterations, limit)
	case AlgorithmAStar:
		return NewAStar(level, iterations, limit)
	default:
		return NewAnnealing(level, iterations, limit, b.rnd)
	}
}

// Solve runs one algorithm against a clone of the level. An unknown
// algorithm is a configuration error reported before any search starts.
// Panics inside a solver are converted into a failed Result; search
// exhaustion is a normal Result with Success == false.
func (b *Bot) Solve(level *sokoban.Level, algo Algorithm, opts *Options) (result Result, err error) {
	info, ok := algorithms[algo]
	if !ok {
		return Result{}, fmt.Errorf("unknown algorithm %q (known: bfs, astar, sa)", algo)
	}

	iterations := info.MaxIterations
	limit := info.TimeLimit
	if opts != nil {
		if opts.MaxIterations > 0 {
			iterations = opts.MaxIterations
		}
		if opts.TimeLimit > 0 {
			limit = opts.TimeLimit
		}
	}

	Log.WithFields(logrus.Fields{
		"algorithm":      info.Name,
		"max_iterations": iterations,
		"time_limit":     limit,
	}).Info("bot: starting solve")

	start := time.Now()
	result = Result{
		Algorithm: info.Name,
		Optimal:   info.Optimal,
		TimeLimit: limit.Seconds(),
	}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Moves = nil
			result.MoveCount = 0
			result.SolveTime = time.Since(start).Seconds()
			result.Error = fmt.Sprintf("solver failure: %v", r)
			Log.WithField("algorithm", info.Name).Error("bot: ", result.Error)
			err = nil
		}
	}()

	s := b.newSolver(level.Clone(), algo, iterations, limit)
	moves := s.Solve()
	stats := s.Statistics()

	result.Success = moves != nil
	result.Moves = moves
	result.MoveCount = len(moves)
	result.SolveTime = time.Since(start).Seconds()
	result.IterationsUsed = stats.Iterations

	if result.Success {
		Log.WithFields(logrus.Fields{
			"algorithm":  info.Name,
			"moves":      result.MoveCount,
			"solve_time": result.SolveTime,
		}).Info("bot: solve finished")
	} else {
		Log.WithFields(logrus.Fields{
			"algorithm":  info.Name,
			"iterations": stats.Iterations,
			"solve_time": result.SolveTime,
		}).Warn("bot: no solution within budget")
	}

	return result, nil
}

// AutoSolve tries A* first, then BFS, then simulated annealing, returning
// the first success or the last attempt's failure.
func (b *Bot) AutoSolve(level *sokoban.Level) Result {
	Log.WithFields(logrus.Fields{
		"size":  level.Width * level.Height,
		"boxes": level.BoxCount(),
	}).Info("bot: auto-selecting algorithm")

	var last Result
	for _, algo := range Algorithms() {
		result, err := b.Solve(level, algo, nil)
		if err != nil {
			continue
		}
		if result.Success {
			return result
		}
		last = result
	}
	return last
}

// Compare runs the given algorithms (all of them when nil) on independent
// copies of the same initial state. Successful results are ranked by move
// count, best first; failures follow in run order.
func (b *Bot) Compare(level *sokoban.Level, algos []Algorithm) ([]Result, error) {
	if len(algos) == 0 {
		algos = Algorithms()
	}

	results := make([]Result, 0, len(algos))
	for _, algo := range algos {
		result, err := b.Solve(level, algo, nil)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Success != results[j].Success {
			return results[i].Success
		}
		return results[i].Success && results[i].MoveCount < results[j].MoveCount
	})

	if len(results) > 0 && results[0].Success {
		Log.WithFields(logrus.Fields{
			"algorithm": results[0].Algorithm,
			"moves":     results[0].MoveCount,
		}).Info("bot: comparison winner")
	}

	return results, nil
}
