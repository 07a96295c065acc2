package solver

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

// Annealing parameters. The cooling schedule applies the rate once every
// maxIterations/100 iterations until the floor is reached.
const (
	initialTemperature = 100.0
	finalTemperature   = 0.001
	coolingRate        = 0.995
	maxStaleIterations = 5000

	// solvedFitness is the sentinel for a completed board; the main loop
	// treats reaching it as immediate success.
	solvedFitness = 10000.0
)

// Annealing optimizes a single move sequence by fitness rather than
// searching the state space. It is the one solver allowed to return a move
// list that does not complete the level: if no solution is reached, the
// best-known partial sequence comes back and the caller must check
// completion itself.
type Annealing struct {
	initial       *sokoban.Level
	maxIterations int
	timeLimit     time.Duration
	rnd           *rand.Rand

	docks []sokoban.Position
	cache map[sokoban.BoxKey]float64

	best        saState
	bestFitness float64
	iterations  int
	found       bool
}

type saState struct {
	moves   []sokoban.Direction
	fitness float64
}

func NewAnnealing(initial *sokoban.Level, maxIterations int, timeLimit time.Duration, rnd *rand.Rand) *Annealing {
	return &Annealing{
		initial:       initial,
		maxIterations: maxIterations,
		timeLimit:     timeLimit,
		rnd:           rnd,
		docks:         initial.DockPositions(),
		cache:         make(map[sokoban.BoxKey]float64),
		bestFitness:   math.Inf(-1),
	}
}

func (s *Annealing) Solve() []sokoban.Direction {
	due := deadline(s.timeLimit)

	current := saState{moves: nil, fitness: s.fitness(s.initial)}
	s.best = current
	s.bestFitness = current.fitness

	temperature := initialTemperature
	stale := 0
	coolEvery := max(1, s.maxIterations/100)

	for s.iterations < s.maxIterations &&
		temperature > finalTemperature &&
		stale < maxStaleIterations {

		if time.Now().After(due) {
			Log.WithFields(logrus.Fields{
				"iterations": s.iterations,
				"time_limit": s.timeLimit,
			}).Warn("sa: time limit exceeded")
			break
		}
		s.iterations++

		if current.fitness >= solvedFitness {
			s.found = true
			Log.WithFields(logrus.Fields{
				"iterations": s.iterations,
				"moves":      len(current.moves),
			}).Debug("sa: solution found")
			return nonNil(current.moves)
		}

		neighbor, ok := s.randomNeighbor(current)
		if !ok {
			// Dead end: restart from a random prefix of the best path.
			if len(s.best.moves) > 5 {
				cut := s.rnd.IntN(len(s.best.moves)/2 + 1)
				moves := append([]sokoban.Direction(nil), s.best.moves[:cut]...)
				current = saState{moves: moves, fitness: s.fitness(s.applyMoves(moves))}
			}
			stale++
			continue
		}

		if s.rnd.Float64() < acceptanceProbability(current.fitness, neighbor.fitness, temperature) {
			current = neighbor
			if neighbor.fitness > s.bestFitness {
				s.best = neighbor
				s.bestFitness = neighbor.fitness
				stale = 0
				Log.WithFields(logrus.Fields{
					"iterations": s.iterations,
					"fitness":    s.bestFitness,
				}).Debug("sa: new best fitness")
			} else {
				stale++
			}
		} else {
			stale++
		}

		if s.iterations%coolEvery == 0 {
			temperature *= coolingRate
		}
	}

	Log.WithFields(logrus.Fields{
		"iterations":   s.iterations,
		"best_fitness": s.bestFitness,
	}).Debug("sa: budget exhausted, returning best-effort sequence")

	// Best-effort contract: a partial sequence is a positive result here.
	if len(s.best.moves) > 0 {
		return s.best.moves
	}
	return nil
}

// randomNeighbor extends the current sequence by one legal move, trying up
// to three shuffled directions.
func (s *Annealing) randomNeighbor(current saState) (saState, bool) {
	board := s.applyMoves(current.moves)

	dirs := []sokoban.Direction{sokoban.Up, sokoban.Down, sokoban.Left, sokoban.Right}
	s.rnd.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	for _, d := range dirs[:3] {
		next := board.Clone()
		if !next.MoveBot(d) {
			continue
		}
		moves := make([]sokoban.Direction, len(current.moves)+1)
		copy(moves, current.moves)
		moves[len(current.moves)] = d
		return saState{moves: moves, fitness: s.fitness(next)}, true
	}
	return saState{}, false
}

func (s *Annealing) applyMoves(moves []sokoban.Direction) *sokoban.Level {
	board := s.initial.Clone()
	for _, d := range moves {
		if !board.MoveBot(d) {
			break
		}
	}
	return board
}

// acceptanceProbability is 1 for a non-worsening move and exp(Δ/T)
// otherwise, so worse moves pass more easily while the system is hot.
func acceptanceProbability(current, next, temperature float64) float64 {
	if next > current {
		return 1.0
	}
	if temperature <= 0 {
		return 0.0
	}
	return math.Exp((next - current) / temperature)
}

func (s *Annealing) Statistics() Statistics {
	return Statistics{
		Algorithm:     "Simulated Annealing",
		Iterations:    s.iterations,
		SolutionFound: s.found,
		BestFitness:   s.bestFitness,
		CacheSize:     len(s.cache),
	}
}
