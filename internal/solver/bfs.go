package solver

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

// Queue-trimming thresholds. Empirically chosen: past the limit the oldest
// prefix of the frontier is kept and the rest dropped, bounding memory at
// the cost of completeness. Tunable per solver instance.
const (
	defaultQueueLimit = 100_000
	defaultQueueKeep  = 75_000
)

// BFS explores the state space level by level. All edges cost 1, so the
// first completed state carries a minimum-length move list; this is the one
// solver with an optimality guarantee.
type BFS struct {
	initial       *sokoban.Level
	maxIterations int
	timeLimit     time.Duration

	// QueueLimit/QueueKeep bound frontier memory. When the frontier grows
	// past QueueLimit it is truncated to its first QueueKeep entries,
	// sacrificing completeness.
	QueueLimit int
	QueueKeep  int

	visited    map[sokoban.StateKey]struct{}
	iterations int
	queueTrims int
	found      bool
}

type bfsNode struct {
	level *sokoban.Level
	moves []sokoban.Direction
}

func NewBFS(initial *sokoban.Level, maxIterations int, timeLimit time.Duration) *BFS {
	return &BFS{
		initial:       initial,
		maxIterations: maxIterations,
		timeLimit:     timeLimit,
		QueueLimit:    defaultQueueLimit,
		QueueKeep:     defaultQueueKeep,
		visited:       make(map[sokoban.StateKey]struct{}),
	}
}

func (s *BFS) Solve() []sokoban.Direction {
	due := deadline(s.timeLimit)

	queue := []bfsNode{{level: s.initial.Clone(), moves: nil}}
	s.visited[s.initial.Key()] = struct{}{}

	for len(queue) > 0 && s.iterations < s.maxIterations {
		if time.Now().After(due) {
			Log.WithFields(logrus.Fields{
				"iterations": s.iterations,
				"time_limit": s.timeLimit,
			}).Warn("bfs: time limit exceeded")
			break
		}

		node := queue[0]
		queue = queue[1:]
		s.iterations++

		if node.level.Complete() {
			s.found = true
			Log.WithFields(logrus.Fields{
				"iterations": s.iterations,
				"moves":      len(node.moves),
			}).Debug("bfs: solution found")
			return nonNil(node.moves)
		}

		queue = append(queue, s.expand(node)...)

		if len(queue) > s.QueueLimit {
			queue = queue[:s.QueueKeep]
			s.queueTrims++
			Log.WithFields(logrus.Fields{
				"iterations": s.iterations,
				"kept":       s.QueueKeep,
			}).Debug("bfs: frontier trimmed, search is no longer exhaustive")
		}
	}

	return nil
}

// expand generates the unvisited, not-obviously-dead children of a node.
// Visited states are marked at generation time so the same state is never
// enqueued twice.
func (s *BFS) expand(node bfsNode) []bfsNode {
	var children []bfsNode
	for _, d := range sokoban.Directions {
		next := node.level.Clone()
		if !next.MoveBot(d) {
			continue
		}
		if next.AllBoxesStuck() {
			continue
		}
		key := next.Key()
		if _, seen := s.visited[key]; seen {
			continue
		}
		s.visited[key] = struct{}{}

		moves := make([]sokoban.Direction, len(node.moves)+1)
		copy(moves, node.moves)
		moves[len(node.moves)] = d
		children = append(children, bfsNode{level: next, moves: moves})
	}
	return children
}

func (s *BFS) Statistics() Statistics {
	return Statistics{
		Algorithm:     "Breadth-First Search",
		Iterations:    s.iterations,
		VisitedStates: len(s.visited),
		SolutionFound: s.found,
		QueueTrims:    s.queueTrims,
	}
}

// nonNil distinguishes "solved with zero moves" from "no solution".
func nonNil(moves []sokoban.Direction) []sokoban.Direction {
	if moves == nil {
		return []sokoban.Direction{}
	}
	return moves
}
