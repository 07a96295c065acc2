package solver

import (
	"container/heap"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

// AStar searches by f = g + h, where g is moves made and h the assignment
// heuristic. The open queue stores move lists, not boards: each popped
// state is reconstructed by replaying its moves against the initial board.
// Move lists are short relative to board size, so this trades a little CPU
// for a much smaller queue.
type AStar struct {
	initial       *sokoban.Level
	maxIterations int
	timeLimit     time.Duration

	QueueLimit int
	QueueKeep  int

	docks []sokoban.Position

	// visited maps a state key to the best g seen for it; worse paths to a
	// known state are not expanded.
	visited    map[sokoban.StateKey]int
	iterations int
	queueTrims int
	found      bool
}

type astarNode struct {
	key     sokoban.StateKey
	moves   []sokoban.Direction
	g, h, f int
}

type astarQueue []*astarNode

func (q astarQueue) Len() int { return len(q) }

// Less orders by f ascending; ties prefer the deeper (larger g) path.
func (q astarQueue) Less(i, j int) bool {
	if q[i].f == q[j].f {
		return q[i].g > q[j].g
	}
	return q[i].f < q[j].f
}

func (q astarQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *astarQueue) Push(x any) { *q = append(*q, x.(*astarNode)) }

func (q *astarQueue) Pop() any {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return node
}

func NewAStar(initial *sokoban.Level, maxIterations int, timeLimit time.Duration) *AStar {
	return &AStar{
		initial:       initial,
		maxIterations: maxIterations,
		timeLimit:     timeLimit,
		QueueLimit:    defaultQueueLimit,
		QueueKeep:     defaultQueueKeep,
		docks:         initial.DockPositions(),
		visited:       make(map[sokoban.StateKey]int),
	}
}

func (s *AStar) node(level *sokoban.Level, moves []sokoban.Direction, g int) *astarNode {
	h := heuristic(level.SortedBoxPositions(), s.docks)
	return &astarNode{
		key:   level.Key(),
		moves: moves,
		g:     g,
		h:     h,
		f:     g + h,
	}
}

func (s *AStar) Solve() []sokoban.Direction {
	due := deadline(s.timeLimit)

	start := s.node(s.initial, nil, 0)
	queue := astarQueue{start}
	heap.Init(&queue)
	s.visited[start.key] = 0

	for queue.Len() > 0 && s.iterations < s.maxIterations {
		if time.Now().After(due) {
			Log.WithFields(logrus.Fields{
				"iterations": s.iterations,
				"time_limit": s.timeLimit,
			}).Warn("astar: time limit exceeded")
			break
		}

		current := heap.Pop(&queue).(*astarNode)
		s.iterations++

		board := s.replay(current.moves)
		if board.Complete() {
			s.found = true
			Log.WithFields(logrus.Fields{
				"iterations": s.iterations,
				"moves":      len(current.moves),
				"f":          current.f,
			}).Debug("astar: solution found")
			return nonNil(current.moves)
		}

		for _, child := range s.expand(current, board) {
			heap.Push(&queue, child)
		}

		if queue.Len() > s.QueueLimit {
			sort.Sort(queue)
			for i := s.QueueKeep; i < len(queue); i++ {
				queue[i] = nil
			}
			queue = queue[:s.QueueKeep]
			heap.Init(&queue)
			s.queueTrims++
			Log.WithFields(logrus.Fields{
				"iterations": s.iterations,
				"kept":       s.QueueKeep,
			}).Debug("astar: open queue trimmed")
		}
	}

	return nil
}

func (s *AStar) replay(moves []sokoban.Direction) *sokoban.Level {
	board := s.initial.Clone()
	for _, d := range moves {
		if !board.MoveBot(d) {
			break
		}
	}
	return board
}

func (s *AStar) expand(current *astarNode, board *sokoban.Level) []*astarNode {
	var children []*astarNode
	for _, d := range sokoban.Directions {
		next := board.Clone()
		if !next.MoveBot(d) {
			continue
		}

		moves := make([]sokoban.Direction, len(current.moves)+1)
		copy(moves, current.moves)
		moves[len(current.moves)] = d

		child := s.node(next, moves, current.g+1)
		if best, seen := s.visited[child.key]; seen && best <= child.g {
			continue
		}
		s.visited[child.key] = child.g
		children = append(children, child)
	}
	return children
}

func (s *AStar) Statistics() Statistics {
	return Statistics{
		Algorithm:     "A* Search",
		Iterations:    s.iterations,
		VisitedStates: len(s.visited),
		SolutionFound: s.found,
		QueueTrims:    s.queueTrims,
	}
}
