package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

func pos(x, y int) sokoban.Position { return sokoban.Position{X: x, Y: y} }

func TestHeuristicEdgeCases(t *testing.T) {
	assert.Equal(t, 0, heuristic(nil, []sokoban.Position{pos(1, 1)}))
	assert.Equal(t, 0, heuristic([]sokoban.Position{pos(1, 1)}, nil))

	// more boxes than docks can never be solved
	assert.Equal(t, infeasibleCost, heuristic(
		[]sokoban.Position{pos(1, 1), pos(2, 1)},
		[]sokoban.Position{pos(3, 3)},
	))

	// every box already docked
	assert.Equal(t, 0, heuristic(
		[]sokoban.Position{pos(1, 1), pos(2, 2)},
		[]sokoban.Position{pos(2, 2), pos(1, 1)},
	))
}

func TestHeuristicSingleBoxDistance(t *testing.T) {
	assert.Equal(t, 3, heuristic(
		[]sokoban.Position{pos(1, 1)},
		[]sokoban.Position{pos(4, 1)},
	))
}

func TestGreedyAssignmentAvoidsDockReuse(t *testing.T) {
	boxes := []sokoban.Position{pos(1, 1), pos(2, 1)}
	docks := []sokoban.Position{pos(3, 1), pos(4, 1)}

	// nearest box claims the shared closest dock; the other pays for the
	// farther one
	assert.Equal(t, 4, greedyAssignmentCost(boxes, docks))
	assert.Equal(t, 4, heuristic(boxes, docks))
}

func TestHeuristicUsesFreeDocksForWaitingBoxes(t *testing.T) {
	// one box docked, one waiting; the waiting box targets the free dock
	boxes := []sokoban.Position{pos(2, 1), pos(5, 1)}
	docks := []sokoban.Position{pos(2, 1), pos(3, 1)}

	assert.Equal(t, 2, heuristic(boxes, docks))
}

func TestReassignmentCostPricesRelocation(t *testing.T) {
	// not enough free docks for the waiting boxes: cheapest relocation of
	// the docked box (3) plus the waiting boxes' nearest-dock distances (2)
	boxes := []sokoban.Position{pos(2, 1), pos(4, 1), pos(6, 1)}
	docks := []sokoban.Position{pos(2, 1), pos(5, 1)}

	assert.Equal(t, 5, reassignmentCost(boxes, docks))
}
