package solver

import (
	"slices"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

// infeasibleCost is the heuristic sentinel for states that cannot possibly
// be solved (more boxes than docks).
const infeasibleCost = 999_999

// heuristic estimates the remaining push distance: a greedy minimum-cost
// box-to-free-dock Manhattan assignment, refined by a dock-reassignment
// pass that checks whether relocating an already-docked box would shorten
// the total for the boxes still waiting. Admissibility is not guaranteed;
// A* trades strict optimality for speed here.
func heuristic(boxes, docks []sokoban.Position) int {
	if len(boxes) == 0 || len(docks) == 0 {
		return 0
	}
	if len(boxes) > len(docks) {
		return infeasibleCost
	}

	onDock := func(p sokoban.Position) bool { return slices.Contains(docks, p) }

	solved := true
	for _, box := range boxes {
		if !onDock(box) {
			solved = false
			break
		}
	}
	if solved {
		return 0
	}

	greedy := greedyAssignmentCost(boxes, docks)
	reassigned := reassignmentCost(boxes, docks)
	return min(greedy, reassigned)
}

// greedyAssignmentCost assigns each off-dock box to its nearest unused
// dock, cheapest-first.
func greedyAssignmentCost(boxes, docks []sokoban.Position) int {
	minDist := func(box sokoban.Position) int {
		best := infeasibleCost
		for _, dock := range docks {
			best = min(best, box.ManhattanTo(dock))
		}
		return best
	}

	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return minDist(boxes[a]) - minDist(boxes[b])
	})

	used := make(map[sokoban.Position]bool)
	total := 0
	for _, i := range order {
		box := boxes[i]
		if slices.Contains(docks, box) {
			continue
		}
		best, bestDock := infeasibleCost, -1
		for j, dock := range docks {
			if used[dock] {
				continue
			}
			if cost := box.ManhattanTo(dock); cost < best {
				best, bestDock = cost, j
			}
		}
		if bestDock >= 0 {
			total += best
			used[docks[bestDock]] = true
		}
	}
	return total
}

// reassignmentCost estimates the cost when a docked box is relocated to a
// different dock so that a waiting box can take the freed one. It captures
// states where a locally placed box blocks a better global arrangement.
func reassignmentCost(boxes, docks []sokoban.Position) int {
	var docked, waiting []sokoban.Position
	for _, box := range boxes {
		if slices.Contains(docks, box) {
			docked = append(docked, box)
		} else {
			waiting = append(waiting, box)
		}
	}
	if len(docked) == 0 || len(waiting) == 0 {
		return greedyAssignmentCost(boxes, docks)
	}

	var free []sokoban.Position
	for _, dock := range docks {
		if !slices.Contains(docked, dock) {
			free = append(free, dock)
		}
	}

	if len(free) >= len(waiting) {
		total := 0
		for _, box := range waiting {
			best := infeasibleCost
			for _, dock := range free {
				best = min(best, box.ManhattanTo(dock))
			}
			total += best
		}
		return total
	}

	// Not enough free docks: price the cheapest relocation of a docked box,
	// netting off the distance a waiting box saves by taking the freed dock.
	bestNet := infeasibleCost
	for _, occupied := range docked {
		for _, target := range docks {
			if target == occupied {
				continue
			}
			moveCost := occupied.ManhattanTo(target)

			bestBenefit := 0
			for _, box := range waiting {
				toFreed := box.ManhattanTo(occupied)

				alternative := infeasibleCost
				for _, dock := range docks {
					if dock == occupied || slices.Contains(docked, dock) {
						continue
					}
					alternative = min(alternative, box.ManhattanTo(dock))
				}
				bestBenefit = max(bestBenefit, max(0, alternative-toFreed))
			}

			bestNet = min(bestNet, moveCost-bestBenefit)
		}
	}

	if bestNet < infeasibleCost {
		remaining := 0
		for _, box := range waiting {
			best := infeasibleCost
			for _, dock := range docks {
				best = min(best, box.ManhattanTo(dock))
			}
			remaining += best
		}
		return bestNet + remaining
	}
	return greedyAssignmentCost(boxes, docks)
}
