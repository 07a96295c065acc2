package solver

import (
	"slices"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

// Fitness weights. Higher fitness is better; a solved board scores the
// solvedFitness sentinel and everything else is floored at zero.
const (
	fitnessBase           = 1000.0
	dockedBoxBonus        = 100.0
	movementCostWeight    = 2.0
	reassignmentScale     = 10.0
	dockedAccessBonus     = 5.0
	freeNeighborBonus     = 2.0
	cornerPenaltyPerWall  = 5.0
	unplaceableBoxesPrice = 500.0
)

// fitness scores a board for annealing. Results are cached by the sorted
// box-position tuple; the player's position never affects the score.
func (s *Annealing) fitness(board *sokoban.Level) float64 {
	if board.Complete() {
		return solvedFitness
	}

	key := board.BoxesKey()
	if cached, ok := s.cache[key]; ok {
		return cached
	}

	boxes := board.SortedBoxPositions()
	var value float64
	if len(boxes) == 0 || len(s.docks) == 0 {
		value = 0
	} else {
		value = s.scoreBoard(board, boxes)
	}

	s.cache[key] = value
	return value
}

func (s *Annealing) scoreBoard(board *sokoban.Level, boxes []sokoban.Position) float64 {
	var docked, waiting []sokoban.Position
	for _, box := range boxes {
		if slices.Contains(s.docks, box) {
			docked = append(docked, box)
		} else {
			waiting = append(waiting, box)
		}
	}

	value := fitnessBase +
		dockedBoxBonus*float64(len(docked)) +
		s.reassignmentBenefit(docked, waiting) +
		s.accessibilityBonus(board, boxes) -
		movementCostWeight*s.movementCost(docked, waiting) -
		s.cornerPenalty(board, waiting)

	return max(0, value)
}

// movementCost sums each waiting box's Manhattan distance to its nearest
// free dock. Too few free docks means the arrangement cannot be completed
// as-is and is priced accordingly.
func (s *Annealing) movementCost(docked, waiting []sokoban.Position) float64 {
	if len(waiting) == 0 {
		return 0
	}

	var free []sokoban.Position
	for _, dock := range s.docks {
		if !slices.Contains(docked, dock) {
			free = append(free, dock)
		}
	}
	if len(free) < len(waiting) {
		return unplaceableBoxesPrice
	}

	total := 0
	for _, box := range waiting {
		best := infeasibleCost
		for _, dock := range free {
			best = min(best, box.ManhattanTo(dock))
		}
		total += best
	}
	return float64(total)
}

// reassignmentBenefit estimates the best net gain from relocating one
// docked box to a different dock: the distance waiting boxes save by taking
// the freed dock, minus the relocation itself.
func (s *Annealing) reassignmentBenefit(docked, waiting []sokoban.Position) float64 {
	if len(docked) == 0 || len(waiting) == 0 {
		return 0
	}

	best := 0.0
	for _, occupied := range docked {
		for _, target := range s.docks {
			if target == occupied {
				continue
			}
			moveCost := occupied.ManhattanTo(target)

			totalBenefit := 0
			for _, box := range waiting {
				toFreed := box.ManhattanTo(occupied)

				alternative := infeasibleCost
				for _, dock := range s.docks {
					if dock == occupied || slices.Contains(docked, dock) {
						continue
					}
					alternative = min(alternative, box.ManhattanTo(dock))
				}
				if alternative == infeasibleCost {
					// no eligible alternative dock; relocating cannot help
					// this box
					continue
				}
				totalBenefit += max(0, alternative-toFreed)
			}

			best = max(best, float64(totalBenefit-moveCost))
		}
	}
	return best * reassignmentScale
}

// accessibilityBonus rewards arrangements that keep paths open: docked
// boxes score a flat bonus, loose boxes score per unblocked orthogonal
// neighbor.
func (s *Annealing) accessibilityBonus(board *sokoban.Level, boxes []sokoban.Position) float64 {
	bonus := 0.0
	for _, box := range boxes {
		if slices.Contains(s.docks, box) {
			bonus += dockedAccessBonus
			continue
		}
		for _, d := range sokoban.Directions {
			neighbor := box.Step(d)
			if board.InBounds(neighbor) && !board.SolidAt(neighbor) {
				bonus += freeNeighborBonus
			}
		}
	}
	return bonus
}

// cornerPenalty punishes loose boxes hugging walls; two or more adjacent
// walls usually means the box is in or near a dead shape. The board edge
// counts as wall.
func (s *Annealing) cornerPenalty(board *sokoban.Level, waiting []sokoban.Position) float64 {
	penalty := 0.0
	for _, box := range waiting {
		walls := 0
		for _, d := range sokoban.Directions {
			neighbor := box.Step(d)
			if !board.InBounds(neighbor) || board.WallAt(neighbor) {
				walls++
			}
		}
		if walls >= 2 {
			penalty += cornerPenaltyPerWall * float64(walls)
		}
	}
	return penalty
}
