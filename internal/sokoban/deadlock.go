package sokoban

/*
 * Deadlock pruning for automated search.
 *
 * These checks are heuristic: they reject the common unsolvable shapes
 * cheaply but are not a complete deadlock classifier. In particular,
 * multi-box frozen clusters (two boxes pinned against each other along a
 * wall) are not detected. A stricter detector would change solvability
 * results on some levels; keep it this way.
 */

// boxCornered reports whether a box placed at pos (off-dock) could never be
// pushed again because two orthogonally adjacent walls form an L around it.
// All four corner orientations are checked.
func (l *Level) boxCornered(pos Position) bool {
	up := l.WallAt(pos.Translate(0, -1))
	down := l.WallAt(pos.Translate(0, 1))
	left := l.WallAt(pos.Translate(-1, 0))
	right := l.WallAt(pos.Translate(1, 0))

	return (up && left) || (up && right) || (down && left) || (down && right)
}

// boxMovable reports whether a box at pos can be pushed along at least one
// axis: both the cell the player would stand in and the cell the box would
// land in must be free of walls and boxes. The player's own cell counts as
// free; the player can always step aside.
func (l *Level) boxMovable(pos Position) bool {
	walkable := func(p Position) bool {
		if !l.InBounds(p) {
			return false
		}
		return !l.WallAt(p) && l.boxAt(p) == nil
	}

	if walkable(pos.Translate(-1, 0)) && walkable(pos.Translate(1, 0)) {
		return true
	}
	if walkable(pos.Translate(0, -1)) && walkable(pos.Translate(0, 1)) {
		return true
	}
	return false
}

// AllBoxesStuck reports whether every box is simultaneously off-dock and
// immovable in all four directions. Solvers use this as a cheap dead-end
// filter before expanding a state.
func (l *Level) AllBoxesStuck() bool {
	if len(l.boxes) == 0 {
		return false
	}
	for _, box := range l.boxes {
		if box.OnDock {
			return false
		}
		if l.boxMovable(box.Pos) {
			return false
		}
	}
	return true
}
