package sokoban

import "fmt"

// Position is a (column, row) pair. Comparable, usable as a map key.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Translate(dx, dy int) Position {
	return Position{p.X + dx, p.Y + dy}
}

func (p Position) Step(d Direction) Position {
	dx, dy, _ := d.Offset()
	return p.Translate(dx, dy)
}

func (p Position) ManhattanTo(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
