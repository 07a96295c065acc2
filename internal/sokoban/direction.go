package sokoban

import "fmt"

// Direction is a cardinal move token. The string values appear verbatim in
// solver results and in the wire protocol.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists all legal move tokens in a fixed order. Solvers rely on
// this order being stable for deterministic expansion.
var Directions = [4]Direction{Up, Down, Left, Right}

func (d Direction) Offset() (dx, dy int, ok bool) {
	switch d {
	case Up:
		return 0, -1, true
	case Down:
		return 0, 1, true
	case Left:
		return -1, 0, true
	case Right:
		return 1, 0, true
	}
	return 0, 0, false
}

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down, Left, Right:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction %q (known: up, down, left, right)", s)
}
