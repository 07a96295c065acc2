package sokoban

type EntityKind int8

const (
	KindWall EntityKind = iota
	KindFloor
	KindDock
	KindBox
	KindPlayer
)

func (k EntityKind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindFloor:
		return "floor"
	case KindDock:
		return "dock"
	case KindBox:
		return "box"
	case KindPlayer:
		return "player"
	}
	return "?"
}

// Solid reports whether an entity of this kind blocks movement. The player
// is not solid: deadlock checks treat the player's cell as free.
func (k EntityKind) Solid() bool {
	return k == KindWall || k == KindBox
}

// Entity is a single board occupant. Boxes, docks and the player have
// identity distinct from their position: the same *Entity moves around the
// board over the level's lifetime.
type Entity struct {
	Kind EntityKind
	Pos  Position

	// OnDock is maintained for boxes and the player; it is true iff a dock
	// occupies the same cell.
	OnDock bool

	// HasBox and HasPlayer are maintained for docks.
	HasBox    bool
	HasPlayer bool
}

// Render returns the level-grid token for this entity.
func (e *Entity) Render() byte {
	switch e.Kind {
	case KindWall:
		return TokenWall
	case KindFloor:
		return TokenFloor
	case KindDock:
		return TokenDock
	case KindBox:
		if e.OnDock {
			return TokenBoxOnDock
		}
		return TokenBox
	case KindPlayer:
		if e.OnDock {
			return TokenPlayerOnDock
		}
		return TokenPlayer
	}
	return TokenFloor
}
