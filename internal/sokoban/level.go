package sokoban

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var Log *slog.Logger = slog.Default()

// Level-grid tokens. Anything else parses as floor.
const (
	TokenWall         byte = '#'
	TokenFloor        byte = ' '
	TokenDock         byte = '.'
	TokenPlayer       byte = '@'
	TokenPlayerOnDock byte = '+'
	TokenBox          byte = '$'
	TokenBoxOnDock    byte = '*'
)

var (
	ErrNoPlayer       = errors.New("level has no player")
	ErrMultiplePlayer = errors.New("level has more than one player")
	ErrEmptyLevel     = errors.New("level grid is empty")
)

// Level is the mutable game board. Every cell holds an ordered occupant
// list; the last-added entity is rendered on top. A Level is owned by a
// single goroutine: solvers branch by Clone, never by aliasing.
type Level struct {
	Width, Height int

	cells  map[Position][]*Entity
	player *Entity
	boxes  []*Entity
	docks  []*Entity

	origin  []string
	history []Direction
	moves   int
	pushes  int
}

// Parse builds a Level from a textual grid. Rows may be ragged; width is
// the longest row. Exactly one player must be present.
func Parse(grid []string) (*Level, error) {
	if len(grid) == 0 {
		return nil, ErrEmptyLevel
	}
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	l := &Level{
		Width:  width,
		Height: len(grid),
		origin: append([]string(nil), grid...),
	}
	if err := l.build(grid); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Level) build(grid []string) error {
	l.cells = make(map[Position][]*Entity)
	l.player = nil
	l.boxes = nil
	l.docks = nil

	for y, row := range grid {
		for x := range len(row) {
			pos := Position{x, y}
			switch row[x] {
			case TokenWall:
				l.place(&Entity{Kind: KindWall, Pos: pos})
			case TokenDock:
				l.addDock(pos)
			case TokenPlayer:
				l.place(&Entity{Kind: KindFloor, Pos: pos})
				if err := l.addPlayer(pos, false); err != nil {
					return err
				}
			case TokenPlayerOnDock:
				dock := l.addDock(pos)
				dock.HasPlayer = true
				if err := l.addPlayer(pos, true); err != nil {
					return err
				}
			case TokenBox:
				l.place(&Entity{Kind: KindFloor, Pos: pos})
				l.addBox(pos, false)
			case TokenBoxOnDock:
				dock := l.addDock(pos)
				dock.HasBox = true
				l.addBox(pos, true)
			default:
				l.place(&Entity{Kind: KindFloor, Pos: pos})
			}
		}
	}
	if l.player == nil {
		return ErrNoPlayer
	}
	return nil
}

func (l *Level) addDock(pos Position) *Entity {
	dock := &Entity{Kind: KindDock, Pos: pos}
	l.place(dock)
	l.docks = append(l.docks, dock)
	return dock
}

func (l *Level) addBox(pos Position, onDock bool) {
	box := &Entity{Kind: KindBox, Pos: pos, OnDock: onDock}
	l.place(box)
	l.boxes = append(l.boxes, box)
}

func (l *Level) addPlayer(pos Position, onDock bool) error {
	if l.player != nil {
		return ErrMultiplePlayer
	}
	l.player = &Entity{Kind: KindPlayer, Pos: pos, OnDock: onDock}
	l.place(l.player)
	return nil
}

func (l *Level) place(e *Entity) {
	l.cells[e.Pos] = append(l.cells[e.Pos], e)
}

func (l *Level) remove(e *Entity) {
	stack := l.cells[e.Pos]
	for i, o := range stack {
		if o == e {
			l.cells[e.Pos] = append(stack[:i], stack[i+1:]...)
			break
		}
	}
	if len(l.cells[e.Pos]) == 0 {
		delete(l.cells, e.Pos)
	}
}

// EntitiesAt returns the occupant list for a cell, in render order.
func (l *Level) EntitiesAt(pos Position) []*Entity {
	return l.cells[pos]
}

// RenderCell returns the token of the topmost entity at pos.
func (l *Level) RenderCell(pos Position) byte {
	stack := l.cells[pos]
	if len(stack) == 0 {
		return TokenFloor
	}
	return stack[len(stack)-1].Render()
}

func (l *Level) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < l.Width && pos.Y >= 0 && pos.Y < l.Height
}

// WallAt reports whether a wall occupies the cell.
func (l *Level) WallAt(pos Position) bool {
	for _, e := range l.cells[pos] {
		if e.Kind == KindWall {
			return true
		}
	}
	return false
}

// SolidAt reports whether any solid entity (wall or box) occupies the cell.
func (l *Level) SolidAt(pos Position) bool {
	for _, e := range l.cells[pos] {
		if e.Kind.Solid() {
			return true
		}
	}
	return false
}

func (l *Level) boxAt(pos Position) *Entity {
	for _, e := range l.cells[pos] {
		if e.Kind == KindBox {
			return e
		}
	}
	return nil
}

func (l *Level) dockAt(pos Position) *Entity {
	for _, e := range l.cells[pos] {
		if e.Kind == KindDock {
			return e
		}
	}
	return nil
}

// Move attempts a player move for human input. No deadlock pruning: a human
// is allowed to push a box into a dead corner and find out the hard way.
func (l *Level) Move(d Direction) bool {
	ok := l.move(d, false)
	if ok {
		l.history = append(l.history, d)
	}
	return ok
}

// MoveBot attempts a player move for automated search. Identical board
// mutation to Move, but pushes that would corner-deadlock a box off-dock
// are rejected up front.
func (l *Level) MoveBot(d Direction) bool {
	return l.move(d, true)
}

func (l *Level) move(d Direction, prune bool) bool {
	dx, dy, ok := d.Offset()
	if !ok {
		Log.Warn("invalid move direction", slog.String("direction", string(d)))
		return false
	}

	target := l.player.Pos.Translate(dx, dy)
	if !l.InBounds(target) || l.WallAt(target) {
		return false
	}

	if box := l.boxAt(target); box != nil {
		beyond := target.Translate(dx, dy)
		if !l.canPushBoxTo(beyond, prune) {
			return false
		}
		l.moveBox(box, beyond)
		l.pushes++
	}

	l.movePlayerTo(target)
	l.moves++
	return true
}

func (l *Level) canPushBoxTo(pos Position, prune bool) bool {
	if !l.InBounds(pos) || l.SolidAt(pos) {
		return false
	}
	if prune && l.dockAt(pos) == nil && l.boxCornered(pos) {
		return false
	}
	return true
}

func (l *Level) moveBox(box *Entity, to Position) {
	l.remove(box)
	if dock := l.dockAt(box.Pos); dock != nil {
		dock.HasBox = false
	}
	box.Pos = to
	box.OnDock = false
	l.place(box)
	if dock := l.dockAt(to); dock != nil {
		dock.HasBox = true
		box.OnDock = true
	}
}

func (l *Level) movePlayerTo(to Position) {
	l.remove(l.player)
	if dock := l.dockAt(l.player.Pos); dock != nil {
		dock.HasPlayer = false
	}
	l.player.Pos = to
	l.player.OnDock = false
	l.place(l.player)
	if dock := l.dockAt(to); dock != nil {
		dock.HasPlayer = true
		l.player.OnDock = true
	}
}

// Complete reports whether every box sits on a dock.
func (l *Level) Complete() bool {
	for _, box := range l.boxes {
		if !box.OnDock {
			return false
		}
	}
	return true
}

// Reset restores the originally parsed grid and zeroes all counters.
func (l *Level) Reset() {
	if err := l.build(l.origin); err != nil {
		// origin parsed once already; a second pass cannot fail
		panic(fmt.Sprintf("sokoban: reset failed: %v", err))
	}
	l.history = nil
	l.moves = 0
	l.pushes = 0
}

// Clone deep-copies the board. Clones share nothing with the receiver;
// sibling search branches must stay fully independent.
func (l *Level) Clone() *Level {
	c := &Level{
		Width:   l.Width,
		Height:  l.Height,
		origin:  l.origin,
		history: append([]Direction(nil), l.history...),
		moves:   l.moves,
		pushes:  l.pushes,
		cells:   make(map[Position][]*Entity, len(l.cells)),
	}
	clones := make(map[*Entity]*Entity)
	for pos, stack := range l.cells {
		dup := make([]*Entity, len(stack))
		for i, e := range stack {
			copied := *e
			dup[i] = &copied
			clones[e] = dup[i]
		}
		c.cells[pos] = dup
	}
	c.player = clones[l.player]
	c.boxes = make([]*Entity, len(l.boxes))
	for i, box := range l.boxes {
		c.boxes[i] = clones[box]
	}
	c.docks = make([]*Entity, len(l.docks))
	for i, dock := range l.docks {
		c.docks[i] = clones[dock]
	}
	return c
}

func (l *Level) Player() Position { return l.player.Pos }

func (l *Level) BoxPositions() []Position {
	out := make([]Position, len(l.boxes))
	for i, box := range l.boxes {
		out[i] = box.Pos
	}
	return out
}

func (l *Level) DockPositions() []Position {
	out := make([]Position, len(l.docks))
	for i, dock := range l.docks {
		out[i] = dock.Pos
	}
	return out
}

func (l *Level) BoxCount() int  { return len(l.boxes) }
func (l *Level) DockCount() int { return len(l.docks) }

func (l *Level) Moves() int  { return l.moves }
func (l *Level) Pushes() int { return l.pushes }

// History returns the successful human moves since construction or Reset.
func (l *Level) History() []Direction {
	return append([]Direction(nil), l.history...)
}

// Grid returns the original level grid the board was parsed from.
func (l *Level) Grid() []string {
	return append([]string(nil), l.origin...)
}

// Render returns the current board as grid rows.
func (l *Level) Render() []string {
	rows := make([]string, l.Height)
	var b strings.Builder
	for y := range l.Height {
		b.Reset()
		for x := range l.Width {
			b.WriteByte(l.RenderCell(Position{x, y}))
		}
		rows[y] = b.String()
	}
	return rows
}

func (l *Level) String() string {
	return strings.Join(l.Render(), "\n")
}
