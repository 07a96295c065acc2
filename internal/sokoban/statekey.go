package sokoban

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
)

// StateKey identifies a search state: player position plus the sorted box
// positions. Two boards with equal keys are the same state regardless of
// move history or counters. Comparable, usable as a map key.
type StateKey struct {
	Player Position
	Boxes  BoxKey
}

// BoxKey is the sorted box-position tuple packed into a comparable string.
type BoxKey string

func comparePositions(a, b Position) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Y - b.Y
}

func packBoxes(boxes []Position) BoxKey {
	sorted := append([]Position(nil), boxes...)
	slices.SortFunc(sorted, comparePositions)

	var b strings.Builder
	for i, pos := range sorted {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Itoa(pos.X))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(pos.Y))
	}
	return BoxKey(b.String())
}

// Key derives the search state key for the current board. The key is
// value-comparable and never aliases live board data.
func (l *Level) Key() StateKey {
	return StateKey{
		Player: l.player.Pos,
		Boxes:  packBoxes(l.BoxPositions()),
	}
}

// BoxesKey returns just the box-position part of the key. SA fitness
// caching is keyed by this alone; the player position does not affect
// fitness.
func (l *Level) BoxesKey() BoxKey {
	return packBoxes(l.BoxPositions())
}

// SortedBoxPositions returns the box positions in key order.
func (l *Level) SortedBoxPositions() []Position {
	sorted := l.BoxPositions()
	slices.SortFunc(sorted, comparePositions)
	return sorted
}

// Fingerprint is a stable identifier of the original grid, used to group
// sessions of the same level for highscores.
func (l *Level) Fingerprint() string {
	sum := sha256.Sum256([]byte(strings.Join(l.origin, "\n")))
	return hex.EncodeToString(sum[:8])
}
