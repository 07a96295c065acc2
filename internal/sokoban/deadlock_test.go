package sokoban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxCorneredOrientations(t *testing.T) {
	l := mustParse(t, []string{
		"#####",
		"#  @#",
		"#   #",
		"#####",
	})

	// every cell adjacent to two orthogonal walls is a dead corner
	assert.True(t, l.boxCornered(Position{1, 1}))
	assert.True(t, l.boxCornered(Position{3, 1}))
	assert.True(t, l.boxCornered(Position{1, 2}))
	assert.True(t, l.boxCornered(Position{3, 2}))

	// wall on only one side is not a corner
	assert.False(t, l.boxCornered(Position{2, 1}))
	assert.False(t, l.boxCornered(Position{2, 2}))
}

func TestCornerOnDockIsAllowed(t *testing.T) {
	// target cell is both a corner and a dock; the push must go through
	l := mustParse(t, []string{
		"#####",
		"#@$.#",
		"#####",
	})
	assert.True(t, l.MoveBot(Right))
	assert.True(t, l.Complete())
}

func TestAllBoxesStuck(t *testing.T) {
	stuck := mustParse(t, []string{
		"####",
		"#$@#",
		"####",
	})
	assert.True(t, stuck.AllBoxesStuck())

	// a box on a dock never counts as stuck
	home := mustParse(t, []string{
		"####",
		"#*@#",
		"####",
	})
	assert.False(t, home.AllBoxesStuck())

	// open floor on both sides of one axis means the box is movable
	open := mustParse(t, []string{
		"#####",
		"#   #",
		"# $ #",
		"# @ #",
		"#####",
	})
	assert.False(t, open.AllBoxesStuck())

	// no boxes, nothing to be stuck
	empty := mustParse(t, []string{
		"####",
		"#@ #",
		"####",
	})
	assert.False(t, empty.AllBoxesStuck())
}

func TestPlayerCellCountsAsFreeForMovability(t *testing.T) {
	// the player stands on one of the push cells; the box is still movable
	// because the player can step aside
	l := mustParse(t, []string{
		"#####",
		"#   #",
		"#@$ #",
		"#   #",
		"#####",
	})
	require.False(t, l.boxCornered(Position{2, 2}))
	assert.True(t, l.boxMovable(Position{2, 2}))
	assert.False(t, l.AllBoxesStuck())
}
