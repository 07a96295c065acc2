package sokoban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIgnoresHistory(t *testing.T) {
	l := mustParse(t, []string{
		"#####",
		"#   #",
		"# @ #",
		"#   #",
		"#####",
	})
	initial := l.Key()

	require.True(t, l.Move(Up))
	moved := l.Key()
	assert.NotEqual(t, initial, moved)

	require.True(t, l.Move(Down))
	assert.Equal(t, initial, l.Key(), "same configuration, different history")
	assert.Equal(t, 2, l.Moves())
}

func TestBoxKeyIsSorted(t *testing.T) {
	l := mustParse(t, []string{
		"#######",
		"# $ $ #",
		"#  @  #",
		"#..   #",
		"#######",
	})

	assert.Equal(t, BoxKey("2:1;4:1"), l.BoxesKey())
	assert.Equal(t, BoxKey(""), mustParse(t, []string{"#@#"}).BoxesKey())

	assert.Equal(t, packBoxes([]Position{{4, 1}, {2, 1}}), packBoxes([]Position{{2, 1}, {4, 1}}))
}

func TestKeyEqualBetweenClones(t *testing.T) {
	l := mustParse(t, []string{
		"#######",
		"# $ $ #",
		"#  @..#",
		"#######",
	})
	assert.Equal(t, l.Key(), l.Clone().Key())
}

func TestSortedBoxPositions(t *testing.T) {
	l := mustParse(t, []string{
		"#####",
		"# $ #",
		"#$ @#",
		"#.. #",
		"#####",
	})
	assert.Equal(t, []Position{{1, 2}, {2, 1}}, l.SortedBoxPositions())
}

func TestFingerprint(t *testing.T) {
	grid := []string{
		"#####",
		"#@$.#",
		"#####",
	}
	l := mustParse(t, grid)
	fp := l.Fingerprint()
	assert.Len(t, fp, 16)

	// fingerprint tracks the original grid, not the live board
	require.True(t, l.Move(Right))
	assert.Equal(t, fp, l.Fingerprint())
	assert.Equal(t, fp, l.Clone().Fingerprint())
	assert.Equal(t, fp, mustParse(t, grid).Fingerprint())

	other := mustParse(t, []string{
		"#####",
		"#.$@#",
		"#####",
	})
	assert.NotEqual(t, fp, other.Fingerprint())
}
