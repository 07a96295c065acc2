package sokoban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, grid []string) *Level {
	t.Helper()
	l, err := Parse(grid)
	require.NoError(t, err)
	return l
}

func TestParse(t *testing.T) {
	l := mustParse(t, []string{
		"######",
		"#    #",
		"# $  #",
		"# .@ #",
		"#    #",
		"######",
	})

	assert.Equal(t, 6, l.Width)
	assert.Equal(t, 6, l.Height)
	assert.Equal(t, Position{3, 3}, l.Player())
	assert.Equal(t, []Position{{2, 2}}, l.BoxPositions())
	assert.Equal(t, []Position{{2, 3}}, l.DockPositions())
	assert.False(t, l.Complete())
	assert.Equal(t, 0, l.Moves())
	assert.Equal(t, 0, l.Pushes())
}

func TestParseDockedTokens(t *testing.T) {
	l := mustParse(t, []string{
		"#####",
		"#+*x#",
		"#####",
	})

	assert.Equal(t, Position{1, 1}, l.Player())
	assert.Equal(t, []Position{{2, 1}}, l.BoxPositions())
	assert.Equal(t, 2, l.DockCount())
	// box parsed from '*' is already home
	assert.True(t, l.Complete())
	// unknown characters parse as floor
	assert.Equal(t, TokenFloor, l.RenderCell(Position{3, 1}))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorIs(t, err, ErrEmptyLevel)

	_, err = Parse([]string{"###", "# #", "###"})
	assert.ErrorIs(t, err, ErrNoPlayer)

	_, err = Parse([]string{"####", "#@@#", "####"})
	assert.ErrorIs(t, err, ErrMultiplePlayer)
}

func TestRenderRoundTrip(t *testing.T) {
	grid := []string{
		"#######",
		"#  .  #",
		"# $*$ #",
		"#  @  #",
		"#######",
	}
	l := mustParse(t, grid)
	assert.Equal(t, grid, l.Render())
}

func TestMoveIntoWallFailsWithoutMutation(t *testing.T) {
	l := mustParse(t, []string{
		"###",
		"#@#",
		"###",
	})
	before := l.String()
	key := l.Key()

	for _, d := range Directions {
		assert.False(t, l.Move(d), "move %s should be blocked", d)
	}

	assert.Equal(t, before, l.String())
	assert.Equal(t, key, l.Key())
	assert.Equal(t, 0, l.Moves())
	assert.Equal(t, 0, l.Pushes())
	assert.Empty(t, l.History())
}

func TestBlockedPushFailsWithoutMutation(t *testing.T) {
	// box against a wall, and a box against another box
	l := mustParse(t, []string{
		"######",
		"#@$$ #",
		"######",
	})
	before := l.String()

	assert.False(t, l.Move(Right), "pushing a box into a box must fail")
	assert.Equal(t, before, l.String())
	assert.Equal(t, 0, l.Moves())
}

func TestPushOntoDock(t *testing.T) {
	l := mustParse(t, []string{
		"#####",
		"#@$.#",
		"#####",
	})

	require.True(t, l.Move(Right))
	assert.True(t, l.Complete())
	assert.Equal(t, 1, l.Moves())
	assert.Equal(t, 1, l.Pushes())
	assert.Equal(t, []Direction{Right}, l.History())
	assert.Equal(t, "#####\n# @*#\n#####", l.String())
}

func TestPushOffDockClearsFlags(t *testing.T) {
	l := mustParse(t, []string{
		"######",
		"#@*  #",
		"######",
	})
	require.True(t, l.Complete())

	require.True(t, l.Move(Right))
	assert.False(t, l.Complete())
	// the vacated dock renders again, player stands on it
	assert.Equal(t, "######\n# +$ #\n######", l.String())
}

func TestReset(t *testing.T) {
	grid := []string{
		"#####",
		"#@$.#",
		"#####",
	}
	l := mustParse(t, grid)
	require.True(t, l.Move(Right))
	require.True(t, l.Complete())

	l.Reset()

	assert.Equal(t, grid, l.Render())
	assert.False(t, l.Complete())
	assert.Equal(t, 0, l.Moves())
	assert.Equal(t, 0, l.Pushes())
	assert.Empty(t, l.History())
}

func TestCloneIndependence(t *testing.T) {
	l := mustParse(t, []string{
		"#####",
		"#@$.#",
		"#####",
	})
	c := l.Clone()

	require.True(t, c.Move(Right))
	assert.True(t, c.Complete())

	// the original must be untouched
	assert.False(t, l.Complete())
	assert.Equal(t, Position{1, 1}, l.Player())
	assert.Equal(t, []Position{{2, 1}}, l.BoxPositions())
	assert.Equal(t, 0, l.Moves())
}

func TestZeroBoxesIsCompleteImmediately(t *testing.T) {
	l := mustParse(t, []string{
		"####",
		"#@ #",
		"####",
	})
	assert.True(t, l.Complete())
}

func TestHumanMoveAllowsCornerDeadlock(t *testing.T) {
	l := mustParse(t, []string{
		"#####",
		"#@$ #",
		"#####",
	})

	// the human API happily pushes into the dead corner...
	assert.True(t, l.Move(Right))

	// ...while the bot API refuses the same push
	l.Reset()
	assert.False(t, l.MoveBot(Right))
}

func TestBotMoveMutatesLikeHumanMove(t *testing.T) {
	grid := []string{
		"######",
		"#    #",
		"# $. #",
		"# @  #",
		"######",
	}
	human := mustParse(t, grid)
	bot := mustParse(t, grid)

	require.True(t, human.Move(Up))
	require.True(t, bot.MoveBot(Up))

	assert.Equal(t, human.String(), bot.String())
	assert.Equal(t, human.Moves(), bot.Moves())
	assert.Equal(t, human.Pushes(), bot.Pushes())
}

func TestBuiltinLevels(t *testing.T) {
	for _, name := range BuiltinLevelNames() {
		l, err := BuiltinLevel(name)
		require.NoError(t, err, "level %s", name)
		assert.Greater(t, l.BoxCount(), 0, "level %s", name)
		assert.GreaterOrEqual(t, l.DockCount(), l.BoxCount(), "level %s", name)
	}

	_, err := BuiltinLevel("no-such-level")
	assert.Error(t, err)
}
