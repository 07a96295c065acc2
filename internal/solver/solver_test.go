package solver

import (
	"io"
	"math/rand/v2"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

func TestMain(m *testing.M) {
	Log.SetOutput(io.Discard)
	Log.SetLevel(logrus.PanicLevel)
	os.Exit(m.Run())
}

func mustLevel(t *testing.T, grid []string) *sokoban.Level {
	t.Helper()
	l, err := sokoban.Parse(grid)
	require.NoError(t, err)
	return l
}

// simpleLevel has a four-move shortest solution: walk around the box and
// push it down onto the dock.
func simpleLevel(t *testing.T) *sokoban.Level {
	return mustLevel(t, []string{
		"#####",
		"#   #",
		"# $ #",
		"# .@#",
		"#####",
	})
}

// impossibleLevel has two boxes and one dock; no arrangement can complete.
func impossibleLevel(t *testing.T) *sokoban.Level {
	return mustLevel(t, []string{
		"#######",
		"#  .  #",
		"# $ $ #",
		"#  @  #",
		"#######",
	})
}

// replayHuman feeds a solver's move list through the human move API and
// reports whether the board ends up complete.
func replayHuman(t *testing.T, grid []string, moves []sokoban.Direction) bool {
	t.Helper()
	l := mustLevel(t, grid)
	for i, d := range moves {
		require.True(t, l.Move(d), "move %d (%s) must be legal", i, d)
	}
	return l.Complete()
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1337))
}

const testTimeLimit = 30 * time.Second
