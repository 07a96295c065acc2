package handlers

import (
	"io"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sokoban-server/internal/sokoban"
	"github.com/vancomm/sokoban-server/internal/solver"
)

func TestMain(m *testing.M) {
	solver.Log.SetOutput(io.Discard)
	solver.Log.SetLevel(logrus.PanicLevel)
	os.Exit(m.Run())
}

func wsHandler() GameHandler {
	return GameHandler{bot: solver.NewBot(rand.New(rand.NewPCG(7, 11)))}
}

func TestExecuteCommandMutation(t *testing.T) {
	g := wsHandler()
	board, err := sokoban.Parse([]string{
		"#####",
		"#@$.#",
		"#####",
	})
	require.NoError(t, err)

	// a state echo must not trigger a session write
	reply, mutated, err := g.executeCommand(board, "g")
	require.NoError(t, err)
	assert.Nil(t, reply)
	assert.False(t, mutated)

	reply, mutated, err = g.executeCommand(board, "m right")
	require.NoError(t, err)
	assert.Nil(t, reply)
	assert.True(t, mutated)
	assert.Equal(t, 1, board.Moves())

	reply, mutated, err = g.executeCommand(board, "r")
	require.NoError(t, err)
	assert.Nil(t, reply)
	assert.True(t, mutated)
	assert.Equal(t, 0, board.Moves())

	reply, mutated, err = g.executeCommand(board, "s bfs")
	require.NoError(t, err)
	assert.False(t, mutated)
	result, ok := reply.(solver.Result)
	require.True(t, ok)
	assert.True(t, result.Success)
	// solving works on a copy, the session board stays put
	assert.Equal(t, 0, board.Moves())
}

func TestExecuteCommandErrors(t *testing.T) {
	g := wsHandler()
	board, err := sokoban.Parse([]string{"#@#"})
	require.NoError(t, err)

	for _, command := range []string{
		"", "g now", "m", "m sideways", "r 1", "s", "s dfs", "x",
	} {
		_, mutated, err := g.executeCommand(board, command)
		assert.Error(t, err, "command %q", command)
		assert.False(t, mutated, "command %q", command)
	}
}
