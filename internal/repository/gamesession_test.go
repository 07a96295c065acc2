package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

func TestUpdateGameSessionSetClause(t *testing.T) {
	solved := true
	moves := 12
	now := time.Now()

	clause, args := UpdateGameSessionParams{
		Solved:      &solved,
		MoveCount:   &moves,
		CompletedAt: &now,
	}.SetClause()

	assert.Equal(t, "solved = @solved, move_count = @move_count, completed_at = @completed_at", clause)
	assert.Equal(t, true, args["solved"])
	assert.Equal(t, 12, args["move_count"])
	assert.Equal(t, now, args["completed_at"])
	assert.NotContains(t, args, "push_count")
	assert.NotContains(t, args, "state")
}

func TestGameSessionBoardRoundTrip(t *testing.T) {
	board, err := sokoban.Parse([]string{
		"#####",
		"#@$.#",
		"#####",
	})
	require.NoError(t, err)
	require.True(t, board.Move(sokoban.Right))

	state, err := board.Snapshot().Bytes()
	require.NoError(t, err)

	session := GameSession{State: state}
	restored, err := session.Board()
	require.NoError(t, err)

	assert.Equal(t, board.Render(), restored.Render())
	assert.Equal(t, 1, restored.Moves())
	assert.True(t, restored.Complete())
}

func TestGameSessionBoardRejectsCorruptState(t *testing.T) {
	session := GameSession{State: []byte("garbage")}
	_, err := session.Board()
	assert.Error(t, err)
}

func TestHighscoreFilterWhereClause(t *testing.T) {
	clause, args := HighscoreFilter{}.WhereClause()
	assert.Empty(t, clause)
	assert.Empty(t, args)

	username := "alice"
	levelHash := "deadbeefdeadbeef"
	clause, args = HighscoreFilter{
		Username:  &username,
		LevelHash: &levelHash,
	}.WhereClause()
	assert.Equal(t, "username = @username AND level_hash = @levelHash", clause)
	assert.Equal(t, "alice", args["username"])
	assert.Equal(t, levelHash, args["levelHash"])
}
