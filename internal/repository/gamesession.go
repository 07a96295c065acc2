package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

// GameSession mirrors the game_session table. State holds the gob-encoded
// sokoban.Snapshot (original grid plus move history); the live board is
// rebuilt by replay.
type GameSession struct {
	GameSessionId int64
	PlayerId      *int64
	LevelHash     string
	Width         int
	Height        int
	BoxCount      int
	Solved        bool
	MoveCount     int
	PushCount     int
	State         []byte
	StartedAt     pgtype.Timestamptz
	CompletedAt   *time.Time
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

// Board decodes and replays the persisted snapshot.
func (s GameSession) Board() (*sokoban.Level, error) {
	snap, err := sokoban.DecodeSnapshot(s.State)
	if err != nil {
		return nil, err
	}
	return sokoban.Restore(snap)
}

type CreateGameSessionParams struct {
	PlayerId *int64
}

func (p CreateGameSessionParams) UpdateArgs(args *pgx.NamedArgs) *pgx.NamedArgs {
	if p.PlayerId != nil {
		(*args)["player_id"] = *p.PlayerId
	}
	return args
}

func (q *Queries) CreateGameSession(
	ctx context.Context, board *sokoban.Level, params CreateGameSessionParams,
) (*GameSession, error) {
	state, err := board.Snapshot().Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"level_hash": board.Fingerprint(),
		"width":      board.Width,
		"height":     board.Height,
		"box_count":  board.BoxCount(),
		"solved":     board.Complete(),
		"move_count": board.Moves(),
		"push_count": board.Pushes(),
		"state":      state,
	}
	params.UpdateArgs(&args)

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, level_hash, width, height, box_count,
			solved, move_count, push_count, state
		)
		VALUES (
			@player_id, @level_hash, @width, @height, @box_count,
			@solved, @move_count, @push_count, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q *Queries) FetchGameSession(ctx context.Context, gameSessionId int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateGameSessionParams struct {
	Solved      *bool
	MoveCount   *int
	PushCount   *int
	CompletedAt *time.Time
	State       *[]byte
}

func (p UpdateGameSessionParams) SetClause() (string, map[string]any) {
	parts := make([]string, 0)
	args := make(map[string]any)

	if p.Solved != nil {
		parts = append(parts, "solved = @solved")
		args["solved"] = *p.Solved
	}
	if p.MoveCount != nil {
		parts = append(parts, "move_count = @move_count")
		args["move_count"] = *p.MoveCount
	}
	if p.PushCount != nil {
		parts = append(parts, "push_count = @push_count")
		args["push_count"] = *p.PushCount
	}
	if p.CompletedAt != nil {
		parts = append(parts, "completed_at = @completed_at")
		args["completed_at"] = *p.CompletedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q *Queries) UpdateGameSession(
	ctx context.Context, gameSessionId int64, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.SetClause()
	args["game_session_id"] = gameSessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+" WHERE game_session_id = @game_session_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// SaveBoard persists the board's current snapshot and counters, stamping
// completed_at the first time the session turns solved.
func (q *Queries) SaveBoard(
	ctx context.Context, session *GameSession, board *sokoban.Level,
) (*GameSession, error) {
	state, err := board.Snapshot().Bytes()
	if err != nil {
		return nil, err
	}

	solved := board.Complete()
	moves := board.Moves()
	pushes := board.Pushes()
	params := UpdateGameSessionParams{
		Solved:    &solved,
		MoveCount: &moves,
		PushCount: &pushes,
		State:     &state,
	}
	if solved && session.CompletedAt == nil {
		now := time.Now().UTC()
		params.CompletedAt = &now
	}
	return q.UpdateGameSession(ctx, session.GameSessionId, params)
}
