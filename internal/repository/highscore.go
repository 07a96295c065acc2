package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type Highscore struct {
	GameSessionId int64   `json:"game_session_id"`
	Username      *string `json:"username"`
	LevelHash     string  `json:"level_hash"`
	BoxCount      int     `json:"box_count"`
	MoveCount     int     `json:"move_count"`
	PushCount     int     `json:"push_count"`
	PlaytimeMs    float64 `json:"playtime_ms"`
}

type HighscoreFilter struct {
	Username  *string
	LevelHash *string
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.LevelHash != nil {
		clauses = append(clauses, "level_hash = @levelHash")
		args["levelHash"] = *f.LevelHash
	}
	return strings.Join(clauses, " AND "), args
}

// GetHighscores lists solved sessions ranked by fewest moves, then fewest
// pushes, then playtime.
func (q *Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_session_id,
		username,
		level_hash,
		box_count,
		move_count,
		push_count,
		(
			extract('epoch' from completed_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM game_session
		LEFT OUTER JOIN player using (player_id)
	WHERE
		solved = true
		AND completed_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY move_count, push_count, playtime_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
