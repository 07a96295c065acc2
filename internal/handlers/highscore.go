package handlers

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/sokoban-server/internal/repository"
)

// Highscores lists solved sessions ranked by fewest moves, optionally
// filtered by level fingerprint and/or username.
func (g GameHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.HighscoreFilter{}

	if query.Has("level_hash") {
		levelHash := query.Get("level_hash")
		filter.LevelHash = &levelHash
	}
	if query.Has("username") {
		username := query.Get("username")
		filter.Username = &username
	}

	highscores, err := g.repo.GetHighscores(r.Context(), filter)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("failed to fetch highscores", "error", err)
		return
	}
	if highscores == nil {
		highscores = []repository.Highscore{}
	}

	sendJSONOrLog(w, g.logger, map[string]any{"highscores": highscores})
}
