package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/sokoban-server/internal/config"
	"github.com/vancomm/sokoban-server/internal/middleware"
	"github.com/vancomm/sokoban-server/internal/repository"
	"github.com/vancomm/sokoban-server/internal/sokoban"
	"github.com/vancomm/sokoban-server/internal/solver"
)

type GameHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	bot    *solver.Bot
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	bot *solver.Bot,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		bot:    bot,
	}
}

func (g GameHandler) Levels(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.logger, map[string][]string{
		"levels": sokoban.BuiltinLevelNames(),
	})
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	board, err := ParseLevel(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	params := repository.CreateGameSessionParams{}
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		g.logger.Debug("creating player session", "player_id", claims.PlayerId)
		params.PlayerId = &claims.PlayerId
	} else {
		g.logger.Debug("creating anonymous session")
	}

	session, err := g.repo.CreateGameSession(r.Context(), board, params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, board))
}

// fetchBoard loads a session and rebuilds its live board, mapping the usual
// failure modes to status codes.
func (g GameHandler) fetchBoard(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *sokoban.Level, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", "error", err)
		return nil, nil, false
	}

	board, err := session.Board()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", "error", err)
		return nil, nil, false
	}
	return session, board, true
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, board, ok := g.fetchBoard(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, board))
}

func (g GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	direction, err := sokoban.ParseDirection(dto.Direction)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	session, board, ok := g.fetchBoard(w, r)
	if !ok {
		return
	}

	// an illegal move is not an error; the client learns the board did not
	// change from the unchanged counters
	board.Move(direction)

	session, err = g.repo.SaveBoard(r.Context(), session, board)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, board))
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, board, ok := g.fetchBoard(w, r)
	if !ok {
		return
	}

	board.Reset()

	session, err := g.repo.SaveBoard(r.Context(), session, board)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, board))
}
