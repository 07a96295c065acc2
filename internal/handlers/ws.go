package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/sokoban-server/internal/sokoban"
	"github.com/vancomm/sokoban-server/internal/solver"
)

// Websocket play channel. Each text frame carries newline-separated
// commands:
//
//	g              no-op, just resend the session state
//	m <direction>  make a move (up/down/left/right)
//	r              reset the level
//	s <algorithm>  run a solver on a copy of the current state
//
// Board commands answer with the session DTO after persisting; "s" answers
// with the solver result and leaves the session untouched.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, board, ok := g.fetchBoard(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Warn("ws read failed", "error", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		dirty := false
		var solved any
		for _, command := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			var reply any
			var mutated bool
			reply, mutated, err = g.executeCommand(board, command)
			if err != nil {
				break
			}
			if reply != nil {
				solved = reply
			}
			dirty = dirty || mutated
		}

		if err != nil {
			if writeErr := conn.WriteJSON(wrapError(err)); writeErr != nil {
				g.logger.Error("ws write failed", "error", writeErr)
				return
			}
			continue
		}

		if dirty {
			session, err = g.repo.SaveBoard(r.Context(), session, board)
			if err != nil {
				g.logger.Error("unable to update session in db", "error", err)
				return
			}
		}

		var reply any = NewGameSessionDTO(session, board)
		if solved != nil {
			// a solver result takes precedence over the state echo
			reply = solved
		}

		if err := conn.WriteJSON(reply); err != nil {
			g.logger.Error("ws write failed", "error", err)
			return
		}
	}
}

// executeCommand applies one command to the board. A nil reply means the
// caller should answer with the session state; a non-nil reply is sent
// as-is. mutated reports whether the board may have changed and needs
// persisting.
func (g GameHandler) executeCommand(board *sokoban.Level, command string) (reply any, mutated bool, err error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, false, errors.New("empty command")
	}

	switch parts[0] {
	case "g":
		if len(parts) != 1 {
			return nil, false, errors.New("g takes no arguments")
		}
		return nil, false, nil
	case "m":
		if len(parts) != 2 {
			return nil, false, errors.New("m takes one argument")
		}
		direction, err := sokoban.ParseDirection(parts[1])
		if err != nil {
			return nil, false, err
		}
		board.Move(direction)
		return nil, true, nil
	case "r":
		if len(parts) != 1 {
			return nil, false, errors.New("r takes no arguments")
		}
		board.Reset()
		return nil, true, nil
	case "s":
		if len(parts) != 2 {
			return nil, false, errors.New("s takes one argument")
		}
		algo, err := solver.ParseAlgorithm(parts[1])
		if err != nil {
			return nil, false, err
		}
		result, err := g.bot.Solve(board, algo, nil)
		if err != nil {
			return nil, false, err
		}
		return result, false, nil
	}
	return nil, false, fmt.Errorf("unknown command %q", parts[0])
}
