package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/vancomm/sokoban-server/internal/handlers"
	"github.com/vancomm/sokoban-server/internal/solver"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)
	game := handlers.NewGameHandler(
		a.logger, a.db, a.ws, solver.NewBot(createRand()),
	)

	a.router.HandleFunc("GET /status", auth.Status)
	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)

	a.router.HandleFunc("GET /levels", game.Levels)
	a.router.HandleFunc("GET /highscores", game.Highscores)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/move", game.Move)
	a.router.HandleFunc("POST /game/{id}/reset", game.Reset)
	a.router.HandleFunc("POST /game/{id}/solve", game.Solve)
	a.router.HandleFunc("POST /game/{id}/autosolve", game.AutoSolve)
	a.router.HandleFunc("POST /game/{id}/compare", game.Compare)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)

	a.router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}
