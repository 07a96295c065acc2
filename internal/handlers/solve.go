package handlers

import (
	"net/http"

	"github.com/vancomm/sokoban-server/internal/solver"
)

// solveOptions translates the DTO's overrides; zero values keep the
// per-algorithm defaults.
func solveOptions(dto SolveDTO) *solver.Options {
	return &solver.Options{
		MaxIterations: dto.MaxIterations,
		TimeLimit:     dto.TimeLimitDuration(),
	}
}

// Solve runs one algorithm against the session's current state. The session
// itself is never mutated; the solver works on a clone.
func (g GameHandler) Solve(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseSolveDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	if dto.Algorithm == "" {
		dto.Algorithm = string(solver.AlgorithmBFS)
	}
	algo, err := solver.ParseAlgorithm(dto.Algorithm)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	_, board, ok := g.fetchBoard(w, r)
	if !ok {
		return
	}

	result, err := g.bot.Solve(board, algo, solveOptions(dto))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	sendJSONOrLog(w, g.logger, result)
}

// AutoSolve tries the algorithms in preference order and returns the first
// success.
func (g GameHandler) AutoSolve(w http.ResponseWriter, r *http.Request) {
	_, board, ok := g.fetchBoard(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, g.bot.AutoSolve(board))
}

// Compare runs every algorithm on independent copies of the session state
// and returns the ranked results.
func (g GameHandler) Compare(w http.ResponseWriter, r *http.Request) {
	_, board, ok := g.fetchBoard(w, r)
	if !ok {
		return
	}

	results, err := g.bot.Compare(board, nil)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("comparison failed", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, map[string]any{"results": results})
}
