package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sokoban-server/internal/sokoban"
)

func TestFitnessSolvedSentinel(t *testing.T) {
	solved := mustLevel(t, []string{
		"#####",
		"# @*#",
		"#####",
	})
	s := NewAnnealing(solved, 100, testTimeLimit, testRand())
	assert.Equal(t, solvedFitness, s.fitness(solved))
}

func TestFitnessOpenBoxNearDock(t *testing.T) {
	board := mustLevel(t, []string{
		"######",
		"#    #",
		"# $. #",
		"# @  #",
		"######",
	})
	s := NewAnnealing(board, 100, testTimeLimit, testRand())

	// base 1000 + 4 free neighbors * 2 - distance 1 * 2
	assert.Equal(t, 1006.0, s.fitness(board))
}

func TestFitnessPenalizesCorneredBox(t *testing.T) {
	board := mustLevel(t, []string{
		"#####",
		"#$ @#",
		"# . #",
		"#####",
	})
	s := NewAnnealing(board, 100, testTimeLimit, testRand())

	// base 1000 + 2 free neighbors * 2 - distance 2 * 2 - 2 walls * 5
	assert.Equal(t, 990.0, s.fitness(board))
}

func TestFitnessMoreBoxesThanDocks(t *testing.T) {
	board := mustLevel(t, []string{
		"#######",
		"# *$* #",
		"#  @  #",
		"#######",
	})
	s := NewAnnealing(board, 300, testTimeLimit, testRand())

	// base 1000 + 2 docked * 100 + access (2*5 + 1*2) - unplaceable 500 * 2;
	// with every dock taken there is nowhere to relocate a docked box to,
	// so the reassignment term contributes nothing
	fitness := s.fitness(board)
	assert.Equal(t, 212.0, fitness)
	assert.Less(t, fitness, solvedFitness)

	moves := s.Solve()
	assert.False(t, s.Statistics().SolutionFound)

	replay := board.Clone()
	for i, d := range moves {
		require.True(t, replay.MoveBot(d), "move %d (%s) must be legal", i, d)
	}
	assert.False(t, replay.Complete())
}

func TestFitnessPrefersDockedBoxes(t *testing.T) {
	off := mustLevel(t, []string{
		"#######",
		"# $ $ #",
		"# . . #",
		"#  @  #",
		"#######",
	})
	half := mustLevel(t, []string{
		"#######",
		"# $ * #",
		"# .   #",
		"#  @  #",
		"#######",
	})

	sOff := NewAnnealing(off, 100, testTimeLimit, testRand())
	sHalf := NewAnnealing(half, 100, testTimeLimit, testRand())
	assert.Greater(t, sHalf.fitness(half), sOff.fitness(off))
}

func TestFitnessCachesByBoxArrangement(t *testing.T) {
	board := mustLevel(t, []string{
		"######",
		"#    #",
		"# $. #",
		"# @  #",
		"######",
	})
	s := NewAnnealing(board, 100, testTimeLimit, testRand())

	first := s.fitness(board)
	assert.Equal(t, 1, s.Statistics().CacheSize)

	// a pure player move leaves the score untouched
	moved := board.Clone()
	require.True(t, moved.MoveBot(sokoban.Right))
	assert.Equal(t, first, s.fitness(moved))
	assert.Equal(t, 1, s.Statistics().CacheSize)
}

func TestAcceptanceProbability(t *testing.T) {
	assert.Equal(t, 1.0, acceptanceProbability(100, 110, 50))
	assert.Equal(t, 1.0, acceptanceProbability(100, 100, 50))
	assert.InDelta(t, math.Exp(-0.1), acceptanceProbability(110, 100, 100), 1e-9)
	assert.Equal(t, 0.0, acceptanceProbability(110, 100, 0))
}

func TestAnnealingSolvesOnePushLevel(t *testing.T) {
	s := NewAnnealing(mustLevel(t, []string{
		"#####",
		"#@$.#",
		"#####",
	}), 6000, testTimeLimit, testRand())

	moves := s.Solve()
	require.NotNil(t, moves)
	assert.Equal(t, []sokoban.Direction{sokoban.Right}, moves)
	assert.True(t, s.Statistics().SolutionFound)
}

func TestAnnealingZeroBoxesSolvedInPlace(t *testing.T) {
	s := NewAnnealing(mustLevel(t, []string{
		"####",
		"#@ #",
		"####",
	}), 100, testTimeLimit, testRand())

	moves := s.Solve()
	require.NotNil(t, moves)
	assert.Empty(t, moves)
}

func TestAnnealingBestEffortStaysLegal(t *testing.T) {
	initial := impossibleLevel(t)
	s := NewAnnealing(initial.Clone(), 500, testTimeLimit, testRand())

	moves := s.Solve()
	stats := s.Statistics()
	assert.False(t, stats.SolutionFound)
	assert.Greater(t, stats.Iterations, 0)

	// whatever comes back must replay cleanly from the initial state
	board := initial.Clone()
	for i, d := range moves {
		require.True(t, board.MoveBot(d), "move %d (%s) must be legal", i, d)
	}
	assert.False(t, board.Complete())
}

var _ Solver = (*Annealing)(nil)
