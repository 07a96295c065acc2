package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sokoban-server/internal/sokoban"
	"github.com/vancomm/sokoban-server/internal/solver"
)

var log = logrus.New()

var (
	levelPath  string
	levelName  string
	algorithm  string
	iterations int
	timeLimit  time.Duration
	verbose    bool
)

func init() {
	flag.StringVar(&levelPath, "level", "", "path to a level file (token grid)")
	flag.StringVar(&levelName, "name", "", "built-in level name (see -list)")
	flag.StringVar(&algorithm, "algorithm", "all",
		"bfs, astar, sa, auto, or all to compare every algorithm")
	flag.IntVar(&iterations, "iterations", 0, "override the iteration budget")
	flag.DurationVar(&timeLimit, "time-limit", 0, "override the time limit")
	flag.BoolVar(&verbose, "v", false, "verbose solver logging")
}

func loadLevel() (*sokoban.Level, error) {
	if levelPath != "" {
		data, err := os.ReadFile(levelPath)
		if err != nil {
			return nil, err
		}
		grid := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		return sokoban.Parse(grid)
	}
	if levelName == "" {
		levelName = sokoban.DefaultLevelName
	}
	return sokoban.BuiltinLevel(levelName)
}

func printResults(results []solver.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSOLVED\tMOVES\tTIME (S)\tITERATIONS\tERROR")
	for _, r := range results {
		errMsg := r.Error
		if errMsg == "" {
			errMsg = "-"
		}
		fmt.Fprintf(w, "%s\t%t\t%d\t%.3f\t%d\t%s\n",
			r.Algorithm, r.Success, r.MoveCount, r.SolveTime,
			r.IterationsUsed, errMsg,
		)
	}
	w.Flush()
}

func printMoves(moves []sokoban.Direction) {
	parts := make([]string, len(moves))
	for i, d := range moves {
		parts[i] = string(d)
	}
	fmt.Println("moves:", strings.Join(parts, " "))
}

func main() {
	list := flag.Bool("list", false, "list built-in levels and exit")
	flag.Parse()

	if *list {
		for _, name := range sokoban.BuiltinLevelNames() {
			fmt.Println(name)
		}
		return
	}

	level := logrus.WarnLevel
	if verbose {
		level = logrus.DebugLevel
	}
	solver.Log.SetLevel(level)
	solver.Log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	board, err := loadLevel()
	if err != nil {
		log.Fatal("unable to load level: ", err)
	}

	fmt.Println(board)
	fmt.Printf("%dx%d, %d boxes, %d docks, level %s\n\n",
		board.Width, board.Height, board.BoxCount(), board.DockCount(),
		board.Fingerprint(),
	)

	bot := solver.NewBot(rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	)))

	var opts *solver.Options
	if iterations > 0 || timeLimit > 0 {
		opts = &solver.Options{MaxIterations: iterations, TimeLimit: timeLimit}
	}

	switch algorithm {
	case "all":
		results, err := bot.Compare(board, nil)
		if err != nil {
			log.Fatal(err)
		}
		printResults(results)
		if results[0].Success {
			printMoves(results[0].Moves)
		}
	case "auto":
		result := bot.AutoSolve(board)
		printResults([]solver.Result{result})
		if result.Success {
			printMoves(result.Moves)
		}
	default:
		algo, err := solver.ParseAlgorithm(algorithm)
		if err != nil {
			log.Fatal(err)
		}
		result, err := bot.Solve(board, algo, opts)
		if err != nil {
			log.Fatal(err)
		}
		printResults([]solver.Result{result})
		if result.Success {
			printMoves(result.Moves)
		}
	}
}
