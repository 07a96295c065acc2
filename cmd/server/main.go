package main

import (
	"context"
	"embed"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/sokoban-server/internal/app"
	"github.com/vancomm/sokoban-server/internal/config"
	"github.com/vancomm/sokoban-server/internal/sokoban"
	"github.com/vancomm/sokoban-server/internal/solver"
)

//go:embed migrations/*.sql
var migrations embed.FS

// setupSolverLogging configures the solver package logger: colored text on
// stderr, plus a rotating JSON file when SOLVER_LOG_FILE is set.
func setupSolverLogging() {
	level := logrus.InfoLevel
	if config.Development() {
		level = logrus.DebugLevel
	}
	solver.Log.SetLevel(level)
	solver.Log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	logFile, ok := os.LookupEnv("SOLVER_LOG_FILE")
	if !ok {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		solver.Log.Warn("unable to create solver log file hook: ", err)
		return
	}
	solver.Log.AddHook(hook)
}

func main() {
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	logger := slog.New(handler)

	sokoban.Log = logger.With(slog.String("component", "sokoban"))
	setupSolverLogging()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	a := app.New(logger, migrations)
	if err := a.Start(ctx); err != nil {
		logger.Error("failed to start server", slog.Any("error", err))
		os.Exit(1)
	}
}
