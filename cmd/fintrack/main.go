package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"fintrack/internal/api"
	"fintrack/internal/budget"
	"fintrack/internal/config"
	"fintrack/internal/session"
	"fintrack/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg := config.Load()

	logFile := setupLogging(cfg.Logging)
	if logFile != nil {
		defer logFile.Close()
	}

	sess := session.NewManager()

	var client api.Client
	if cfg.Demo {
		slog.Info("starting in demo mode, no backend required")
		client = api.NewDemoClient(sess)
	} else {
		client = api.NewClient(cfg.API, sess)
	}

	tracker := budget.NewTracker(budget.NewFileStore(cfg.Budget.FilePath))

	program := tea.NewProgram(ui.New(client, sess, tracker), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "fintrack: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes slog to the configured file. The terminal is owned
// by the UI, so without a file logs are discarded rather than written to
// stderr. The returned file, if any, stays open for the process lifetime.
func setupLogging(cfg config.LoggingConfig) *os.File {
	var out io.Writer = io.Discard
	var logFile *os.File

	if cfg.FilePath != "" {
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fintrack: cannot open log file: %v\n", err)
		} else {
			out = file
			logFile = file
		}
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
	slog.SetDefault(slog.New(handler))
	return logFile
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
