package main

import (
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"

	"flight_panel/internal/audit"
	"flight_panel/internal/codec"
	"flight_panel/internal/config"
	"flight_panel/internal/console"
	"flight_panel/internal/database"
	"flight_panel/internal/store"

	"github.com/joho/godotenv"
)

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	// stdout belongs to the menu
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	flag.Parse()

	// A .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	if *configPath != "" {
		os.Setenv("FLIGHT_PANEL_CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		return 1
	}

	initLogger(cfg)

	var auditOpts []audit.Option
	if cfg.Audit.JournalPath != "" {
		db, err := database.New(cfg.Audit.JournalPath)
		if err != nil {
			slog.Error("Failed to open audit journal, continuing without it", "path", cfg.Audit.JournalPath, "error", err)
		} else {
			defer db.Close()
			auditOpts = append(auditOpts, audit.WithJournal(db.AuditRepository()))
		}
	}

	auditLog, err := audit.Open(cfg.Audit.LogFile, auditOpts...)
	if err != nil {
		slog.Error("Failed to reset audit log", "error", err)
	}

	slog.Info("Loading flights", "data_file", cfg.DataFile, "on_malformed", cfg.LoadPolicy)
	flights, err := store.LoadFile(cfg.DataFile, store.LoadOptions{
		Decoder: codec.NewDecoder(codec.WithLocation(cfg.Location)),
		Policy:  cfg.LoadPolicy,
	})
	if err != nil {
		slog.Error("Failed to load flights", "error", err)
		return 1
	}
	slog.Info("Flights loaded", "count", flights.Len(), "session_id", auditLog.SessionID())

	panel := console.New(flights, auditLog, os.Stdin, os.Stdout, console.Options{
		Location: cfg.Location,
		Color:    cfg.Color,
	})

	status := 0
	if err := panel.Run(); err != nil {
		slog.Error("Panel stopped unexpectedly", "error", err)
		status = 1
	}

	// Changes are only persisted here; the process exits either way
	if err := flights.SaveFile(cfg.DataFile); err != nil {
		slog.Error("Failed to save flights", "error", err)
		return 1
	}
	slog.Info("Flights saved", "data_file", cfg.DataFile, "count", flights.Len())

	return status
}
