package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/phishscore/internal/classifier"
	"github.com/nao1215/phishscore/internal/config"
	"github.com/nao1215/phishscore/internal/database"
	"github.com/nao1215/phishscore/internal/engine"
	applog "github.com/nao1215/phishscore/internal/log"
)

// getBoolFlag retrieves a bool flag from the command or the root's
// persistent flags. Missing flags read as false.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getStringFlag retrieves a string flag from the command or the root's
// persistent flags. Missing flags read as "".
func getStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return v
}

// flagChanged reports whether the user set the named flag.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// loadConfig resolves the configuration shared by all commands: defaults,
// config file, .env and environment, then the flags common to every
// command that defines them.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(getStringFlag(cmd, "config"), config.DefaultEnvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Verbose = getBoolFlag(cmd, "verbose")

	// An explicit --db-dir beats PS_DB.
	if flagChanged(cmd, "db-dir") {
		cfg.DBDir = getStringFlag(cmd, "db-dir")
		cfg.DBFile = ""
	}
	if flagChanged(cmd, "model-dir") {
		cfg.ModelDir = getStringFlag(cmd, "model-dir")
	}

	return cfg, nil
}

// setupLogger creates the secure logger for a command and installs it as
// the slog default. --verbose lowers the level to Debug; otherwise records
// below level are dropped.
func setupLogger(cmd *cobra.Command, cfg *config.Config, level slog.Level) (*slog.Logger, error) {
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger, err := applog.NewSecureLoggerWithLevel(cmd.ErrOrStderr(), cfg.LogFormat, level)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// openDB opens (creating if needed) the scan database named by cfg.
func openDB(cfg *config.Config, logger *slog.Logger) (*database.ScanDB, error) {
	db, err := database.OpenFile(cfg.DBPath(), database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("database opened", "path", db.Path())
	return db, nil
}

// newEngine builds the scan engine with the classifier from cfg.ModelDir.
// db may be nil, in which case nothing is recorded.
func newEngine(cfg *config.Config, logger *slog.Logger, db *database.ScanDB, opts ...engine.Option) *engine.Engine {
	base := []engine.Option{
		engine.WithClassifier(classifier.Load(cfg.ModelDir, logger)),
		engine.WithLogger(logger),
	}
	// A nil *ScanDB must not become a non-nil Recorder.
	if db != nil {
		base = append(base, engine.WithRecorder(db))
	}
	return engine.New(append(base, opts...)...)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// createOutputFile creates or truncates path, creating parent directories.
// Reports may contain URLs with user data, so the file is owner-only.
func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}
