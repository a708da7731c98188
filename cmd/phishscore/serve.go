package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/phishscore/internal/config"
	"github.com/nao1215/phishscore/internal/database"
	"github.com/nao1215/phishscore/internal/engine"
	"github.com/nao1215/phishscore/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP scoring API",
		Long: `Serve exposes the scan engine over HTTP.

Routes:
  POST /scan      {"url": "..."}                 score and record a URL
  POST /report    {"url": "...", "note": "..."}  record a user report
  GET  /scans     ?limit=N                       recent scans
  GET  /healthz                                  liveness and classifier status
  GET  /metrics                                  Prometheus metrics

The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
  # Listen on the default address (:5000)
  phishscore serve

  # JSON logs for log aggregation, restricted CORS
  phishscore serve --addr 127.0.0.1:8080 --log-format json --origin https://app.example.com`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultAddr,
		"Listen address")
	cmd.Flags().String("log-format", config.DefaultLogFormat,
		"Log format: text, json or pretty")
	cmd.Flags().StringSlice("origin", nil,
		"Allowed CORS origin (repeatable, default: *)")
	cmd.Flags().Bool("no-metrics", false,
		"Disable the /metrics endpoint")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")
	cmd.Flags().String("model-dir", config.DefaultModelDir,
		"Directory containing model.json and vectorizer.json")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.ValidateServe(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := setupLogger(cmd, cfg, slog.LevelInfo)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	db, err := openDB(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	noMetrics, err := cmd.Flags().GetBool("no-metrics")
	if err != nil {
		return err
	}

	srvOpts := []server.Option{
		server.WithStore(db),
		server.WithLogger(logger),
		server.WithAllowedOrigins(cfg.AllowedOrigins),
	}

	var e *engine.Engine
	if noMetrics {
		e = newEngine(cfg, logger, db)
	} else {
		metrics := server.NewMetrics()
		e = newEngine(cfg, logger, db, engine.WithObserver(metrics))
		metrics.SetClassifierAvailable(e.ClassifierAvailable())
		srvOpts = append(srvOpts, server.WithMetrics(metrics))
	}

	logger.Info("starting server",
		"addr", cfg.Addr,
		"db", db.Path(),
		"classifier", e.ClassifierAvailable(),
		"model", e.ClassifierName(),
	)
	if !e.ClassifierAvailable() {
		logger.Warn("no classifier loaded, scoring with heuristics only", "model_dir", cfg.ModelDir)
	}

	return server.New(e, srvOpts...).ListenAndServe(ctx, cfg.Addr)
}

// buildServeConfig applies the serve flags on top of the loaded configuration.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if flagChanged(cmd, "addr") {
		cfg.Addr = getStringFlag(cmd, "addr")
	}
	if flagChanged(cmd, "log-format") {
		cfg.LogFormat = getStringFlag(cmd, "log-format")
	}
	if flagChanged(cmd, "origin") {
		cfg.AllowedOrigins, err = cmd.Flags().GetStringSlice("origin")
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Compile-time check that the database satisfies the server's store.
var _ server.Store = (*database.ScanDB)(nil)
