package classifier

import (
	"errors"
	"fmt"
	"log/slog"
)

// Adapter is the single entry point for optional classification.
// A nil model means the classifier is unavailable. The adapter is built
// once at startup and is safe for concurrent use.
type Adapter struct {
	model  Model
	logger *slog.Logger
}

// NewAdapter wraps a model. A nil model yields an unavailable adapter.
// If logger is nil, slog.Default() is used.
func NewAdapter(m Model, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{model: m, logger: logger}
}

// Unavailable returns an adapter with no model.
func Unavailable() *Adapter {
	return NewAdapter(nil, nil)
}

// Load builds an adapter from the artifacts in dir. It never fails: an
// empty dir, missing artifacts, or a load error all yield an unavailable
// adapter. Load errors are logged wrapped in ErrClassifierUnavailable;
// missing artifacts are the normal heuristics-only mode and only logged at
// debug level.
func Load(dir string, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	if dir == "" {
		logger.Debug("no model directory configured, classifier disabled")
		return NewAdapter(nil, logger)
	}

	m, err := LoadModel(dir)
	if err != nil {
		if errors.Is(err, ErrModelNotFound) {
			logger.Debug("no classifier artifacts found", "dir", dir)
		} else {
			logger.Warn("failed to load classifier",
				"dir", dir,
				"error", fmt.Errorf("%w: %w", ErrClassifierUnavailable, err))
		}
		return NewAdapter(nil, logger)
	}

	logger.Info("classifier loaded", "dir", dir, "model", m.Name(),
		"probability", m.SupportsProbability())
	return NewAdapter(m, logger)
}

// Available reports whether a model is configured.
func (a *Adapter) Available() bool {
	return a != nil && a.model != nil
}

// ModelName returns the configured model's name, or "" when unavailable.
func (a *Adapter) ModelName() string {
	if !a.Available() {
		return ""
	}
	return a.model.Name()
}

// Score returns the machine-learning score of url on 0..100.
// The second result is false when no model is configured or inference
// failed for this call; inference failures are logged and never returned.
func (a *Adapter) Score(url string) (float64, bool) {
	if !a.Available() {
		return 0, false
	}

	s, err := a.model.Score(url)
	if err != nil {
		a.logger.Warn("classifier inference failed",
			"url", url,
			"error", fmt.Errorf("%w: %w", ErrClassifierUnavailable, err))
		return 0, false
	}
	return s, true
}
