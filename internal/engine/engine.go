package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/phishscore/internal/classifier"
	"github.com/nao1215/phishscore/internal/detector"
	"github.com/nao1215/phishscore/internal/model"
	"github.com/nao1215/phishscore/internal/normalize"
	"github.com/nao1215/phishscore/internal/scoring"
)

// ErrStorageFailure is logged when a scan record could not be persisted.
// It is never returned from a scan.
var ErrStorageFailure = errors.New("failed to record scan")

// Recorder persists scan records.
type Recorder interface {
	RecordScan(ctx context.Context, rec *model.ScanRecord) error
}

// Observer is notified of scan outcomes, typically to update metrics.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveScan(result model.ScoreResult)
	ObserveStorageFailure(err error)
}

// Engine scores URLs. It is safe for concurrent use once constructed.
type Engine struct {
	detectors  *detector.Set
	classifier *classifier.Adapter
	recorder   Recorder
	observer   Observer
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithDetectors replaces the default detector set.
func WithDetectors(set *detector.Set) Option {
	return func(e *Engine) {
		e.detectors = set
	}
}

// WithClassifier sets the classifier adapter.
// Without it the engine scores with heuristics only.
func WithClassifier(a *classifier.Adapter) Option {
	return func(e *Engine) {
		e.classifier = a
	}
}

// WithRecorder sets where ScanAndRecord persists records.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithObserver sets an observer notified after every scan.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.detectors == nil {
		e.detectors = detector.DefaultSet()
	}
	if e.classifier == nil {
		e.classifier = classifier.Unavailable()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.now == nil {
		e.now = time.Now
	}

	return e
}

// ClassifierAvailable reports whether a classifier model is configured.
func (e *Engine) ClassifierAvailable() bool {
	return e.classifier.Available()
}

// ClassifierName returns the loaded model's name, or "" when no
// classifier is configured.
func (e *Engine) ClassifierName() string {
	return e.classifier.ModelName()
}

// Scan scores a URL. It never fails.
func (e *Engine) Scan(url string) model.ScoreResult {
	result := e.score(url)
	if e.observer != nil {
		e.observer.ObserveScan(result)
	}
	return result
}

func (e *Engine) score(url string) model.ScoreResult {
	available := e.classifier.Available()
	if url == "" {
		return scoring.InvalidResult(available)
	}

	parsed := normalize.Parse(url)
	if parsed.Degraded {
		e.logger.Debug("URL did not parse, using raw input as host", "url", url)
	}

	findings, base := e.detectors.Evaluate(parsed)
	mlScore, mlOK := e.classifier.Score(url)

	result := scoring.Aggregate(findings, base, mlScore, mlOK, available)
	result.URL = url
	result.RegisteredDomain = parsed.RegisteredDomain
	return result
}

// ScanAndRecord scores a URL and persists the record through the
// configured Recorder. Empty input is scored but not recorded.
//
// A storage failure is logged as ErrStorageFailure and reported to the
// observer; the returned result is the same as Scan's.
func (e *Engine) ScanAndRecord(ctx context.Context, url string) model.ScoreResult {
	result := e.Scan(url)
	if e.recorder == nil || url == "" {
		return result
	}

	rec := model.NewScanRecord(result, e.now())
	if err := e.recorder.RecordScan(ctx, rec); err != nil {
		err = fmt.Errorf("%w: %w", ErrStorageFailure, err)
		e.logger.Error("failed to store scan record",
			"url", url,
			"error", err,
		)
		if e.observer != nil {
			e.observer.ObserveStorageFailure(err)
		}
	}

	return result
}
