package engine

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/phishscore/internal/model"
)

// DefaultConcurrency is the number of URLs scanned at once by default.
const DefaultConcurrency = 10

// BatchProcessor scans many URLs concurrently.
//
// Design decision: We keep batching out of Engine because:
// 1. It keeps the Engine focused on single-URL scoring
// 2. Callers that score one URL per request never pay for goroutines
// 3. Recording and cancellation policy live in one place
type BatchProcessor struct {
	engine *Engine

	// concurrency is the maximum number of concurrent scans.
	concurrency int

	// record selects ScanAndRecord over Scan.
	record bool

	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scans.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithRecording makes the batch persist every scan through the engine's
// Recorder.
func WithRecording(record bool) BatchOption {
	return func(b *BatchProcessor) {
		b.record = record
	}
}

// NewBatchProcessor creates a BatchProcessor over the given engine.
func NewBatchProcessor(e *Engine, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		engine:      e,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch scans all URLs and returns their results in input order.
//
// Scoring itself never fails, so the only error is context cancellation.
// URLs not started before cancellation have a zero result.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) ([]model.ScoreResult, error) {
	results := make([]model.ScoreResult, len(urls))
	err := bp.ProcessBatchWithCallback(ctx, urls, func(r model.ScoreResult, i int) {
		// Each index is written by exactly one goroutine.
		results[i] = r
	})
	return results, err
}

// ProcessBatchWithCallback scans all URLs and calls callback for each
// result as it completes. The callback runs on the scanning goroutine and
// must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	urls []string,
	callback func(result model.ScoreResult, index int),
) error {
	bp.logger.Info("starting batch scan",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, u := range urls {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			var r model.ScoreResult
			if bp.record {
				r = bp.engine.ScanAndRecord(ctx, u)
			} else {
				r = bp.engine.Scan(u)
			}

			bp.logger.Debug("scanned URL",
				"url", u,
				"index", i+1,
				"total", len(urls),
				"status", r.Status.String(),
			)

			callback(r, i)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch scan complete",
		"total_urls", len(urls),
		"elapsed", time.Since(startTime),
	)

	return err
}
