package retry

import (
	"context"
	"time"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

// Executor runs an operation and repeats it while it fails transiently.
// Safe for concurrent use.
type Executor struct {
	classifier sheetload.ErrorClassifier
	strategy   sheetload.BackoffStrategy
	logger     sheetload.Logger
}

// NewExecutor creates a retry executor. Panics if classifier or strategy is
// nil. A nil logger disables retry logging.
func NewExecutor(classifier sheetload.ErrorClassifier, strategy sheetload.BackoffStrategy, logger sheetload.Logger) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy, logger: logger}
}

// Execute runs operation until it succeeds, fails permanently, runs out of
// retries or ctx ends. It returns the last error.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	maxAttempts := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if maxAttempts >= 0 && attempt >= maxAttempts {
			break
		}

		delay := e.strategy.NextDelay(attempt)
		if e.logger != nil {
			e.logger.Warn("Attempt %d failed, retrying in %v: %v", attempt+1, delay.Round(time.Millisecond), err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = operation(ctx)
	}
	return err
}
