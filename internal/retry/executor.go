package retry

import (
	"context"
	"time"

	"github.com/vvka-141/kvload/pkg/kvload"
)

// Executor orchestrates retry attempts with backoff and error classification.
// WithOnRetry returns a copy, so a shared Executor is never mutated.
type Executor struct {
	classifier kvload.ErrorClassifier
	strategy   kvload.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a new retry executor with the given configuration.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier kvload.ErrorClassifier, strategy kvload.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// NewDefaultExecutor uses the store classifier with kvload's default backoff.
func NewDefaultExecutor() *Executor {
	return NewExecutor(
		NewStoreErrorClassifier(),
		NewExponentialBackoff(kvload.DefaultRetryMaxAttempts,
			WithInitialDelay(kvload.DefaultRetryInitialDelay),
			WithMaxDelay(kvload.DefaultRetryMaxDelay),
		),
	)
}

// WithOnRetry returns a new Executor that calls callback before each retry wait.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation once, then retries transient failures until the
// strategy's attempts are exhausted or ctx is done.
// Returns the error of the last attempt.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	lastErr := operation(ctx)
	if lastErr == nil || !e.classifier.IsTransient(lastErr) {
		return lastErr
	}

	maxAttempts := e.strategy.MaxAttempts()
	for attempt := 0; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		lastErr = operation(ctx)
		if lastErr == nil || !e.classifier.IsTransient(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
