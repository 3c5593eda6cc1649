// Package retry provides automatic retry logic with exponential backoff
// for transient store connection failures.
//
// # Example Usage
//
//	classifier := retry.NewStoreErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return client.Ping(ctx).Err()
//	})
//
// # Error Classification
//
// StoreErrorClassifier treats network failures, PostgreSQL connection and
// resource SQLSTATE classes, and Redis replies such as LOADING or TRYAGAIN as
// transient. Everything else (authentication, bad URLs, syntax) is fatal.
//
// Writes are never retried by kvload; the executor is used when connecting.
//
// # Thread Safety
//
// Executor instances are safe for concurrent use. Use WithOnRetry() to create
// independent configurations per goroutine.
package retry
