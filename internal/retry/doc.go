// Package retry re-attempts database connection establishment when the
// failure looks transient (server starting up, network blip, connection
// slots exhausted).
//
//	executor := retry.NewExecutor(
//	    retry.NewPostgreSQLErrorClassifier(),
//	    retry.NewExponentialBackoff(3),
//	    logger,
//	)
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
//
// Only connection setup is retried. Statements issued by the loader run once.
package retry
