// Package httputil provides HTTP helpers shared by photo source clients.
//
// # Retry
//
// [Retry] re-runs an operation for transient failures. Only errors wrapped
// with [Retryable] are retried:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Backoff doubles after each attempt. A wrapped rate-limit error that
// carries a Retry-After value stretches the wait to at least that long:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return client.fetch(ctx, page)
//	})
//
// # Configuration
//
// Defaults are 3 attempts with a 1 second base delay.
package httputil
