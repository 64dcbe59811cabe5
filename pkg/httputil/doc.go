// Package httputil fetches remote datasets with retries.
//
// # Overview
//
// Datasets can live behind HTTP endpoints just as well as on disk. This
// package provides the plumbing the loaders build on:
//
//   - [Fetch]: GET a URL and return its body, retrying transient failures
//   - [Retry]: Generic retry with exponential backoff
//
// # Retry
//
// [Retry] re-runs an operation when it fails with a [RetryableError].
// Network errors and 5xx responses are transient, so [Fetch] wraps them;
// a 404 or a malformed URL fails immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchOnce()
//	})
//
// The delay doubles after each failed attempt. The defaults, 3 attempts
// starting at 1 second, suit interactive use; pass your own budget to
// [Retry] for servers.
package httputil
