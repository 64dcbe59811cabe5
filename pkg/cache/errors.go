package cache

import (
	"errors"

	"github.com/viewmorph/viewmorph/pkg/httputil"
)

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for backend transport failures (Redis
	// timeouts, connection errors).
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// Retryable marks a backend failure as transient so callers can wrap
// lookups in [httputil.RetryWithBackoff]. Nil passes through.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &httputil.RetryableError{Err: err}
}
