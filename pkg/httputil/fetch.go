package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// fetchTimeout bounds one HTTP attempt, not the whole retry budget.
const fetchTimeout = 30 * time.Second

// ErrNotFound is returned by [Fetch] for a 404 response.
var ErrNotFound = errors.New("not found")

// maxBodyBytes caps a fetched body so a misbehaving endpoint cannot
// exhaust memory.
const maxBodyBytes = 64 << 20

// NewHTTPClient returns the client [Fetch] uses when given nil: a plain
// client with a per-request timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}

// Fetch GETs url and returns the response body. Network errors and 5xx
// responses are retried with [RetryWithBackoff]; a 404 fails immediately
// with [ErrNotFound] and other statuses fail with the status in the
// error. Pass nil for client to use [NewHTTPClient].
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = NewHTTPClient()
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err != nil {
			return &RetryableError{Err: fmt.Errorf("get %s: %w", url, err)}
		}
		defer resp.Body.Close()

		if err := checkStatus(url, resp.StatusCode); err != nil {
			return err
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return &RetryableError{Err: fmt.Errorf("read %s: %w", url, err)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%s: %w", url, ErrNotFound)
	case code >= 500:
		return &RetryableError{Err: fmt.Errorf("get %s: status %d", url, code)}
	default:
		return fmt.Errorf("get %s: status %d", url, code)
	}
}
