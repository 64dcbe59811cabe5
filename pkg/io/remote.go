package io

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/viewmorph/viewmorph/pkg/httputil"
	"github.com/viewmorph/viewmorph/pkg/scatter"
)

// IsURL reports whether source names a remote dataset.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ImportURL fetches a JSON dataset over HTTP and decodes it. Transient
// failures are retried; see [httputil.Fetch].
func ImportURL(ctx context.Context, url string) (*scatter.Dataset, error) {
	body, err := httputil.Fetch(ctx, nil, url)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	ds, err := ReadJSON(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", url, err)
	}
	return ds, nil
}

// Import reads a dataset from a file path or an http(s) URL.
func Import(ctx context.Context, source string) (*scatter.Dataset, error) {
	if IsURL(source) {
		return ImportURL(ctx, source)
	}
	return ImportJSON(source)
}
