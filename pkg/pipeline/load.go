package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viewmorph/viewmorph/pkg/cache"
	morphio "github.com/viewmorph/viewmorph/pkg/io"
	"github.com/viewmorph/viewmorph/pkg/scatter"
)

// Load reads the dataset named by the options: inline JSON when present,
// otherwise the file path or http(s) URL.
func Load(ctx context.Context, opts Options) (*scatter.Dataset, error) {
	if len(opts.DatasetJSON) > 0 {
		ds, err := morphio.ReadJSON(bytes.NewReader(opts.DatasetJSON))
		if err != nil {
			return nil, fmt.Errorf("read inline dataset: %w", err)
		}
		return ds, nil
	}
	return morphio.Import(ctx, opts.DatasetPath)
}

// DatasetHash serializes the dataset to its canonical JSON form and hashes
// it, so equal datasets hash equal regardless of the formatting or field
// order of the file they came from.
func DatasetHash(ds *scatter.Dataset) (string, error) {
	var buf bytes.Buffer
	if err := morphio.WriteJSON(ds, &buf); err != nil {
		return "", fmt.Errorf("serialize dataset for hashing: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}
