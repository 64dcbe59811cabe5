package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/viewmorph/viewmorph/pkg/scatter"
)

// ReadJSON decodes a JSON dataset from r.
//
// The input must be a JSON object with a "points" array; a "dimensions"
// array is optional:
//
//	{
//	  "dimensions": [{"name": "a", "min": 0, "max": 10}],
//	  "points": [{"id": "p0", "values": {"a": 2}}]
//	}
//
// Each point must have an "id" field. Each dimension must have a "name";
// "min"/"max" default to the data extent and "mapping" defaults to linear.
// When "dimensions" is omitted, dimensions are derived from the union of
// value keys, in sorted order.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or invalid
//   - A point is missing its ID, or two points share one
//   - A dimension is missing its name, or two dimensions share one
//   - A mapping name is not recognized
//
// Errors are wrapped with context describing which dimension or point
// caused the problem. Use errors.Is to check for specific scatter errors.
//
// The returned dataset is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*scatter.Dataset, error) {
	var data dataset
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	points := make([]scatter.Point, len(data.Points))
	for i, p := range data.Points {
		if p.ID == "" {
			return nil, fmt.Errorf("point %d: missing id", i)
		}
		points[i] = scatter.NewPoint(p.ID, p.Values)
	}

	specs := data.Dimensions
	if specs == nil {
		specs = derivedDimensions(data.Points)
	}
	dims := make([]scatter.Dimension, len(specs))
	for i, ds := range specs {
		if ds.Name == "" {
			return nil, fmt.Errorf("dimension %d: missing name", i)
		}
		d, err := resolveDimension(ds, points)
		if err != nil {
			return nil, fmt.Errorf("dimension %s: %w", ds.Name, err)
		}
		dims[i] = d
	}

	return scatter.NewDataset(dims, points)
}

// resolveDimension turns a wire dimension into a value object, filling
// missing domain bounds from the data extent.
func resolveDimension(ds dimension, points []scatter.Point) (scatter.Dimension, error) {
	mapping := scatter.Linear
	if ds.Mapping != "" {
		m, err := scatter.ParseMapping(ds.Mapping)
		if err != nil {
			return scatter.Dimension{}, err
		}
		mapping = m
	}
	if ds.Min == nil || ds.Max == nil {
		d := scatter.FromData(ds.Name, points, 0)
		if ds.Min != nil {
			d.Min = *ds.Min
		}
		if ds.Max != nil {
			d.Max = *ds.Max
		}
		d.Mapping = mapping
		return d, nil
	}
	return scatter.NewDimension(ds.Name, *ds.Min, *ds.Max, mapping)
}

// derivedDimensions lists one spec per value key seen across all points,
// sorted by name so the derived dataset is deterministic.
func derivedDimensions(points []point) []dimension {
	seen := make(map[string]bool)
	var names []string
	for _, p := range points {
		for name := range p.Values {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	specs := make([]dimension, len(names))
	for i, name := range names {
		specs[i] = dimension{Name: name}
	}
	return specs
}

// ImportJSON reads a JSON file at path and returns the decoded dataset.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. If the file cannot be opened, or if decoding fails, ImportJSON
// returns an error describing the failure. The error wraps the underlying
// cause with the file path for context.
func ImportJSON(path string) (*scatter.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
