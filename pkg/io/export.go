package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/viewmorph/viewmorph/pkg/scatter"
)

type dataset struct {
	Dimensions []dimension `json:"dimensions,omitempty"`
	Points     []point     `json:"points"`
}

type dimension struct {
	Name    string   `json:"name"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Mapping string   `json:"mapping,omitempty"`
}

type point struct {
	ID     string             `json:"id"`
	Values map[string]float64 `json:"values"`
}

// WriteJSON encodes a dataset as JSON and writes it to w.
// The output carries resolved domain bounds for every dimension and the
// mapping name for non-linear axes. This format can be re-imported with
// [ReadJSON] for round-trip processing.
func WriteJSON(ds *scatter.Dataset, w io.Writer) error {
	dims := ds.Dimensions()
	points := ds.Points()
	out := dataset{
		Dimensions: make([]dimension, len(dims)),
		Points:     make([]point, len(points)),
	}

	for i, d := range dims {
		lo, hi := d.Min, d.Max
		wd := dimension{Name: d.Name, Min: &lo, Max: &hi}
		if d.Mapping != scatter.Linear {
			wd.Mapping = d.Mapping.String()
		}
		out.Dimensions[i] = wd
	}
	for i, p := range points {
		out.Points[i] = point{ID: p.ID, Values: p.Values()}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a dataset to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(ds *scatter.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(ds, f)
}
