// Package io provides JSON import and export for scatter datasets.
//
// # Overview
//
// This package serializes datasets to and from a small JSON format. The
// format is designed for:
//
//   - Feeding the CLI and the HTTP service from one file shape
//   - Integration with external tools that produce point data
//   - Round-trip preservation: import, animate, export, and re-import
//     identically
//
// # JSON Format
//
// The format has a required "points" array and an optional "dimensions"
// array:
//
//	{
//	  "dimensions": [
//	    {"name": "gdp", "min": 300, "max": 60000, "mapping": "log"},
//	    {"name": "life", "min": 20, "max": 90}
//	  ],
//	  "points": [
//	    {"id": "NOR", "values": {"gdp": 52000, "life": 82.1}},
//	    {"id": "IND", "values": {"gdp": 1900, "life": 69.4}}
//	  ]
//	}
//
// # Dimension Fields
//
// Required:
//   - name: Unique axis identifier, referenced by point values and views
//
// Optional:
//   - min, max: Domain bounds (computed from the data if either is omitted)
//   - mapping: "linear" or "log" (defaults to linear)
//
// When the "dimensions" array is omitted entirely, one linear dimension is
// derived for every key that appears in any point's values, with the domain
// set to the data extent.
//
// # Point Fields
//
// Required:
//   - id: Unique string identifier
//   - values: Object mapping dimension names to numbers; a point may omit
//     dimensions it has no value for
//
// # Import
//
// Use [ImportJSON] to read a dataset from a file path, or [ReadJSON] to
// read from any io.Reader:
//
//	ds, err := io.ImportJSON("countries.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate the JSON structure and dataset constraints (no
// duplicate dimension names, no duplicate point IDs). Errors are wrapped
// with context about which dimension or point caused the problem.
//
// # Export
//
// Use [ExportJSON] to write a dataset to a file, or [WriteJSON] to write to
// any io.Writer:
//
//	err := io.ExportJSON(ds, "output.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The export always includes resolved domain bounds, so a dataset whose
// dimensions were derived from the data re-imports with the same domains.
//
// # Concurrency
//
// Datasets are immutable, so all functions in this package are safe to call
// concurrently. [ReadJSON] and [ImportJSON] return independent dataset
// instances.
package io
