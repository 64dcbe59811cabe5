// Package pkg provides the core libraries for Viewmorph scatter animation.
//
// # Overview
//
// Viewmorph animates a scatter plot from one view of a dataset to another:
// every point travels along a computed path while the axes swap from, say,
// gdp/life to gdp/co2. The pkg directory is organized into four main areas:
//
//  1. Data model ([scatter], [io]) - datasets, dimensions, normalization
//  2. Geometry ([transition], [tween], [geom], [cluster]) - strategy math
//  3. Orchestration ([pipeline], [cache], [store]) - runs, caching, records
//  4. Output ([render], [render/anim], [render/dendro]) - SVG/PNG/PDF
//
// # Architecture
//
// The typical data flow through Viewmorph:
//
//	Dataset JSON (file, URL, or inline)
//	         ↓
//	    [scatter] package (dimensions + normalized points)
//	         ↓
//	    [transition] package (strategy geometry: straight, rotation, spline)
//	         ↓
//	    [pipeline] package (prepare + sample frames, with caching)
//	         ↓
//	    JSON/SVG/PNG/PDF output
//
// # Quick Start
//
// Load a dataset, prepare a transition, and sample frames:
//
//	import (
//	    "context"
//	    morphio "github.com/viewmorph/viewmorph/pkg/io"
//	    "github.com/viewmorph/viewmorph/pkg/pipeline"
//	    "github.com/viewmorph/viewmorph/pkg/scatter"
//	    "github.com/viewmorph/viewmorph/pkg/transition"
//	)
//
//	// 1. Load the dataset
//	ds, _ := morphio.ImportJSON("countries.json")
//
//	// 2. Build the transition across two views
//	v1, _ := ds.View("gdp", "life")
//	v2, _ := ds.View("gdp", "co2")
//	tr, _ := transition.New(transition.StrategySpline, ds, []scatter.View{v1, v2}, nil)
//	_ = tr.Prepare(context.Background())
//
//	// 3. Sample 60 frames
//	frames, _ := pipeline.Sample(tr, ds, 60)
//
// Or let the [pipeline.Runner] drive the whole thing with caching:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    DatasetPath: "countries.json",
//	    Strategy:    "spline",
//	    Views:       []pipeline.ViewSpec{{X: "gdp", Y: "life"}, {X: "gdp", Y: "co2"}},
//	})
//
// # Main Packages
//
// ## Data Model
//
// [scatter] - Datasets as dimensions plus points. Dimensions map raw values
// into [0,1] with linear or log mappings; views pair two dimensions into a
// plot configuration.
//
// [io] - JSON dataset import/export, from files or http(s) URLs, with
// canonical serialization for hashing.
//
// ## Geometry
//
// [transition] - The three strategies and their parameter schemas. Straight
// interpolates normalized positions, rotation pivots shared axes through a
// third dimension with perspective projection, and the spline routes points
// along clustered, eased, optionally bundled curves.
//
// [tween] - Easing functions and retiming helpers shared by the strategies.
//
// [geom] - Vectors, bezier curves, arc-length tables, and the 4x4
// projection matrices backing the rotation strategy.
//
// [cluster] - Fuzzy density-based and hierarchical agglomerative clustering
// used to group points that travel together, plus the merge log the
// dendrogram renders.
//
// ## Orchestration
//
// [pipeline] - The load → prepare → sample flow used by CLI and server.
// The Runner caches prepared spline geometry and sampled frames keyed by
// dataset hash and parameters.
//
// [cache] - Cache backends (file, redis, null) with namespaced keys and
// per-artifact TTLs.
//
// [store] - Dataset and animation records behind one interface, with
// memory and MongoDB backends.
//
// [httputil] - Retrying HTTP fetches for remote datasets.
//
// ## Output
//
// [render] - Format conversion utilities (SVG to PDF/PNG via rsvg-convert).
//
// [render/anim] - Frame renderings: one SVG/PNG/PDF scatter per sampled
// frame, and the spline debug view drawing every point path.
//
// [render/dendro] - Clustering dendrograms as Graphviz DOT, rendered to
// SVG/PNG/PDF.
//
// ## Support
//
// [errors] - Coded errors shared by CLI and server; codes map to HTTP
// statuses at the API boundary.
//
// [observability] - Hook interfaces for pipeline, cache, and store
// instrumentation, registered at startup.
//
// [buildinfo] - Version, commit, and build date injected at link time.
//
// # Common Workflows
//
// Evaluate one animation time directly:
//
//	frame, _ := pipeline.FrameAt(tr, ds, 0.5)
//	for _, p := range frame.Positions {
//	    fmt.Printf("%s: (%.2f, %.2f)\n", p.ID, p.X, p.Y)
//	}
//
// Render a frame to SVG:
//
//	svg := anim.FrameSVG(frame, anim.WithSize(800, 600), anim.WithLabels())
//
// Inspect a strategy's parameters:
//
//	schema := transition.SchemaFor(transition.StrategySpline)
//	values, _ := schema.Normalize(map[string]any{"ease": "cubic"})
//
// Cluster a dataset and render the dendrogram:
//
//	part, merges, _ := cluster.Hierarchical{TargetCount: 8}.PartitionWithMerges(ds.Packed(), len(ds.Dimensions()))
//	dot, _ := dendro.ToDOT(ids, merges, dendro.Options{})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/transition/...         # Specific package
//	go test -run Example                 # Examples only
//
// [scatter]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/scatter
// [io]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/io
// [transition]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/transition
// [tween]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/tween
// [geom]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/geom
// [cluster]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/cluster
// [pipeline]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/cache
// [store]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/store
// [httputil]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/httputil
// [render]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/render
// [render/anim]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/render/anim
// [render/dendro]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/render/dendro
// [errors]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/viewmorph/viewmorph/pkg/buildinfo
package pkg
