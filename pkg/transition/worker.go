package transition

import (
	"context"
	"fmt"
	"slices"

	"github.com/viewmorph/viewmorph/pkg/cluster"
	"github.com/viewmorph/viewmorph/pkg/geom"
	"github.com/viewmorph/viewmorph/pkg/scatter"
	"github.com/viewmorph/viewmorph/pkg/tween"
)

// Spline preparation runs as one request/response exchange with a worker
// goroutine. The request carries only plain data: raw point values packed
// row-major, dimension descriptors, view descriptors, and parameters. The
// worker rebuilds the dimension value objects, normalizes the rows,
// clusters them, and answers with guides and per-point paths.

type dimensionDescriptor struct {
	Name     string
	Min, Max float64
	Mapping  string
}

func (d dimensionDescriptor) reconstruct() (scatter.Dimension, error) {
	m, err := scatter.ParseMapping(d.Mapping)
	if err != nil {
		return scatter.Dimension{}, err
	}
	return scatter.NewDimension(d.Name, d.Min, d.Max, m)
}

// viewDescriptor names a view's axes; the worker resolves them against the
// request's dimension list.
type viewDescriptor struct {
	X, Y string
}

type prepareRequest struct {
	IDs    []string
	Dims   []dimensionDescriptor
	Raw    []float64
	Views  []viewDescriptor
	Params SplineParams
}

type prepareResult struct {
	guides []PathGuide
	paths  map[string]*Path
	err    error
}

// prepare dispatches the request to a worker goroutine and waits for its
// single response. Cancelling ctx abandons the exchange; the buffered
// channel lets the worker finish and be collected without a receiver.
func prepare(ctx context.Context, req prepareRequest) (prepareResult, error) {
	if err := ctx.Err(); err != nil {
		return prepareResult{}, err
	}
	ch := make(chan prepareResult, 1)
	go func() {
		ch <- buildPaths(req)
	}()
	select {
	case <-ctx.Done():
		return prepareResult{}, ctx.Err()
	case res := <-ch:
		return res, nil
	}
}

// newPrepareRequest flattens the dataset and views into plain payloads.
// Rows carry raw domain values; normalization happens on the worker where
// the dimensions are rebuilt. Points lacking a dimension carry NaN there.
func newPrepareRequest(ds *scatter.Dataset, views []scatter.View, params SplineParams) prepareRequest {
	dims := unionDimensions(views)
	points := ds.Points()

	ids := make([]string, len(points))
	raw := make([]float64, 0, len(points)*len(dims))
	for i, p := range points {
		ids[i] = p.ID
		for _, d := range dims {
			raw = append(raw, p.Get(d.Name))
		}
	}

	descs := make([]dimensionDescriptor, len(dims))
	for i, d := range dims {
		descs[i] = dimensionDescriptor{Name: d.Name, Min: d.Min, Max: d.Max, Mapping: d.Mapping.String()}
	}
	vds := make([]viewDescriptor, len(views))
	for i, v := range views {
		vds[i] = viewDescriptor{X: v.XDim.Name, Y: v.YDim.Name}
	}
	return prepareRequest{IDs: ids, Dims: descs, Raw: raw, Views: vds, Params: params}
}

// unionDimensions lists every dimension the views touch, in first-seen
// order. The order fixes the packed column layout.
func unionDimensions(views []scatter.View) []scatter.Dimension {
	var dims []scatter.Dimension
	seen := make(map[string]bool)
	for _, v := range views {
		for _, d := range []scatter.Dimension{v.XDim, v.YDim} {
			if !seen[d.Name] {
				seen[d.Name] = true
				dims = append(dims, d)
			}
		}
	}
	return dims
}

// viewFrame is a view resolved to packed column indices.
type viewFrame struct {
	x, y int
}

// buildPaths is the worker body: reconstruct dimensions, normalize the
// rows, cluster, and turn every cluster's centroid trajectory into guides
// and per-point bezier paths.
func buildPaths(req prepareRequest) prepareResult {
	dims := make([]scatter.Dimension, len(req.Dims))
	index := make(map[string]int, len(req.Dims))
	for i, dd := range req.Dims {
		d, err := dd.reconstruct()
		if err != nil {
			return prepareResult{err: err}
		}
		dims[i] = d
		index[d.Name] = i
	}

	k := len(dims)
	n := len(req.IDs)
	if len(req.Raw) != n*k {
		return prepareResult{err: fmt.Errorf("request: %w: %d values for %d points and %d dimensions",
			cluster.ErrPackedSize, len(req.Raw), n, k)}
	}

	frames := make([]viewFrame, len(req.Views))
	for i, vd := range req.Views {
		xi, okX := index[vd.X]
		yi, okY := index[vd.Y]
		if !okX || !okY {
			return prepareResult{err: fmt.Errorf("view (%s, %s): dimension not in request", vd.X, vd.Y)}
		}
		frames[i] = viewFrame{x: xi, y: yi}
	}

	packed := make([]float64, len(req.Raw))
	for r := 0; r < n; r++ {
		for c, d := range dims {
			packed[r*k+c] = d.Normalize(req.Raw[r*k+c])
		}
	}

	part, err := clusterPoints(packed, k, n, req.Params.Clustering)
	if err != nil {
		return prepareResult{err: err}
	}
	if n > 0 {
		if err := part.Validate(n); err != nil {
			return prepareResult{err: err}
		}
	}

	polylines := clustersToPolylines(packed, k, frames, part)
	guides := make([]PathGuide, len(part))
	for ci := range part {
		guides[ci] = guideFor(polylines[ci], req.Params.BundlingStrength)
	}

	sizes := part.Sizes()
	paths := make(map[string]*Path, n)
	for ci, members := range part {
		info := tween.RetimeInfo{Index: ci, Total: len(part), Sizes: sizes}
		for _, m := range members {
			pos := make([]geom.Vec2, len(frames))
			for vi, f := range frames {
				pos[vi] = geom.Vec2{X: packed[m*k+f.x], Y: packed[m*k+f.y]}
			}
			paths[req.IDs[m]] = pathFor(pos, guides[ci], req.Params, info)
		}
	}
	return prepareResult{guides: guides, paths: paths}
}

// clusterPoints partitions the normalized rows with the configured method.
func clusterPoints(packed []float64, k, n int, cp ClusteringParams) (cluster.Partition, error) {
	switch cp.Method {
	case ClusterNone:
		return cluster.Singletons(n), nil
	case ClusterFuzzy:
		if cp.EpsMin > cp.EpsMax {
			return nil, fmt.Errorf("fuzzy clustering: epsMin %v exceeds epsMax %v", cp.EpsMin, cp.EpsMax)
		}
		if cp.PtsMin > cp.PtsMax {
			return nil, fmt.Errorf("fuzzy clustering: ptsMin %v exceeds ptsMax %v", cp.PtsMin, cp.PtsMax)
		}
		f := cluster.FuzzyDBSCAN{EpsMin: cp.EpsMin, EpsMax: cp.EpsMax, PtsMin: cp.PtsMin, PtsMax: cp.PtsMax}
		return f.Partition(packed, k)
	case ClusterHierarchical:
		h := cluster.Hierarchical{TargetCount: cp.TargetCount, TargetRadius: cp.TargetRadius}
		return h.Partition(packed, k)
	}
	return nil, fmt.Errorf("unknown clustering method %d", cp.Method)
}

// clustersToPolylines computes each cluster's centroid position in every
// view. Clusters are non-empty by the time this runs.
func clustersToPolylines(packed []float64, k int, frames []viewFrame, part cluster.Partition) [][]geom.Vec2 {
	polylines := make([][]geom.Vec2, len(part))
	for ci, members := range part {
		poly := make([]geom.Vec2, len(frames))
		for vi, f := range frames {
			var sum geom.Vec2
			for _, m := range members {
				sum = sum.Add(geom.Vec2{X: packed[m*k+f.x], Y: packed[m*k+f.y]})
			}
			poly[vi] = sum.Scale(1 / float64(len(members)))
		}
		polylines[ci] = poly
	}
	return polylines
}

// guideFor derives the cluster's tangents and bundling points from its
// centroid polyline. Interior tangents average the normalized inbound and
// outbound directions; endpoint tangents stay zero.
func guideFor(poly []geom.Vec2, bundling int) PathGuide {
	tangents := make([]geom.Vec2, len(poly))
	for i := 1; i < len(poly)-1; i++ {
		in := poly[i].Sub(poly[i-1]).Normalized()
		out := poly[i+1].Sub(poly[i]).Normalized()
		tangents[i] = in.Add(out).Normalized()
	}
	bundles := make([][]geom.Vec2, 0, len(poly)-1)
	for s := 0; s+1 < len(poly); s++ {
		mid := geom.Mid(poly[s], poly[s+1])
		pts := make([]geom.Vec2, bundling)
		for j := range pts {
			pts[j] = mid
		}
		bundles = append(bundles, pts)
	}
	return PathGuide{Centroids: slices.Clone(poly), Tangents: tangents, Bundling: bundles}
}

// pathFor builds one point's path from its per-view positions and its
// cluster's guide. Each view pair becomes a bezier whose tangent handles
// reach half the straight-line distance; with loose intermediates all
// pairs concatenate into a single long curve.
func pathFor(pos []geom.Vec2, g PathGuide, params SplineParams, info tween.RetimeInfo) *Path {
	segs := len(pos) - 1
	curves := make([]geom.Curve, segs)
	for s := 0; s < segs; s++ {
		start, end := pos[s], pos[s+1]
		handle := start.Distance(end) / 2
		c := geom.Curve{start, start.Add(g.Tangents[s].Scale(handle))}
		c = append(c, g.Bundling[s]...)
		c = append(c, end.Sub(g.Tangents[s+1].Scale(handle)), end)
		curves[s] = c
	}
	if params.LooseIntermediates && segs > 1 {
		joined := make(geom.Curve, 0)
		for _, c := range curves {
			joined = append(joined, c...)
		}
		curves = []geom.Curve{joined}
	}
	p := &Path{Segments: make([]*PathSegment, len(curves))}
	for i, c := range curves {
		p.Segments[i] = &PathSegment{Curve: c, Table: geom.NewTable(c), Retime: info}
	}
	return p
}
