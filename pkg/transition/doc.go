// Package transition computes per-point screen positions while a scatter
// plot animates between views.
//
// A transition is built from an ordered list of at least two views and a
// strategy:
//
//   - [Straight] moves every point along a line between its positions in
//     adjacent views.
//   - [Rotation] treats the axis two views share as a hinge and rotates the
//     out-of-plane dimension into view, with optional perspective.
//   - [Spline] groups points into clusters and routes each point along a
//     bezier path that follows its cluster's centroid trajectory, traversed
//     at uniform speed via arc-length tables.
//
// Whether a view pair may follow another depends on the strategy's
// [Capabilities]; constructors reject illegal chains with
// [ErrIncompatibleViews] before any preparation work starts.
//
// # Readiness
//
// Straight and rotation transitions answer immediately. A spline transition
// must be prepared first: [Spline.Prepare] ships the point data to a worker
// goroutine that clusters it and builds the paths. Until the result is
// installed, X and Y return [ErrNotReady]. A failed preparation is
// permanent; discard the transition and build a new one.
//
// # Concurrency
//
// A ready transition is read-only apart from a single-slot matrix cache
// inside each rotation segment, so one animation loop may query it freely,
// scrub backwards, or re-evaluate the same time. Instances are not safe for
// concurrent callers.
package transition
