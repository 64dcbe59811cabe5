// Package scatter defines the data model shared by every transition
// strategy: dimensions, data points, scatter views, and datasets.
//
// # Dimensions
//
// A [Dimension] is a named axis with a domain [Min, Max] and a mapping kind
// (linear or logarithmic). It translates between domain values and
// normalized [0,1] coordinates via [Dimension.Normalize] and
// [Dimension.Expand]. Use [FromData] to derive a domain from the finite
// values of a dataset.
//
// # Views
//
// A [View] pairs an x and a y dimension into one 2D scatter configuration.
// [View.X] and [View.Y] give a point's normalized position in that view.
// Transitions animate between ordered lists of views.
//
// # Datasets
//
// A [Dataset] bundles points with the dimensions that describe them and
// offers lookups plus the packed normalized representation the clustering
// code consumes.
//
// # Concurrency
//
// Dimensions and views are value types and freely copyable. Points and
// datasets are immutable after construction, so concurrent readers need no
// synchronization.
package scatter
