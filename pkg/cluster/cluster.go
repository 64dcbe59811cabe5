// Package cluster groups data points by proximity in normalized dimension
// space. It offers two interchangeable clusterers: a fuzzy density-based
// algorithm ([FuzzyDBSCAN]) and a hierarchical centroid-merge fallback
// ([Hierarchical]). Both operate on packed row-major float slices
// (pointCount × dimCount) and produce a [Partition].
package cluster

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sentinel errors returned by clustering operations.
var (
	// ErrEmptyCluster reports an empty cluster reaching downstream code, a
	// programming error rather than a data condition.
	ErrEmptyCluster = errors.New("empty cluster")

	// ErrPackedSize is returned when a packed data slice is not divisible
	// by its dimension count.
	ErrPackedSize = errors.New("packed data length not divisible by dimension count")

	// ErrPartition is returned when a partition does not cover its input
	// index set exactly once.
	ErrPartition = errors.New("invalid partition")
)

// Partition is a hard grouping of point indices: every input index appears
// in exactly one cluster and no cluster is empty.
type Partition [][]int

// Singletons returns the partition placing every one of n points in its
// own cluster, used when clustering is disabled.
func Singletons(n int) Partition {
	p := make(Partition, n)
	for i := range p {
		p[i] = []int{i}
	}
	return p
}

// Sizes returns the per-cluster point counts, in cluster order.
func (p Partition) Sizes() []int {
	sizes := make([]int, len(p))
	for i, c := range p {
		sizes[i] = len(c)
	}
	return sizes
}

// Validate checks that the partition covers exactly the index set [0, n):
// clusters non-empty, indices in range, no index missing or repeated.
func (p Partition) Validate(n int) error {
	seen := make([]bool, n)
	covered := 0
	for ci, c := range p {
		if len(c) == 0 {
			return fmt.Errorf("cluster %d: %w", ci, ErrEmptyCluster)
		}
		for _, idx := range c {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: index %d out of range [0, %d)", ErrPartition, idx, n)
			}
			if seen[idx] {
				return fmt.Errorf("%w: index %d appears twice", ErrPartition, idx)
			}
			seen[idx] = true
			covered++
		}
	}
	if covered != n {
		return fmt.Errorf("%w: covered %d of %d indices", ErrPartition, covered, n)
	}
	return nil
}

// rows interprets packed as pointCount × dims row-major values and returns
// the point count.
func rows(packed []float64, dims int) (int, error) {
	if dims <= 0 {
		if len(packed) != 0 {
			return 0, fmt.Errorf("%w: %d values, %d dimensions", ErrPackedSize, len(packed), dims)
		}
		return 0, nil
	}
	if len(packed)%dims != 0 {
		return 0, fmt.Errorf("%w: %d values, %d dimensions", ErrPackedSize, len(packed), dims)
	}
	return len(packed) / dims, nil
}

func row(packed []float64, dims, i int) []float64 {
	return packed[i*dims : (i+1)*dims]
}

// distance is the Euclidean distance between two packed rows.
func distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// finiteDistance is the Euclidean distance between two rows where any
// dimension with a non-finite difference is left out of the sum.
func finiteDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		if math.IsNaN(diff) || math.IsInf(diff, 0) {
			continue
		}
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
