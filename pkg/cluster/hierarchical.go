package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Hierarchical clusters by repeatedly merging the two clusters whose
// centroids lie closest together, starting from singletons. Merging stops
// once both targets hold:
//
//   - TargetCount: cluster count is at or below it (0 disables)
//   - TargetRadius: at least half the clusters have a mean member-to-
//     centroid distance at or below it (0 disables)
//
// With both targets disabled no merging happens and every point stays in
// its own cluster.
type Hierarchical struct {
	TargetCount  int
	TargetRadius float64
}

// Merge records one merge step: the cluster positions joined and the
// centroid distance between them at the time of merging. The sequence of
// merges forms the dendrogram debug tooling renders.
type Merge struct {
	A, B     int
	Distance float64
}

// Partition runs the algorithm on packed row-major normalized coordinates.
func (h Hierarchical) Partition(packed []float64, dims int) (Partition, error) {
	p, _, err := h.partition(packed, dims, false)
	return p, err
}

// PartitionWithMerges additionally returns the merge sequence, in order.
func (h Hierarchical) PartitionWithMerges(packed []float64, dims int) (Partition, []Merge, error) {
	return h.partition(packed, dims, true)
}

func (h Hierarchical) partition(packed []float64, dims int, recordMerges bool) (Partition, []Merge, error) {
	n, err := rows(packed, dims)
	if err != nil {
		return nil, nil, err
	}
	if n == 0 {
		return Partition{}, nil, nil
	}

	clusters := make([][]int, n)
	centroids := make([][]float64, n)
	for i := 0; i < n; i++ {
		clusters[i] = []int{i}
		centroids[i] = append([]float64(nil), row(packed, dims, i)...)
	}

	var merges []Merge
	for len(clusters) > 1 && !h.done(packed, dims, clusters, centroids) {
		a, b, dist := closestPair(centroids)
		if a < 0 {
			break
		}
		if recordMerges {
			merges = append(merges, Merge{A: a, B: b, Distance: dist})
		}
		clusters[a] = append(clusters[a], clusters[b]...)
		centroids[a] = centroid(packed, dims, clusters[a])
		clusters = append(clusters[:b], clusters[b+1:]...)
		centroids = append(centroids[:b], centroids[b+1:]...)
	}

	return Partition(clusters), merges, nil
}

// done reports whether the current clustering already satisfies both
// targets.
func (h Hierarchical) done(packed []float64, dims int, clusters [][]int, centroids [][]float64) bool {
	if h.TargetCount > 0 && len(clusters) > h.TargetCount {
		return false
	}
	if h.TargetRadius > 0 {
		tight := 0
		for ci, c := range clusters {
			if meanRadius(packed, dims, c, centroids[ci]) <= h.TargetRadius {
				tight++
			}
		}
		if tight*2 < len(clusters) {
			return false
		}
	}
	return true
}

// closestPair returns the pair of cluster positions with the smallest
// centroid distance. Ties keep the first pair in index order (i major).
// With fewer than two centroids the positions come back -1.
func closestPair(centroids [][]float64) (int, int, float64) {
	bestA, bestB := -1, -1
	best := math.Inf(1)
	for i := 0; i < len(centroids); i++ {
		for j := i + 1; j < len(centroids); j++ {
			d := finiteDistance(centroids[i], centroids[j])
			if d < best {
				best, bestA, bestB = d, i, j
			}
		}
	}
	return bestA, bestB, best
}

// centroid is the per-dimension mean of the cluster's member rows.
func centroid(packed []float64, dims int, members []int) []float64 {
	sums := make([]float64, dims)
	for _, idx := range members {
		floats.Add(sums, row(packed, dims, idx))
	}
	floats.Scale(1/float64(len(members)), sums)
	return sums
}

// meanRadius is the mean distance from the cluster's members to its
// centroid.
func meanRadius(packed []float64, dims int, members []int, center []float64) float64 {
	if len(members) == 0 {
		return 0
	}
	sum := 0.0
	for _, idx := range members {
		sum += finiteDistance(row(packed, dims, idx), center)
	}
	return sum / float64(len(members))
}
