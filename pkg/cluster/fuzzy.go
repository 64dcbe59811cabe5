package cluster

// Category classifies a point's role within a fuzzy cluster.
type Category int

const (
	// Core points have enough fuzzy density to extend the cluster.
	Core Category = iota

	// Border points are reachable from a core but too sparse to extend
	// the cluster themselves.
	Border

	// Noise points belong to no cluster; they are collected into one
	// shared trailing noise cluster.
	Noise
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Core:
		return "core"
	case Border:
		return "border"
	default:
		return "noise"
	}
}

// Assignment is one point's membership in one fuzzy cluster: its index,
// its category, and a soft membership label in [0,1].
type Assignment struct {
	Index    int
	Category Category
	Label    float64
}

// FuzzyDBSCAN clusters by fuzzy density. Instead of DBSCAN's fixed radius
// and minimum point count it uses two ramps: distances at or below EpsMin
// count fully as neighbors, distances above EpsMax not at all, with a
// linear falloff between; densities at or above PtsMax make a full core,
// densities at or below PtsMin none, again linear between.
//
// Inputs are packed row-major normalized coordinates, pointCount × dims.
// This is the performance-critical path of spline preparation, which is
// why it works on flat float slices rather than richer point values.
type FuzzyDBSCAN struct {
	EpsMin float64
	EpsMax float64
	PtsMin float64
	PtsMax float64
}

// Cluster runs the algorithm and returns the soft clusters in discovery
// order: each cluster lists core assignments followed by its border
// assignments, and all noise points share one trailing cluster. Border
// points reachable from several clusters appear in each of them; use
// [FuzzyDBSCAN.Partition] for a hard assignment.
//
// Zero points yield no clusters. A single point yields one cluster of
// size one.
func (f FuzzyDBSCAN) Cluster(packed []float64, dims int) ([][]Assignment, error) {
	n, err := rows(packed, dims)
	if err != nil {
		return nil, err
	}

	var clusters [][]Assignment
	var noise []Assignment
	visited := make([]bool, n)

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true
		neighbors := f.regionQuery(packed, dims, n, i)
		label := f.muMinP(f.density(packed, dims, i, neighbors))
		if label == 0 {
			noise = append(noise, Assignment{Index: i, Category: Noise, Label: 1})
			continue
		}
		clusters = append(clusters, f.expand(packed, dims, n, i, label, neighbors, visited))
	}

	if len(noise) > 0 {
		clusters = append(clusters, noise)
	}
	return clusters, nil
}

// expand grows one cluster from seed outward through every point whose
// fuzzy density stays positive, collecting the rest as border points.
func (f FuzzyDBSCAN) expand(packed []float64, dims, n, seed int, seedLabel float64, neighbors []int, visited []bool) []Assignment {
	cluster := []Assignment{{Index: seed, Category: Core, Label: seedLabel}}
	var borders []Assignment

	queued := make([]bool, n)
	queued[seed] = true
	queue := make([]int, 0, len(neighbors))
	for _, ni := range neighbors {
		queued[ni] = true
		queue = append(queue, ni)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		visited[cur] = true

		curNeighbors := f.regionQuery(packed, dims, n, cur)
		label := f.muMinP(f.density(packed, dims, cur, curNeighbors))
		if label > 0 {
			cluster = append(cluster, Assignment{Index: cur, Category: Core, Label: label})
			for _, ni := range curNeighbors {
				if !queued[ni] {
					queued[ni] = true
					queue = append(queue, ni)
				}
			}
		} else {
			borders = append(borders, Assignment{Index: cur, Category: Border})
		}
	}

	// A border's label is its best fuzzy connection to the cluster: the
	// maximum over cores of min(muDistance(border, core), core label).
	for bi := range borders {
		b := &borders[bi]
		for _, c := range cluster {
			mu := f.muDistance(row(packed, dims, b.Index), row(packed, dims, c.Index))
			if mu > 0 {
				b.Label = max(b.Label, min(mu, c.Label))
			}
		}
	}

	return append(cluster, borders...)
}

// Partition reduces the soft clusters to the hard partition downstream
// code consumes: each point lands in the first non-noise cluster that
// contains it; points with only a noise membership share the trailing
// noise cluster. Cluster order is preserved.
func (f FuzzyDBSCAN) Partition(packed []float64, dims int) (Partition, error) {
	soft, err := f.Cluster(packed, dims)
	if err != nil {
		return nil, err
	}
	n, _ := rows(packed, dims)

	claimed := make([]bool, n)
	var p Partition
	for _, c := range soft {
		var indices []int
		for _, a := range c {
			if a.Category == Noise {
				continue
			}
			if !claimed[a.Index] {
				claimed[a.Index] = true
				indices = append(indices, a.Index)
			}
		}
		if len(indices) > 0 {
			p = append(p, indices)
		}
	}

	var noise []int
	for i := 0; i < n; i++ {
		if !claimed[i] {
			noise = append(noise, i)
		}
	}
	if len(noise) > 0 {
		p = append(p, noise)
	}
	return p, nil
}

// regionQuery returns every point within EpsMax of point i, excluding i
// itself, in ascending index order.
func (f FuzzyDBSCAN) regionQuery(packed []float64, dims, n, i int) []int {
	var neighbors []int
	ri := row(packed, dims, i)
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		if distance(ri, row(packed, dims, j)) <= f.EpsMax {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// density is the fuzzy neighborhood weight of point i: one for the point
// itself plus the distance membership of every neighbor.
func (f FuzzyDBSCAN) density(packed []float64, dims, i int, neighbors []int) float64 {
	d := 1.0
	ri := row(packed, dims, i)
	for _, ni := range neighbors {
		d += f.muDistance(ri, row(packed, dims, ni))
	}
	return d
}

// muMinP ramps a fuzzy density into a core membership label.
func (f FuzzyDBSCAN) muMinP(density float64) float64 {
	switch {
	case density >= f.PtsMax:
		return 1
	case density <= f.PtsMin:
		return 0
	default:
		return (density - f.PtsMin) / (f.PtsMax - f.PtsMin)
	}
}

// muDistance ramps a distance into a neighborhood membership label.
func (f FuzzyDBSCAN) muDistance(a, b []float64) float64 {
	d := distance(a, b)
	switch {
	case d <= f.EpsMin:
		return 1
	case d > f.EpsMax:
		return 0
	default:
		return (f.EpsMax - d) / (f.EpsMax - f.EpsMin)
	}
}
