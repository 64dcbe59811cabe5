package scatter

import "fmt"

// Dataset bundles points with the dimensions that describe them. Datasets
// are immutable after construction.
type Dataset struct {
	dims   []Dimension
	points []Point
	byName map[string]int
}

// NewDataset builds a dataset, rejecting duplicate dimension names and
// duplicate point IDs.
func NewDataset(dims []Dimension, points []Point) (*Dataset, error) {
	byName := make(map[string]int, len(dims))
	for i, d := range dims {
		if _, ok := byName[d.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDimension, d.Name)
		}
		byName[d.Name] = i
	}
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePoint, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return &Dataset{
		dims:   append([]Dimension(nil), dims...),
		points: append([]Point(nil), points...),
		byName: byName,
	}, nil
}

// Dimensions returns the dataset's dimensions in declaration order.
func (d *Dataset) Dimensions() []Dimension {
	return append([]Dimension(nil), d.dims...)
}

// Points returns the dataset's points in declaration order.
func (d *Dataset) Points() []Point {
	return append([]Point(nil), d.points...)
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.points) }

// Dimension returns the named dimension.
func (d *Dataset) Dimension(name string) (Dimension, error) {
	i, ok := d.byName[name]
	if !ok {
		return Dimension{}, fmt.Errorf("%w: %q", ErrUnknownDimension, name)
	}
	return d.dims[i], nil
}

// View builds a view from two dimension names.
func (d *Dataset) View(xName, yName string) (View, error) {
	x, err := d.Dimension(xName)
	if err != nil {
		return View{}, err
	}
	y, err := d.Dimension(yName)
	if err != nil {
		return View{}, err
	}
	return NewView(x, y), nil
}

// Packed returns the points' normalized coordinates under dims as a flat
// row-major slice of length Len() × len(dims). This is the layout the
// clustering code operates on.
func Packed(points []Point, dims []Dimension) []float64 {
	packed := make([]float64, 0, len(points)*len(dims))
	for _, p := range points {
		for _, dim := range dims {
			packed = append(packed, dim.Normalize(p.Get(dim.Name)))
		}
	}
	return packed
}

// Packed returns the dataset's points packed under its own dimensions.
func (d *Dataset) Packed() []float64 {
	return Packed(d.points, d.dims)
}
