package scatter

import "fmt"

// View pairs an x and a y dimension into one 2D scatter configuration.
// Views are value-like: copy them freely.
type View struct {
	XDim Dimension
	YDim Dimension
}

// NewView builds a view from its two axes.
func NewView(x, y Dimension) View {
	return View{XDim: x, YDim: y}
}

// X returns the point's normalized x coordinate in this view.
func (v View) X(p Point) float64 {
	return v.XDim.Normalize(p.Get(v.XDim.Name))
}

// Y returns the point's normalized y coordinate in this view.
func (v View) Y(p Point) float64 {
	return v.YDim.Normalize(p.Get(v.YDim.Name))
}

// Equal reports whether both axes match per [Dimension.Equal].
func (v View) Equal(o View) bool {
	return v.XDim.Equal(o.XDim) && v.YDim.Equal(o.YDim)
}

// SharesAxis reports whether v and o keep at least one dimension in the
// same axis role (x in both, or y in both).
func (v View) SharesAxis(o View) bool {
	return v.XDim.Equal(o.XDim) || v.YDim.Equal(o.YDim)
}

// SwapsAxis reports whether some dimension changes role between v and o
// (x in one view, y in the other).
func (v View) SwapsAxis(o View) bool {
	return v.XDim.Equal(o.YDim) || v.YDim.Equal(o.XDim)
}

// String returns the view in "(x, y)" form, used by error messages.
func (v View) String() string {
	return fmt.Sprintf("(%s, %s)", v.XDim.Name, v.YDim.Name)
}
