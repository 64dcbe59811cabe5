package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Mat4 is a 4×4 homogeneous transform using the column-vector convention:
// applying a then b to a point composes as b.Mul(a). Backed by a dense
// gonum matrix; treat values as immutable once constructed.
type Mat4 struct {
	d *mat.Dense
}

// NewMat4 builds a matrix from 16 row-major values.
func NewMat4(rowMajor []float64) Mat4 {
	return Mat4{d: mat.NewDense(4, 4, append([]float64(nil), rowMajor...))}
}

// Identity returns the identity transform.
func Identity() Mat4 {
	return NewMat4([]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// Translation returns the transform moving points by (x, y, z).
func Translation(x, y, z float64) Mat4 {
	return NewMat4([]float64{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	})
}

// RotationX returns the rotation about the x axis by rad radians.
func RotationX(rad float64) Mat4 {
	s, c := math.Sin(rad), math.Cos(rad)
	return NewMat4([]float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})
}

// RotationY returns the rotation about the y axis by rad radians.
func RotationY(rad float64) Mat4 {
	s, c := math.Sin(rad), math.Cos(rad)
	return NewMat4([]float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	})
}

// Ortho returns the orthographic projection of the box [left,right] ×
// [bottom,top] × [near,far] onto clip space.
func Ortho(left, right, bottom, top, near, far float64) Mat4 {
	return NewMat4([]float64{
		2 / (right - left), 0, 0, -(right + left) / (right - left),
		0, 2 / (top - bottom), 0, -(top + bottom) / (top - bottom),
		0, 0, -2 / (far - near), -(far + near) / (far - near),
		0, 0, 0, 1,
	})
}

// Perspective returns the perspective projection with vertical field of
// view fovy (radians), the given aspect ratio, and near/far planes.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	return NewMat4([]float64{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), 2 * far * near / (near - far),
		0, 0, -1, 0,
	})
}

// Mul returns the product m·o: the transform applying o first, then m.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out mat.Dense
	out.Mul(m.d, o.d)
	return Mat4{d: &out}
}

// Blend returns the component-wise interpolation (1−t)·m + t·o. This is
// scalar interpolation of the matrix entries, not an interpolation of the
// transforms they represent.
func (m Mat4) Blend(o Mat4, t float64) Mat4 {
	var a, b, out mat.Dense
	a.Scale(1-t, m.d)
	b.Scale(t, o.d)
	out.Add(&a, &b)
	return Mat4{d: &out}
}

// At returns the entry at row i, column j.
func (m Mat4) At(i, j int) float64 {
	return m.d.At(i, j)
}

// Apply transforms the homogeneous vector v.
func (m Mat4) Apply(v Vec4) Vec4 {
	in := mat.NewVecDense(4, []float64{v.X, v.Y, v.Z, v.W})
	var out mat.VecDense
	out.MulVec(m.d, in)
	return Vec4{out.AtVec(0), out.AtVec(1), out.AtVec(2), out.AtVec(3)}
}

// Vec4 is a homogeneous coordinate.
type Vec4 struct {
	X, Y, Z, W float64
}

// Project performs the perspective divide and returns the resulting 2D
// normalized device coordinates. A zero w divides to ±Inf rather than
// panicking, matching IEEE semantics.
func (v Vec4) Project() Vec2 {
	return Vec2{v.X / v.W, v.Y / v.W}
}
