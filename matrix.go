package weekit

import "math"

// Matrix represents a 2D affine transformation:
//
//	| a  b  c |
//	| d  e  f |
//
// mapping x' = a*x + b*y + c and y' = d*x + e*y + f.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// TranslateMatrix creates a translation matrix.
func TranslateMatrix(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// ScaleMatrix creates a scaling matrix.
func ScaleMatrix(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// RotateMatrix creates a rotation matrix. The angle is in degrees,
// counter-clockwise in the y-up surface coordinate system.
func RotateMatrix(deg float64) Matrix {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// ShearMatrix creates a shear matrix with shear factors shx and shy.
func ShearMatrix(shx, shy float64) Matrix {
	return Matrix{A: 1, B: shx, D: shy, E: 1}
}

// Multiply returns m * other: other is applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// Invert returns the inverse matrix, or the identity if m is singular.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

// IsIdentity reports whether m is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// VG returns the matrix in the column-major 3x3 layout used by
// vgLoadMatrix: sx, shy, w0, shx, sy, w1, tx, ty, w2.
func (m Matrix) VG() [9]float32 {
	return [9]float32{
		float32(m.A), float32(m.D), 0,
		float32(m.B), float32(m.E), 0,
		float32(m.C), float32(m.F), 1,
	}
}

// MatrixFromVG is the inverse of Matrix.VG. The projective row is ignored.
func MatrixFromVG(v [9]float32) Matrix {
	return Matrix{
		A: float64(v[0]), B: float64(v[3]), C: float64(v[6]),
		D: float64(v[1]), E: float64(v[4]), F: float64(v[7]),
	}
}
