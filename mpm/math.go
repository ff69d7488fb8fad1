// Package mpm implements the numerical core of a 2D material point method
// solver: particle and grid storage, the quadratic B-spline transfer kernels,
// an analytic 2x2 SVD, and the per-particle constitutive update.
package mpm

import "math"

// Vec2 is a 2D float32 vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float32 { return v.X*w.X + v.Y*w.Y }

// LengthSq returns the squared length of v.
func (v Vec2) LengthSq() float32 { return v.X*v.X + v.Y*v.Y }

// Length returns the length of v.
func (v Vec2) Length() float32 { return sqrtf(v.LengthSq()) }

// Normalize returns v scaled to unit length.
func (v Vec2) Normalize() Vec2 {
	return v.Scale(1 / v.Length())
}

// Perp returns v rotated a quarter turn counterclockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Mat2 is a 2x2 float32 matrix stored as columns.
type Mat2 struct {
	C0, C1 Vec2
}

// Identity2 is the 2x2 identity matrix.
var Identity2 = Mat2{C0: Vec2{1, 0}, C1: Vec2{0, 1}}

// Diag returns the diagonal matrix with entries a and b.
func Diag(a, b float32) Mat2 {
	return Mat2{C0: Vec2{a, 0}, C1: Vec2{0, b}}
}

// Outer returns the outer product v * w^T.
func Outer(v, w Vec2) Mat2 {
	return Mat2{C0: v.Scale(w.X), C1: v.Scale(w.Y)}
}

// Add returns m + n.
func (m Mat2) Add(n Mat2) Mat2 { return Mat2{m.C0.Add(n.C0), m.C1.Add(n.C1)} }

// Sub returns m - n.
func (m Mat2) Sub(n Mat2) Mat2 { return Mat2{m.C0.Sub(n.C0), m.C1.Sub(n.C1)} }

// Scale returns m * s.
func (m Mat2) Scale(s float32) Mat2 { return Mat2{m.C0.Scale(s), m.C1.Scale(s)} }

// MulVec returns m * v.
func (m Mat2) MulVec(v Vec2) Vec2 {
	return m.C0.Scale(v.X).Add(m.C1.Scale(v.Y))
}

// Mul returns m * n.
func (m Mat2) Mul(n Mat2) Mat2 {
	return Mat2{C0: m.MulVec(n.C0), C1: m.MulVec(n.C1)}
}

// Transpose returns m^T.
func (m Mat2) Transpose() Mat2 {
	return Mat2{C0: Vec2{m.C0.X, m.C1.X}, C1: Vec2{m.C0.Y, m.C1.Y}}
}

// Det returns the determinant of m.
func (m Mat2) Det() float32 {
	return m.C0.X*m.C1.Y - m.C1.X*m.C0.Y
}

// FrobSq returns the squared Frobenius norm of m.
func (m Mat2) FrobSq() float32 {
	return m.C0.LengthSq() + m.C1.LengthSq()
}

// Float32 helpers in the style of the rest of the hot path: math package
// round trips through float64, so keep the casts in one place.

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func expf(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

func floorf(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
