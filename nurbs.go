/*
Package nurbs implements knot editing for tensor-product B-spline and NURBS
geometry: knot insertion, knot removal and knot refinement for curves,
surfaces and volumes.

The root package provides the numeric basics shared by all sub-packages:
tolerance predicates and an n-dimensional point type. Knot vector primitives
live in package knots, the tensor-product index bookkeeping in package grid,
the geometry holders in package geometry and the directional drivers in
package operations.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package nurbs

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nurbs'
func tracer() tracing.Trace {
	return tracing.Select("nurbs")
}

// === Tolerance =============================================================

// Epsilon is the tolerance for comparing coordinates and knot values.
var Epsilon float64 = 1e-7

// Is0 reports whether |x| ≤ ε.
func Is0(x float64) bool {
	return math.Abs(x) <= Epsilon
}

// Equal reports whether a and b differ by at most ε. Knot values closer than
// that count as the same knot.
func Equal(a, b float64) bool {
	return Is0(a - b)
}

// === Point Data Type =======================================================

// Point is a control point coordinate of arbitrary dimension. For rational
// geometry in homogeneous form the last component is the weight.
type Point []float64

// Pt is a quick notation for constructing a point from floats.
func Pt(c ...float64) Point {
	return Point(c)
}

// Pretty Stringer for points.
func (p Point) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, c := range p {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%g", c)
	}
	sb.WriteByte(')')
	return sb.String()
}

// Dim returns the number of components of p.
func (p Point) Dim() int {
	return len(p)
}

// Clone returns a copy of p which does not share storage with p.
func (p Point) Clone() Point {
	return append(Point(nil), p...)
}

// Equal compares two points component-wise within ε.
func (p Point) Equal(q Point) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if !Is0(p[i] - q[i]) {
			return false
		}
	}
	return true
}

// Scaled returns a new point scaled by factor a.
func (p Point) Scaled(a float64) Point {
	r := make(Point, len(p))
	for i, c := range p {
		r[i] = c * a
	}
	return r
}

// Plus returns p + q as a new point. Both points must have the same dimension.
func (p Point) Plus(q Point) Point {
	r := make(Point, len(p))
	for i := range p {
		r[i] = p[i] + q[i]
	}
	return r
}

// Minus returns p - q as a new point. Both points must have the same dimension.
func (p Point) Minus(q Point) Point {
	r := make(Point, len(p))
	for i := range p {
		r[i] = p[i] - q[i]
	}
	return r
}

// Distance returns the Euclidean distance between p and q, taking all
// components into account (including a homogeneous weight).
func (p Point) Distance(q Point) float64 {
	var sum float64
	for i := range p {
		d := p[i] - q[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Lerp returns the affine combination α⋅p + (1-α)⋅q as a new point.
//
// This is the single blending step all knot algorithms are made of.
func Lerp(alpha float64, p, q Point) Point {
	r := make(Point, len(p))
	for i := range p {
		r[i] = alpha*p[i] + (1-alpha)*q[i]
	}
	return r
}

// === Homogeneous Coordinates ===============================================

// Weighted returns the homogeneous form (w⋅p, w) of p.
func Weighted(p Point, w float64) Point {
	r := make(Point, len(p)+1)
	for i, c := range p {
		r[i] = c * w
	}
	r[len(p)] = w
	return r
}

// Unweighted returns the Cartesian form of a homogeneous point (w⋅p, w),
// together with its weight. A zero weight leaves the coordinates unscaled.
func Unweighted(pw Point) (Point, float64) {
	if len(pw) == 0 {
		return Point{}, 0
	}
	n := len(pw) - 1
	w := pw[n]
	r := make(Point, n)
	if Is0(w) {
		tracer().Errorf("unweighting point %s with zero weight", pw)
		copy(r, pw[:n])
		return r, w
	}
	for i := 0; i < n; i++ {
		r[i] = pw[i] / w
	}
	return r, w
}

// WeightedAll transforms a slice of points into their homogeneous equivalents.
// weights must have the same length as pts.
func WeightedAll(pts []Point, weights []float64) []Point {
	pw := make([]Point, len(pts))
	for i, p := range pts {
		pw[i] = Weighted(p, weights[i])
	}
	return pw
}

// UnweightedAll splits a slice of homogeneous points into Cartesian points
// and weights.
func UnweightedAll(pw []Point) ([]Point, []float64) {
	pts := make([]Point, len(pw))
	weights := make([]float64, len(pw))
	for i, p := range pw {
		pts[i], weights[i] = Unweighted(p)
	}
	return pts, weights
}
