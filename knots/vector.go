/*
Package knots implements the one-dimensional knot vector primitives which
all tensor-product knot operations are made of: multiplicity lookup, knot
span location, knot insertion (Boehm), knot removal and knot refinement.

Every primitive operates on a flat, ordered sequence of control points and
one knot vector. Control points are never modified in place; results share
unchanged points with the input, so callers must not mutate points they
handed in.

The algorithms follow

	The NURBS Book -- Les Piegl & Wayne Tiller
	2nd edition, Springer 1997
	A2.1 (FindSpan), A5.1 (CurveKnotIns), A5.4 (RefineKnotVectCurve),
	A5.8 (RemoveCurveKnot)

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package knots

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'knots'
func tracer() tracing.Trace {
	return tracing.Select("knots")
}

var (
	// ErrInvalidRelation indicates that the number of control points does not
	// match a knot vector of the given degree.
	ErrInvalidRelation = errors.New("knots: control point count does not match knot vector and degree")
	// ErrInsertionExceedsDegree indicates a knot would be inserted beyond multiplicity = degree.
	ErrInsertionExceedsDegree = errors.New("knots: insertion count exceeds degree minus multiplicity")
	// ErrRemovalExceedsMultiplicity indicates a knot would be removed more often than it occurs.
	ErrRemovalExceedsMultiplicity = errors.New("knots: removal count exceeds multiplicity")
	// ErrNotInterior indicates a knot operation on a parameter outside the open domain.
	ErrNotInterior = errors.New("knots: parameter is not an interior knot")
	// ErrOutOfDomain indicates a parameter outside the domain of a knot vector.
	ErrOutOfDomain = errors.New("knots: parameter outside of domain")
	// ErrInvalidDensity indicates a refinement density below 1.
	ErrInvalidDensity = errors.New("knots: refinement density must be at least 1")
	// ErrNotRefinable indicates that refinement found no knot to insert.
	ErrNotRefinable = errors.New("knots: nothing to refine, all knots at full multiplicity")
)

// Vector is a knot vector: a non-decreasing sequence of parameter values.
type Vector []float64

// Clone returns a copy of kv which does not share storage with kv.
func (kv Vector) Clone() Vector {
	return append(Vector(nil), kv...)
}

// String is a debug Stringer for knot vectors.
func (kv Vector) String() string {
	return fmt.Sprintf("%g", []float64(kv))
}

// Domain returns the valid parameter range for a spline of the given degree.
func (kv Vector) Domain(degree int) (min, max float64) {
	return kv[degree], kv[len(kv)-degree-1]
}

// ControlPointCount returns the number of control points a spline of the given
// degree over kv has.
func (kv Vector) ControlPointCount(degree int) int {
	return len(kv) - degree - 1
}

// IsNonDecreasing is a predicate: is kv ordered ?
func (kv Vector) IsNonDecreasing() bool {
	if len(kv) == 0 {
		return true
	}
	rep := kv[0]
	for _, knot := range kv[1:] {
		if knot < rep-nurbs.Epsilon {
			return false
		}
		rep = knot
	}
	return true
}

// IsValid checks that kv is non-decreasing and long enough to carry a
// spline of the given degree.
func (kv Vector) IsValid(degree int) bool {
	if degree < 1 || len(kv) < 2*(degree+1) {
		return false
	}
	return kv.IsNonDecreasing()
}

// IsInterior is a predicate: does u lie strictly inside the domain ?
func (kv Vector) IsInterior(degree int, u float64) bool {
	lo, hi := kv.Domain(degree)
	return u > lo+nurbs.Epsilon && u < hi-nurbs.Epsilon
}

// Multiplicity returns how often u occurs in kv, comparing within ε.
func (kv Vector) Multiplicity(u float64) int {
	return Multiplicity(u, kv)
}

// Multiplicity returns how often knot occurs in kv, comparing within ε.
func Multiplicity(knot float64, kv Vector) int {
	var mult int
	for _, k := range kv {
		if nurbs.Equal(knot, k) {
			mult++
		}
	}
	return mult
}

// Snap returns the knot of kv which equals u within ε, or u itself if there
// is none. Span lookup compares exactly, so a parameter must be snapped
// before its span is combined with its multiplicity.
func (kv Vector) Snap(u float64) float64 {
	for _, k := range kv {
		if nurbs.Equal(u, k) {
			return k
		}
	}
	return u
}

// KnotMultiplicity pairs a distinct knot value with its multiplicity.
type KnotMultiplicity struct {
	Knot float64
	Mult int
}

// Multiplicities determines the multiplicities of the distinct values in kv.
func (kv Vector) Multiplicities() []KnotMultiplicity {
	if len(kv) == 0 {
		return nil
	}
	mults := []KnotMultiplicity{{kv[0], 0}}
	var curr int
	for _, knot := range kv {
		if !nurbs.Equal(knot, mults[curr].Knot) {
			mults = append(mults, KnotMultiplicity{knot, 0})
			curr++
		}
		mults[curr].Mult++
	}
	return mults
}

// Distinct returns the sorted set of distinct values of kv and of any
// additional knots given.
func (kv Vector) Distinct(more ...float64) Vector {
	set := treeset.NewWith(utils.Float64Comparator)
	for _, k := range kv {
		set.Add(k)
	}
	for _, k := range more {
		set.Add(k)
	}
	d := make(Vector, 0, set.Size())
	for _, v := range set.Values() {
		d = append(d, v.(float64))
	}
	return d
}

// FindSpan locates the knot span containing u, for a spline of the given
// degree with numCtrlPts control points. The result is the index of the last
// knot ≤ u, clamped to [degree, numCtrlPts-1]. For a knot u this is the
// index of u's last occurrence, which is what the insertion and removal
// algorithms expect.
func FindSpan(degree int, kv Vector, numCtrlPts int, u float64) int {
	span := degree + 1
	for span < numCtrlPts && kv[span] <= u {
		span++
	}
	return span - 1
}

// Span is a convenience wrapper for FindSpan, deriving the control point
// count from the length of kv.
func (kv Vector) Span(degree int, u float64) int {
	return FindSpan(degree, kv, kv.ControlPointCount(degree), u)
}

// ContributingRange returns the index of the first of the degree+1 control
// points which are non-zero-weighted at parameter u.
func ContributingRange(degree int, kv Vector, numCtrlPts int, u float64) (first, count int, err error) {
	lo, hi := kv.Domain(degree)
	if u < lo-nurbs.Epsilon || u > hi+nurbs.Epsilon {
		return 0, 0, fmt.Errorf("u = %g not in [%g,%g]: %w", u, lo, hi, ErrOutOfDomain)
	}
	span := FindSpan(degree, kv, numCtrlPts, u)
	return span - degree, degree + 1, nil
}

func checkRelation(degree int, kv Vector, pts []nurbs.Point) error {
	if len(pts) != kv.ControlPointCount(degree) || len(pts) < degree+1 {
		return fmt.Errorf("%d points, %d knots, degree %d: %w",
			len(pts), len(kv), degree, ErrInvalidRelation)
	}
	return nil
}

func clonePoints(pts []nurbs.Point) []nurbs.Point {
	return append([]nurbs.Point(nil), pts...)
}
