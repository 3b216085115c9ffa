/*
Package geometry holds tensor-product B-spline and NURBS geometry: curves,
surfaces and volumes. The types are passive data holders; algorithms working
on them live in package operations.

The set of geometry kinds is closed. Geometry is implemented by *Curve,
*Surface and *Volume only, and clients select behaviour per kind with a type
switch.

Control points are stored flat, in the order described by package grid. For
rational geometry the storage is homogeneous (w⋅p, w); Net returns this
operand form, ControlPoints and Weights the Cartesian view of it.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package geometry

import (
	"slices"

	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/nurbs/grid"
	"github.com/npillmayer/nurbs/knots"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// tracer writes to trace with key 'nurbs'
func tracer() tracing.Trace {
	return tracing.Select("nurbs")
}

var (
	// ErrInvalidDegree indicates a degree < 1.
	ErrInvalidDegree = errors.New("geometry: degree must be at least 1")
	// ErrInvalidKnots indicates a knot vector which is decreasing or too short.
	ErrInvalidKnots = errors.New("geometry: invalid knot vector")
	// ErrInvalidRelation indicates that control point count, degree and knot
	// count do not satisfy len(knots) = size + degree + 1.
	ErrInvalidRelation = errors.New("geometry: invalid relation between control points, degree and knots")
	// ErrInvalidPoints indicates an empty point set or points of differing dimension.
	ErrInvalidPoints = errors.New("geometry: invalid control points")
	// ErrInvalidWeights indicates a weight count mismatch or a non-positive weight.
	ErrInvalidWeights = errors.New("geometry: invalid weights")
	// ErrDirection indicates a parametric direction the geometry does not have.
	ErrDirection = errors.New("geometry: no such parametric direction")
)

// Direction is a parametric direction.
type Direction int

// Parametric directions.
const (
	U Direction = iota
	V
	W
)

func (d Direction) String() string {
	switch d {
	case U:
		return "u"
	case V:
		return "v"
	case W:
		return "w"
	}
	return "?"
}

// Kind discriminates the geometry variants.
type Kind int

// Geometry kinds.
const (
	CurveKind Kind = iota + 1
	SurfaceKind
	VolumeKind
)

func (k Kind) String() string {
	switch k {
	case CurveKind:
		return "curve"
	case SurfaceKind:
		return "surface"
	case VolumeKind:
		return "volume"
	}
	return "unknown"
}

// Geometry is a tensor-product spline geometry: *Curve, *Surface or *Volume.
type Geometry interface {
	Kind() Kind
	// ParametricDimension is 1, 2 or 3.
	ParametricDimension() int
	// Dimension is the Cartesian dimension of the control points.
	Dimension() int
	Rational() bool
	Degree(d Direction) int
	KnotVector(d Direction) knots.Vector
	Sizes() []int
	Layout() grid.Layout
	// Net returns the control points in operand form (weighted if rational).
	Net() []nurbs.Point
	ControlPoints() []nurbs.Point
	WeightedControlPoints() []nurbs.Point
	Weights() []float64
	SetKnotVector(d Direction, kv knots.Vector) error
	SetControlPoints(pts []nurbs.Point, sizes ...int) error
	SetNet(pts []nurbs.Point, sizes []int, kvs []knots.Vector) error
	sealed()
}

// tensor is the state shared by all geometry kinds.
type tensor struct {
	degrees  []int
	kvs      []knots.Vector
	layout   grid.Layout
	net      []nurbs.Point // homogeneous if rational
	rational bool
	dim      int
}

func (t *tensor) sealed() {}

func newTensor(layout grid.Layout, degrees []int, kvs [][]float64, pts []nurbs.Point, weights []float64) (tensor, error) {
	t := tensor{
		degrees:  slices.Clone(degrees),
		kvs:      make([]knots.Vector, len(kvs)),
		layout:   layout,
		rational: weights != nil,
	}
	for d, kv := range kvs {
		t.kvs[d] = knots.Vector(kv).Clone()
	}
	for d := range t.degrees {
		if err := t.checkDirection(Direction(d), t.kvs[d], layout.Size(d)); err != nil {
			return tensor{}, err
		}
	}
	if len(pts) != layout.Len() {
		return tensor{}, errors.Wrapf(ErrInvalidRelation, "%d control points for sizes %v", len(pts), layout.Sizes())
	}
	t.dim = len(pts[0])
	for i, p := range pts {
		if len(p) == 0 || len(p) != t.dim {
			return tensor{}, errors.Wrapf(ErrInvalidPoints, "point %d is %s", i, p)
		}
	}
	if t.rational {
		if len(weights) != len(pts) {
			return tensor{}, errors.Wrapf(ErrInvalidWeights, "%d weights for %d points", len(weights), len(pts))
		}
		for i, w := range weights {
			if w <= 0 {
				return tensor{}, errors.Wrapf(ErrInvalidWeights, "weight %d is %g", i, w)
			}
		}
		t.net = nurbs.WeightedAll(pts, weights)
	} else {
		t.net = make([]nurbs.Point, len(pts))
		for i, p := range pts {
			t.net[i] = p.Clone()
		}
	}
	return t, nil
}

func (t *tensor) checkDirection(d Direction, kv knots.Vector, size int) error {
	degree := t.degrees[d]
	if degree < 1 {
		return errors.Wrapf(ErrInvalidDegree, "%s-direction degree %d", d, degree)
	}
	if !kv.IsValid(degree) {
		return errors.Wrapf(ErrInvalidKnots, "%s-direction knots %v", d, kv)
	}
	if len(kv) != size+degree+1 {
		return errors.Wrapf(ErrInvalidRelation, "%s-direction: %d knots, %d points, degree %d",
			d, len(kv), size, degree)
	}
	return nil
}

func (t *tensor) hasDirection(d Direction) bool {
	return d >= 0 && int(d) < len(t.degrees)
}

// ParametricDimension returns the number of parametric directions.
func (t *tensor) ParametricDimension() int {
	return len(t.degrees)
}

// Dimension returns the Cartesian dimension of the control points.
func (t *tensor) Dimension() int {
	return t.dim
}

// Rational is a predicate: does the geometry carry weights ?
func (t *tensor) Rational() bool {
	return t.rational
}

// Degree returns the degree in direction d, or 0 for a direction the
// geometry does not have.
func (t *tensor) Degree(d Direction) int {
	if !t.hasDirection(d) {
		return 0
	}
	return t.degrees[d]
}

// KnotVector returns a copy of the knot vector in direction d, or nil for a
// direction the geometry does not have.
func (t *tensor) KnotVector(d Direction) knots.Vector {
	if !t.hasDirection(d) {
		return nil
	}
	return t.kvs[d].Clone()
}

// Sizes returns the control point count per direction.
func (t *tensor) Sizes() []int {
	return t.layout.Sizes()
}

// Layout returns the storage layout of the control net.
func (t *tensor) Layout() grid.Layout {
	return t.layout
}

// Net returns the control points in the form knot algorithms operate on:
// homogeneous for rational geometry, Cartesian otherwise. Points must not be
// modified.
func (t *tensor) Net() []nurbs.Point {
	return slices.Clone(t.net)
}

// ControlPoints returns the Cartesian control points in storage order.
func (t *tensor) ControlPoints() []nurbs.Point {
	if t.rational {
		pts, _ := nurbs.UnweightedAll(t.net)
		return pts
	}
	pts := make([]nurbs.Point, len(t.net))
	for i, p := range t.net {
		pts[i] = p.Clone()
	}
	return pts
}

// WeightedControlPoints returns the control points in homogeneous form. For
// non-rational geometry every weight is 1.
func (t *tensor) WeightedControlPoints() []nurbs.Point {
	pw := make([]nurbs.Point, len(t.net))
	for i, p := range t.net {
		if t.rational {
			pw[i] = p.Clone()
		} else {
			pw[i] = nurbs.Weighted(p, 1)
		}
	}
	return pw
}

// Weights returns the control point weights. For non-rational geometry every
// weight is 1.
func (t *tensor) Weights() []float64 {
	if t.rational {
		_, w := nurbs.UnweightedAll(t.net)
		return w
	}
	w := make([]float64, len(t.net))
	for i := range w {
		w[i] = 1
	}
	return w
}

// SetKnotVector replaces the knot vector in direction d. The knot vector
// must fit the current control point count.
func (t *tensor) SetKnotVector(d Direction, kv knots.Vector) error {
	if !t.hasDirection(d) {
		return errors.Wrapf(ErrDirection, "%s-direction of %d-dimensional geometry", d, len(t.degrees))
	}
	if err := t.checkDirection(d, kv, t.layout.Size(int(d))); err != nil {
		return err
	}
	t.kvs[d] = kv.Clone()
	return nil
}

// SetControlPoints replaces the control points, given in operand form (see
// Net), keeping the knot vectors. sizes default to the current sizes.
func (t *tensor) SetControlPoints(pts []nurbs.Point, sizes ...int) error {
	if len(sizes) == 0 {
		sizes = t.layout.Sizes()
	}
	return t.SetNet(pts, sizes, t.kvs)
}

// SetNet replaces control points (in operand form), sizes and all knot
// vectors in one step. Nothing is changed if the new state is inconsistent.
func (t *tensor) SetNet(pts []nurbs.Point, sizes []int, kvs []knots.Vector) error {
	if len(sizes) != len(t.degrees) || len(kvs) != len(t.degrees) {
		return errors.Wrapf(ErrInvalidRelation, "%d sizes and %d knot vectors for %d directions",
			len(sizes), len(kvs), len(t.degrees))
	}
	layout, err := grid.New(sizes, t.layout.Order())
	if err != nil {
		return errors.Wrap(err, "set control net")
	}
	for d := range t.degrees {
		if err := t.checkDirection(Direction(d), kvs[d], sizes[d]); err != nil {
			return err
		}
	}
	if len(pts) != layout.Len() {
		return errors.Wrapf(ErrInvalidRelation, "%d control points for sizes %v", len(pts), sizes)
	}
	opdim := t.dim
	if t.rational {
		opdim++
	}
	for i, p := range pts {
		if len(p) != opdim {
			return errors.Wrapf(ErrInvalidPoints, "point %d is %s, expected dimension %d", i, p, opdim)
		}
	}
	newKvs := make([]knots.Vector, len(kvs))
	for d, kv := range kvs {
		newKvs[d] = kv.Clone()
	}
	t.kvs = newKvs
	t.layout = layout
	t.net = slices.Clone(pts)
	tracer().Debugf("control net set to %v", layout)
	return nil
}

func (t *tensor) ctrlpt(idx ...int) nurbs.Point {
	p := t.net[t.layout.Index(idx...)]
	if t.rational {
		p, _ = nurbs.Unweighted(p)
		return p
	}
	return p.Clone()
}

func (t *tensor) contributing(d Direction, u float64) (int, int, error) {
	first, count, err := knots.ContributingRange(t.degrees[d], t.kvs[d], t.layout.Size(int(d)), u)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "%s-direction", d)
	}
	return first, count, nil
}
