/*
Package operations implements knot insertion, knot removal and knot vector
refinement for curves, surfaces and volumes, plus a locator for the control
points influencing a parametric position.

Tensor-product geometry is edited one parametric direction at a time: the
control net is decomposed into fibers along the direction, the 1D algorithm
of package knots runs on every fiber, and the fibers are reassembled into
storage order. Directions are processed u, v, w.

Operations modify the geometry in place. A ConfigurationError is always
reported before anything is modified. An error in a later direction leaves
the results of earlier directions committed.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package operations

import (
	"fmt"

	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/nurbs/geometry"
	"github.com/npillmayer/nurbs/knots"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
)

// tracer writes to trace with key 'nurbs'
func tracer() tracing.Trace {
	return tracing.Select("nurbs")
}

const (
	opInsert = "insert"
	opRemove = "remove"
	opRefine = "refine"
	opLocate = "locate"
)

// Param is a knot value requested in one parametric direction, or None.
type Param struct {
	value float64
	set   bool
}

// None leaves a direction alone.
var None = Param{}

// At requests knot u.
func At(u float64) Param {
	return Param{value: u, set: true}
}

// Value returns the knot value and whether it is set.
func (p Param) Value() (float64, bool) {
	return p.value, p.set
}

func (p Param) String() string {
	if !p.set {
		return "None"
	}
	return fmt.Sprintf("%g", p.value)
}

func paramAt(params []Param, i int) (float64, bool) {
	if i >= len(params) {
		return 0, false
	}
	return params[i].Value()
}

func countAt(counts []int, i int) int {
	if i >= len(counts) {
		return 0
	}
	return counts[i]
}

// InsertKnot inserts knot params[d] nums[d] times in every direction d of g.
// Directions with param None or count 0 are skipped. params and nums must
// have one entry per parametric direction.
//
// Inserting a knot more often than degree − multiplicity is infeasible. A
// parameter within nurbs.Epsilon of an existing knot is taken to be that knot.
//
// Example, inserting v = 0.25 once into a surface:
//
//	err := operations.InsertKnot(srf, []operations.Param{operations.None, operations.At(0.25)}, []int{0, 1})
func InsertKnot(g geometry.Geometry, params []Param, nums []int, opts ...Option) error {
	cfg := configure(opts)
	dirs := directions(g)
	if err := validate(opInsert, g, dirs, params, nums, "num", cfg); err != nil {
		return err
	}
	return run(g, opInsert, dirs, func(n net, d geometry.Direction) (net, bool, error) {
		u, ok := paramAt(params, int(d))
		num := countAt(nums, int(d))
		if !ok || num <= 0 {
			return n, false, nil
		}
		degree, kv := n.degrees[d], n.kvs[d]
		u = kv.Snap(u)
		s := knots.Multiplicity(u, kv)
		if cfg.check && num > degree-s {
			return n, false, &InfeasibleOperationError{
				Op: opInsert, Direction: d, Knot: u, Count: num, Multiplicity: s, Degree: degree,
			}
		}
		span := knots.FindSpan(degree, kv, n.layout.Size(int(d)), u)
		tracer().P("op", opInsert).Debugf("%s-direction: knot %g × %d at span %d", d, u, num, span)
		next, err := n.along(d, func(fiber []nurbs.Point) ([]nurbs.Point, error) {
			return knots.InsertKnot(degree, kv, fiber, u, num, s, span)
		})
		if err == nil {
			next, err = next.withKnots(d, knots.InsertionVector(kv, u, span, num))
		}
		if err != nil {
			return n, false, errors.Wrapf(err, "%s %s-direction", opInsert, d)
		}
		return next, true, nil
	})
}

// RemoveKnot removes knot params[d] nums[d] times in every direction d of g.
// Directions with param None or count 0 are skipped. params and nums must
// have one entry per parametric direction.
//
// Removing a knot more often than its multiplicity, or removing an end knot
// of the domain, is infeasible. Removal
// which changes the shape by more than the removal tolerance (see
// WithRemovalTolerance) is carried out anyway and traced.
func RemoveKnot(g geometry.Geometry, params []Param, nums []int, opts ...Option) error {
	cfg := configure(opts)
	dirs := directions(g)
	if err := validate(opRemove, g, dirs, params, nums, "num", cfg); err != nil {
		return err
	}
	return run(g, opRemove, dirs, func(n net, d geometry.Direction) (net, bool, error) {
		u, ok := paramAt(params, int(d))
		num := countAt(nums, int(d))
		if !ok || num <= 0 {
			return n, false, nil
		}
		degree, kv := n.degrees[d], n.kvs[d]
		u = kv.Snap(u)
		s := knots.Multiplicity(u, kv)
		if cfg.check && !kv.IsInterior(degree, u) {
			return n, false, &InfeasibleOperationError{
				Op: opRemove, Direction: d, Knot: u, Count: num, Multiplicity: s, Degree: degree,
				Err: knots.ErrNotInterior,
			}
		}
		if cfg.check && num > s {
			return n, false, &InfeasibleOperationError{
				Op: opRemove, Direction: d, Knot: u, Count: num, Multiplicity: s, Degree: degree,
			}
		}
		span := knots.FindSpan(degree, kv, n.layout.Size(int(d)), u)
		tracer().P("op", opRemove).Debugf("%s-direction: knot %g × %d at span %d", d, u, num, span)
		next, err := n.along(d, func(fiber []nurbs.Point) ([]nurbs.Point, error) {
			return knots.RemoveKnot(degree, kv, fiber, u, num, s, span, cfg.removalTol)
		})
		if err == nil {
			next, err = next.withKnots(d, knots.RemovalVector(kv, span, num))
		}
		if err != nil {
			return n, false, errors.Wrapf(err, "%s %s-direction", opRemove, d)
		}
		return next, true, nil
	})
}

// RefineKnotVector refines the knot vector of g in every direction d with
// density[d] > 0. Density 1 inserts every interior knot until its
// multiplicity equals the degree; every further density step first doubles
// the candidate knots by adding span midpoints. Knots added with
// WithAdditionalKnots are candidates as well.
//
// Refining a direction whose knots are all at full multiplicity is
// infeasible.
func RefineKnotVector(g geometry.Geometry, density []int, opts ...Option) error {
	cfg := configure(opts)
	dirs := directions(g)
	if err := validate(opRefine, g, dirs, nil, density, "density", cfg); err != nil {
		return err
	}
	return run(g, opRefine, dirs, func(n net, d geometry.Direction) (net, bool, error) {
		dens := countAt(density, int(d))
		if dens <= 0 {
			return n, false, nil
		}
		degree, kv := n.degrees[d], n.kvs[d]
		x, err := knots.RefinementKnots(degree, kv, dens, cfg.additional[d]...)
		if errors.Is(err, knots.ErrNotRefinable) {
			return n, false, &InfeasibleOperationError{
				Op: opRefine, Direction: d, Count: dens, Degree: degree, Err: err,
			}
		} else if err != nil {
			return n, false, errors.Wrapf(err, "%s %s-direction", opRefine, d)
		}
		tracer().P("op", opRefine).Debugf("%s-direction: inserting %v", d, x)
		var refined knots.Vector // identical for every fiber
		next, err := n.along(d, func(fiber []nurbs.Point) ([]nurbs.Point, error) {
			pts, kvNew, err := knots.Refine(degree, kv, fiber, x)
			refined = kvNew
			return pts, err
		})
		if err == nil {
			next, err = next.withKnots(d, refined)
		}
		if err != nil {
			return n, false, errors.Wrapf(err, "%s %s-direction", opRefine, d)
		}
		return next, true, nil
	})
}
