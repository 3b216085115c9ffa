package operations

import (
	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/nurbs/geometry"
	"github.com/npillmayer/nurbs/grid"
	"github.com/npillmayer/nurbs/knots"
	"github.com/pkg/errors"
)

// net is an immutable snapshot of a control net. Direction steps never
// modify a net, they derive a new one.
type net struct {
	layout  grid.Layout
	points  []nurbs.Point // operand form, homogeneous if rational
	degrees []int
	kvs     []knots.Vector
}

func snapshot(g geometry.Geometry) net {
	n := net{
		layout:  g.Layout(),
		points:  g.Net(),
		degrees: make([]int, g.ParametricDimension()),
		kvs:     make([]knots.Vector, g.ParametricDimension()),
	}
	for d := range n.degrees {
		n.degrees[d] = g.Degree(geometry.Direction(d))
		n.kvs[d] = g.KnotVector(geometry.Direction(d))
	}
	return n
}

type fiberFunc func(fiber []nurbs.Point) ([]nurbs.Point, error)

// along applies f to every fiber in direction d and reassembles the results
// into a new net. The knot vector in direction d still has to be replaced
// with withKnots.
func (n net) along(d geometry.Direction, f fiberFunc) (net, error) {
	fibers, err := n.layout.Fibers(n.points, int(d))
	if err != nil {
		return n, err
	}
	for i, fiber := range fibers {
		if fibers[i], err = f(fiber); err != nil {
			return n, err
		}
	}
	pts, layout, err := n.layout.Assemble(fibers, int(d))
	if err != nil {
		return n, err
	}
	return net{
		layout:  layout,
		points:  pts,
		degrees: n.degrees,
		kvs:     n.kvs,
	}, nil
}

// withKnots derives a net with knot vector kv in direction d.
func (n net) withKnots(d geometry.Direction, kv knots.Vector) (net, error) {
	if len(kv) != n.layout.Size(int(d))+n.degrees[d]+1 {
		return n, errors.Wrapf(knots.ErrInvalidRelation, "%s-direction: %d knots for %d points",
			d, len(kv), n.layout.Size(int(d)))
	}
	kvs := make([]knots.Vector, len(n.kvs))
	copy(kvs, n.kvs)
	kvs[d] = kv
	n.kvs = kvs
	return n, nil
}

func (n net) commit(g geometry.Geometry) error {
	return g.SetNet(n.points, n.layout.Sizes(), n.kvs)
}

// step performs one knot operation in a single direction. It reports
// whether the direction was touched at all.
type step func(n net, d geometry.Direction) (net, bool, error)

// directions selects the parametric directions per geometry kind. A nil
// result means the geometry is not supported.
func directions(g geometry.Geometry) []geometry.Direction {
	switch g := g.(type) {
	case *geometry.Curve:
		if g != nil {
			return []geometry.Direction{geometry.U}
		}
	case *geometry.Surface:
		if g != nil {
			return []geometry.Direction{geometry.U, geometry.V}
		}
	case *geometry.Volume:
		if g != nil {
			return []geometry.Direction{geometry.U, geometry.V, geometry.W}
		}
	}
	return nil
}

// run threads a snapshot of g through op for every direction, u first, and
// commits the result to g.
//
// Directions are not transactional: if direction k fails, the results of
// directions before k are committed and the error of direction k is
// returned.
func run(g geometry.Geometry, op string, dirs []geometry.Direction, apply step) error {
	n := snapshot(g)
	touched := false
	for _, d := range dirs {
		next, ok, err := apply(n, d)
		if err != nil {
			tracer().P("op", op).Errorf("%s-direction: %v", d, err)
			if touched {
				tracer().P("op", op).Infof("committing directions before %s after failure", d)
				if cerr := n.commit(g); cerr != nil {
					return errors.Wrapf(cerr, "%s: partial commit", op)
				}
			}
			return err
		}
		if ok {
			n, touched = next, true
		}
	}
	if !touched {
		tracer().P("op", op).Debugf("nothing to do")
		return nil
	}
	if err := n.commit(g); err != nil {
		return errors.Wrapf(err, "%s: commit", op)
	}
	return nil
}
