package geometry

import (
	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/nurbs/grid"
	"github.com/pkg/errors"
)

// === Curve =================================================================

// Curve is a B-spline or NURBS curve.
type Curve struct {
	tensor
}

// NewCurve creates a curve of the given degree. Passing nil weights creates
// a non-rational curve.
func NewCurve(degree int, kv []float64, pts []nurbs.Point, weights []float64) (*Curve, error) {
	if len(pts) == 0 {
		return nil, errors.Wrap(ErrInvalidPoints, "curve without control points")
	}
	t, err := newTensor(grid.Curve(len(pts)), []int{degree}, [][]float64{kv}, pts, weights)
	if err != nil {
		return nil, errors.Wrap(err, "new curve")
	}
	return &Curve{t}, nil
}

// Kind returns CurveKind.
func (c *Curve) Kind() Kind {
	return CurveKind
}

// ContributingPoints returns the degree+1 Cartesian control points which
// influence the curve point at u.
func (c *Curve) ContributingPoints(u float64) ([]nurbs.Point, error) {
	first, count, err := c.contributing(U, u)
	if err != nil {
		return nil, err
	}
	pts := make([]nurbs.Point, count)
	for i := range pts {
		pts[i] = c.ctrlpt(first + i)
	}
	return pts, nil
}

// === Surface ===============================================================

// Surface is a tensor-product B-spline or NURBS surface.
type Surface struct {
	tensor
}

// NewSurface creates a surface from sizeU × sizeV control points, stored
// v fastest (index = v + sizeV⋅u). Passing nil weights creates a
// non-rational surface.
func NewSurface(degreeU, degreeV int, kvU, kvV []float64, sizeU, sizeV int,
	pts []nurbs.Point, weights []float64) (*Surface, error) {
	if sizeU < 1 || sizeV < 1 {
		return nil, errors.Wrapf(ErrInvalidPoints, "surface with %d×%d control points", sizeU, sizeV)
	}
	t, err := newTensor(grid.Surface(sizeU, sizeV), []int{degreeU, degreeV},
		[][]float64{kvU, kvV}, pts, weights)
	if err != nil {
		return nil, errors.Wrap(err, "new surface")
	}
	return &Surface{t}, nil
}

// Kind returns SurfaceKind.
func (s *Surface) Kind() Kind {
	return SurfaceKind
}

// ControlPoints2D returns the Cartesian control points indexed [u][v].
func (s *Surface) ControlPoints2D() [][]nurbs.Point {
	su, sv := s.layout.Size(0), s.layout.Size(1)
	pts := make([][]nurbs.Point, su)
	for u := range pts {
		pts[u] = make([]nurbs.Point, sv)
		for v := range pts[u] {
			pts[u][v] = s.ctrlpt(u, v)
		}
	}
	return pts
}

// ContributingPoints returns the (degreeU+1) × (degreeV+1) Cartesian control
// points which influence the surface point at (u, v), indexed [u][v].
func (s *Surface) ContributingPoints(u, v float64) ([][]nurbs.Point, error) {
	firstU, countU, err := s.contributing(U, u)
	if err != nil {
		return nil, err
	}
	firstV, countV, err := s.contributing(V, v)
	if err != nil {
		return nil, err
	}
	pts := make([][]nurbs.Point, countU)
	for k := range pts {
		pts[k] = make([]nurbs.Point, countV)
		for l := range pts[k] {
			pts[k][l] = s.ctrlpt(firstU+k, firstV+l)
		}
	}
	return pts, nil
}

// === Volume ================================================================

// Volume is a trivariate tensor-product B-spline or NURBS volume.
type Volume struct {
	tensor
}

// NewVolume creates a volume from sizeU × sizeV × sizeW control points,
// stored v fastest, then u, then w (index = v + sizeV⋅u + sizeV⋅sizeU⋅w).
// Passing nil weights creates a non-rational volume.
func NewVolume(degreeU, degreeV, degreeW int, kvU, kvV, kvW []float64, sizeU, sizeV, sizeW int,
	pts []nurbs.Point, weights []float64) (*Volume, error) {
	if sizeU < 1 || sizeV < 1 || sizeW < 1 {
		return nil, errors.Wrapf(ErrInvalidPoints, "volume with %d×%d×%d control points", sizeU, sizeV, sizeW)
	}
	t, err := newTensor(grid.Volume(sizeU, sizeV, sizeW), []int{degreeU, degreeV, degreeW},
		[][]float64{kvU, kvV, kvW}, pts, weights)
	if err != nil {
		return nil, errors.Wrap(err, "new volume")
	}
	return &Volume{t}, nil
}

// Kind returns VolumeKind.
func (vol *Volume) Kind() Kind {
	return VolumeKind
}

// At returns the Cartesian control point with indices (u, v, w).
func (vol *Volume) At(u, v, w int) nurbs.Point {
	return vol.ctrlpt(u, v, w)
}

var (
	_ Geometry = (*Curve)(nil)
	_ Geometry = (*Surface)(nil)
	_ Geometry = (*Volume)(nil)
)
