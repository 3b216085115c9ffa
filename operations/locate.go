package operations

import (
	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/nurbs/geometry"
	"github.com/pkg/errors"
)

// FindControlPoints returns the control points which influence the geometry
// at a parametric position, in Cartesian form.
//
// For a curve the result is a single row of degree+1 points at u. A surface
// needs v as well and yields (degreeU+1) rows of (degreeV+1) points, indexed
// [u][v]. Other geometry kinds are not supported.
func FindControlPoints(g geometry.Geometry, u float64, v ...float64) ([][]nurbs.Point, error) {
	switch g := g.(type) {
	case *geometry.Curve:
		if g == nil {
			break
		}
		pts, err := g.ContributingPoints(u)
		if err != nil {
			return nil, errors.Wrap(err, opLocate)
		}
		return [][]nurbs.Point{pts}, nil
	case *geometry.Surface:
		if g == nil {
			break
		}
		if len(v) == 0 {
			return nil, &ConfigurationError{
				Op:     opLocate,
				Reason: "parameter for the v-direction must be set for surfaces",
				Index:  int(geometry.V),
			}
		}
		pts, err := g.ContributingPoints(u, v[0])
		if err != nil {
			return nil, errors.Wrap(err, opLocate)
		}
		return pts, nil
	}
	return nil, &ConfigurationError{Op: opLocate, Reason: "unsupported geometry kind", Index: -1}
}
