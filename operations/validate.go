package operations

import (
	"fmt"
	"slices"

	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/nurbs/geometry"
)

// validate checks the call-site arguments of an operation on g. params is
// nil for refinement, where the additional knots of cfg are checked instead. With checks disabled only the geometry kind is
// checked.
func validate(op string, g geometry.Geometry, dirs []geometry.Direction, params []Param,
	counts []int, what string, cfg *config) error {
	if dirs == nil {
		return &ConfigurationError{Op: op, Reason: "unsupported geometry kind", Index: -1}
	}
	if !cfg.check {
		return nil
	}
	pdim := len(dirs)
	if len(counts) != pdim {
		return &ConfigurationError{
			Op:     op,
			Reason: fmt.Sprintf("length of %s must equal the parametric dimension %d", what, pdim),
			Index:  -1,
			Value:  len(counts),
		}
	}
	for i, c := range counts {
		if c < 0 {
			return &ConfigurationError{
				Op:     op,
				Reason: fmt.Sprintf("%s must be non-negative", what),
				Index:  i,
				Value:  c,
			}
		}
	}
	if op == opRefine {
		return validateAdditional(g, counts, cfg.additional)
	}
	if len(params) != pdim {
		return &ConfigurationError{
			Op:     op,
			Reason: fmt.Sprintf("number of parameters must equal the parametric dimension %d", pdim),
			Index:  -1,
			Value:  len(params),
		}
	}
	for _, d := range dirs {
		u, ok := params[d].Value()
		if !ok || counts[d] == 0 {
			continue
		}
		lo, hi := g.KnotVector(d).Domain(g.Degree(d))
		if u < lo-nurbs.Epsilon || u > hi+nurbs.Epsilon {
			return &ConfigurationError{
				Op:     op,
				Reason: fmt.Sprintf("%s-parameter %g outside domain [%g,%g]", d, u, lo, hi),
				Index:  int(d),
				Value:  counts[d],
			}
		}
	}
	return nil
}

// validateAdditional checks the extra refinement knots of every direction
// which will be refined.
func validateAdditional(g geometry.Geometry, density []int, additional map[geometry.Direction][]float64) error {
	dirs := make([]geometry.Direction, 0, len(additional))
	for d := range additional {
		dirs = append(dirs, d)
	}
	slices.Sort(dirs)
	for _, d := range dirs {
		ks := additional[d]
		if d < 0 || int(d) >= len(density) {
			return &ConfigurationError{
				Op:     opRefine,
				Reason: fmt.Sprintf("additional knots for %s-direction of %d-dimensional geometry", d, len(density)),
				Index:  int(d),
				Value:  len(ks),
			}
		}
		if density[d] == 0 {
			continue
		}
		lo, hi := g.KnotVector(d).Domain(g.Degree(d))
		for _, k := range ks {
			if k < lo || k > hi {
				return &ConfigurationError{
					Op:     opRefine,
					Reason: fmt.Sprintf("additional %s-knot %g outside domain [%g,%g]", d, k, lo, hi),
					Index:  int(d),
					Value:  density[d],
				}
			}
		}
	}
	return nil
}
