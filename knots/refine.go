package knots

import (
	"fmt"
	"math"

	"github.com/npillmayer/nurbs"
)

// RefinementKnots computes the knots to insert when refining kv with a given
// density.
//
// Candidates are the distinct knots of the domain plus any additional knots.
// Each density step above 1 adds the midpoint of every candidate span. Every
// candidate is then inserted until it reaches multiplicity = degree.
func RefinementKnots(degree int, kv Vector, density int, additional ...float64) (Vector, error) {
	if density < 1 {
		return nil, fmt.Errorf("density %d: %w", density, ErrInvalidDensity)
	}
	lo, hi := kv.Domain(degree)
	for _, k := range additional {
		if k < lo || k > hi {
			return nil, fmt.Errorf("additional knot %g not in [%g,%g]: %w", k, lo, hi, ErrOutOfDomain)
		}
	}
	candidates := kv[degree : len(kv)-degree].Distinct(additional...)
	for d := 1; d < density; d++ {
		dense := make(Vector, 0, 2*len(candidates))
		for i := 0; i < len(candidates)-1; i++ {
			mid := candidates[i] + (candidates[i+1]-candidates[i])/2
			dense = append(dense, candidates[i], mid)
		}
		candidates = append(dense, candidates[len(candidates)-1])
	}
	var x Vector
	for _, k := range candidates {
		for r := degree - kv.Multiplicity(k); r > 0; r-- {
			x = append(x, k)
		}
	}
	if len(x) == 0 {
		return nil, ErrNotRefinable
	}
	return x, nil
}

// Refine inserts every knot of x into a sequence of control points (A5.4).
// x must be non-decreasing and lie within the domain of kv. Refine returns
// the new control points and the new knot vector.
func Refine(degree int, kv Vector, pts []nurbs.Point, x Vector) ([]nurbs.Point, Vector, error) {
	if err := checkRelation(degree, kv, pts); err != nil {
		return nil, nil, err
	}
	if len(x) == 0 {
		return clonePoints(pts), kv.Clone(), nil
	}
	p := degree
	n := len(pts) - 1
	m := n + p + 1
	r := len(x) - 1
	a := FindSpan(p, kv, n+1, x[0])
	b := FindSpan(p, kv, n+1, x[r]) + 1
	q := make([]nurbs.Point, n+r+2)
	ubar := make(Vector, m+r+2)
	for j := 0; j <= a-p; j++ {
		q[j] = pts[j]
	}
	for j := b - 1; j <= n; j++ {
		q[j+r+1] = pts[j]
	}
	for j := 0; j <= a; j++ {
		ubar[j] = kv[j]
	}
	for j := b + p; j <= m; j++ {
		ubar[j+r+1] = kv[j]
	}
	i := b + p - 1
	k := b + p + r
	for j := r; j >= 0; j-- {
		for x[j] <= kv[i] && i > a {
			q[k-p-1] = pts[i-p-1]
			ubar[k] = kv[i]
			k--
			i--
		}
		q[k-p-1] = q[k-p]
		for l := 1; l <= p; l++ {
			ind := k - p + l
			alpha := ubar[k+l] - x[j]
			if math.Abs(alpha) < nurbs.Epsilon {
				q[ind-1] = q[ind]
			} else {
				alpha /= ubar[k+l] - kv[i-p+l]
				q[ind-1] = nurbs.Lerp(alpha, q[ind-1], q[ind])
			}
		}
		ubar[k] = x[j]
		k--
	}
	tracer().Debugf("refined %d -> %d control points", len(pts), len(q))
	return q, ubar, nil
}

// RefineDensity is the combination of RefinementKnots and Refine.
func RefineDensity(degree int, kv Vector, pts []nurbs.Point, density int, additional ...float64) ([]nurbs.Point, Vector, error) {
	if err := checkRelation(degree, kv, pts); err != nil {
		return nil, nil, err
	}
	x, err := RefinementKnots(degree, kv, density, additional...)
	if err != nil {
		return nil, nil, err
	}
	return Refine(degree, kv, pts, x)
}
