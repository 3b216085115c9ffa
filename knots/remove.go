package knots

import (
	"fmt"

	"github.com/npillmayer/nurbs"
)

// DefaultRemovalTolerance is the distance below which a knot counts as
// removable without changing the shape.
const DefaultRemovalTolerance = 1e-3

// RemoveKnot removes the interior knot u num times from a sequence of control
// points (A5.8). s is the current multiplicity of u and span the index of the
// last occurrence of u, as returned by FindSpan. The result has len(pts)-num
// points.
//
// Removal always removes num knots. If the shape cannot be kept within tol,
// the result is the closest approximation A5.8 yields; this is reported
// through tracing, not as an error.
//
// The knot vector is not changed; use RemovalVector with the same span to
// compute it.
func RemoveKnot(degree int, kv Vector, pts []nurbs.Point, u float64, num, s, span int, tol float64) ([]nurbs.Point, error) {
	if err := checkRelation(degree, kv, pts); err != nil {
		return nil, err
	}
	if num == 0 {
		return clonePoints(pts), nil
	}
	if num < 0 || num > s {
		return nil, fmt.Errorf("remove %g %d times, multiplicity %d: %w",
			u, num, s, ErrRemovalExceedsMultiplicity)
	}
	if !kv.IsInterior(degree, u) {
		return nil, fmt.Errorf("remove %g from %v: %w", u, kv, ErrNotInterior)
	}
	p, r := degree, span
	n := len(pts) - 1
	order := p + 1
	first, last := r-p, r-s
	pw := clonePoints(pts)
	temp := make([]nurbs.Point, 2*p+1)
	var deviation float64
	for t := 0; t < num; t++ {
		off := first - 1
		temp[0] = pw[off]
		temp[last+1-off] = pw[last+1]
		i, j := first, last
		ii, jj := 1, last-off
		for j-i > t {
			alfi := (u - kv[i]) / (kv[i+order+t] - kv[i])
			alfj := (u - kv[j-t]) / (kv[j+order] - kv[j-t])
			temp[ii] = pw[i].Minus(temp[ii-1].Scaled(1 - alfi)).Scaled(1 / alfi)
			temp[jj] = pw[j].Minus(temp[jj+1].Scaled(alfj)).Scaled(1 / (1 - alfj))
			i++
			ii++
			j--
			jj--
		}
		var d float64
		if j-i < t {
			d = temp[ii-1].Distance(temp[jj+1])
		} else {
			alfi := (u - kv[i]) / (kv[i+order+t] - kv[i])
			d = pw[i].Distance(nurbs.Lerp(alfi, temp[ii+t+1], temp[ii-1]))
		}
		deviation = max(deviation, d)
		i, j = first, last
		for j-i > t {
			pw[i] = temp[i-off]
			pw[j] = temp[j-off]
			i++
			j--
		}
		first--
		last++
	}
	if deviation > tol {
		tracer().P("knot", u).Infof("removal of %d knot(s) not exact, deviation %g > %g", num, deviation, tol)
	}
	// close the gap left by the removed points
	fout := (2*r - s - p) / 2
	j, i := fout, fout
	for k := 1; k < num; k++ {
		if k%2 == 1 {
			i++
		} else {
			j--
		}
	}
	for k := i + 1; k <= n; k++ {
		pw[j] = pw[k]
		j++
	}
	return pw[:n+1-num], nil
}

// RemovalVector returns the knot vector after removing the knot at span
// r times.
func RemovalVector(kv Vector, span, r int) Vector {
	out := make(Vector, 0, len(kv)-r)
	out = append(out, kv[:span-r+1]...)
	return append(out, kv[span+1:]...)
}
