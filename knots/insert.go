package knots

import (
	"fmt"

	"github.com/npillmayer/nurbs"
)

// InsertKnot inserts knot u num times into a sequence of control points
// (Boehm's algorithm, A5.1). s is the current multiplicity of u and span the
// knot span as returned by FindSpan. The result has len(pts)+num points.
//
// The knot vector is not changed; use InsertionVector with the same span
// to compute it.
func InsertKnot(degree int, kv Vector, pts []nurbs.Point, u float64, num, s, span int) ([]nurbs.Point, error) {
	if err := checkRelation(degree, kv, pts); err != nil {
		return nil, err
	}
	if num == 0 {
		return clonePoints(pts), nil
	}
	if num < 0 || num > degree-s {
		return nil, fmt.Errorf("insert %g %d times, degree %d, multiplicity %d: %w",
			u, num, degree, s, ErrInsertionExceedsDegree)
	}
	np := len(pts)
	k := span
	q := make([]nurbs.Point, np+num)
	for i := 0; i <= k-degree; i++ {
		q[i] = pts[i]
	}
	for i := k - s; i < np; i++ {
		q[i+num] = pts[i]
	}
	temp := make([]nurbs.Point, degree-s+1)
	for i := range temp {
		temp[i] = pts[k-degree+i]
	}
	for j := 1; j <= num; j++ {
		l := k - degree + j
		for i := 0; i <= degree-j-s; i++ {
			alpha := (u - kv[l+i]) / (kv[i+k+1] - kv[l+i])
			temp[i] = nurbs.Lerp(alpha, temp[i+1], temp[i])
		}
		q[l] = temp[0]
		q[k+num-j-s] = temp[degree-j-s]
	}
	l := k - degree + num
	for i := l + 1; i < k-s; i++ {
		q[i] = temp[i-l]
	}
	return q, nil
}

// InsertionVector returns the knot vector after inserting u r times at span.
func InsertionVector(kv Vector, u float64, span, r int) Vector {
	out := make(Vector, len(kv)+r)
	copy(out, kv[:span+1])
	for i := 1; i <= r; i++ {
		out[span+i] = u
	}
	copy(out[span+r+1:], kv[span+1:])
	return out
}
