package knots

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/nurbs"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// basisFuns computes the non-vanishing basis functions at u (A2.2).
func basisFuns(span int, u float64, degree int, kv Vector) []float64 {
	n := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)
	n[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - kv[span+1-j]
		right[j] = kv[span+j] - u
		var saved float64
		for r := 0; r < j; r++ {
			temp := n[r] / (right[r+1] + left[j-r])
			n[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		n[j] = saved
	}
	return n
}

// evalCurve evaluates a (possibly homogeneous) B-spline curve at u.
func evalCurve(degree int, kv Vector, pts []nurbs.Point, u float64) nurbs.Point {
	span := FindSpan(degree, kv, len(pts), u)
	basis := basisFuns(span, u, degree, kv)
	res := make(nurbs.Point, len(pts[0]))
	for i := 0; i <= degree; i++ {
		res = res.Plus(pts[span-degree+i].Scaled(basis[i]))
	}
	return res
}

func samples(lo, hi float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = lo + (hi-lo)*float64(i)/float64(n)
	}
	return s
}

// testCurve is a degree-2 curve with knot vector [0,0,0,1,2,3,4,4,4].
func testCurve() (int, Vector, []nurbs.Point) {
	kv := Vector{0, 0, 0, 1, 2, 3, 4, 4, 4}
	pts := []nurbs.Point{
		nurbs.Pt(0, 0), nurbs.Pt(1, 2), nurbs.Pt(3, 3),
		nurbs.Pt(4, 1), nurbs.Pt(6, 0), nurbs.Pt(7, 2),
	}
	return 2, kv, pts
}
