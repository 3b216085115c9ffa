package operations

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/nurbs/geometry"
	"github.com/npillmayer/nurbs/knots"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// basisFuns computes the non-vanishing basis functions at u (A2.2).
func basisFuns(span int, u float64, degree int, kv knots.Vector) []float64 {
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

// eval evaluates a curve, surface or volume at a parametric position.
func eval(g geometry.Geometry, params ...float64) nurbs.Point {
	net, l := g.Net(), g.Layout()
	pd := g.ParametricDimension()
	first := make([]int, pd)
	basis := make([][]float64, pd)
	for d := 0; d < pd; d++ {
		dir := geometry.Direction(d)
		p, kv := g.Degree(dir), g.KnotVector(dir)
		span := knots.FindSpan(p, kv, l.Size(d), params[d])
		first[d] = span - p
		basis[d] = basisFuns(span, params[d], p, kv)
	}
	res := make(nurbs.Point, len(net[0]))
	idx := make([]int, pd)
	var walk func(d int, w float64)
	walk = func(d int, w float64) {
		if d == pd {
			res = res.Plus(net[l.Index(idx...)].Scaled(w))
			return
		}
		for k, b := range basis[d] {
			idx[d] = first[d] + k
			walk(d+1, w*b)
		}
	}
	walk(0, 1)
	if g.Rational() {
		p, _ := nurbs.Unweighted(res)
		return p
	}
	return res
}

// sampleGrid returns parameter tuples covering [0,1)^pd.
func sampleGrid(pd, n int) [][]float64 {
	grid := [][]float64{{}}
	for d := 0; d < pd; d++ {
		var next [][]float64
		for _, prefix := range grid {
			for i := 0; i < n; i++ {
				tuple := append(append([]float64(nil), prefix...), float64(i)/float64(n))
				next = append(next, tuple)
			}
		}
		grid = next
	}
	return grid
}

// shapeOf samples g; all test geometries have domain [0,1] per direction,
// except the test curve which is scaled to [0,4].
func shapeOf(g geometry.Geometry) []nurbs.Point {
	var pts []nurbs.Point
	for _, params := range sampleGrid(g.ParametricDimension(), 7) {
		ps := make([]float64, len(params))
		for d, u := range params {
			lo, hi := g.KnotVector(geometry.Direction(d)).Domain(g.Degree(geometry.Direction(d)))
			ps[d] = lo + (hi-lo)*u
		}
		pts = append(pts, eval(g, ps...))
	}
	return pts
}

// checkConsistent asserts the size relations every geometry must keep.
func checkConsistent(t *testing.T, g geometry.Geometry) {
	t.Helper()
	total := 1
	for d, size := range g.Sizes() {
		dir := geometry.Direction(d)
		require.Equal(t, size+g.Degree(dir)+1, len(g.KnotVector(dir)), "%s-direction", dir)
		require.True(t, g.KnotVector(dir).IsNonDecreasing())
		total *= size
	}
	require.Equal(t, total, len(g.ControlPoints()))
}

func degreesOf(g geometry.Geometry) []int {
	degrees := make([]int, g.ParametricDimension())
	for d := range degrees {
		degrees[d] = g.Degree(geometry.Direction(d))
	}
	return degrees
}

// --- Fixtures --------------------------------------------------------------

func testCurve(t *testing.T, weights []float64) *geometry.Curve {
	pts := []nurbs.Point{
		nurbs.Pt(0, 0), nurbs.Pt(1, 2), nurbs.Pt(3, 3),
		nurbs.Pt(4, 1), nurbs.Pt(6, 0), nurbs.Pt(7, 2),
	}
	c, err := geometry.NewCurve(2, []float64{0, 0, 0, 1, 2, 3, 4, 4, 4}, pts, weights)
	require.NoError(t, err)
	return c
}

// testSurface is of degree (2,3) with 4 × 5 control points.
func testSurface(t *testing.T, rational bool) *geometry.Surface {
	su, sv := 4, 5
	pts := make([]nurbs.Point, 0, su*sv)
	var weights []float64
	for u := 0; u < su; u++ {
		for v := 0; v < sv; v++ {
			pts = append(pts, nurbs.Pt(float64(u), float64(v), float64((7*u+3*v)%5)))
			if rational {
				weights = append(weights, 1+float64((u+2*v)%3)/2)
			}
		}
	}
	s, err := geometry.NewSurface(2, 3,
		[]float64{0, 0, 0, 0.5, 1, 1, 1},
		[]float64{0, 0, 0, 0, 0.5, 1, 1, 1, 1},
		su, sv, pts, weights)
	require.NoError(t, err)
	return s
}

// testVolume is of degree (2,1,2) with 4 × 3 × 3 control points.
func testVolume(t *testing.T) *geometry.Volume {
	su, sv, sw := 4, 3, 3
	pts := make([]nurbs.Point, su*sv*sw)
	for w := 0; w < sw; w++ {
		for u := 0; u < su; u++ {
			for v := 0; v < sv; v++ {
				pts[v+u*sv+w*su*sv] = nurbs.Pt(
					float64(u)+0.1*float64(v*w),
					float64(v)+0.3*float64(u%2),
					float64(w)+0.2*float64(u*v))
			}
		}
	}
	vol, err := geometry.NewVolume(2, 1, 2,
		[]float64{0, 0, 0, 0.5, 1, 1, 1},
		[]float64{0, 0, 0.5, 1, 1},
		[]float64{0, 0, 0, 1, 1, 1},
		su, sv, sw, pts, nil)
	require.NoError(t, err)
	return vol
}
