package grid

import (
	"errors"
	"testing"

	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// labeled creates n points, each carrying its own flat index.
func labeled(n int) []nurbs.Point {
	pts := make([]nurbs.Point, n)
	for k := range pts {
		pts[k] = nurbs.Pt(float64(k))
	}
	return pts
}

func TestLayoutValidation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := New([]int{2, 3}, []int{0})
	assert.ErrorIs(t, err, ErrInvalidLayout)
	_, err = New([]int{2, 3}, []int{0, 0})
	assert.ErrorIs(t, err, ErrInvalidLayout)
	_, err = New([]int{2, 0}, []int{1, 0})
	assert.ErrorIs(t, err, ErrInvalidLayout)
	l, err := New([]int{2, 3}, []int{1, 0})
	require.NoError(t, err)
	assert.True(t, l.Equal(Surface(2, 3)))
}

func TestSurfaceIndexing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	su, sv := 3, 4
	l := Surface(su, sv)
	assert.Equal(t, 12, l.Len())
	for u := 0; u < su; u++ {
		for v := 0; v < sv; v++ {
			k := l.Index(u, v)
			assert.Equal(t, v+sv*u, k)
			assert.Equal(t, []int{u, v}, l.Coords(k))
		}
	}
}

func TestVolumeIndexing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	su, sv, sw := 2, 3, 4
	l := Volume(su, sv, sw)
	assert.Equal(t, 24, l.Len())
	for w := 0; w < sw; w++ {
		for u := 0; u < su; u++ {
			for v := 0; v < sv; v++ {
				k := l.Index(u, v, w)
				assert.Equal(t, v+u*sv+w*su*sv, k)
				assert.Equal(t, []int{u, v, w}, l.Coords(k))
			}
		}
	}
}

func TestSurfaceFibers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	su, sv := 3, 4
	l := Surface(su, sv)
	pts := labeled(l.Len())
	fu, err := l.Fibers(pts, 0)
	require.NoError(t, err)
	require.Len(t, fu, sv)
	for v := 0; v < sv; v++ {
		require.Len(t, fu[v], su)
		for u := 0; u < su; u++ {
			assert.Equal(t, pts[v+sv*u], fu[v][u])
		}
	}
	fv, err := l.Fibers(pts, 1)
	require.NoError(t, err)
	require.Len(t, fv, su)
	for u := 0; u < su; u++ {
		assert.Equal(t, pts[sv*u:sv*(u+1)], fv[u], "v-fibers are contiguous in storage")
	}
}

func TestVolumeFibers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	su, sv, sw := 2, 3, 4
	l := Volume(su, sv, sw)
	pts := labeled(l.Len())
	at := func(u, v, w int) nurbs.Point { return pts[v+u*sv+w*su*sv] }

	fu, err := l.Fibers(pts, 0)
	require.NoError(t, err)
	require.Len(t, fu, sv*sw)
	fv, err := l.Fibers(pts, 1)
	require.NoError(t, err)
	require.Len(t, fv, su*sw)
	fw, err := l.Fibers(pts, 2)
	require.NoError(t, err)
	require.Len(t, fw, su*sv)
	for w := 0; w < sw; w++ {
		for u := 0; u < su; u++ {
			for v := 0; v < sv; v++ {
				assert.Equal(t, at(u, v, w), fu[v+w*sv][u])
				assert.Equal(t, at(u, v, w), fv[u+w*su][v])
				assert.Equal(t, at(u, v, w), fw[v+u*sv][w])
			}
		}
	}
}

func TestAssembleIsInverseOfFibers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, l := range []Layout{Curve(5), Surface(3, 4), Volume(2, 3, 4)} {
		pts := labeled(l.Len())
		for d := 0; d < l.Dims(); d++ {
			fibers, err := l.Fibers(pts, d)
			require.NoError(t, err)
			back, m, err := l.Assemble(fibers, d)
			require.NoError(t, err)
			assert.True(t, m.Equal(l), "%v: layout changed to %v", l, m)
			assert.Equal(t, pts, back, "%v direction %d", l, d)
		}
	}
}

func TestAssembleResizes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	l := Volume(2, 3, 4)
	pts := labeled(l.Len())
	for d := 0; d < l.Dims(); d++ {
		fibers, err := l.Fibers(pts, d)
		require.NoError(t, err)
		for i, f := range fibers { // duplicate the first point of every fiber
			fibers[i] = append([]nurbs.Point{f[0]}, f...)
		}
		out, m, err := l.Assemble(fibers, d)
		require.NoError(t, err)
		assert.Equal(t, l.Size(d)+1, m.Size(d))
		assert.Equal(t, m.Len(), len(out))
		for k, p := range out {
			c := m.Coords(k)
			if c[d] > 0 {
				c[d]--
			}
			assert.Equal(t, pts[l.Index(c...)], p)
		}
	}
}

func TestSurfaceFlip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	su, sv := 3, 2
	// u-fastest input, as produced by concatenating u-fibers
	in := labeled(su * sv)
	var flipped []nurbs.Point
	for i := 0; i < su; i++ {
		for j := 0; j < sv; j++ {
			flipped = append(flipped, in[i+j*su])
		}
	}
	s := Surface(su, sv)
	out, err := Reorder(in, s.FiberMajor(0), s)
	require.NoError(t, err)
	assert.Equal(t, flipped, out)
	back, err := Reorder(out, s, s.FiberMajor(0))
	require.NoError(t, err)
	assert.Equal(t, in, back)
}

func TestAssembleErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	l := Surface(3, 2)
	_, err := l.Fibers(labeled(5), 0)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = l.Fibers(labeled(6), 2)
	assert.ErrorIs(t, err, ErrDirection)
	_, _, err = l.Assemble([][]nurbs.Point{labeled(3)}, 0)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, _, err = l.Assemble([][]nurbs.Point{labeled(3), labeled(4)}, 0)
	assert.True(t, errors.Is(err, ErrRaggedFibers))
	_, err = Reorder(labeled(6), l, Surface(2, 3))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
