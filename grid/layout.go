/*
Package grid does the index bookkeeping for tensor-product control nets.

A control net of a curve, surface or volume is stored as a flat slice of
points. A Layout knows the per-direction sizes of the net and the order in
which the directions vary in storage, fastest first:

	curve:   index = u
	surface: index = v + size_v⋅u                      (order v, u)
	volume:  index = v + size_v⋅u + size_v⋅size_u⋅w    (order v, u, w)

Knot operations work on fibers: 1D sequences of points obtained by holding
every direction fixed except one. Fibers extracts them, Assemble puts
processed (and possibly resized) fibers back into storage order. Assemble
concatenates the fibers, which yields a net in fiber-major order, and then
uses Reorder to get back to storage order. For a surface's v-direction the
two orders coincide; for its u-direction Reorder is a transpose.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package grid

import (
	"errors"
	"fmt"
	"slices"

	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nurbs'
func tracer() tracing.Trace {
	return tracing.Select("nurbs")
}

var (
	// ErrInvalidLayout indicates non-positive sizes or an order which is not
	// a permutation of the directions.
	ErrInvalidLayout = errors.New("grid: invalid layout")
	// ErrShapeMismatch indicates a point count not matching a layout.
	ErrShapeMismatch = errors.New("grid: point count does not match layout")
	// ErrRaggedFibers indicates fibers of differing lengths.
	ErrRaggedFibers = errors.New("grid: fibers differ in length")
	// ErrDirection indicates a direction index out of range.
	ErrDirection = errors.New("grid: no such direction")
)

// Layout is an immutable description of a flattened n-dimensional grid.
type Layout struct {
	sizes []int // size per parametric direction, u first
	order []int // directions, fastest varying first
}

// New creates a layout from per-direction sizes and a storage order
// (directions listed fastest varying first).
func New(sizes []int, order []int) (Layout, error) {
	if len(sizes) == 0 || len(sizes) != len(order) {
		return Layout{}, fmt.Errorf("%d sizes, %d order entries: %w", len(sizes), len(order), ErrInvalidLayout)
	}
	seen := make([]bool, len(sizes))
	for _, d := range order {
		if d < 0 || d >= len(sizes) || seen[d] {
			return Layout{}, fmt.Errorf("order %v: %w", order, ErrInvalidLayout)
		}
		seen[d] = true
	}
	for d, s := range sizes {
		if s < 1 {
			return Layout{}, fmt.Errorf("size %d in direction %d: %w", s, d, ErrInvalidLayout)
		}
	}
	return Layout{sizes: slices.Clone(sizes), order: slices.Clone(order)}, nil
}

func must(l Layout, err error) Layout {
	if err != nil {
		panic(err)
	}
	return l
}

// Curve is the layout of a curve's control polygon with n points.
func Curve(n int) Layout {
	return must(New([]int{n}, []int{0}))
}

// Surface is the layout of a surface net, v varying fastest.
func Surface(sizeU, sizeV int) Layout {
	return must(New([]int{sizeU, sizeV}, []int{1, 0}))
}

// Volume is the layout of a volume net: v varying fastest, then u, then w.
func Volume(sizeU, sizeV, sizeW int) Layout {
	return must(New([]int{sizeU, sizeV, sizeW}, []int{1, 0, 2}))
}

// Dims returns the number of parametric directions.
func (l Layout) Dims() int {
	return len(l.sizes)
}

// Size returns the number of points in direction d.
func (l Layout) Size(d int) int {
	return l.sizes[d]
}

// Sizes returns the per-direction sizes.
func (l Layout) Sizes() []int {
	return slices.Clone(l.sizes)
}

// Order returns the storage order, fastest varying direction first.
func (l Layout) Order() []int {
	return slices.Clone(l.order)
}

// Len returns the number of points in the grid.
func (l Layout) Len() int {
	if len(l.sizes) == 0 {
		return 0
	}
	n := 1
	for _, s := range l.sizes {
		n *= s
	}
	return n
}

// Equal is a predicate: do l and m describe the same storage ?
func (l Layout) Equal(m Layout) bool {
	return slices.Equal(l.sizes, m.sizes) && slices.Equal(l.order, m.order)
}

func (l Layout) String() string {
	return fmt.Sprintf("grid%v/order%v", l.sizes, l.order)
}

func (l Layout) strides() []int {
	st := make([]int, len(l.sizes))
	s := 1
	for _, d := range l.order {
		st[d] = s
		s *= l.sizes[d]
	}
	return st
}

// Index returns the flat index of the point with per-direction indices idx
// (u first).
func (l Layout) Index(idx ...int) int {
	st := l.strides()
	var k int
	for d, i := range idx {
		k += i * st[d]
	}
	return k
}

// Coords is the inverse of Index.
func (l Layout) Coords(k int) []int {
	c := make([]int, len(l.sizes))
	for _, d := range l.order {
		c[d] = k % l.sizes[d]
		k /= l.sizes[d]
	}
	return c
}

// Resized returns a copy of l with direction d resized to n points.
func (l Layout) Resized(d, n int) Layout {
	m := Layout{sizes: slices.Clone(l.sizes), order: l.order}
	m.sizes[d] = n
	return m
}

// FiberMajor returns the layout in which direction d varies fastest while
// the remaining directions keep their relative storage order. Concatenating
// the fibers of direction d yields a slice in this layout.
func (l Layout) FiberMajor(d int) Layout {
	order := make([]int, 0, len(l.order))
	order = append(order, d)
	for _, o := range l.order {
		if o != d {
			order = append(order, o)
		}
	}
	return Layout{sizes: l.sizes, order: order}
}

func (l Layout) checkDirection(d int) error {
	if d < 0 || d >= len(l.sizes) {
		return fmt.Errorf("direction %d of %d: %w", d, len(l.sizes), ErrDirection)
	}
	return nil
}

// Reorder moves the points of a grid stored in layout from into layout to.
// Both layouts must have the same sizes.
func Reorder(pts []nurbs.Point, from, to Layout) ([]nurbs.Point, error) {
	if !slices.Equal(from.sizes, to.sizes) {
		return nil, fmt.Errorf("reorder %v to %v: %w", from, to, ErrShapeMismatch)
	}
	if len(pts) != from.Len() {
		return nil, fmt.Errorf("%d points for %v: %w", len(pts), from, ErrShapeMismatch)
	}
	if slices.Equal(from.order, to.order) {
		return slices.Clone(pts), nil
	}
	out := make([]nurbs.Point, len(pts))
	for k, p := range pts {
		out[to.Index(from.Coords(k)...)] = p
	}
	return out, nil
}

// Fibers decomposes a grid into the fibers running along direction d.
// Fibers are enumerated with the remaining directions in storage order,
// e.g. one fiber per v for direction u of a surface, or one fiber per
// (w, v) pair, v fastest, for direction u of a volume.
func (l Layout) Fibers(pts []nurbs.Point, d int) ([][]nurbs.Point, error) {
	if err := l.checkDirection(d); err != nil {
		return nil, err
	}
	if len(pts) != l.Len() {
		return nil, fmt.Errorf("%d points for %v: %w", len(pts), l, ErrShapeMismatch)
	}
	n := l.sizes[d]
	fm := l.FiberMajor(d)
	fibers := make([][]nurbs.Point, l.Len()/n)
	for f := range fibers {
		fibers[f] = make([]nurbs.Point, n)
	}
	for k := 0; k < l.Len(); k++ {
		fibers[k/n][k%n] = pts[l.Index(fm.Coords(k)...)]
	}
	return fibers, nil
}

// Assemble is the inverse of Fibers. fibers must be enumerated as Fibers
// does and must all have the same length, which becomes the new size of
// direction d. Assemble returns the points in storage order together with
// the resized layout.
func (l Layout) Assemble(fibers [][]nurbs.Point, d int) ([]nurbs.Point, Layout, error) {
	if err := l.checkDirection(d); err != nil {
		return nil, Layout{}, err
	}
	if len(fibers) == 0 || len(fibers) != l.Len()/l.sizes[d] {
		return nil, Layout{}, fmt.Errorf("%d fibers for direction %d of %v: %w",
			len(fibers), d, l, ErrShapeMismatch)
	}
	n := len(fibers[0])
	if n == 0 {
		return nil, Layout{}, fmt.Errorf("empty fibers: %w", ErrShapeMismatch)
	}
	concat := make([]nurbs.Point, 0, n*len(fibers))
	for i, f := range fibers {
		if len(f) != n {
			return nil, Layout{}, fmt.Errorf("fiber %d has %d points, expected %d: %w",
				i, len(f), n, ErrRaggedFibers)
		}
		concat = append(concat, f...)
	}
	resized := l.Resized(d, n)
	pts, err := Reorder(concat, resized.FiberMajor(d), resized)
	if err != nil {
		return nil, Layout{}, err
	}
	tracer().Debugf("assembled %d fibers along direction %d: %v -> %v", len(fibers), d, l.sizes, resized.sizes)
	return pts, resized, nil
}
