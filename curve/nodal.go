package curve

import (
	"fmt"
	"sort"
)

// InterpolatedNodalCurve is an immutable curve defined by node coordinates
// with linear interpolation between nodes and flat extrapolation beyond the
// outer nodes.
type InterpolatedNodalCurve struct {
	meta Metadata
	xs   []float64
	ys   []float64
}

// NewInterpolatedNodalCurve validates the node coordinates and returns an
// immutable curve. The x values must be strictly increasing and there must
// be at least two nodes.
func NewInterpolatedNodalCurve(meta Metadata, xs, ys []float64) (*InterpolatedNodalCurve, error) {
	if meta.Name == "" {
		return nil, fmt.Errorf("curve name is required")
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("curve %q: node count mismatch: %d x values, %d y values", meta.Name, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("curve %q: at least 2 nodes are required, got %d", meta.Name, len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("curve %q: x values must be strictly increasing at index %d", meta.Name, i)
		}
	}
	c := &InterpolatedNodalCurve{
		meta: meta,
		xs:   append([]float64(nil), xs...),
		ys:   append([]float64(nil), ys...),
	}
	return c, nil
}

// Metadata returns the curve's metadata.
func (c *InterpolatedNodalCurve) Metadata() Metadata {
	return c.meta
}

// Name returns the curve name.
func (c *InterpolatedNodalCurve) Name() string {
	return c.meta.Name
}

// ParameterCount returns the number of nodes.
func (c *InterpolatedNodalCurve) ParameterCount() int {
	return len(c.xs)
}

// XValues returns a copy of the node x coordinates.
func (c *InterpolatedNodalCurve) XValues() []float64 {
	return append([]float64(nil), c.xs...)
}

// YValues returns a copy of the node y coordinates.
func (c *InterpolatedNodalCurve) YValues() []float64 {
	return append([]float64(nil), c.ys...)
}

// Value returns the linearly interpolated y value at x, extrapolating flat
// beyond the first and last nodes.
func (c *InterpolatedNodalCurve) Value(x float64) float64 {
	lo, hi, w := c.bracket(x)
	if lo == hi {
		return c.ys[lo]
	}
	return c.ys[lo]*(1-w) + c.ys[hi]*w
}

// NodeSensitivity returns the interpolation weights of Value(x) with respect
// to each node's y value: at most two nonzero entries, for the bracketing
// nodes, summing to one.
func (c *InterpolatedNodalCurve) NodeSensitivity(x float64) []float64 {
	sens := make([]float64, len(c.xs))
	lo, hi, w := c.bracket(x)
	if lo == hi {
		sens[lo] = 1
		return sens
	}
	sens[lo] = 1 - w
	sens[hi] = w
	return sens
}

// WithValues returns a copy of the curve with replacement y values at the
// same node x coordinates.
func (c *InterpolatedNodalCurve) WithValues(ys []float64) (*InterpolatedNodalCurve, error) {
	return NewInterpolatedNodalCurve(c.meta, c.xs, ys)
}

// bracket locates the nodes surrounding x. It returns equal indices for
// exact node hits and for x beyond the curve's range, where extrapolation
// is flat. Otherwise w is the weight of the upper node.
func (c *InterpolatedNodalCurve) bracket(x float64) (lo, hi int, w float64) {
	n := len(c.xs)
	i := sort.SearchFloat64s(c.xs, x)
	switch {
	case i >= n:
		return n - 1, n - 1, 0
	case c.xs[i] == x:
		return i, i, 0
	case i == 0:
		return 0, 0, 0
	default:
		w = (x - c.xs[i-1]) / (c.xs[i] - c.xs[i-1])
		return i - 1, i, w
	}
}
