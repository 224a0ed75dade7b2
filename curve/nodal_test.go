package curve_test

import (
	"math"
	"testing"

	"github.com/quantfn/rateslib/curve"
	"github.com/quantfn/rateslib/daycount"
)

var meta = curve.Metadata{
	Name:       "TestCurve",
	XValueType: curve.YearFraction,
	YValueType: curve.ZeroRate,
	DayCount:   daycount.Act365F,
}

func mustCurve(t *testing.T, xs, ys []float64) *curve.InterpolatedNodalCurve {
	t.Helper()
	c, err := curve.NewInterpolatedNodalCurve(meta, xs, ys)
	if err != nil {
		t.Fatalf("NewInterpolatedNodalCurve error: %v", err)
	}
	return c
}

func TestNewInterpolatedNodalCurve_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		meta   curve.Metadata
		xs, ys []float64
	}{
		{"no name", curve.Metadata{XValueType: curve.YearFraction, YValueType: curve.ZeroRate}, []float64{0, 1}, []float64{1, 2}},
		{"length mismatch", meta, []float64{0, 1, 2}, []float64{1, 2}},
		{"single node", meta, []float64{0}, []float64{1}},
		{"not increasing", meta, []float64{0, 2, 2}, []float64{1, 2, 3}},
		{"decreasing", meta, []float64{0, 2, 1}, []float64{1, 2, 3}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := curve.NewInterpolatedNodalCurve(tc.meta, tc.xs, tc.ys); err == nil {
				t.Fatalf("expected construction error")
			}
		})
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	c := mustCurve(t, []float64{0, 2, 10}, []float64{0.01, 0.015, 0.02})

	cases := []struct {
		name string
		x    float64
		want float64
	}{
		{"exact node", 2, 0.015},
		{"first node", 0, 0.01},
		{"interior", 6, 0.015 + 0.5*(0.02-0.015)},
		{"interior short end", 1, 0.01 + 0.5*(0.015-0.01)},
		{"flat extrapolation below", -1, 0.01},
		{"flat extrapolation above", 12, 0.02},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := c.Value(tc.x); math.Abs(got-tc.want) > 1e-15 {
				t.Fatalf("Value(%v) mismatch: got %.15f want %.15f", tc.x, got, tc.want)
			}
		})
	}
}

func TestNodeSensitivity(t *testing.T) {
	t.Parallel()

	c := mustCurve(t, []float64{0, 2, 10}, []float64{0.01, 0.015, 0.02})

	cases := []struct {
		name string
		x    float64
		want []float64
	}{
		{"interior", 6, []float64{0, 0.5, 0.5}},
		{"exact node", 2, []float64{0, 1, 0}},
		{"below range", -3, []float64{1, 0, 0}},
		{"above range", 15, []float64{0, 0, 1}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := c.NodeSensitivity(tc.x)
			if len(got) != c.ParameterCount() {
				t.Fatalf("length mismatch: got %d want %d", len(got), c.ParameterCount())
			}
			for i := range tc.want {
				if math.Abs(got[i]-tc.want[i]) > 1e-15 {
					t.Fatalf("node %d mismatch: got %.15f want %.15f", i, got[i], tc.want[i])
				}
			}
		})
	}
}

// The node weights reconstruct the interpolated value.
func TestNodeSensitivity_ReconstructsValue(t *testing.T) {
	t.Parallel()

	c := mustCurve(t, []float64{0, 2, 10}, []float64{0.01, 0.015, 0.02})
	ys := c.YValues()
	for _, x := range []float64{-1, 0, 0.7, 2, 5.3, 10, 11} {
		sens := c.NodeSensitivity(x)
		sum := 0.0
		for i, w := range sens {
			sum += w * ys[i]
		}
		if math.Abs(sum-c.Value(x)) > 1e-15 {
			t.Fatalf("weights do not reconstruct Value(%v): got %.15f want %.15f", x, sum, c.Value(x))
		}
	}
}

func TestWithValues(t *testing.T) {
	t.Parallel()

	c := mustCurve(t, []float64{0, 10}, []float64{0.01, 0.02})

	shifted, err := c.WithValues([]float64{0.02, 0.03})
	if err != nil {
		t.Fatalf("WithValues error: %v", err)
	}
	if got := shifted.Value(5); math.Abs(got-0.025) > 1e-15 {
		t.Fatalf("shifted Value mismatch: got %.15f", got)
	}
	if got := c.Value(5); math.Abs(got-0.015) > 1e-15 {
		t.Fatalf("original curve changed: got %.15f", got)
	}

	if _, err := c.WithValues([]float64{0.02}); err == nil {
		t.Fatalf("expected error for wrong value count")
	}
}

// Accessors return copies; callers must not be able to mutate the curve.
func TestAccessorCopies(t *testing.T) {
	t.Parallel()

	c := mustCurve(t, []float64{0, 10}, []float64{0.01, 0.02})
	xs := c.XValues()
	xs[0] = 99
	ys := c.YValues()
	ys[0] = 99
	sens := c.NodeSensitivity(5)
	sens[0] = 99

	if c.XValues()[0] != 0 || c.YValues()[0] != 0.01 {
		t.Fatalf("accessor exposed internal state")
	}
	if c.NodeSensitivity(5)[0] == 99 {
		t.Fatalf("NodeSensitivity exposed shared state")
	}
}
