package discount_test

import (
	"math"
	"testing"

	"github.com/quantfn/rateslib/discount"
)

// The periodic rate implied by exp(-z*t) depends only on the zero rate:
// df^(-1/(n*t)) collapses to exp(z/n).
func TestPeriodicRateFromDiscountFactor(t *testing.T) {
	t.Parallel()

	const z = 0.035
	for _, n := range []int{1, 2, 4, 12} {
		want := discount.PeriodicRateFromZeroRate(z, n)
		for _, yf := range []float64{0.25, 1, 7.5} {
			df := math.Exp(-z * yf)
			got := discount.PeriodicRateFromDiscountFactor(df, n, yf)
			if math.Abs(got-want) > tol {
				t.Fatalf("periodic rate mismatch (n=%d, t=%.2f): got %.15f want %.15f", n, yf, got, want)
			}
		}
	}
}

// Converting a continuous discount factor to periodic space and back must
// reproduce it.
func TestDiscountFactorFromPeriodicRate_RoundTrip(t *testing.T) {
	t.Parallel()

	const z, yf = 0.021, 3.4
	df := math.Exp(-z * yf)
	for _, n := range []int{1, 2, 4, 12} {
		rate := discount.PeriodicRateFromDiscountFactor(df, n, yf)
		got := discount.DiscountFactorFromPeriodicRate(rate, n, yf)
		if math.Abs(got-df) > tol {
			t.Fatalf("round trip mismatch (n=%d): got %.15f want %.15f", n, got, df)
		}
	}
}

func TestCompoundingString(t *testing.T) {
	t.Parallel()

	if discount.Continuous.String() != "Continuous" || discount.Periodic.String() != "Periodic" {
		t.Fatalf("unexpected Compounding strings: %s, %s", discount.Continuous, discount.Periodic)
	}
}
