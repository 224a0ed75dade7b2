package discount

import (
	"errors"
	"math"
)

// Compounding selects the rate space in which a spread is applied to a
// continuously compounded zero rate.
type Compounding int

const (
	// Continuous adds the spread directly to the continuously compounded
	// zero rate.
	Continuous Compounding = iota
	// Periodic converts the zero rate to its periodically compounded
	// equivalent, adds the spread there, and converts back.
	Periodic
)

// ErrPeriodsPerYear is returned when a periodic-compounding call is made
// with fewer than one period per year.
var ErrPeriodsPerYear = errors.New("periodsPerYear must be at least 1 for periodic compounding")

func (c Compounding) String() string {
	switch c {
	case Continuous:
		return "Continuous"
	case Periodic:
		return "Periodic"
	default:
		return "Unknown"
	}
}

// PeriodicRateFromZeroRate converts a continuously compounded zero rate to
// its equivalent rate compounded periodsPerYear times per year.
func PeriodicRateFromZeroRate(zeroRate float64, periodsPerYear int) float64 {
	n := float64(periodsPerYear)
	return n * (math.Exp(zeroRate/n) - 1)
}

// PeriodicRateFromDiscountFactor recovers the periodically compounded rate
// implied by a discount factor over year fraction t.
func PeriodicRateFromDiscountFactor(df float64, periodsPerYear int, t float64) float64 {
	n := float64(periodsPerYear)
	return n * (math.Pow(df, -1/(n*t)) - 1)
}

// DiscountFactorFromPeriodicRate computes the discount factor over year
// fraction t for a rate compounded periodsPerYear times per year.
func DiscountFactorFromPeriodicRate(rate float64, periodsPerYear int, t float64) float64 {
	n := float64(periodsPerYear)
	return math.Pow(1+rate/n, -n*t)
}
