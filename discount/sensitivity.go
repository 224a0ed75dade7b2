package discount

import (
	"time"

	"github.com/quantfn/rateslib/currency"
)

// PointSensitivity is the sensitivity of a value to the zero rate observed
// for a single date.
//
// Currency is the currency the sensitivity is expressed in; it may differ
// from CurveCurrency after an FX conversion upstream. CurveCurrency is the
// native currency of the source curve and routes the sensitivity to the
// correct curve during aggregation.
type PointSensitivity struct {
	Currency      currency.Currency
	CurveCurrency currency.Currency
	Date          time.Time
	Value         float64
}

// WithCurrency returns a copy re-tagged with the given sensitivity currency.
// The curve currency is unchanged.
func (s PointSensitivity) WithCurrency(ccy currency.Currency) PointSensitivity {
	s.Currency = ccy
	return s
}

// WithValue returns a copy with the given sensitivity value.
func (s PointSensitivity) WithValue(value float64) PointSensitivity {
	s.Value = value
	return s
}

// MultipliedBy returns a copy with the sensitivity value scaled by factor.
func (s PointSensitivity) MultipliedBy(factor float64) PointSensitivity {
	s.Value *= factor
	return s
}
