// Package discount computes discount factors and their curve sensitivities
// from a calibrated zero-rate curve.
//
// The engine is a pure in-memory calculator: it wraps a currency, a
// valuation date and one zero curve, and exposes discount factors for
// arbitrary dates, spread-adjusted discount factors under continuous or
// periodic compounding, and the analytic sensitivities of those discount
// factors to the curve, both as a scalar point sensitivity and as a
// per-node parameter sensitivity vector.
package discount

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/quantfn/rateslib/currency"
	"github.com/quantfn/rateslib/curve"
)

var (
	// ErrNilCurve is returned when a required curve argument is nil.
	ErrNilCurve = errors.New("nil curve")
	// ErrXValueType is returned when the curve's x values are not year fractions.
	ErrXValueType = errors.New("curve x values must be year fractions")
	// ErrYValueType is returned when the curve's y values are not zero rates.
	ErrYValueType = errors.New("curve y values must be zero rates")
	// ErrNoDayCount is returned when the curve metadata carries no day count.
	ErrNoDayCount = errors.New("curve metadata must declare a day count")
)

// Year fractions smaller than this are treated as a zero-length period.
const effectiveZero = 1e-10

// ZeroRateDiscountFactors provides discount factors for one currency off a
// curve of continuously compounded zero rates keyed by year fraction.
//
// The engine is immutable and safe for concurrent use. Replacing the curve
// produces a new engine; the wrapped curve is never mutated and may be
// shared across engines.
type ZeroRateDiscountFactors struct {
	ccy           currency.Currency
	valuationDate time.Time
	crv           curve.Curve
}

// New validates the curve and returns an engine bound to it.
//
// The curve must declare year-fraction x values, zero-rate y values and a
// day count convention in its metadata; violations are reported eagerly
// here, never deferred to a computation call.
func New(ccy currency.Currency, valuationDate time.Time, crv curve.Curve) (*ZeroRateDiscountFactors, error) {
	if crv == nil {
		return nil, ErrNilCurve
	}
	meta := crv.Metadata()
	if meta.XValueType != curve.YearFraction {
		return nil, fmt.Errorf("curve %q: %w, got %s", meta.Name, ErrXValueType, meta.XValueType)
	}
	if meta.YValueType != curve.ZeroRate {
		return nil, fmt.Errorf("curve %q: %w, got %s", meta.Name, ErrYValueType, meta.YValueType)
	}
	if meta.DayCount == "" {
		return nil, fmt.Errorf("curve %q: %w", meta.Name, ErrNoDayCount)
	}
	return &ZeroRateDiscountFactors{ccy: ccy, valuationDate: valuationDate, crv: crv}, nil
}

// Currency returns the currency the discount factors apply to.
func (d *ZeroRateDiscountFactors) Currency() currency.Currency {
	return d.ccy
}

// ValuationDate returns the date discount factors are measured from.
func (d *ZeroRateDiscountFactors) ValuationDate() time.Time {
	return d.valuationDate
}

// Curve returns the wrapped zero curve.
func (d *ZeroRateDiscountFactors) Curve() curve.Curve {
	return d.crv
}

// CurveName returns the name of the wrapped curve.
func (d *ZeroRateDiscountFactors) CurveName() string {
	return d.crv.Name()
}

// ParameterCount returns the node count of the wrapped curve.
func (d *ZeroRateDiscountFactors) ParameterCount() int {
	return d.crv.ParameterCount()
}

// WithCurve revalidates and returns a new engine sharing the currency and
// valuation date but wrapping the replacement curve.
func (d *ZeroRateDiscountFactors) WithCurve(crv curve.Curve) (*ZeroRateDiscountFactors, error) {
	return New(d.ccy, d.valuationDate, crv)
}

// ApplyPerturbation calls fn once on the wrapped curve and returns a new
// engine bound to the replacement. The original engine and curve are
// unchanged.
func (d *ZeroRateDiscountFactors) ApplyPerturbation(fn func(curve.Curve) curve.Curve) (*ZeroRateDiscountFactors, error) {
	return d.WithCurve(fn(d.crv))
}

// relativeYearFraction converts a date to curve time using the curve's day
// count. Dates before the valuation date yield negative year fractions.
func (d *ZeroRateDiscountFactors) relativeYearFraction(date time.Time) float64 {
	return d.crv.Metadata().DayCount.RelativeYearFraction(d.valuationDate, date)
}

// DiscountFactor returns the discount factor for the given date,
// exp(-z*t) for the curve zero rate z at year fraction t.
func (d *ZeroRateDiscountFactors) DiscountFactor(date time.Time) float64 {
	t := d.relativeYearFraction(date)
	return math.Exp(-d.crv.Value(t) * t)
}

// DiscountFactorWithSpread returns the discount factor for the given date
// adjusted by a constant spread applied in the requested compounding space.
//
// A zero-length period always yields 1 regardless of spread or mode. For
// Periodic compounding periodsPerYear must be at least 1; it is ignored for
// Continuous.
func (d *ZeroRateDiscountFactors) DiscountFactorWithSpread(
	date time.Time, spread float64, comp Compounding, periodsPerYear int) (float64, error) {

	t := d.relativeYearFraction(date)
	if math.Abs(t) < effectiveZero {
		return 1, nil
	}
	switch comp {
	case Periodic:
		if periodsPerYear < 1 {
			return 0, fmt.Errorf("%w, got %d", ErrPeriodsPerYear, periodsPerYear)
		}
		df := d.DiscountFactor(date)
		rate := PeriodicRateFromDiscountFactor(df, periodsPerYear, t)
		return DiscountFactorFromPeriodicRate(rate+spread, periodsPerYear, t), nil
	default:
		return math.Exp(-(d.crv.Value(t) + spread) * t), nil
	}
}

// ZeroRatePointSensitivity returns the derivative of the discount factor
// with respect to the zero rate observed for the given date, -df*t,
// expressed in the engine's own currency. Use WithCurrency on the result to
// re-tag it, e.g. after an FX conversion.
func (d *ZeroRateDiscountFactors) ZeroRatePointSensitivity(date time.Time) PointSensitivity {
	t := d.relativeYearFraction(date)
	df := math.Exp(-d.crv.Value(t) * t)
	return PointSensitivity{
		Currency:      d.ccy,
		CurveCurrency: d.ccy,
		Date:          date,
		Value:         -df * t,
	}
}

// ZeroRatePointSensitivityWithSpread returns the derivative of the
// spread-adjusted discount factor with respect to the zero rate.
//
// The derivative is computed analytically in both compounding modes; the
// spread itself does not depend on the zero rate, so in periodic mode only
// the rate-conversion chain contributes. A zero-length period yields a
// sensitivity of -0.0 regardless of spread or mode.
func (d *ZeroRateDiscountFactors) ZeroRatePointSensitivityWithSpread(
	date time.Time, spread float64, comp Compounding, periodsPerYear int) (PointSensitivity, error) {

	t := d.relativeYearFraction(date)
	sens := PointSensitivity{Currency: d.ccy, CurveCurrency: d.ccy, Date: date}
	if math.Abs(t) < effectiveZero {
		sens.Value = math.Copysign(0, -1)
		return sens, nil
	}
	switch comp {
	case Periodic:
		if periodsPerYear < 1 {
			return PointSensitivity{}, fmt.Errorf("%w, got %d", ErrPeriodsPerYear, periodsPerYear)
		}
		n := float64(periodsPerYear)
		ratePerPeriod := math.Exp(d.crv.Value(t) / n)
		sens.Value = -t * ratePerPeriod * math.Pow(ratePerPeriod+spread/n, -n*t-1)
	default:
		dfSpread := math.Exp(-(d.crv.Value(t) + spread) * t)
		sens.Value = -dfSpread * t
	}
	return sens, nil
}

// UnitParameterSensitivity returns the curve's raw node sensitivities at
// the given date, unscaled by any point-sensitivity magnitude.
func (d *ZeroRateDiscountFactors) UnitParameterSensitivity(date time.Time) curve.UnitParameterSensitivity {
	t := d.relativeYearFraction(date)
	return curve.UnitParameterSensitivity{
		CurveName:   d.crv.Name(),
		Sensitivity: d.crv.NodeSensitivity(t),
	}
}

// ParameterSensitivity converts a point sensitivity into a per-node
// parameter sensitivity by the chain rule: the curve's unit sensitivity
// vector at the point's date, scaled by the point's value, keyed by the
// curve name and the point's sensitivity currency.
func (d *ZeroRateDiscountFactors) ParameterSensitivity(point PointSensitivity) (curve.ParameterSensitivities, error) {
	t := d.relativeYearFraction(point.Date)
	unit := d.crv.NodeSensitivity(t)
	scaled := make([]float64, len(unit))
	for i, u := range unit {
		scaled[i] = u * point.Value
	}
	return curve.NewParameterSensitivities(curve.ParameterSensitivity{
		CurveName:   d.crv.Name(),
		Currency:    point.Currency,
		Sensitivity: scaled,
	})
}
