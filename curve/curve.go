// Package curve defines the curve abstraction consumed by the discounting
// engine: an immutable mapping from an x value to a y value with metadata
// describing the meaning of each axis, plus per-node sensitivities used for
// parameter risk.
package curve

import (
	"github.com/quantfn/rateslib/daycount"
)

// ValueType tags the semantic meaning of a curve axis.
type ValueType string

const (
	// YearFraction indicates x values measured as year fractions from the
	// valuation date.
	YearFraction ValueType = "YearFraction"
	// ZeroRate indicates continuously compounded zero rates.
	ZeroRate ValueType = "ZeroRate"
	// DiscountFactor indicates discount factor values.
	DiscountFactor ValueType = "DiscountFactor"
	// Price indicates price values (e.g. inflation index levels).
	Price ValueType = "Price"
)

// Metadata describes a curve's axes and day count convention.
//
// DayCount is empty when the curve carries no day count.
type Metadata struct {
	Name       string
	XValueType ValueType
	YValueType ValueType
	DayCount   daycount.Convention
}

// Curve is an immutable calibrated curve.
//
// Implementations must be safe for concurrent use; every method is a pure
// function of the receiver.
type Curve interface {
	// Metadata returns the curve's metadata.
	Metadata() Metadata
	// Name returns the curve name from the metadata.
	Name() string
	// ParameterCount returns the number of calibration nodes.
	ParameterCount() int
	// Value returns the y value for the given x value.
	Value(x float64) float64
	// NodeSensitivity returns the partial derivatives of Value(x) with
	// respect to each of the ParameterCount node parameters.
	NodeSensitivity(x float64) []float64
}
