package curve

import (
	"fmt"
	"sort"

	"github.com/quantfn/rateslib/currency"
)

// UnitParameterSensitivity holds a curve's raw node sensitivities at one
// evaluation point, unscaled by any point-sensitivity magnitude.
type UnitParameterSensitivity struct {
	CurveName   string
	Sensitivity []float64
}

// ParameterSensitivity is the sensitivity of a value to each calibration
// node of one curve, expressed in one currency.
type ParameterSensitivity struct {
	CurveName   string
	Currency    currency.Currency
	Sensitivity []float64
}

// ParameterSensitivities aggregates node sensitivities keyed by curve name
// and currency. The zero value is an empty, usable aggregation.
//
// The type is immutable: Add and Combine return new aggregations.
type ParameterSensitivities struct {
	entries []ParameterSensitivity
}

// NewParameterSensitivities builds an aggregation from the given entries,
// accumulating entries that share a curve name and currency.
func NewParameterSensitivities(entries ...ParameterSensitivity) (ParameterSensitivities, error) {
	var out ParameterSensitivities
	var err error
	for _, e := range entries {
		out, err = out.Add(e)
		if err != nil {
			return ParameterSensitivities{}, err
		}
	}
	return out, nil
}

// Add merges one entry into the aggregation. Sensitivities for an existing
// (curve name, currency) key accumulate by element-wise addition; the vector
// length must match the existing entry.
func (s ParameterSensitivities) Add(e ParameterSensitivity) (ParameterSensitivities, error) {
	merged := make([]ParameterSensitivity, len(s.entries), len(s.entries)+1)
	copy(merged, s.entries)

	for i, existing := range merged {
		if existing.CurveName != e.CurveName || existing.Currency != e.Currency {
			continue
		}
		if len(existing.Sensitivity) != len(e.Sensitivity) {
			return ParameterSensitivities{}, fmt.Errorf(
				"parameter sensitivity for curve %q %s: vector length mismatch: %d vs %d",
				e.CurveName, e.Currency, len(existing.Sensitivity), len(e.Sensitivity))
		}
		sum := make([]float64, len(existing.Sensitivity))
		for j := range sum {
			sum[j] = existing.Sensitivity[j] + e.Sensitivity[j]
		}
		merged[i] = ParameterSensitivity{CurveName: e.CurveName, Currency: e.Currency, Sensitivity: sum}
		return ParameterSensitivities{entries: merged}, nil
	}

	merged = append(merged, ParameterSensitivity{
		CurveName:   e.CurveName,
		Currency:    e.Currency,
		Sensitivity: append([]float64(nil), e.Sensitivity...),
	})
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CurveName != merged[j].CurveName {
			return merged[i].CurveName < merged[j].CurveName
		}
		return merged[i].Currency < merged[j].Currency
	})
	return ParameterSensitivities{entries: merged}, nil
}

// Combine merges another aggregation into this one.
func (s ParameterSensitivities) Combine(other ParameterSensitivities) (ParameterSensitivities, error) {
	out := s
	var err error
	for _, e := range other.entries {
		out, err = out.Add(e)
		if err != nil {
			return ParameterSensitivities{}, err
		}
	}
	return out, nil
}

// Size returns the number of (curve name, currency) entries.
func (s ParameterSensitivities) Size() int {
	return len(s.entries)
}

// Entries returns the entries ordered by curve name then currency, with
// copied sensitivity vectors.
func (s ParameterSensitivities) Entries() []ParameterSensitivity {
	out := make([]ParameterSensitivity, len(s.entries))
	for i, e := range s.entries {
		out[i] = ParameterSensitivity{
			CurveName:   e.CurveName,
			Currency:    e.Currency,
			Sensitivity: append([]float64(nil), e.Sensitivity...),
		}
	}
	return out
}

// Get returns the sensitivity vector for a (curve name, currency) key.
func (s ParameterSensitivities) Get(name string, ccy currency.Currency) ([]float64, bool) {
	for _, e := range s.entries {
		if e.CurveName == name && e.Currency == ccy {
			return append([]float64(nil), e.Sensitivity...), true
		}
	}
	return nil, false
}
