package daycount

import (
	"fmt"
	"strings"
	"time"
)

// Convention is a day count convention used to convert date pairs into
// year fractions.
//
// Supported conventions: ACT/360, ACT/365F, 30/360, 30E/360.
type Convention string

const (
	Act360     Convention = "ACT/360"
	Act365F    Convention = "ACT/365F"
	Thirty360  Convention = "30/360"
	ThirtyE360 Convention = "30E/360"
)

// Of parses a day count convention name, accepting lower case input.
func Of(name string) (Convention, error) {
	switch Convention(strings.ToUpper(strings.TrimSpace(name))) {
	case Act360:
		return Act360, nil
	case Act365F:
		return Act365F, nil
	case Thirty360:
		return Thirty360, nil
	case ThirtyE360:
		return ThirtyE360, nil
	default:
		return "", fmt.Errorf("unknown day count convention %q", name)
	}
}

// RelativeYearFraction computes the signed year fraction from start to end.
// The result is negative when end precedes start.
func (c Convention) RelativeYearFraction(start, end time.Time) float64 {
	switch c {
	case Act360:
		return days(start, end) / 360.0
	case Act365F:
		return days(start, end) / 365.0
	case Thirty360, ThirtyE360:
		// 30E/360 ISDA (Eurobond basis): D1 and D2 are capped at 30.
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return days(start, end) / 365.0
	}
}

func days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}
