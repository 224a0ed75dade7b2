package currency

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 currency code.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	KRW Currency = "KRW"
	CHF Currency = "CHF"
	AUD Currency = "AUD"
)

// Of parses a currency code, accepting lower case input.
func Of(code string) (Currency, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", fmt.Errorf("invalid currency code %q", code)
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("invalid currency code %q", code)
		}
	}
	return Currency(c), nil
}

func (c Currency) String() string {
	return string(c)
}
