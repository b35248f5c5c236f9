package helpers

import "github.com/shopspring/decimal"

// DefaultDecimalPlaces is used for currencies missing from the currency table
const DefaultDecimalPlaces int32 = 2

// FormatAmount renders d with exactly places fractional digits
func FormatAmount(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

// FormatOptionalAmount renders d, or nil when d is nil
func FormatOptionalAmount(d *decimal.Decimal, places int32) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(places)
	return &s
}

// IsMinorUnitPrecise reports whether d needs no more than places fractional digits
func IsMinorUnitPrecise(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// RoundToMinorUnits rounds half away from zero to the currency's minor unit
func RoundToMinorUnits(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// ParseAmount parses a decimal string; empty input is an error
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
