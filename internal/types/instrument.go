package types

import (
	"math"
	"strings"
)

// IsIndex reports whether the symbol is an index-style instrument
// (dollar-strength proxy) rather than a currency pair.
func IsIndex(symbol string) bool {
	return strings.Contains(symbol, "DXY")
}

// Digits returns the canonical quote precision for the instrument:
// 3 decimals for index-style instruments, 5 for currency pairs.
func Digits(symbol string) int {
	if IsIndex(symbol) {
		return 3
	}
	return 5
}

// PipSize returns the smallest standard price increment for the
// instrument, used for rounding and proximity thresholds.
func PipSize(symbol string) float64 {
	if IsIndex(symbol) {
		return 0.001
	}
	return 0.0001
}

// RoundPrice rounds a price to the instrument's canonical precision.
// Level prices are always rounded this way before comparison.
func RoundPrice(symbol string, price float64) float64 {
	pow := math.Pow(10, float64(Digits(symbol)))
	return math.Round(price*pow) / pow
}
