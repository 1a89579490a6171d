package levels

import (
	"math"

	"tradify-bot/internal/types"
)

// Detect finds local support/resistance extrema in an ordered bar series
// and keeps only round-number levels. A bar at interior index i is a
// support when its low undercuts both neighbours and a resistance when
// its high exceeds both; one bar can yield both. The first two and last
// two bars are never classified. Output preserves bar order.
func Detect(bars []types.PriceBar) []types.Level {
	var out []types.Level
	for i := 2; i <= len(bars)-3; i++ {
		if bars[i].Low < bars[i-1].Low && bars[i].Low < bars[i+1].Low {
			if lv, ok := roundLevel(bars[i], bars[i].Low, types.Support); ok {
				out = append(out, lv)
			}
		}
		if bars[i].High > bars[i-1].High && bars[i].High > bars[i+1].High {
			if lv, ok := roundLevel(bars[i], bars[i].High, types.Resistance); ok {
				out = append(out, lv)
			}
		}
	}
	return out
}

// roundLevel rounds the extreme to the instrument's precision and keeps
// it only when the least-significant retained digit is zero, i.e. the
// price sits on a whole pip multiple.
func roundLevel(bar types.PriceBar, price float64, kind types.LevelKind) (types.Level, bool) {
	rounded := types.RoundPrice(bar.Symbol, price)
	scaled := math.Round(rounded * math.Pow(10, float64(types.Digits(bar.Symbol))))
	if math.Mod(scaled, 10) != 0 {
		return types.Level{}, false
	}
	return types.Level{Price: rounded, Kind: kind, Ts: bar.Ts}, true
}
