package features

import (
	"fmt"
	"math"

	"tradify-bot/internal/ta"
	"tradify-bot/internal/types"
)

// MinHistory is the longest indicator lookback; shorter series cannot
// produce a complete vector.
const MinHistory = 200

// noLevelDistance is the sentinel pip distance reported when no level
// of a kind was detected in the window.
const noLevelDistance = 1e4

// ErrShortHistory is returned when the bar series cannot cover the
// longest indicator lookback.
var ErrShortHistory = fmt.Errorf("not enough bars for feature window (need %d)", MinHistory)

// Names documents the fixed feature ordering; it is part of the scoring
// artifact's training contract and must not be reordered.
var Names = []string{
	"rsi_14",
	"macd_line",
	"macd_signal",
	"macd_hist",
	"sma50_gap_pips",
	"sma200_gap_pips",
	"support_dist_pips",
	"resistance_dist_pips",
	"last_body_dir",
	"close_range_pos",
}

// Dim is the scoring function's expected input length.
var Dim = len(Names)

// Build assembles the feature vector for the latest bar from the
// indicator state and level proximity. The vector is consumed once by
// the scorer and discarded.
func Build(bars []types.PriceBar, lvls []types.Level) (types.FeatureVector, error) {
	if len(bars) < MinHistory {
		return nil, ErrShortHistory
	}
	last := bars[len(bars)-1]
	pip := types.PipSize(last.Symbol)

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	macdLine, macdSig, macdHist := ta.MACD(closes, 12, 26, 9)

	v := make(types.FeatureVector, 0, Dim)
	v = append(v, ta.RSI(closes, 14))
	v = append(v, macdLine, macdSig, macdHist)
	v = append(v, (last.Close-ta.SMA(closes, 50))/pip)
	v = append(v, (last.Close-ta.SMA(closes, 200))/pip)
	v = append(v, nearestDistance(lvls, types.Support, last.Close, pip))
	v = append(v, nearestDistance(lvls, types.Resistance, last.Close, pip))
	v = append(v, bodyDirection(last))
	v = append(v, closeRangePosition(last))
	return v, nil
}

// nearestDistance returns the pip distance from price to the closest
// level of the given kind, or the sentinel when none exists.
func nearestDistance(lvls []types.Level, kind types.LevelKind, price, pip float64) float64 {
	best := math.Inf(1)
	for _, l := range lvls {
		if l.Kind != kind {
			continue
		}
		if d := math.Abs(price-l.Price) / pip; d < best {
			best = d
		}
	}
	if math.IsInf(best, 1) {
		return noLevelDistance
	}
	return best
}

func bodyDirection(b types.PriceBar) float64 {
	switch {
	case b.Bullish():
		return 1
	case b.Bearish():
		return -1
	}
	return 0
}

// closeRangePosition encodes where the close sits inside the bar's
// high-low range, 0 at the low and 1 at the high.
func closeRangePosition(b types.PriceBar) float64 {
	rng := b.High - b.Low
	if rng == 0 {
		return 0.5
	}
	return (b.Close - b.Low) / rng
}
