package patterns

import "tradify-bot/internal/types"

// Engulfing classifies the candle at index against its predecessor.
// Bullish: an up candle whose body fully contains the prior down
// candle's body; bearish is the mirror. Index 0 (or a negative index)
// has no predecessor and never matches.
func Engulfing(bars []types.PriceBar, index int) types.Direction {
	if index < 1 || index >= len(bars) {
		return types.DirNone
	}
	prev, cur := bars[index-1], bars[index]

	if cur.Bullish() && prev.Bearish() &&
		cur.Open < prev.Close && cur.Close > prev.Open {
		return types.DirBullish
	}
	if cur.Bearish() && prev.Bullish() &&
		cur.Open > prev.Close && cur.Close < prev.Open {
		return types.DirBearish
	}
	return types.DirNone
}

// Consecutive reports whether the candle at index and the one before it
// both closed in the given direction.
func Consecutive(bars []types.PriceBar, index int, dir types.Direction) bool {
	if index < 1 || index >= len(bars) {
		return false
	}
	prev, cur := bars[index-1], bars[index]
	if dir == types.DirBullish {
		return cur.Bullish() && prev.Bullish()
	}
	return cur.Bearish() && prev.Bearish()
}

// LastBar collects every pattern hit on the final bar of the series.
func LastBar(bars []types.PriceBar) []types.PatternHit {
	i := len(bars) - 1
	var hits []types.PatternHit
	switch Engulfing(bars, i) {
	case types.DirBullish:
		hits = append(hits, types.PatternHit{Kind: types.BullishEngulfing, Index: i})
	case types.DirBearish:
		hits = append(hits, types.PatternHit{Kind: types.BearishEngulfing, Index: i})
	}
	if Consecutive(bars, i, types.DirBullish) {
		hits = append(hits, types.PatternHit{Kind: types.ConsecutiveBullish, Index: i})
	}
	if Consecutive(bars, i, types.DirBearish) {
		hits = append(hits, types.PatternHit{Kind: types.ConsecutiveBearish, Index: i})
	}
	return hits
}
