package features

import (
	"math"
	"testing"

	"tradify-bot/internal/types"
)

func series(n int, symbol string) []types.PriceBar {
	bars := make([]types.PriceBar, n)
	price := 1.1000
	for i := range bars {
		// Gentle deterministic oscillation so indicators have movement.
		delta := 0.0004 * math.Sin(float64(i)/7)
		open := price
		close := price + delta
		hi, lo := math.Max(open, close)+0.0002, math.Min(open, close)-0.0002
		bars[i] = types.PriceBar{
			Ts: int64(i * 900), Symbol: symbol,
			Open: open, High: hi, Low: lo, Close: close,
		}
		price = close
	}
	return bars
}

func TestBuildVectorShape(t *testing.T) {
	bars := series(MinHistory+50, "EURUSD")
	lvls := []types.Level{
		{Price: bars[len(bars)-1].Close - 0.0003, Kind: types.Support},
		{Price: bars[len(bars)-1].Close + 0.0004, Kind: types.Resistance},
	}

	v, err := Build(bars, lvls)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(v) != Dim {
		t.Fatalf("Expected %d features, got %d", Dim, len(v))
	}
	if len(Names) != Dim {
		t.Fatalf("Names/Dim mismatch: %d names for dim %d", len(Names), Dim)
	}
	for i, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Errorf("Feature %s is not finite: %v", Names[i], f)
		}
	}

	rsi := v[0]
	if rsi < 0 || rsi > 100 {
		t.Errorf("Expected RSI in [0,100], got %v", rsi)
	}
	if pos := v[Dim-1]; pos < 0 || pos > 1 {
		t.Errorf("Expected close range position in [0,1], got %v", pos)
	}
}

func TestBuildLevelDistances(t *testing.T) {
	bars := series(MinHistory, "EURUSD")
	last := bars[len(bars)-1].Close
	lvls := []types.Level{
		{Price: last - 0.0003, Kind: types.Support},    // 3 pips below
		{Price: last - 0.0050, Kind: types.Support},    // farther, must lose
		{Price: last + 0.0004, Kind: types.Resistance}, // 4 pips above
	}

	v, err := Build(bars, lvls)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if d := v[6]; math.Abs(d-3) > 1e-6 {
		t.Errorf("Expected support distance 3 pips, got %v", d)
	}
	if d := v[7]; math.Abs(d-4) > 1e-6 {
		t.Errorf("Expected resistance distance 4 pips, got %v", d)
	}
}

func TestBuildMissingLevelsUseSentinel(t *testing.T) {
	bars := series(MinHistory, "EURUSD")
	v, err := Build(bars, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if v[6] != noLevelDistance || v[7] != noLevelDistance {
		t.Errorf("Expected sentinel distances with no levels, got %v and %v", v[6], v[7])
	}
}

func TestBuildShortHistory(t *testing.T) {
	bars := series(MinHistory-1, "EURUSD")
	if _, err := Build(bars, nil); err != ErrShortHistory {
		t.Errorf("Expected ErrShortHistory, got %v", err)
	}
}
