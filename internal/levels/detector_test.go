package levels

import (
	"testing"

	"tradify-bot/internal/types"
)

// flatBars returns n identical bars; no extrema anywhere.
func flatBars(n int, price float64) []types.PriceBar {
	bars := make([]types.PriceBar, n)
	for i := range bars {
		bars[i] = types.PriceBar{
			Ts: int64(i * 900), Symbol: "EURUSD",
			Open: price, High: price + 0.0002, Low: price - 0.0002, Close: price,
		}
	}
	return bars
}

func TestDetectSingleSupport(t *testing.T) {
	bars := flatBars(9, 1.1005)
	// Dip at index 4 to a round-pip price.
	bars[4].Low = 1.1000

	lvls := Detect(bars)
	if len(lvls) != 1 {
		t.Fatalf("Expected exactly one level, got %d", len(lvls))
	}
	if lvls[0].Kind != types.Support {
		t.Errorf("Expected a support, got %s", lvls[0].Kind)
	}
	if lvls[0].Price != 1.1000 {
		t.Errorf("Expected level price 1.1000, got %v", lvls[0].Price)
	}
	if lvls[0].Ts != bars[4].Ts {
		t.Errorf("Expected level timestamp from bar 4, got %d", lvls[0].Ts)
	}
}

func TestDetectSingleResistance(t *testing.T) {
	bars := flatBars(9, 1.1005)
	bars[4].High = 1.1010

	lvls := Detect(bars)
	if len(lvls) != 1 {
		t.Fatalf("Expected exactly one level, got %d", len(lvls))
	}
	if lvls[0].Kind != types.Resistance {
		t.Errorf("Expected a resistance, got %s", lvls[0].Kind)
	}
}

func TestDetectSkipsBoundaryBars(t *testing.T) {
	// Extrema in the first two and last two bars must never classify.
	for _, idx := range []int{0, 1, 7, 8} {
		bars := flatBars(9, 1.1005)
		bars[idx].Low = 1.1000
		bars[idx].High = 1.1010
		if lvls := Detect(bars); len(lvls) != 0 {
			t.Errorf("Expected no levels for extreme at boundary index %d, got %d", idx, len(lvls))
		}
	}
}

func TestDetectRejectsNonRoundLevels(t *testing.T) {
	bars := flatBars(9, 1.1005)
	// 1.10037 rounds to 1.10037 at 5 digits; last digit 7 is not a pip multiple.
	bars[4].Low = 1.10037

	if lvls := Detect(bars); len(lvls) != 0 {
		t.Errorf("Expected non-round level to be filtered, got %d levels", len(lvls))
	}
}

func TestDetectIndexPrecision(t *testing.T) {
	// Index symbols round to 3 digits; 104.100 is a pip multiple there.
	bars := flatBars(9, 104.25)
	for i := range bars {
		bars[i].Symbol = "DXY"
		bars[i].High = 104.3
		bars[i].Low = 104.2
	}
	bars[4].Low = 104.100

	lvls := Detect(bars)
	if len(lvls) != 1 {
		t.Fatalf("Expected one index support, got %d", len(lvls))
	}
	if lvls[0].Price != 104.100 {
		t.Errorf("Expected 104.100, got %v", lvls[0].Price)
	}
}

func TestDetectBothKindsSameBar(t *testing.T) {
	bars := flatBars(9, 1.1005)
	bars[4].Low = 1.1000
	bars[4].High = 1.1010

	lvls := Detect(bars)
	if len(lvls) != 2 {
		t.Fatalf("Expected one support and one resistance, got %d levels", len(lvls))
	}
	if lvls[0].Kind != types.Support || lvls[1].Kind != types.Resistance {
		t.Errorf("Expected [support resistance], got [%s %s]", lvls[0].Kind, lvls[1].Kind)
	}
}

func TestDetectShortSeries(t *testing.T) {
	if lvls := Detect(flatBars(4, 1.1)); lvls != nil {
		t.Errorf("Expected nil for a series too short to classify, got %v", lvls)
	}
}
