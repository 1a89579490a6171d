package ta

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	if got := SMA(closes, 5); got != 3 {
		t.Errorf("Expected SMA 3, got %v", got)
	}
	if got := SMA(closes, 2); got != 4.5 {
		t.Errorf("Expected SMA 4.5, got %v", got)
	}
	if got := SMA(closes, 6); !math.IsNaN(got) {
		t.Errorf("Expected NaN for short series, got %v", got)
	}
}

func TestRSI(t *testing.T) {
	up := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	if got := RSI(up, 14); got != 100 {
		t.Errorf("Expected RSI 100 for monotone gains, got %v", got)
	}

	down := make([]float64, 15)
	for i := range down {
		down[i] = float64(15 - i)
	}
	if got := RSI(down, 14); got != 0 {
		t.Errorf("Expected RSI 0 for monotone losses, got %v", got)
	}

	mixed := []float64{10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10}
	got := RSI(mixed, 14)
	if got < 40 || got > 60 {
		t.Errorf("Expected RSI near 50 for balanced moves, got %v", got)
	}

	if got := RSI(up[:10], 14); !math.IsNaN(got) {
		t.Errorf("Expected NaN for short series, got %v", got)
	}
}

func TestEMASeries(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	out := EMASeries(vals, 3)
	if len(out) != len(vals) {
		t.Fatalf("Expected output length %d, got %d", len(vals), len(out))
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("Expected NaN below the seed window at %d, got %v", i, out[i])
		}
	}
	if out[2] != 2 {
		t.Errorf("Expected SMA seed 2 at index 2, got %v", out[2])
	}
	// k = 0.5: ema3 = 4*0.5 + 2*0.5 = 3, ema4 = 5*0.5 + 3*0.5 = 4
	if out[3] != 3 || out[4] != 4 {
		t.Errorf("Expected EMA [3 4], got [%v %v]", out[3], out[4])
	}
}

func TestMACDConvergesOnFlatSeries(t *testing.T) {
	flat := make([]float64, 60)
	for i := range flat {
		flat[i] = 1.1
	}
	line, sig, hist := MACD(flat, 12, 26, 9)
	if math.Abs(line) > 1e-9 || math.Abs(sig) > 1e-9 || math.Abs(hist) > 1e-9 {
		t.Errorf("Expected zero MACD on a flat series, got %v %v %v", line, sig, hist)
	}
}

func TestMACDShortSeries(t *testing.T) {
	line, sig, hist := MACD(make([]float64, 10), 12, 26, 9)
	if !math.IsNaN(line) || !math.IsNaN(sig) || !math.IsNaN(hist) {
		t.Errorf("Expected NaN for a series below the slow+signal window, got %v %v %v", line, sig, hist)
	}
}
