package types

import (
	"math"
	"testing"
)

func TestInstrumentClassification(t *testing.T) {
	if !IsIndex("DXY") || !IsIndex("USDXY") {
		t.Error("Expected DXY-style symbols to classify as index")
	}
	if IsIndex("EURUSD") || IsIndex("GBPUSD") {
		t.Error("Expected currency pairs not to classify as index")
	}
}

func TestInstrumentPrecision(t *testing.T) {
	if got := Digits("EURUSD"); got != 5 {
		t.Errorf("Expected 5 digits for a currency pair, got %d", got)
	}
	if got := Digits("DXY"); got != 3 {
		t.Errorf("Expected 3 digits for an index, got %d", got)
	}
	if got := PipSize("EURUSD"); got != 0.0001 {
		t.Errorf("Expected pip 0.0001 for a currency pair, got %v", got)
	}
	if got := PipSize("DXY"); got != 0.001 {
		t.Errorf("Expected pip 0.001 for an index, got %v", got)
	}
}

func TestRoundPrice(t *testing.T) {
	if got := RoundPrice("EURUSD", 1.100034999); math.Abs(got-1.10003) > 1e-9 {
		t.Errorf("Expected 1.10003, got %v", got)
	}
	if got := RoundPrice("EURUSD", 1.100035001); math.Abs(got-1.10004) > 1e-9 {
		t.Errorf("Expected 1.10004, got %v", got)
	}
	if got := RoundPrice("DXY", 104.1004); math.Abs(got-104.100) > 1e-9 {
		t.Errorf("Expected 104.100, got %v", got)
	}
}

func TestSideOpposite(t *testing.T) {
	if Buy.Opposite() != Sell || Sell.Opposite() != Buy {
		t.Error("Expected buy and sell to be mutual opposites")
	}
}

func TestTradingActionConstructors(t *testing.T) {
	if a := NoAction(); a.Kind != ActionNone {
		t.Errorf("Expected none kind, got %s", a.Kind)
	}

	a := OpenPositions([]string{"EURUSD", "GBPUSD"}, Buy, "EURUSD_signal")
	if a.Kind != ActionOpenPositions || a.Direction != Buy || len(a.Symbols) != 2 {
		t.Errorf("Unexpected open action: %+v", a)
	}

	c := CloseAll("news_event")
	if c.Kind != ActionCloseAll || c.Reason != "news_event" {
		t.Errorf("Unexpected close action: %+v", c)
	}
	if len(c.Symbols) != 0 {
		t.Errorf("Expected close_all to carry no symbols, got %v", c.Symbols)
	}
}

func TestPriceBarDirection(t *testing.T) {
	up := PriceBar{Open: 1.1, Close: 1.2}
	down := PriceBar{Open: 1.2, Close: 1.1}
	flat := PriceBar{Open: 1.1, Close: 1.1}

	if !up.Bullish() || up.Bearish() {
		t.Error("Expected an up bar to be bullish only")
	}
	if !down.Bearish() || down.Bullish() {
		t.Error("Expected a down bar to be bearish only")
	}
	if flat.Bullish() || flat.Bearish() {
		t.Error("Expected a flat bar to be neither")
	}
}
