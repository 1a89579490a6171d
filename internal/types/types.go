package types

import "time"

// PriceBar is one OHLC bar of fixed granularity, immutable once produced
// by the market data source. Sequences are ordered by ascending Ts.
type PriceBar struct {
	Ts                     int64
	Open, High, Low, Close float64
	Symbol                 string
}

// Time returns the bar timestamp as a time.Time.
func (b PriceBar) Time() time.Time { return time.Unix(b.Ts, 0).UTC() }

// Bullish reports whether the bar closed above its open.
func (b PriceBar) Bullish() bool { return b.Close > b.Open }

// Bearish reports whether the bar closed below its open.
func (b PriceBar) Bearish() bool { return b.Close < b.Open }

// LevelKind classifies a support/resistance level.
type LevelKind string

const (
	Support    LevelKind = "support"
	Resistance LevelKind = "resistance"
)

// Level is a support or resistance price derived from local extrema.
// Levels are recomputed from the latest bar window every cycle and never
// persisted across cycles.
type Level struct {
	Price float64
	Kind  LevelKind
	Ts    int64
}

// Direction is a candle or signal direction.
type Direction string

const (
	DirNone    Direction = ""
	DirBullish Direction = "bullish"
	DirBearish Direction = "bearish"
)

// PatternKind identifies a detected candle pattern.
type PatternKind string

const (
	BullishEngulfing   PatternKind = "bullish_engulfing"
	BearishEngulfing   PatternKind = "bearish_engulfing"
	ConsecutiveBullish PatternKind = "consecutive_bullish"
	ConsecutiveBearish PatternKind = "consecutive_bearish"
)

// PatternHit records a pattern detected at a bar index.
type PatternHit struct {
	Kind  PatternKind
	Index int
}

// FeatureVector is the fixed-length input to the scoring function.
// Ordering is part of the training contract; see features.Names.
type FeatureVector []float64

// TradeSignal is a qualifying (instrument, level) candidate produced by
// the aggregator before the final action is selected.
type TradeSignal struct {
	Symbol     string
	Direction  Direction
	Level      Level
	Confidence float64
}

// Side is a broker order side.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Opposite returns the opposing order side, used when flattening
// an open position.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// ActionKind tags the TradingAction variant.
type ActionKind string

const (
	ActionNone          ActionKind = "none"
	ActionOpenPositions ActionKind = "open_positions"
	ActionCloseAll      ActionKind = "close_all"
)

// TradingAction is the single decision a cycle produces. It is a tagged
// variant: exactly one of the constructors below is used, and consumers
// switch on Kind.
type TradingAction struct {
	Kind      ActionKind `json:"kind"`
	Symbols   []string   `json:"symbols,omitempty"`
	Direction Side       `json:"direction,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// NoAction is the idle decision.
func NoAction() TradingAction { return TradingAction{Kind: ActionNone} }

// OpenPositions opens a market position per symbol in the given direction.
func OpenPositions(symbols []string, dir Side, reason string) TradingAction {
	return TradingAction{Kind: ActionOpenPositions, Symbols: symbols, Direction: dir, Reason: reason}
}

// CloseAll flattens every open position at the broker.
func CloseAll(reason string) TradingAction {
	return TradingAction{Kind: ActionCloseAll, Reason: reason}
}

// OpenPosition is a position as reported by the broker. The broker's
// position set is authoritative; the engine keeps no ledger of its own.
type OpenPosition struct {
	Ticket     string
	Symbol     string
	Direction  Side
	Volume     float64
	EntryPrice float64
	Profit     float64
}

// NewsEvent is one scheduled high-impact calendar entry. Only the
// clock time matters; the calendar publishes same-day times.
type NewsEvent struct {
	Time     string `json:"time"` // "15:04" wall clock
	Currency string `json:"currency"`
	Title    string `json:"title"`
}

// OrderRequest is a market order submitted to the broker.
type OrderRequest struct {
	ClientID string
	Symbol   string
	Side     Side
	Volume   float64
	Ticket   string // set when closing an existing position
	Comment  string
}

// OrderResult is the per-order outcome of a batch. Order failures are
// independent: one failed order never aborts the rest of the batch.
type OrderResult struct {
	Symbol      string  `json:"symbol"`
	Side        Side    `json:"side"`
	Volume      float64 `json:"volume"`
	OrderID     string  `json:"order_id,omitempty"`
	FilledPrice float64 `json:"filled_price,omitempty"`
	Retcode     int     `json:"retcode"`
	Err         string  `json:"error,omitempty"`
}

// OK reports whether the order was accepted and filled.
func (r OrderResult) OK() bool { return r.Err == "" }

// CycleResult summarizes one scheduler pass for logging and the
// status endpoint.
type CycleResult struct {
	Action  TradingAction `json:"action"`
	Signals []TradeSignal `json:"signals,omitempty"`
	Orders  []OrderResult `json:"orders,omitempty"`
	Time    int64         `json:"time"`
}
