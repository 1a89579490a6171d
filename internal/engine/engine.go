package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"tradify-bot/internal/broker/mt5"
	"tradify-bot/internal/features"
	"tradify-bot/internal/interfaces"
	"tradify-bot/internal/levels"
	"tradify-bot/internal/logger"
	"tradify-bot/internal/news"
	"tradify-bot/internal/patterns"
	"tradify-bot/internal/session"
	"tradify-bot/internal/store"
	"tradify-bot/internal/tradelog"
	"tradify-bot/internal/types"
)

// proximityPips is how close (in pip-units) the latest close must sit
// to a level before the candidate is considered at all.
const proximityPips = 5.0

// Engine is the signal aggregator plus execution reconciler: one call
// to RunOneCycle turns the latest price history into exactly one
// TradingAction and applies it against the broker. Given identical bars,
// cached news and scorer output the produced action is identical; the
// only mutable state is the news cache and the last-action record.
type Engine struct {
	cfg      *store.Config
	settings *store.Settings
	brk      interfaces.Broker
	scorer   interfaces.Scorer
	gate     *news.Gate

	now func() time.Time

	mu   sync.RWMutex
	last types.TradingAction
}

var _ interfaces.Engine = (*Engine)(nil)

// New creates the engine. Symbols are scanned in the order configured
// in cfg.Symbols; that order is part of the decision contract, since
// the first qualifying candidate wins.
func New(cfg *store.Config, settings *store.Settings, brk interfaces.Broker, sc interfaces.Scorer, gate *news.Gate) *Engine {
	return &Engine{
		cfg:      cfg,
		settings: settings,
		brk:      brk,
		scorer:   sc,
		gate:     gate,
		now:      time.Now,
		last:     types.NoAction(),
	}
}

// WithClock replaces the wall clock, for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// LastAction returns the most recent cycle's action.
func (e *Engine) LastAction() types.TradingAction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last
}

func (e *Engine) record(a types.TradingAction) {
	e.mu.Lock()
	e.last = a
	e.mu.Unlock()
}

// RunOneCycle runs one full decision pass and applies the result.
func (e *Engine) RunOneCycle(ctx context.Context) (*types.CycleResult, error) {
	now := e.now().In(session.Zone)
	result := &types.CycleResult{Time: now.Unix()}

	blackout, newsErr := e.gate.IsBlackout(ctx, now)
	if newsErr != nil {
		// Degraded mode: the blackout verdict comes from the retained
		// cache. Never silently drop the filter.
		logger.Warn(ctx, "News feed unavailable, using last cached events", "error", newsErr)
	}
	if blackout {
		action := types.CloseAll("news_event")
		return e.finish(ctx, result, action)
	}

	if !session.WithinTradingHours(now) {
		logger.Debug(ctx, "Outside trading hours", "now", now.Format("15:04"))
		action := types.NoAction()
		return e.finish(ctx, result, action)
	}

	signals, err := e.collectSignals(ctx)
	if err != nil {
		return nil, err
	}
	result.Signals = signals

	if len(signals) == 0 {
		return e.finish(ctx, result, types.NoAction())
	}

	// First qualifying candidate wins; cfg.Symbols order is the
	// documented tie-break.
	first := signals[0]
	action := types.OpenPositions(
		e.cfg.CorrelatedSet,
		e.tradeDirection(first),
		fmt.Sprintf("%s_signal", first.Symbol),
	)
	return e.finish(ctx, result, action)
}

// tradeDirection maps a signal to an order side. Signals on the
// reference index are inverted: dollar strength sells the correlated
// pairs and dollar weakness buys them. Other signals trade their own
// direction.
func (e *Engine) tradeDirection(sig types.TradeSignal) types.Side {
	if sig.Symbol == e.cfg.IndexSymbol {
		if sig.Direction == types.DirBullish {
			return types.Sell
		}
		return types.Buy
	}
	if sig.Direction == types.DirBullish {
		return types.Buy
	}
	return types.Sell
}

// collectSignals scans every instrument in configured order and
// returns all qualifying candidates. Per-instrument data problems skip
// that instrument; a lost broker connection aborts the cycle.
func (e *Engine) collectSignals(ctx context.Context) ([]types.TradeSignal, error) {
	threshold := e.settings.Snapshot().MLThreshold

	var signals []types.TradeSignal
	for _, symbol := range e.cfg.Symbols {
		bars, err := e.brk.PriceBars(ctx, symbol, e.cfg.BarCount)
		if err != nil {
			if errors.Is(err, mt5.ErrConnectionLost) {
				return nil, err
			}
			logger.Warn(ctx, "Skipping instrument, no price data", "symbol", symbol, "error", err)
			continue
		}
		if len(bars) < features.MinHistory {
			logger.Warn(ctx, "Skipping instrument, short history",
				"symbol", symbol, "bars", len(bars), "required", features.MinHistory)
			continue
		}

		sigs, err := e.instrumentSignals(ctx, symbol, bars, threshold)
		if err != nil {
			logger.ErrorWithErr(ctx, "Instrument scan failed", err, "symbol", symbol)
			continue
		}
		signals = append(signals, sigs...)
	}
	return signals, nil
}

// instrumentSignals evaluates one instrument: levels near the latest
// close that coincide with a last-bar pattern are scored, and those
// clearing the confidence threshold become candidates.
func (e *Engine) instrumentSignals(ctx context.Context, symbol string, bars []types.PriceBar, threshold float64) ([]types.TradeSignal, error) {
	lvls := levels.Detect(bars)
	if len(lvls) == 0 {
		return nil, nil
	}
	hits := patterns.LastBar(bars)
	if len(hits) == 0 {
		return nil, nil
	}

	last := bars[len(bars)-1]
	pip := types.PipSize(symbol)

	var feats types.FeatureVector
	var signals []types.TradeSignal
	for _, lvl := range lvls {
		if math.Abs(last.Close-lvl.Price) > proximityPips*pip {
			continue
		}

		if feats == nil {
			var err error
			feats, err = features.Build(bars, lvls)
			if err != nil {
				return nil, err
			}
		}

		confidence, err := e.scorer.Score(ctx, feats)
		if err != nil {
			// Scoring failure aborts the candidate, not the cycle.
			logger.ErrorWithErr(ctx, "Scoring failed, dropping candidate", err,
				"symbol", symbol, "level", lvl.Price, "model", e.scorer.Version())
			continue
		}
		if confidence < threshold {
			continue
		}

		dir := types.DirBullish
		if lvl.Kind == types.Resistance {
			dir = types.DirBearish
		}
		signals = append(signals, types.TradeSignal{
			Symbol:     symbol,
			Direction:  dir,
			Level:      lvl,
			Confidence: confidence,
		})
	}
	return signals, nil
}

// finish applies the action, records it and journals the cycle.
func (e *Engine) finish(ctx context.Context, result *types.CycleResult, action types.TradingAction) (*types.CycleResult, error) {
	orders, err := e.Apply(ctx, action)
	result.Orders = orders
	result.Action = action
	e.record(action)

	logger.Decision(ctx, string(action.Kind), string(action.Direction), action.Reason,
		"symbols", action.Symbols, "orders", len(orders))
	if logErr := tradelog.AppendDecision(action, len(result.Signals)); logErr != nil {
		logger.Warn(ctx, "Failed to journal decision", "error", logErr)
	}
	return result, err
}
