package engine

import (
	"context"
	"errors"

	"tradify-bot/internal/broker/mt5"
	"tradify-bot/internal/logger"
	"tradify-bot/internal/tradelog"
	"tradify-bot/internal/types"
)

// Apply executes a trading action against the broker and returns the
// per-order outcomes. Orders in a batch are independent: a rejected or
// timed-out order is recorded and the rest of the batch still submits.
// A lost broker connection is reported alongside the results already
// collected so the scheduler can reconnect.
func (e *Engine) Apply(ctx context.Context, action types.TradingAction) ([]types.OrderResult, error) {
	switch action.Kind {
	case types.ActionNone:
		return nil, nil
	case types.ActionOpenPositions:
		return e.openPositions(ctx, action)
	case types.ActionCloseAll:
		return e.closeAll(ctx, action)
	}
	return nil, nil
}

// openPositions submits one market order per target instrument at the
// configured lot size.
func (e *Engine) openPositions(ctx context.Context, action types.TradingAction) ([]types.OrderResult, error) {
	lot := e.settings.Snapshot().LotSize

	var results []types.OrderResult
	var connErr error
	for _, symbol := range action.Symbols {
		req := types.OrderRequest{
			Symbol:  symbol,
			Side:    action.Direction,
			Volume:  lot,
			Comment: action.Reason,
		}
		results = append(results, e.submit(ctx, req, action.Reason, &connErr))
	}
	return results, connErr
}

// closeAll flattens every position the broker reports. The position set
// is re-queried at call time; nothing is derived from earlier cycles.
func (e *Engine) closeAll(ctx context.Context, action types.TradingAction) ([]types.OrderResult, error) {
	positions, err := e.brk.OpenPositions(ctx)
	if err != nil {
		return nil, err
	}

	var results []types.OrderResult
	var connErr error
	for _, pos := range positions {
		req := types.OrderRequest{
			Symbol:  pos.Symbol,
			Side:    pos.Direction.Opposite(),
			Volume:  pos.Volume,
			Ticket:  pos.Ticket,
			Comment: action.Reason,
		}
		results = append(results, e.submit(ctx, req, action.Reason, &connErr))
	}
	return results, connErr
}

// submit sends one order and folds any transport failure into a
// per-order result so the caller's batch keeps going.
func (e *Engine) submit(ctx context.Context, req types.OrderRequest, reason string, connErr *error) types.OrderResult {
	result, err := e.brk.SubmitOrder(ctx, req)
	if err != nil {
		if errors.Is(err, mt5.ErrConnectionLost) && *connErr == nil {
			*connErr = err
		}
		result = types.OrderResult{
			Symbol: req.Symbol,
			Side:   req.Side,
			Volume: req.Volume,
			Err:    err.Error(),
		}
	}

	if result.OK() {
		logger.Trade(ctx, result.Symbol, string(result.Side), result.Volume, result.FilledPrice, result.OrderID, "reason", reason)
	} else {
		logger.Error(ctx, "Order failed", "symbol", result.Symbol, "side", result.Side, "retcode", result.Retcode, "error", result.Err)
	}
	if logErr := tradelog.AppendOrder(result, reason); logErr != nil {
		logger.Warn(ctx, "Failed to journal order", "error", logErr)
	}
	return result
}
