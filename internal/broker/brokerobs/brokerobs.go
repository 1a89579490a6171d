package brokerobs

import (
	"context"

	"tradify-bot/internal/interfaces"
	"tradify-bot/internal/logger"
	"tradify-bot/internal/trace"
	"tradify-bot/internal/types"
)

// observableBroker wraps a Broker with logging and tracing.
type observableBroker struct {
	broker interfaces.Broker
}

var _ interfaces.Broker = (*observableBroker)(nil)

// Wrap decorates a broker with observability middleware.
func Wrap(broker interfaces.Broker) interfaces.Broker {
	return &observableBroker{broker: broker}
}

func (ob *observableBroker) PriceBars(ctx context.Context, symbol string, n int) ([]types.PriceBar, error) {
	ctx, span := trace.StartSpan(ctx, "broker.PriceBars")
	defer span.End()

	bars, err := ob.broker.PriceBars(ctx, symbol, n)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch price bars", err, "symbol", symbol, "count", n)
		return nil, err
	}
	logger.DebugSkip(ctx, 1, "Price bars fetched", "symbol", symbol, "count", len(bars))
	return bars, nil
}

func (ob *observableBroker) SubmitOrder(ctx context.Context, req types.OrderRequest) (types.OrderResult, error) {
	ctx, span := trace.StartSpan(ctx, "broker.SubmitOrder")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Submitting order",
		"symbol", req.Symbol,
		"side", req.Side,
		"volume", req.Volume,
		"ticket", req.Ticket,
	)

	result, err := ob.broker.SubmitOrder(ctx, req)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Order submission failed", err, "symbol", req.Symbol, "side", req.Side)
		return result, err
	}

	if !result.OK() {
		logger.WarnSkip(ctx, 1, "Order rejected",
			"symbol", result.Symbol,
			"retcode", result.Retcode,
			"error", result.Err,
		)
		return result, nil
	}

	logger.InfoSkip(ctx, 1, "Order filled",
		"symbol", result.Symbol,
		"order_id", result.OrderID,
		"filled_price", result.FilledPrice,
	)
	return result, nil
}

func (ob *observableBroker) OpenPositions(ctx context.Context) ([]types.OpenPosition, error) {
	ctx, span := trace.StartSpan(ctx, "broker.OpenPositions")
	defer span.End()

	positions, err := ob.broker.OpenPositions(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch open positions", err)
		return nil, err
	}
	logger.DebugSkip(ctx, 1, "Open positions fetched", "count", len(positions))
	return positions, nil
}

func (ob *observableBroker) Connect(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "broker.Connect")
	defer span.End()

	if err := ob.broker.Connect(ctx); err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Broker connect failed", err)
		return err
	}
	logger.InfoSkip(ctx, 1, "Broker connected")
	return nil
}

func (ob *observableBroker) Shutdown(ctx context.Context) {
	ctx, span := trace.StartSpan(ctx, "broker.Shutdown")
	defer span.End()

	ob.broker.Shutdown(ctx)
	logger.InfoSkip(ctx, 1, "Broker connection closed")
}
