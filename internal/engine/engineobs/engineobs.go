package engineobs

import (
	"context"
	"time"

	"tradify-bot/internal/interfaces"
	"tradify-bot/internal/logger"
	"tradify-bot/internal/trace"
	"tradify-bot/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

// Wrap decorates an engine with logging and tracing around each cycle.
func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{engine: eng}
}

func (oe *observableEngine) RunOneCycle(ctx context.Context) (*types.CycleResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.RunOneCycle")
	defer span.End()

	start := time.Now()
	logger.InfoSkip(ctx, 1, "Starting decision cycle")

	result, err := oe.engine.RunOneCycle(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Decision cycle failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return result, err
	}

	logger.InfoSkip(ctx, 1, "Decision cycle completed",
		"action", result.Action.Kind,
		"direction", result.Action.Direction,
		"reason", result.Action.Reason,
		"signals", len(result.Signals),
		"orders", len(result.Orders),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

func (oe *observableEngine) LastAction() types.TradingAction {
	return oe.engine.LastAction()
}
