package interfaces

import (
	"context"

	"tradify-bot/internal/types"
)

// Engine runs one full decision pass: signal aggregation followed by
// execution reconciliation. Exactly one TradingAction is produced per
// cycle.
type Engine interface {
	RunOneCycle(ctx context.Context) (*types.CycleResult, error)
	LastAction() types.TradingAction
}
