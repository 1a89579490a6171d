package interfaces

import (
	"context"

	"tradify-bot/internal/types"
)

// Broker is the order sink and market data source. The position set it
// reports is authoritative: the engine re-queries it before every close
// and never keeps a ledger of its own.
type Broker interface {
	PriceBars(ctx context.Context, symbol string, n int) ([]types.PriceBar, error)
	SubmitOrder(ctx context.Context, req types.OrderRequest) (types.OrderResult, error)
	OpenPositions(ctx context.Context) ([]types.OpenPosition, error)
	Connect(ctx context.Context) error
	Shutdown(ctx context.Context)
}
