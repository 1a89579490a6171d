package mt5

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tradify-bot/internal/api"
	"tradify-bot/internal/interfaces"
	"tradify-bot/internal/types"
)

// ErrConnectionLost marks gateway transport failures. A cycle that hits
// it is abandoned; the scheduler reconnects with backoff before the
// next one.
var ErrConnectionLost = errors.New("broker connection lost")

// ErrInsufficientData is returned when the gateway has fewer bars than
// requested for a symbol.
var ErrInsufficientData = errors.New("insufficient price data")

// RetcodeDone is the gateway's success return code for order requests,
// mirroring the MT5 TRADE_RETCODE_DONE value.
const RetcodeDone = 10009

// Params configures the adapter.
type Params struct {
	Mode         string // DRY_RUN or LIVE
	GatewayURL   string
	Timeout      time.Duration
	OrderTimeout time.Duration
}

// MT5 talks to a MetaTrader terminal through its REST bridge. In
// DRY_RUN mode it simulates fills and keeps its own position book so
// the reconciliation path stays exercisable without a terminal.
type MT5 struct {
	p      Params
	client *api.Client
	sim    *simulator
}

var _ interfaces.Broker = (*MT5)(nil)

// New creates the adapter. DRY_RUN needs no gateway.
func New(p Params) *MT5 {
	m := &MT5{p: p}
	if p.Mode == "DRY_RUN" {
		m.sim = newSimulator()
		return m
	}
	m.client = api.NewClient(
		api.WithBaseURL(p.GatewayURL),
		api.WithTimeout(p.Timeout),
	)
	return m
}

// Connect verifies the gateway is reachable. DRY_RUN always succeeds.
func (m *MT5) Connect(ctx context.Context) error {
	if m.sim != nil {
		return nil
	}
	if m.p.GatewayURL == "" {
		return errors.New("missing MT5 gateway URL")
	}
	if _, err := m.client.GET(ctx, "/ping"); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	return nil
}

// Shutdown releases the gateway session. Safe to call on every exit
// path.
func (m *MT5) Shutdown(ctx context.Context) {
	if m.sim != nil {
		return
	}
	_, _ = m.client.POST(ctx, "/shutdown", nil)
}

type barsResponse struct {
	Bars []struct {
		Time  int64   `json:"time"`
		Open  float64 `json:"open"`
		High  float64 `json:"high"`
		Low   float64 `json:"low"`
		Close float64 `json:"close"`
	} `json:"bars"`
}

// PriceBars returns the latest n fixed-granularity bars for symbol in
// ascending time order.
func (m *MT5) PriceBars(ctx context.Context, symbol string, n int) ([]types.PriceBar, error) {
	if m.sim != nil {
		return m.sim.priceBars(symbol, n), nil
	}

	resp, err := m.client.GET(ctx, fmt.Sprintf("/bars?symbol=%s&count=%d", symbol, n))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	var br barsResponse
	if err := resp.ParseJSON(&br); err != nil {
		return nil, err
	}
	if len(br.Bars) == 0 {
		return nil, fmt.Errorf("%w: no bars for %s", ErrInsufficientData, symbol)
	}

	bars := make([]types.PriceBar, 0, len(br.Bars))
	for _, b := range br.Bars {
		bars = append(bars, types.PriceBar{
			Ts: b.Time, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Symbol: symbol,
		})
	}
	return bars, nil
}

type orderResponse struct {
	Retcode int     `json:"retcode"`
	OrderID string  `json:"order_id"`
	Price   float64 `json:"price"`
	Comment string  `json:"comment"`
}

// SubmitOrder sends one market order and awaits its outcome. The call
// blocks until filled, rejected, or the order timeout elapses; there is
// no cancellation of in-flight orders. A rejection comes back as a
// failed OrderResult, not an error, so batch callers can continue.
func (m *MT5) SubmitOrder(ctx context.Context, req types.OrderRequest) (types.OrderResult, error) {
	if req.ClientID == "" {
		req.ClientID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(ctx, m.orderTimeout())
	defer cancel()

	if m.sim != nil {
		return m.sim.submitOrder(req), nil
	}

	resp, err := m.client.POST(ctx, "/order", map[string]interface{}{
		"client_id": req.ClientID,
		"symbol":    req.Symbol,
		"side":      req.Side,
		"volume":    req.Volume,
		"ticket":    req.Ticket,
		"comment":   req.Comment,
		"type":      "market",
	})
	if err != nil {
		return types.OrderResult{}, fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}

	var or orderResponse
	if err := resp.ParseJSON(&or); err != nil {
		return types.OrderResult{}, err
	}

	result := types.OrderResult{
		Symbol:  req.Symbol,
		Side:    req.Side,
		Volume:  req.Volume,
		OrderID: or.OrderID,
		Retcode: or.Retcode,
	}
	if or.Retcode != RetcodeDone {
		result.Err = fmt.Sprintf("retcode %d: %s", or.Retcode, or.Comment)
		return result, nil
	}
	result.FilledPrice = or.Price
	return result, nil
}

type positionsResponse struct {
	Positions []struct {
		Ticket     string  `json:"ticket"`
		Symbol     string  `json:"symbol"`
		Side       string  `json:"side"`
		Volume     float64 `json:"volume"`
		EntryPrice float64 `json:"entry_price"`
		Profit     float64 `json:"profit"`
	} `json:"positions"`
}

// OpenPositions returns the broker's authoritative open position set.
func (m *MT5) OpenPositions(ctx context.Context) ([]types.OpenPosition, error) {
	if m.sim != nil {
		return m.sim.openPositions(), nil
	}

	resp, err := m.client.GET(ctx, "/positions")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	var pr positionsResponse
	if err := resp.ParseJSON(&pr); err != nil {
		return nil, err
	}

	positions := make([]types.OpenPosition, 0, len(pr.Positions))
	for _, p := range pr.Positions {
		positions = append(positions, types.OpenPosition{
			Ticket:     p.Ticket,
			Symbol:     p.Symbol,
			Direction:  types.Side(p.Side),
			Volume:     p.Volume,
			EntryPrice: p.EntryPrice,
			Profit:     p.Profit,
		})
	}
	return positions, nil
}

func (m *MT5) orderTimeout() time.Duration {
	if m.p.OrderTimeout > 0 {
		return m.p.OrderTimeout
	}
	return 10 * time.Second
}
