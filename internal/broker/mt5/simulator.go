package mt5

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"tradify-bot/internal/types"
)

// simulator backs DRY_RUN mode: synthetic bars, instant fills and an
// in-memory position book standing in for the terminal's.
type simulator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	positions []types.OpenPosition
	seq       int
}

func newSimulator() *simulator {
	return &simulator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// priceBars produces an n-bar random walk around an instrument-shaped
// base price.
func (s *simulator) priceBars(symbol string, n int) []types.PriceBar {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := 1.1000
	if types.IsIndex(symbol) {
		base = 104.000
	}
	pip := types.PipSize(symbol)
	now := time.Now().Unix()

	bars := make([]types.PriceBar, 0, n)
	price := base
	for i := n; i > 0; i-- {
		drift := (s.rng.Float64() - 0.5) * 10 * pip
		open := price
		close := price + drift
		high := math.Max(open, close) + s.rng.Float64()*3*pip
		low := math.Min(open, close) - s.rng.Float64()*3*pip
		bars = append(bars, types.PriceBar{
			Ts:     now - int64(i*60),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Symbol: symbol,
		})
		price = close
	}
	return bars
}

// submitOrder fills immediately and updates the simulated book. An
// order carrying a ticket closes that position; anything else opens a
// new one.
func (s *simulator) submitOrder(req types.OrderRequest) types.OrderResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	result := types.OrderResult{
		Symbol:      req.Symbol,
		Side:        req.Side,
		Volume:      req.Volume,
		OrderID:     fmt.Sprintf("SIM-%d", s.seq),
		Retcode:     RetcodeDone,
		FilledPrice: 1.1000 + s.rng.Float64()*0.001,
	}

	if req.Ticket != "" {
		for i, p := range s.positions {
			if p.Ticket == req.Ticket {
				s.positions = append(s.positions[:i], s.positions[i+1:]...)
				return result
			}
		}
		result.Retcode = 0
		result.Err = fmt.Sprintf("retcode 0: unknown ticket %s", req.Ticket)
		return result
	}

	s.positions = append(s.positions, types.OpenPosition{
		Ticket:     fmt.Sprintf("TKT-%d", s.seq),
		Symbol:     req.Symbol,
		Direction:  req.Side,
		Volume:     req.Volume,
		EntryPrice: result.FilledPrice,
	})
	return result
}

func (s *simulator) openPositions() []types.OpenPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.OpenPosition, len(s.positions))
	copy(out, s.positions)
	return out
}
