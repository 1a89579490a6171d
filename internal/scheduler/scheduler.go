package scheduler

import (
	"context"
	"errors"
	"time"

	"tradify-bot/internal/broker/mt5"
	"tradify-bot/internal/interfaces"
	"tradify-bot/internal/logger"
)

// Scheduler drives one decision cycle per interval, aligned to
// wall-clock boundaries so cycles track candle closes regardless of how
// long a pass takes. Cycles never overlap: each one runs to completion
// (or failure) before the next sleep begins.
type Scheduler struct {
	engine   interfaces.Engine
	broker   interfaces.Broker
	interval time.Duration

	reconnectAttempts int
	reconnectWait     time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) bool
}

// New creates a scheduler for the given cycle interval.
func New(eng interfaces.Engine, brk interfaces.Broker, interval time.Duration, reconnectAttempts int, reconnectWait time.Duration) *Scheduler {
	return &Scheduler{
		engine:            eng,
		broker:            brk,
		interval:          interval,
		reconnectAttempts: reconnectAttempts,
		reconnectWait:     reconnectWait,
		now:               time.Now,
		sleep:             sleepCtx,
	}
}

// Run loops until ctx is cancelled. The broker connection is released
// on every exit path.
func (s *Scheduler) Run(ctx context.Context) {
	defer s.broker.Shutdown(context.Background())

	logger.Info(ctx, "Scheduler started", "interval", s.interval)
	for {
		if !s.sleep(ctx, s.untilNextBoundary()) {
			logger.Info(ctx, "Scheduler stopping")
			return
		}

		_, err := s.engine.RunOneCycle(ctx)
		if err == nil {
			continue
		}
		if errors.Is(err, mt5.ErrConnectionLost) {
			// The cycle is lost; get the connection back before the
			// next boundary rather than crashing the process.
			if !s.reconnect(ctx) {
				return
			}
			continue
		}
		logger.ErrorWithErr(ctx, "Cycle failed", err)
	}
}

// reconnect retries the broker connection with exponential backoff.
// Returns false only when ctx is cancelled; running out of attempts
// leaves the next cycle to try again.
func (s *Scheduler) reconnect(ctx context.Context) bool {
	wait := s.reconnectWait
	for attempt := 1; attempt <= s.reconnectAttempts; attempt++ {
		logger.Warn(ctx, "Reconnecting to broker", "attempt", attempt, "max", s.reconnectAttempts)
		if err := s.broker.Connect(ctx); err == nil {
			logger.Info(ctx, "Broker reconnected", "attempt", attempt)
			return true
		} else {
			logger.ErrorWithErr(ctx, "Reconnect attempt failed", err, "attempt", attempt)
		}
		if !s.sleep(ctx, wait) {
			return false
		}
		wait *= 2
	}
	logger.Error(ctx, "Reconnect attempts exhausted, will retry next cycle")
	return ctx.Err() == nil
}

// untilNextBoundary returns the time to the next wall-clock multiple of
// the interval (e.g. the next :00/:15/:30/:45 mark for 15m).
func (s *Scheduler) untilNextBoundary() time.Duration {
	now := s.now()
	next := now.Truncate(s.interval).Add(s.interval)
	return next.Sub(now)
}

// sleepCtx waits for d or until ctx is cancelled; it reports whether
// the full wait elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
