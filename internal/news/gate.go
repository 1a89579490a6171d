package news

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tradify-bot/internal/interfaces"
	"tradify-bot/internal/types"
)

// ErrFeedUnavailable wraps calendar fetch failures. The gate keeps its
// last good cache when this occurs; callers must surface the degraded
// mode rather than silently dropping the blackout filter.
var ErrFeedUnavailable = errors.New("news feed unavailable")

const (
	// cacheTTL is how long a fetched event set stays fresh.
	cacheTTL = time.Hour
	// blackoutRadius is the no-trade distance around an event.
	blackoutRadius = 15 * time.Minute
)

// Gate decides whether an instant falls inside the news blackout. The
// event cache is process-scoped shared state: refreshes publish a new
// snapshot atomically so concurrent readers never observe a partial
// update.
type Gate struct {
	feed     interfaces.NewsFeed
	currency string

	mu    sync.RWMutex
	cache cacheSnapshot
}

type cacheSnapshot struct {
	lastUpdated time.Time
	events      []types.NewsEvent
}

// NewGate creates a gate over the given feed, filtering events to one
// currency. The cache starts empty and fills on first use.
func NewGate(feed interfaces.NewsFeed, currency string) *Gate {
	return &Gate{feed: feed, currency: currency}
}

// IsBlackout reports whether now is within 15 minutes of a cached
// high-impact event, refreshing the cache first when it is empty or
// older than one hour (at most one refresh per call). On a fetch
// failure the previous cache is retained, the blackout is evaluated
// against it, and the error is returned alongside the result.
func (g *Gate) IsBlackout(ctx context.Context, now time.Time) (bool, error) {
	snap := g.snapshot()

	var refreshErr error
	if len(snap.events) == 0 || now.Sub(snap.lastUpdated) > cacheTTL {
		fresh, err := g.feed.FetchHighImpactEvents(ctx, g.currency)
		if err != nil {
			refreshErr = fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
		} else {
			snap = cacheSnapshot{lastUpdated: now, events: fresh}
			g.publish(snap)
		}
	}

	for _, ev := range snap.events {
		evClock, err := parseClock(ev.Time)
		if err != nil {
			continue
		}
		if clockDistance(now, evClock) <= blackoutRadius {
			return true, refreshErr
		}
	}
	return false, refreshErr
}

// Events returns the currently cached event set.
func (g *Gate) Events() []types.NewsEvent {
	return g.snapshot().events
}

func (g *Gate) snapshot() cacheSnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cache
}

func (g *Gate) publish(snap cacheSnapshot) {
	g.mu.Lock()
	g.cache = snap
	g.mu.Unlock()
}

// clockDistance measures the same-day wall-clock distance between now
// and an event's time-of-day.
func clockDistance(now, evClock time.Time) time.Duration {
	nowMins := time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second
	evMins := time.Duration(evClock.Hour())*time.Hour + time.Duration(evClock.Minute())*time.Minute
	d := nowMins - evMins
	if d < 0 {
		d = -d
	}
	return d
}
