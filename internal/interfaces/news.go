package interfaces

import (
	"context"

	"tradify-bot/internal/types"
)

// NewsFeed fetches scheduled high-impact events for a currency from the
// external calendar.
type NewsFeed interface {
	FetchHighImpactEvents(ctx context.Context, currency string) ([]types.NewsEvent, error)
}
