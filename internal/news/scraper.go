package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"tradify-bot/internal/logger"
	"tradify-bot/internal/types"
)

const calendarURL = "https://www.forexfactory.com/calendar"

// Scraper fetches the high-impact rows of the ForexFactory economic
// calendar.
type Scraper struct {
	url     string
	timeout time.Duration
}

// NewScraper creates a calendar scraper with the given request timeout.
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{url: calendarURL, timeout: timeout}
}

// FetchHighImpactEvents scrapes today's high-impact calendar rows for
// the given currency. The calendar only publishes clock times, so each
// event carries a same-day "15:04" string.
func (s *Scraper) FetchHighImpactEvents(ctx context.Context, currency string) ([]types.NewsEvent, error) {
	var events []types.NewsEvent

	c := colly.NewCollector(
		colly.AllowedDomains("www.forexfactory.com", "forexfactory.com"),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	// The calendar blocks default client user agents.
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	c.OnHTML(".calendar__row.calendar__row--high", func(e *colly.HTMLElement) {
		ev, ok := parseEventRow(e.DOM, currency)
		if !ok {
			return
		}
		events = append(events, ev)
	})

	var scrapeErr error
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = err
	})

	if err := c.Visit(s.url); err != nil {
		return nil, fmt.Errorf("news calendar fetch: %w", err)
	}
	c.Wait()
	if scrapeErr != nil {
		return nil, fmt.Errorf("news calendar fetch: %w", scrapeErr)
	}

	logger.Debug(ctx, "News calendar scraped", "currency", currency, "events", len(events))
	return events, nil
}

// parseEventRow extracts one calendar row, dropping rows for other
// currencies and rows without a concrete clock time ("All Day",
// "Tentative").
func parseEventRow(row *goquery.Selection, currency string) (types.NewsEvent, bool) {
	cur := strings.TrimSpace(row.Find(".calendar__currency").Text())
	if cur != currency {
		return types.NewsEvent{}, false
	}
	clock := strings.TrimSpace(row.Find(".calendar__time").Text())
	if _, err := parseClock(clock); err != nil {
		return types.NewsEvent{}, false
	}
	return types.NewsEvent{
		Time:     clock,
		Currency: cur,
		Title:    strings.TrimSpace(row.Find(".calendar__event-title").Text()),
	}, true
}

// parseClock parses the calendar's clock formats ("8:30am", "15:04").
func parseClock(s string) (time.Time, error) {
	for _, layout := range []string{"3:04pm", "15:04"} {
		if t, err := time.Parse(layout, strings.ToLower(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable calendar time %q", s)
}
