package session

import (
	"testing"
	"time"
)

func TestWinterScheduleSelection(t *testing.T) {
	cases := []struct {
		date   time.Time
		winter bool
	}{
		{time.Date(2025, time.January, 15, 12, 0, 0, 0, Zone), true},
		{time.Date(2025, time.February, 28, 12, 0, 0, 0, Zone), true},
		{time.Date(2025, time.March, 9, 12, 0, 0, 0, Zone), true},
		{time.Date(2025, time.March, 10, 12, 0, 0, 0, Zone), false},
		{time.Date(2025, time.July, 1, 12, 0, 0, 0, Zone), false},
		{time.Date(2025, time.October, 31, 12, 0, 0, 0, Zone), false},
		{time.Date(2025, time.November, 1, 12, 0, 0, 0, Zone), true},
		{time.Date(2025, time.December, 25, 12, 0, 0, 0, Zone), true},
	}
	for _, c := range cases {
		if got := winterSchedule(c.date); got != c.winter {
			t.Errorf("winterSchedule(%s) = %v, want %v", c.date.Format("2006-01-02"), got, c.winter)
		}
	}
}

func TestActiveWindowWinterMarks(t *testing.T) {
	now := time.Date(2025, time.January, 15, 12, 0, 0, 0, Zone)
	h := ActiveWindow(now)

	if h.LookStart.Hour() != 15 || h.LookStart.Minute() != 15 {
		t.Errorf("Expected winter look start 15:15, got %s", h.LookStart.Format("15:04"))
	}
	if h.OverlapStart.Hour() != 16 || h.OverlapEnd.Hour() != 20 {
		t.Errorf("Expected winter overlap 16:00-20:00, got %s-%s",
			h.OverlapStart.Format("15:04"), h.OverlapEnd.Format("15:04"))
	}
	if h.NewYorkEnd.Hour() != 1 {
		t.Errorf("Expected winter NY end at 01:00, got %s", h.NewYorkEnd.Format("15:04"))
	}
	if h.NewYorkEnd.Day() != 16 {
		t.Errorf("Expected NY end on the next calendar day, got day %d", h.NewYorkEnd.Day())
	}
}

func TestActiveWindowSummerMarks(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, Zone)
	h := ActiveWindow(now)

	if h.LookStart.Hour() != 14 || h.LookStart.Minute() != 15 {
		t.Errorf("Expected summer look start 14:15, got %s", h.LookStart.Format("15:04"))
	}
	if h.NewYorkEnd.Hour() != 0 || h.NewYorkEnd.Day() != 11 {
		t.Errorf("Expected summer NY end at midnight next day, got %s day %d",
			h.NewYorkEnd.Format("15:04"), h.NewYorkEnd.Day())
	}
}

func TestWithinTradingHours(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"winter midday before session", time.Date(2025, time.January, 15, 14, 0, 0, 0, Zone), false},
		{"winter session open", time.Date(2025, time.January, 15, 15, 15, 0, 0, Zone), true},
		{"winter overlap", time.Date(2025, time.January, 15, 18, 30, 0, 0, Zone), true},
		{"winter just before midnight", time.Date(2025, time.January, 15, 23, 59, 0, 0, Zone), true},
		{"winter just after midnight", time.Date(2025, time.January, 16, 0, 30, 0, 0, Zone), true},
		{"winter session end", time.Date(2025, time.January, 16, 1, 0, 0, 0, Zone), true},
		{"winter after session end", time.Date(2025, time.January, 16, 1, 1, 0, 0, Zone), false},
		{"summer session open", time.Date(2025, time.June, 10, 14, 15, 0, 0, Zone), true},
		{"summer midnight end", time.Date(2025, time.June, 11, 0, 0, 0, 0, Zone), true},
		{"summer past midnight", time.Date(2025, time.June, 11, 0, 1, 0, 0, Zone), false},
		{"summer before look start", time.Date(2025, time.June, 10, 14, 14, 0, 0, Zone), false},
	}
	for _, c := range cases {
		if got := WithinTradingHours(c.now); got != c.want {
			t.Errorf("%s: WithinTradingHours(%s) = %v, want %v",
				c.name, c.now.Format("Jan 2 15:04"), got, c.want)
		}
	}
}

func TestWithinTradingHoursConvertsZone(t *testing.T) {
	// 12:30 UTC in winter is 15:30 UTC+3, inside the session.
	now := time.Date(2025, time.January, 15, 12, 30, 0, 0, time.UTC)
	if !WithinTradingHours(now) {
		t.Error("Expected 12:30 UTC (15:30 UTC+3) to be within winter trading hours")
	}
}
