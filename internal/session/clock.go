package session

import "time"

// Zone is the fixed UTC+3 offset all session marks are expressed in.
var Zone = time.FixedZone("UTC+3", 3*3600)

// Hours are the session marks for one calendar day. NewYorkEnd falls on
// the following calendar day: the window always crosses midnight.
type Hours struct {
	LookStart    time.Time
	OverlapStart time.Time
	OverlapEnd   time.Time
	NewYorkStart time.Time
	NewYorkEnd   time.Time
}

// winterSchedule reports whether the date uses the late (winter) hour
// set. Nov through Feb and the first nine days of March, tracking the
// US daylight-saving transition.
func winterSchedule(t time.Time) bool {
	switch t.Month() {
	case time.November, time.December, time.January, time.February:
		return true
	case time.March:
		return t.Day() <= 9
	}
	return false
}

// ActiveWindow returns the session marks for the calendar day of now,
// evaluated in UTC+3.
func ActiveWindow(now time.Time) Hours {
	day := now.In(Zone)
	at := func(hour, min int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, Zone)
	}
	if winterSchedule(day) {
		return Hours{
			LookStart:    at(15, 15),
			OverlapStart: at(16, 0),
			OverlapEnd:   at(20, 0),
			NewYorkStart: at(20, 0),
			NewYorkEnd:   at(1, 0).AddDate(0, 0, 1),
		}
	}
	return Hours{
		LookStart:    at(14, 15),
		OverlapStart: at(15, 0),
		OverlapEnd:   at(19, 0),
		NewYorkStart: at(19, 0),
		NewYorkEnd:   at(0, 0).AddDate(0, 0, 1),
	}
}

// contains reports whether now falls inside [LookStart, NewYorkEnd].
func (h Hours) contains(now time.Time) bool {
	return !now.Before(h.LookStart) && !now.After(h.NewYorkEnd)
}

// WithinTradingHours reports whether now is inside the active window.
// The window crosses midnight, so shortly after midnight the relevant
// window is the one anchored to the previous calendar day; both are
// checked so the wrap is handled with real instants rather than naive
// clock comparison.
func WithinTradingHours(now time.Time) bool {
	now = now.In(Zone)
	if ActiveWindow(now).contains(now) {
		return true
	}
	return ActiveWindow(now.AddDate(0, 0, -1)).contains(now)
}
