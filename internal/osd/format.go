package osd

import (
	"fmt"
	"time"
)

// ClockTime returns the wall-clock time offset seconds after now in
// 12-hour form, e.g. "01:05 PM". Hours past midnight wrap around.
func ClockTime(now time.Time, offset int) string {
	hour, minute := now.Hour(), now.Minute()
	if offset > 0 {
		total := hour*3600 + minute*60 + offset
		hour = (total / 3600) % 24
		minute = (total % 3600) / 60
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	switch {
	case hour == 0:
		hour = 12
	case hour > 12:
		hour -= 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour, minute, period)
}

// FormatDuration formats seconds as "MM:SS", or "HH:MM:SS" from one hour up.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
