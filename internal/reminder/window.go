package reminder

import (
	"math"
	"time"

	"github.com/julianstephens/chime/internal/constants"
)

// WindowFunc reports whether current ("15:04:05") lies in the window [start, end].
type WindowFunc func(current, start, end string) bool

// LexicalWindow compares the clock strings lexicographically, inclusive at
// both ends. Bounds stored as "HH:MM" therefore admit every second of the
// start minute but none of the end minute after :00. Windows that wrap past
// midnight never match.
func LexicalWindow(current, start, end string) bool {
	return current >= start && current <= end
}

// TotalMinutes is the minute-of-day index of t, 0 to 1439.
func TotalMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Qualifies reports whether the minute of t is a multiple of interval.
func Qualifies(t time.Time, interval int) bool {
	if interval <= 0 {
		return false
	}
	return TotalMinutes(t)%interval == 0
}

// NextReminder rounds the minute of now up to a multiple of interval within
// the current hour, rolling into the next hour on overflow. A minute that is
// already a multiple is returned unchanged.
func NextReminder(now time.Time, interval int) time.Time {
	if interval <= 0 {
		interval = constants.DefaultInterval
	}
	next := int(math.Ceil(float64(now.Minute())/float64(interval))) * interval
	return time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), next, 0, 0, now.Location())
}

// FormatNext renders a next-reminder time for display.
func FormatNext(t time.Time) string {
	return t.Format(constants.DisplayFormat)
}
