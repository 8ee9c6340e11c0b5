package constants

const (
	// TimeFormat is the short time-of-day format accepted for window bounds (HH:MM)
	TimeFormat = "15:04"

	// ClockFormat is the 24-hour wall-clock format compared against window bounds (HH:MM:SS)
	ClockFormat = "15:04:05"

	// DisplayFormat renders the next reminder time for humans
	DisplayFormat = "3:04:05 PM"
)
