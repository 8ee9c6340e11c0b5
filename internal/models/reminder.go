package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/chime/internal/constants"
)

var (
	// ErrInvalidInterval is returned when an interval is outside constants.Intervals
	ErrInvalidInterval = errors.New("interval must be one of 5, 10, 15, 20, 30 or 60 minutes")
	// ErrInvalidTime is returned when a window bound is neither HH:MM nor HH:MM:SS
	ErrInvalidTime = errors.New("time must be HH:MM or HH:MM:SS")
)

// TimeRange is the daily window and cadence of the interval reminder.
// Bounds are kept as strings because the window check compares them lexically.
type TimeRange struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Interval  int    `json:"interval"` // minutes
}

// ReminderSettings is the stored reminder record.
type ReminderSettings struct {
	TimeRange
	IsActive bool `json:"isActive"`
}

// Complete reports whether both window bounds are set.
func (r TimeRange) Complete() bool {
	return r.StartTime != "" && r.EndTime != ""
}

// Validate checks the interval and the format of any non-empty bound.
func (r TimeRange) Validate() error {
	if !IsValidInterval(r.Interval) {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, r.Interval)
	}
	for _, bound := range []string{r.StartTime, r.EndTime} {
		if bound == "" {
			continue
		}
		if !IsValidClockTime(bound) {
			return fmt.Errorf("%w: got %q", ErrInvalidTime, bound)
		}
	}
	return nil
}

// IsValidClockTime accepts zero-padded HH:MM and HH:MM:SS in 24-hour form.
// Padding matters because window bounds are compared as strings.
func IsValidClockTime(s string) bool {
	layout := constants.TimeFormat
	if len(s) == len(constants.ClockFormat) {
		layout = constants.ClockFormat
	} else if len(s) != len(constants.TimeFormat) {
		return false
	}
	_, err := time.Parse(layout, s)
	return err == nil
}

// DecodeReminderSettings parses a stored reminder record. A missing or invalid
// interval falls back to defaultInterval; malformed bounds are cleared, which
// leaves the reminder unable to start until reconfigured.
func DecodeReminderSettings(data string, defaultInterval int) (ReminderSettings, error) {
	var rs ReminderSettings
	if err := json.Unmarshal([]byte(data), &rs); err != nil {
		return ReminderSettings{TimeRange: TimeRange{Interval: defaultInterval}}, fmt.Errorf("parsing reminder record: %w", err)
	}
	if !IsValidInterval(rs.Interval) {
		rs.Interval = defaultInterval
	}
	if rs.StartTime != "" && !IsValidClockTime(rs.StartTime) {
		rs.StartTime = ""
	}
	if rs.EndTime != "" && !IsValidClockTime(rs.EndTime) {
		rs.EndTime = ""
	}
	if !rs.Complete() {
		rs.IsActive = false
	}
	return rs, nil
}

// EncodeReminderSettings serializes the reminder record as a flat object.
func EncodeReminderSettings(rs ReminderSettings) (string, error) {
	data, err := json.Marshal(rs)
	if err != nil {
		return "", fmt.Errorf("serializing reminder record: %w", err)
	}
	return string(data), nil
}
