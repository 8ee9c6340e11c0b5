package models

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/julianstephens/chime/internal/constants"
)

// Settings represents application-wide user preferences
type Settings struct {
	NotificationSound  constants.NotificationSound `json:"notificationSound"`  // one of beep, bell, chime
	DarkMode           bool                        `json:"darkMode"`           // dark palette in the TUI
	NotificationVolume int                         `json:"notificationVolume"` // 0-100
	Vibration          bool                        `json:"vibration"`          // forwarded to the tray companion
	DefaultInterval    int                         `json:"defaultInterval"`    // minutes, seeds new reminders
}

// DefaultSettings returns the settings used on first run.
func DefaultSettings() Settings {
	return Settings{
		NotificationSound:  constants.DefaultNotificationSound,
		DarkMode:           constants.DefaultDarkMode,
		NotificationVolume: constants.DefaultNotificationVolume,
		Vibration:          constants.DefaultVibration,
		DefaultInterval:    constants.DefaultInterval,
	}
}

// Validate reports the first field holding a value outside its allowed set.
func (s Settings) Validate() error {
	if !IsValidSound(s.NotificationSound) {
		return fmt.Errorf("invalid notification sound %q", s.NotificationSound)
	}
	if s.NotificationVolume < constants.MinVolume || s.NotificationVolume > constants.MaxVolume {
		return fmt.Errorf("notification volume %d is outside %d-%d", s.NotificationVolume, constants.MinVolume, constants.MaxVolume)
	}
	if !IsValidInterval(s.DefaultInterval) {
		return fmt.Errorf("invalid default interval %d", s.DefaultInterval)
	}
	return nil
}

// ApplyDefaultSettings replaces out-of-range fields with their defaults and
// returns the names of the fields it replaced.
func ApplyDefaultSettings(settings *Settings) []string {
	var fixed []string
	if !IsValidSound(settings.NotificationSound) {
		settings.NotificationSound = constants.DefaultNotificationSound
		fixed = append(fixed, "notificationSound")
	}
	if settings.NotificationVolume < constants.MinVolume || settings.NotificationVolume > constants.MaxVolume {
		settings.NotificationVolume = constants.DefaultNotificationVolume
		fixed = append(fixed, "notificationVolume")
	}
	if !IsValidInterval(settings.DefaultInterval) {
		settings.DefaultInterval = constants.DefaultInterval
		fixed = append(fixed, "defaultInterval")
	}
	return fixed
}

// DecodeSettings parses a stored settings record. Missing fields keep their
// defaults; out-of-range fields are reset and reported in fixed.
func DecodeSettings(data string) (settings Settings, fixed []string, err error) {
	settings = DefaultSettings()
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return DefaultSettings(), nil, fmt.Errorf("parsing settings record: %w", err)
	}
	fixed = ApplyDefaultSettings(&settings)
	return settings, fixed, nil
}

// EncodeSettings serializes settings into the stored record shape.
func EncodeSettings(settings Settings) (string, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("serializing settings record: %w", err)
	}
	return string(data), nil
}

// IsValidSound reports whether s is a known notification sound.
func IsValidSound(s constants.NotificationSound) bool {
	return slices.Contains(constants.Sounds, s)
}

// IsValidInterval reports whether minutes is an accepted reminder interval.
func IsValidInterval(minutes int) bool {
	return slices.Contains(constants.Intervals, minutes)
}
