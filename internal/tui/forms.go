package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/chime/internal/constants"
	"github.com/julianstephens/chime/internal/models"
)

// ReminderFormModel backs the reminder edit form
type ReminderFormModel struct {
	StartTime string
	EndTime   string
	Interval  int
}

// SettingsFormModel backs the settings edit form
type SettingsFormModel struct {
	Sound           constants.NotificationSound
	DarkMode        bool
	Volume          string
	Vibration       bool
	DefaultInterval int
}

func newReminderFormModel(rng models.TimeRange) *ReminderFormModel {
	return &ReminderFormModel{
		StartTime: rng.StartTime,
		EndTime:   rng.EndTime,
		Interval:  rng.Interval,
	}
}

func (fm *ReminderFormModel) TimeRange() models.TimeRange {
	return models.TimeRange{
		StartTime: strings.TrimSpace(fm.StartTime),
		EndTime:   strings.TrimSpace(fm.EndTime),
		Interval:  fm.Interval,
	}
}

func newSettingsFormModel(s models.Settings) *SettingsFormModel {
	return &SettingsFormModel{
		Sound:           s.NotificationSound,
		DarkMode:        s.DarkMode,
		Volume:          strconv.Itoa(s.NotificationVolume),
		Vibration:       s.Vibration,
		DefaultInterval: s.DefaultInterval,
	}
}

// Settings converts the form back, keeping fallback's volume if the input
// does not parse.
func (fm *SettingsFormModel) Settings(fallback models.Settings) models.Settings {
	s := models.Settings{
		NotificationSound:  fm.Sound,
		DarkMode:           fm.DarkMode,
		NotificationVolume: fallback.NotificationVolume,
		Vibration:          fm.Vibration,
		DefaultInterval:    fm.DefaultInterval,
	}
	if v, err := strconv.Atoi(strings.TrimSpace(fm.Volume)); err == nil {
		s.NotificationVolume = v
	}
	return s
}

func validateClock(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !models.IsValidClockTime(s) {
		return fmt.Errorf("invalid time format, use HH:MM or HH:MM:SS")
	}
	return nil
}

func validateVolume(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("volume must be a number")
	}
	if v < constants.MinVolume || v > constants.MaxVolume {
		return fmt.Errorf("volume must be between %d and %d", constants.MinVolume, constants.MaxVolume)
	}
	return nil
}

func intervalOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(constants.Intervals))
	for _, i := range constants.Intervals {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d minutes", i), i))
	}
	return opts
}

func soundOptions() []huh.Option[constants.NotificationSound] {
	opts := make([]huh.Option[constants.NotificationSound], 0, len(constants.Sounds))
	for _, s := range constants.Sounds {
		opts = append(opts, huh.NewOption(string(s), s))
	}
	return opts
}

func formTheme(dark bool) *huh.Theme {
	if dark {
		return huh.ThemeCharm()
	}
	return huh.ThemeBase()
}

func NewReminderForm(fm *ReminderFormModel, dark bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start time").
				Description("24-hour HH:MM or HH:MM:SS").
				Placeholder("09:00").
				Value(&fm.StartTime).
				Validate(validateClock),
			huh.NewInput().
				Title("End time").
				Placeholder("17:00").
				Value(&fm.EndTime).
				Validate(validateClock),
			huh.NewSelect[int]().
				Title("Remind me every").
				Options(intervalOptions()...).
				Value(&fm.Interval),
		),
	).WithTheme(formTheme(dark))
}

func NewSettingsForm(fm *SettingsFormModel, dark bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[constants.NotificationSound]().
				Title("Notification sound").
				Options(soundOptions()...).
				Value(&fm.Sound),
			huh.NewInput().
				Title(fmt.Sprintf("Volume (%d-%d)", constants.MinVolume, constants.MaxVolume)).
				Value(&fm.Volume).
				Validate(validateVolume),
			huh.NewConfirm().
				Title("Vibration").
				Value(&fm.Vibration),
			huh.NewConfirm().
				Title("Dark mode").
				Value(&fm.DarkMode),
			huh.NewSelect[int]().
				Title("Default interval").
				Options(intervalOptions()...).
				Value(&fm.DefaultInterval),
		),
	).WithTheme(formTheme(dark))
}
