package settings

import (
	"fmt"

	"github.com/julianstephens/chime/internal/cli"
	"github.com/julianstephens/chime/internal/constants"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Sound           *string `help:"Notification sound (beep, bell or chime)."`
	DarkMode        *bool   `help:"Use the dark TUI palette."`
	Volume          *int    `help:"Notification volume, 0-100."`
	Vibration       *bool   `help:"Ask the tray to vibrate where supported."`
	DefaultInterval *int    `help:"Interval for new reminders, in minutes."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings := ctx.Prefs.LoadSettings()

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Notification Sound:  %s\n", settings.NotificationSound)
		ctx.Printf("  Volume:              %d\n", settings.NotificationVolume)
		ctx.Printf("  Vibration:           %v\n", settings.Vibration)
		ctx.Printf("  Dark Mode:           %v\n", settings.DarkMode)
		ctx.Printf("  Default Interval:    %d min\n", settings.DefaultInterval)
		return nil
	}

	updated := false
	if c.Sound != nil {
		settings.NotificationSound = constants.NotificationSound(*c.Sound)
		updated = true
	}
	if c.DarkMode != nil {
		settings.DarkMode = *c.DarkMode
		updated = true
	}
	if c.Volume != nil {
		settings.NotificationVolume = *c.Volume
		updated = true
	}
	if c.Vibration != nil {
		settings.Vibration = *c.Vibration
		updated = true
	}
	if c.DefaultInterval != nil {
		settings.DefaultInterval = *c.DefaultInterval
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	ctx.Prefs.SaveSettings(settings)
	ctx.Println("Settings updated successfully.")
	return nil
}
