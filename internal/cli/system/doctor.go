package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/chime/internal/backup"
	"github.com/julianstephens/chime/internal/cli"
	"github.com/julianstephens/chime/internal/constants"
	"github.com/julianstephens/chime/internal/logger"
	"github.com/julianstephens/chime/internal/models"
	"github.com/julianstephens/chime/internal/notifier"
	"github.com/julianstephens/chime/internal/storage/sqlite"
)

// errWarning marks a check result that does not fail the run.
var errWarning = errors.New("warning")

var discoverTray = notifier.Discover

type DoctorCmd struct{}

type check struct {
	name    string
	needsDB bool
	run     func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{"Storage reachable", false, checkStorageReachable},
		{"Schema version", true, checkSchemaVersion},
		{"Settings record", true, checkSettingsRecord},
		{"Reminder record", true, checkReminderRecord},
		{"Backups", true, checkBackups},
		{"Tray notifier", false, checkTray},
		{"Clock", false, func(*cli.Context) error { return checkClock(time.Now()) }},
	}

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsDB && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errWarning):
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
		if c.name == "Storage reachable" && err != nil {
			reachable = false
		}
	}

	ctx.Println()
	if path := logger.Path(); path != "" {
		ctx.Printf("Log file: %s\n", path)
	}
	if hasError {
		return fmt.Errorf("one or more checks failed")
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if ctx.Store == nil {
		return fmt.Errorf("storage at %s could not be opened", ctx.ConfigPath)
	}
	if !ctx.Prefs.Available() {
		return fmt.Errorf("storage at %s rejected a test write", ctx.Store.GetConfigPath())
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	return store.ValidateSchema()
}

func checkSettingsRecord(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.Get(constants.KeyUserSettings)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no settings saved yet, defaults are in use", errWarning)
	}
	_, fixed, err := models.DecodeSettings(raw)
	if err != nil {
		return fmt.Errorf("settings record is unreadable, defaults are in use: %w", err)
	}
	if len(fixed) > 0 {
		return fmt.Errorf("%w: out-of-range fields replaced by defaults: %s", errWarning, strings.Join(fixed, ", "))
	}
	return nil
}

func checkReminderRecord(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.Get(constants.KeyReminderSettings)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if _, err := models.DecodeReminderSettings(raw, constants.DefaultInterval); err != nil {
		return fmt.Errorf("reminder record is unreadable: %w", err)
	}
	return nil
}

func checkBackups(ctx *cli.Context) error {
	backups, err := backup.NewManager(ctx.ConfigPath).ListBackups()
	if err != nil {
		return fmt.Errorf("%w: failed to list backups: %v", errWarning, err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("%w: no backups yet, run 'chime backup'", errWarning)
	}
	return nil
}

func checkTray(*cli.Context) error {
	if _, _, err := discoverTray(); err != nil {
		return fmt.Errorf("%w: %v, alerts fall back to the terminal bell", errWarning, err)
	}
	return nil
}

func checkClock(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
