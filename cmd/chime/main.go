package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/chime/internal/cli"
	"github.com/julianstephens/chime/internal/cli/backups"
	"github.com/julianstephens/chime/internal/cli/reminders"
	"github.com/julianstephens/chime/internal/cli/settings"
	"github.com/julianstephens/chime/internal/cli/system"
	"github.com/julianstephens/chime/internal/constants"
	apperrors "github.com/julianstephens/chime/internal/errors"
	"github.com/julianstephens/chime/internal/logger"
	"github.com/julianstephens/chime/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Preferences storage path. A .json path selects the flat file backend, anything else SQLite." type:"path" default:"${config}" env:"CHIME_CONFIG"`
	Debug   bool   `help:"Enable debug logging." env:"CHIME_DEBUG"`

	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Watch    system.WatchCmd      `cmd:"" help:"Run the reminder in the foreground."`
	Init     system.InitCmd       `cmd:"" help:"Initialize chime storage."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Reminder struct {
		Set    reminders.ReminderSetCmd    `cmd:"" help:"Configure the reminder window and interval."`
		Start  reminders.ReminderStartCmd  `cmd:"" help:"Activate the reminder."`
		Stop   reminders.ReminderStopCmd   `cmd:"" help:"Deactivate the reminder."`
		Status reminders.ReminderStatusCmd `cmd:"" help:"Show the reminder configuration." default:"1"`
	} `cmd:"" help:"Manage the interval reminder."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a backup of the preferences file." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore preferences from a backup."`
	} `cmd:"" help:"Manage preference backups."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Play a test alert."`
}

func main() {
	// a missing .env is normal
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		apperrors.Fatal(err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Interval reminders, a stopwatch and their settings, in the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)

	command := ctx.Command()
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
		Quiet:     command == "tui",
	}); err != nil {
		logger.InitStderr(CLI.Debug)
		logger.Warn("Failed to initialize file logging", "error", err)
	}

	appCtx := &cli.Context{ConfigPath: CLI.Config, Out: os.Stdout}
	if command != "init" {
		var provider storage.Provider
		store, err := storage.Open(CLI.Config)
		if err != nil {
			// the app keeps working on in-memory preferences
			logger.Warn("Preferences storage unavailable", "path", CLI.Config, "error", err)
		} else {
			provider = store
			defer store.Close()
		}
		appCtx = cli.NewContext(CLI.Config, provider, cli.DefaultPlayer())
	}

	if err := ctx.Run(appCtx); err != nil {
		if appCtx.Store != nil {
			appCtx.Store.Close()
		}
		apperrors.Fatal(err)
	}
}
