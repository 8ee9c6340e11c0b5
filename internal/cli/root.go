package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/chime/internal/backup"
	"github.com/julianstephens/chime/internal/logger"
	"github.com/julianstephens/chime/internal/models"
	"github.com/julianstephens/chime/internal/notifier"
	"github.com/julianstephens/chime/internal/prefs"
	"github.com/julianstephens/chime/internal/reminder"
	"github.com/julianstephens/chime/internal/storage"
)

type Context struct {
	ConfigPath string
	// Store is nil when storage could not be opened.
	Store  storage.Provider
	Prefs  *prefs.Store
	Player notifier.Player
	Out    io.Writer
}

// NewContext wires the preference store over provider, which may be nil.
func NewContext(configPath string, provider storage.Provider, player notifier.Player) *Context {
	return &Context{
		ConfigPath: configPath,
		Store:      provider,
		Prefs:      prefs.New(provider),
		Player:     player,
		Out:        os.Stdout,
	}
}

// Reminder builds a controller over the context's preferences.
func (c *Context) Reminder(opts ...reminder.Option) *reminder.Controller {
	return reminder.New(c.Prefs, c.Player, opts...)
}

// PerformAutomaticBackup snapshots the preferences file. Failures are logged
// and otherwise ignored.
func (c *Context) PerformAutomaticBackup() {
	if c.Store == nil || c.ConfigPath == "" {
		return
	}
	if _, err := backup.NewManager(c.ConfigPath).CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) Printf(format string, a ...any) {
	fmt.Fprintf(c.out(), format, a...)
}

func (c *Context) Println(a ...any) {
	fmt.Fprintln(c.out(), a...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// DefaultPlayer delivers alerts to the tray companion, falling back to the
// terminal bell.
func DefaultPlayer() notifier.Player {
	return notifier.Chain{notifier.New(), notifier.NewBell(os.Stderr)}
}

// FormatWindow renders a reminder window for display.
func FormatWindow(rng models.TimeRange) string {
	start, end := rng.StartTime, rng.EndTime
	if start == "" {
		start = "--:--"
	}
	if end == "" {
		end = "--:--"
	}
	return fmt.Sprintf("%s-%s every %d min", start, end, rng.Interval)
}
