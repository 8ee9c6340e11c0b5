package reminders

import (
	"errors"
	"fmt"

	"github.com/julianstephens/chime/internal/cli"
	apperrors "github.com/julianstephens/chime/internal/errors"
	"github.com/julianstephens/chime/internal/reminder"
)

type ReminderSetCmd struct {
	Start    *string `help:"Window start (HH:MM or HH:MM:SS, 24-hour)."`
	End      *string `help:"Window end (HH:MM or HH:MM:SS, 24-hour)."`
	Interval *int    `help:"Minutes between reminders (5, 10, 15, 20, 30 or 60)."`
}

func (c *ReminderSetCmd) Run(ctx *cli.Context) error {
	rc := ctx.Reminder()
	rng := rc.State().TimeRange

	if c.Start == nil && c.End == nil && c.Interval == nil {
		ctx.Println("No changes specified. Use --start, --end or --interval.")
		return nil
	}
	if c.Start != nil {
		rng.StartTime = *c.Start
	}
	if c.End != nil {
		rng.EndTime = *c.End
	}
	if c.Interval != nil {
		rng.Interval = *c.Interval
	}

	if err := rc.Configure(rng); err != nil {
		return fmt.Errorf("failed to configure reminder: %w", err)
	}
	ctx.Printf("Reminder set: %s\n", cli.FormatWindow(rng))
	return nil
}

type ReminderStartCmd struct{}

func (c *ReminderStartCmd) Run(ctx *cli.Context) error {
	rc := ctx.Reminder()
	if err := rc.Start(); err != nil {
		if errors.Is(err, reminder.ErrIncompleteWindow) {
			return apperrors.WithHint(err, "chime reminder set --start HH:MM --end HH:MM")
		}
		return err
	}
	ctx.Printf("Reminder active: %s\n", cli.FormatWindow(rc.State().TimeRange))
	ctx.Println("Run 'chime watch' or open the TUI to receive alerts.")
	return nil
}

type ReminderStopCmd struct{}

func (c *ReminderStopCmd) Run(ctx *cli.Context) error {
	ctx.Reminder().Stop()
	ctx.Println("Reminder stopped.")
	return nil
}

type ReminderStatusCmd struct{}

func (c *ReminderStatusCmd) Run(ctx *cli.Context) error {
	st := ctx.Reminder().State()

	status := "idle"
	if st.Active {
		status = "active"
	}
	ctx.Printf("Window:   %s\n", cli.FormatWindow(st.TimeRange))
	ctx.Printf("Status:   %s\n", status)
	if !ctx.Prefs.Available() {
		ctx.Println("Storage:  unavailable, showing defaults")
	}
	return nil
}
