package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/chime/internal/cli"
	"github.com/julianstephens/chime/internal/constants"
	"github.com/julianstephens/chime/internal/notifier"
)

// NotifyCmd plays a single alert with the current settings.
type NotifyCmd struct {
	Text   string `help:"Alert text." default:"Test reminder"`
	DryRun bool   `help:"Print the alert instead of playing it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	alert := notifier.NewAlert(c.Text, ctx.Prefs.LoadSettings())

	if c.DryRun {
		ctx.Printf("Alert %s: %q sound=%s volume=%d vibrate=%v\n", alert.ID, alert.Text, alert.Sound, alert.Volume, alert.Vibrate)
		return nil
	}
	if ctx.Player == nil {
		return fmt.Errorf("no alert player configured")
	}

	playCtx, cancel := context.WithTimeout(context.Background(), constants.PlaybackTimeout)
	defer cancel()

	if err := ctx.Player.Play(playCtx, alert); err != nil {
		if errors.Is(err, notifier.ErrMuted) {
			ctx.Println("Volume is 0, alert muted.")
			return nil
		}
		return fmt.Errorf("failed to play alert: %w", err)
	}
	ctx.Println("Alert sent.")
	return nil
}
