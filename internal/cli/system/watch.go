package system

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/chime/internal/cli"
	"github.com/julianstephens/chime/internal/logger"
)

var notifyContext = signal.NotifyContext

// WatchCmd runs the reminder loop in the foreground until interrupted.
type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	rc := ctx.Reminder()
	if !rc.Active() {
		if err := rc.Start(); err != nil {
			return err
		}
	}

	st := rc.State()
	ctx.Printf("Watching %s. Press Ctrl-C to stop.\n", cli.FormatWindow(st.TimeRange))

	runCtx, stop := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rc.Run(runCtx)
	if errors.Is(err, context.Canceled) {
		logger.Debug("Watch interrupted")
		return nil
	}
	if err == nil {
		ctx.Println("Reminder stopped.")
	}
	return err
}
