package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/chime/internal/constants"
)

// ErrMuted is returned by Bell when the alert volume is zero.
var ErrMuted = errors.New("alert is muted")

// Bell rings the terminal bell. Sounds other than beep ring twice.
type Bell struct {
	w io.Writer
}

func NewBell(w io.Writer) *Bell {
	if w == nil {
		w = os.Stderr
	}
	return &Bell{w: w}
}

func (b *Bell) Play(ctx context.Context, alert Alert) error {
	if alert.Volume <= constants.MinVolume {
		return ErrMuted
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rings := 1
	if alert.Sound != constants.SoundBeep {
		rings = 2
	}
	for i := 0; i < rings; i++ {
		if _, err := fmt.Fprint(b.w, "\a"); err != nil {
			return fmt.Errorf("failed to ring bell: %w", err)
		}
	}
	return nil
}

// Chain tries each player in order and stops at the first success.
type Chain []Player

func (c Chain) Play(ctx context.Context, alert Alert) error {
	if len(c) == 0 {
		return errors.New("no players configured")
	}

	var errs []error
	for _, p := range c {
		err := p.Play(ctx, alert)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrMuted) {
			return err
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
