// Package reminder fires a notification on every qualifying minute inside a
// daily time window.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/chime/internal/constants"
	"github.com/julianstephens/chime/internal/logger"
	"github.com/julianstephens/chime/internal/models"
	"github.com/julianstephens/chime/internal/notifier"
)

// ErrIncompleteWindow is returned by Start when either bound is empty.
var ErrIncompleteWindow = errors.New("reminder window needs both a start and an end time")

// Store is the subset of the preference store the controller needs.
type Store interface {
	LoadSettings() models.Settings
	LoadReminder() (models.ReminderSettings, bool)
	SaveReminder(models.ReminderSettings)
}

// TickResult describes what a single tick did.
type TickResult struct {
	Inside       bool
	Fired        bool
	NextReminder string
}

// State is a point-in-time copy of the controller.
type State struct {
	models.TimeRange
	Active          bool
	LastFiredMinute *int
	NextReminder    string
}

type Option func(*Controller)

// WithWindow replaces the window predicate.
func WithWindow(fn WindowFunc) Option {
	return func(c *Controller) { c.window = fn }
}

// WithClock replaces time.Now for Run.
func WithClock(fn func() time.Time) Option {
	return func(c *Controller) { c.clock = fn }
}

// WithSyncPlayback plays alerts on the ticking goroutine.
func WithSyncPlayback() Option {
	return func(c *Controller) { c.sync = true }
}

// WithPlaybackTimeout bounds a single playback attempt.
func WithPlaybackTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// Controller owns the reminder window, interval and active flag. It is safe
// for concurrent use.
type Controller struct {
	store   Store
	player  notifier.Player
	window  WindowFunc
	clock   func() time.Time
	sync    bool
	timeout time.Duration

	mu        sync.Mutex
	rng       models.TimeRange
	active    bool
	lastFired *int
	next      string
}

// New restores the persisted reminder from store. A reminder saved as active
// resumes immediately. player may be nil, in which case firing only logs.
func New(store Store, player notifier.Player, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		player:  player,
		window:  LexicalWindow,
		clock:   time.Now,
		timeout: constants.PlaybackTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	rs, _ := store.LoadReminder()
	c.rng = rs.TimeRange
	c.active = rs.IsActive && rs.Complete()
	if c.active {
		logger.Info("Resuming reminder", "start", c.rng.StartTime, "end", c.rng.EndTime, "interval", c.rng.Interval)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		TimeRange:    c.rng,
		Active:       c.active,
		NextReminder: c.next,
	}
	if c.lastFired != nil {
		m := *c.lastFired
		st.LastFiredMinute = &m
	}
	return st
}

func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Configure replaces the window and interval. Empty bounds are accepted but
// deactivate a running reminder.
func (c *Controller) Configure(rng models.TimeRange) error {
	if err := rng.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rng = rng
	if c.active && !rng.Complete() {
		c.active = false
		c.next = ""
	}
	c.persistLocked()
	return nil
}

func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rng.Complete() {
		return ErrIncompleteWindow
	}
	c.active = true
	c.persistLocked()
	logger.Info("Reminder started", "start", c.rng.StartTime, "end", c.rng.EndTime, "interval", c.rng.Interval)
	return nil
}

// Stop deactivates the reminder. Ticks after Stop are no-ops.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = false
	c.next = ""
	c.persistLocked()
	logger.Info("Reminder stopped")
}

func (c *Controller) persistLocked() {
	c.store.SaveReminder(models.ReminderSettings{TimeRange: c.rng, IsActive: c.active})
}

// Tick evaluates the reminder at now. Outside the window nothing changes.
// Inside it fires at most once per qualifying minute and refreshes the
// next-reminder display.
func (c *Controller) Tick(now time.Time) TickResult {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return TickResult{}
	}

	current := now.Format(constants.ClockFormat)
	if !c.window(current, c.rng.StartTime, c.rng.EndTime) {
		res := TickResult{NextReminder: c.next}
		c.mu.Unlock()
		return res
	}

	res := TickResult{Inside: true}
	total := TotalMinutes(now)
	if Qualifies(now, c.rng.Interval) && (c.lastFired == nil || *c.lastFired != total) {
		c.lastFired = &total
		res.Fired = true
	}
	c.next = FormatNext(NextReminder(now, c.rng.Interval))
	res.NextReminder = c.next
	c.mu.Unlock()

	if res.Fired {
		c.fire(now)
	}
	return res
}

func (c *Controller) fire(now time.Time) {
	settings := c.store.LoadSettings()
	alert := notifier.NewAlert(fmt.Sprintf("Reminder for %s", now.Format(constants.DisplayFormat)), settings)
	logger.Debug("Reminder firing", "id", alert.ID, "minute", TotalMinutes(now), "sound", alert.Sound)

	if c.player == nil {
		return
	}
	if c.sync {
		c.play(alert)
		return
	}
	go c.play(alert)
}

func (c *Controller) play(alert notifier.Alert) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.player.Play(ctx, alert); err != nil {
		if errors.Is(err, notifier.ErrMuted) {
			logger.Debug("Reminder muted", "id", alert.ID)
			return
		}
		logger.Warn("Reminder playback failed", "id", alert.ID, "error", err)
	}
}

// Run ticks once per second until ctx is done or the reminder is stopped.
func (c *Controller) Run(ctx context.Context) error {
	ticker := time.NewTicker(constants.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !c.Active() {
				return nil
			}
			c.Tick(c.clock())
		}
	}
}
