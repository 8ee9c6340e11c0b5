package constants

import "time"

// SessionState represents the current tab or sub-state of the TUI
type SessionState int

// NotificationSound is one of the bundled alert sounds
type NotificationSound string

const (
	AppName           = "chime"
	DefaultConfigPath = "~/.config/chime/chime.db"
	Version           = "v0.1.0"

	// Storage keys. These are shared with previously stored data and must not change.
	KeyUserSettings     = "userSettings"
	KeyReminderSettings = "reminderSettings"
	KeyProbe            = "__test__"

	// Notify constants
	NotifierLockfileName   = "chime-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.chime"
	TrayExecutablePrefix   = "chime-tray"
	PlaybackTimeout        = 3 * time.Second

	// TickInterval is the polling period of the reminder and timer loops
	TickInterval = time.Second

	// Sounds
	SoundBeep  NotificationSound = "beep"
	SoundBell  NotificationSound = "bell"
	SoundChime NotificationSound = "chime"
)

// Session States. The first three double as tab indexes.
const (
	StateReminder SessionState = iota
	StateTimer
	StateSettings
	StateEditReminder
	StateEditSettings
)

// Intervals lists every reminder interval, in minutes, the app accepts.
var Intervals = []int{5, 10, 15, 20, 30, 60}

// Sounds lists every notification sound the app accepts.
var Sounds = []NotificationSound{SoundBeep, SoundBell, SoundChime}
