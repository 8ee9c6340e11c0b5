package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/chime/internal/constants"
	"github.com/julianstephens/chime/internal/models"
	"github.com/julianstephens/chime/internal/prefs"
	"github.com/julianstephens/chime/internal/reminder"
	"github.com/julianstephens/chime/internal/timer"
)

// Tick messages carry the generation they were scheduled under. Starting or
// stopping a loop bumps its generation, so ticks already in flight are dropped.
type reminderTickMsg struct {
	gen int
	at  time.Time
}

type timerTickMsg struct {
	gen int
}

type clockTickMsg time.Time

type Model struct {
	prefs     *prefs.Store
	reminder  *reminder.Controller
	stopwatch *timer.Stopwatch
	settings  models.Settings

	state  constants.SessionState
	keys   KeyMap
	help   help.Model
	styles Styles

	form         *huh.Form
	reminderForm *ReminderFormModel
	settingsForm *SettingsFormModel
	formError    string
	status       string

	reminderGen int
	timerGen    int
	now         time.Time

	quitting bool
	width    int
	height   int
}

func NewModel(store *prefs.Store, rc *reminder.Controller) Model {
	settings := store.LoadSettings()
	return Model{
		prefs:     store,
		reminder:  rc,
		stopwatch: timer.New(),
		settings:  settings,
		state:     constants.StateReminder,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		styles:    NewStyles(settings.DarkMode),
		now:       time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTick()}
	if m.reminder.Active() {
		cmds = append(cmds, reminderTick(m.reminderGen))
	}
	return tea.Batch(cmds...)
}

func clockTick() tea.Cmd {
	return tea.Tick(constants.TickInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func reminderTick(gen int) tea.Cmd {
	return tea.Tick(constants.TickInterval, func(t time.Time) tea.Msg {
		return reminderTickMsg{gen: gen, at: t}
	})
}

func timerTick(gen int) tea.Cmd {
	return tea.Tick(constants.TickInterval, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateReminder:
		keys = append(keys, m.keys.Toggle, m.keys.Edit)
	case constants.StateTimer:
		keys = append(keys, m.keys.Toggle, m.keys.Pause, m.keys.Reset)
	case constants.StateSettings:
		keys = append(keys, m.keys.Edit, m.keys.Theme)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case constants.StateReminder:
		actions = []key.Binding{m.keys.Toggle, m.keys.Edit}
	case constants.StateTimer:
		actions = []key.Binding{m.keys.Toggle, m.keys.Pause, m.keys.Reset}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Edit, m.keys.Theme}
	}

	return [][]key.Binding{global, actions}
}
