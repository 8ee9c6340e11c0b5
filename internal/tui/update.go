package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/chime/internal/constants"
	"github.com/julianstephens/chime/internal/logger"
	"github.com/julianstephens/chime/internal/reminder"
	"github.com/julianstephens/chime/internal/timer"
)

const tabCount = 3

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Ticks must keep flowing while a form is open
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case clockTickMsg:
		m.now = time.Time(msg)
		return m, clockTick()
	case reminderTickMsg:
		return m.handleReminderTick(msg)
	case timerTickMsg:
		return m.handleTimerTick(msg)
	}

	switch m.state {
	case constants.StateEditReminder:
		return m.updateReminderForm(msg)
	case constants.StateEditSettings:
		return m.updateSettingsForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state + tabCount - 1) % tabCount
		m.status = ""
		return m, nil
	}

	switch m.state {
	case constants.StateReminder:
		return m.handleReminderKey(msg)
	case constants.StateTimer:
		return m.handleTimerKey(msg)
	case constants.StateSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) handleReminderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.reminderGen++
		if m.reminder.Active() {
			m.reminder.Stop()
			m.status = "Reminder stopped"
			return m, nil
		}
		if err := m.reminder.Start(); err != nil {
			if errors.Is(err, reminder.ErrIncompleteWindow) {
				m.status = "Set a start and end time first (press e)"
			} else {
				m.status = err.Error()
			}
			return m, nil
		}
		m.status = "Reminder started"
		return m, reminderTick(m.reminderGen)
	case key.Matches(msg, m.keys.Edit):
		m.reminderForm = newReminderFormModel(m.reminder.State().TimeRange)
		m.form = NewReminderForm(m.reminderForm, m.settings.DarkMode)
		m.formError = ""
		m.state = constants.StateEditReminder
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) handleReminderTick(msg reminderTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.reminderGen || !m.reminder.Active() {
		return m, nil
	}
	if res := m.reminder.Tick(msg.at); res.Fired {
		logger.Debug("Reminder fired in TUI", "next", res.NextReminder)
	}
	return m, reminderTick(m.reminderGen)
}

func (m Model) handleTimerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.timerGen++
		if m.stopwatch.Status() == timer.Stopped {
			m.stopwatch.Start()
			return m, timerTick(m.timerGen)
		}
		m.stopwatch.Stop()
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		if m.stopwatch.Status() == timer.Stopped {
			return m, nil
		}
		m.timerGen++
		m.stopwatch.Toggle()
		if m.stopwatch.Status() == timer.Running {
			return m, timerTick(m.timerGen)
		}
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.timerGen++
		m.stopwatch.Reset()
		return m, nil
	}
	return m, nil
}

func (m Model) handleTimerTick(msg timerTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.timerGen || m.stopwatch.Status() != timer.Running {
		return m, nil
	}
	m.stopwatch.Tick()
	return m, timerTick(m.timerGen)
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.settings = m.prefs.LoadSettings()
		m.settingsForm = newSettingsFormModel(m.settings)
		m.form = NewSettingsForm(m.settingsForm, m.settings.DarkMode)
		m.formError = ""
		m.state = constants.StateEditSettings
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Theme):
		m.settings.DarkMode = !m.settings.DarkMode
		m.applySettings()
		return m, nil
	}
	return m, nil
}

func (m *Model) applySettings() {
	m.prefs.SaveSettings(m.settings)
	m.styles = NewStyles(m.settings.DarkMode)
}

// updateForm forwards msg to the open form. It reports the form's state, or
// huh.StateAborted when esc was pressed.
func (m *Model) updateForm(msg tea.Msg) (huh.FormState, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return huh.StateAborted, nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return m.form.State, cmd
}

func (m Model) updateReminderForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		if err := m.reminder.Configure(m.reminderForm.TimeRange()); err != nil {
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.formError = ""
		m.status = "Reminder saved"
		m.state = constants.StateReminder
		if !m.reminder.Active() {
			m.reminderGen++
		}
		return m, nil
	case huh.StateAborted:
		m.formError = ""
		m.state = constants.StateReminder
		return m, nil
	}
	return m, cmd
}

func (m Model) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		settings := m.settingsForm.Settings(m.settings)
		if err := settings.Validate(); err != nil {
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.settings = settings
		m.applySettings()
		m.formError = ""
		m.status = "Settings saved"
		m.state = constants.StateSettings
		return m, nil
	case huh.StateAborted:
		m.formError = ""
		m.state = constants.StateSettings
		return m, nil
	}
	return m, cmd
}
