package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/chime/internal/constants"
	"github.com/julianstephens/chime/internal/timer"
)

var tabTitles = []string{"Reminder", "Timer", "Settings"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateReminder:
		content = m.viewReminder()
	case constants.StateTimer:
		content = m.viewTimer()
	case constants.StateSettings:
		content = m.viewSettings()
	case constants.StateEditReminder, constants.StateEditSettings:
		content = m.viewForm()
	}

	var footer []string
	if m.status != "" {
		footer = append(footer, m.styles.Muted.Render(m.status))
	}
	if !m.prefs.Available() {
		footer = append(footer, m.styles.Warning.Render("Storage unavailable: changes last until you quit"))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.styles.Doc.Render(content),
		lipgloss.JoinVertical(lipgloss.Left, footer...),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	switch m.state {
	case constants.StateEditReminder:
		active = constants.StateReminder
	case constants.StateEditSettings:
		active = constants.StateSettings
	}

	var tabs []string
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) row(label, value string) string {
	return fmt.Sprintf("%s %s", m.styles.Label.Render(label), m.styles.Value.Render(value))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (m Model) viewReminder() string {
	st := m.reminder.State()

	status := "Idle"
	if st.Active {
		status = "Active"
	}

	rows := []string{
		m.styles.Title.Render("Interval Reminder"),
		m.row("Start:", orDash(st.StartTime)),
		m.row("End:", orDash(st.EndTime)),
		m.row("Every:", fmt.Sprintf("%d minutes", st.Interval)),
		m.row("Status:", status),
	}
	if st.Active {
		rows = append(rows, m.row("Next reminder:", orDash(st.NextReminder)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewTimer() string {
	var status string
	switch m.stopwatch.Status() {
	case timer.Running:
		status = "Running"
	case timer.Paused:
		status = "Paused"
	default:
		status = "Stopped"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.Title.Render("Timer"),
		m.styles.Clock.Render(m.stopwatch.String()),
		m.row("Status:", status),
		m.row("Current time:", m.now.Format(constants.DisplayFormat)),
	)
}

func (m Model) viewSettings() string {
	s := m.settings
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.Title.Render("Settings"),
		m.row("Notification sound:", string(s.NotificationSound)),
		m.row("Volume:", fmt.Sprintf("%d%%", s.NotificationVolume)),
		m.row("Vibration:", fmt.Sprintf("%t", s.Vibration)),
		m.row("Dark mode:", fmt.Sprintf("%t", s.DarkMode)),
		m.row("Default interval:", fmt.Sprintf("%d minutes", s.DefaultInterval)),
	)
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	if m.formError == "" {
		return m.form.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.form.View(), m.styles.Danger.Render(m.formError))
}
