package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateNotifications(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	notes := m.deps.Notifier.Notifications()

	switch keyMsg.String() {
	case "esc", "q", "N":
		m.state = stateList
		return m, nil
	case "j", "down":
		if m.noteCursor < len(notes)-1 {
			m.noteCursor++
		}
	case "k", "up":
		if m.noteCursor > 0 {
			m.noteCursor--
		}
	case "d", "x":
		if m.noteCursor < len(notes) {
			m.deps.Notifier.Clear(notes[m.noteCursor].ID)
			if m.noteCursor > 0 && m.noteCursor >= len(notes)-1 {
				m.noteCursor--
			}
		}
	case "C":
		m.deps.Notifier.ClearAll()
		m.noteCursor = 0
	case "y":
		if m.noteCursor < len(notes) {
			if err := clipboard.WriteAll(m.deps.Notifier.Digest(notes[m.noteCursor])); err != nil {
				m.err = fmt.Errorf("copy reminder: %w", err)
				return m, nil
			}
			m.err = nil
			m.status = "Reminder copied to clipboard"
		}
	}
	return m, nil
}

func (m Model) viewNotifications() string {
	notes := m.deps.Notifier.Notifications()

	var sb strings.Builder
	sb.WriteString(m.styles.title.Render(fmt.Sprintf("Reminders (%d)", len(notes))) + "\n\n")
	if len(notes) == 0 {
		sb.WriteString(m.styles.status.Render("No reminders. Tasks due today or tomorrow show up here.") + "\n")
	}
	for i, n := range notes {
		cursor := "  "
		subject := n.Subject
		if i == m.noteCursor {
			cursor = "> "
			subject = m.styles.confirm.Render(subject)
		}
		fmt.Fprintf(&sb, "%s%s  %s\n", cursor, n.Timestamp.Local().Format("15:04:05"), subject)
		if i == m.noteCursor {
			sb.WriteString("    " + n.Message + "\n")
			for _, t := range n.Tasks {
				prio := string(t.Priority)
				if st, ok := m.styles.priority[t.Priority]; ok {
					prio = st.Render(prio)
				}
				fmt.Fprintf(&sb, "    • %s (%s, due %s)\n", t.Title, prio, t.DueDate)
			}
		}
	}
	if m.status != "" {
		sb.WriteString("\n" + m.styles.status.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + m.styles.status.Render("j/k: move • d: dismiss • C: clear all • y: copy email • esc: back"))
	return sb.String()
}
