package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nissyi-gh/taskdeck/internal/debounce"
	"github.com/nissyi-gh/taskdeck/internal/filter"
	"github.com/nissyi-gh/taskdeck/internal/theme"
)

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m = m.teardown()
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Add):
		m.form.openNew()
		m.state = stateForm
		cmd := m.form.focusCurrent()
		return m, cmd

	case key.Matches(keyMsg, m.keys.Edit):
		if item, ok := m.list.SelectedItem().(TaskItem); ok {
			m.form.openEdit(item.Task)
			m.state = stateForm
			cmd := m.form.focusCurrent()
			return m, cmd
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if item, ok := m.list.SelectedItem().(TaskItem); ok {
			m.deps.Store.ToggleStatus(item.Task.ID)
			return m, m.loadTasks
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if m.list.SelectedItem() != nil {
			m.state = stateConfirm
			return m, nil
		}

	case key.Matches(keyMsg, m.keys.Search):
		m.state = stateSearch
		m.searchInput.SetValue(m.deps.Store.SearchQuery())
		m.searchInput.CursorEnd()
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(keyMsg, m.keys.Status):
		c := m.deps.Store.Filters()
		m.deps.Store.SetStatusFilter(next(filter.StatusFilters, c.Status))
		return m, m.loadTasks

	case key.Matches(keyMsg, m.keys.Priority):
		c := m.deps.Store.Filters()
		m.deps.Store.SetPriorityFilter(next(filter.PriorityFilters, c.Priority))
		return m, m.loadTasks

	case key.Matches(keyMsg, m.keys.Clear):
		m.deps.Store.ClearFilters()
		m.searchInput.Reset()
		m.query = ""
		m = m.rearmDebouncer()
		return m, m.loadTasks

	case key.Matches(keyMsg, m.keys.Notifications):
		m.state = stateNotifications
		m.noteCursor = 0
		return m, nil

	case key.Matches(keyMsg, m.keys.Theme):
		m.theme = m.theme.Toggle()
		if err := theme.Save(m.deps.Prefs, m.theme); err != nil {
			m.err = err
		}
		m.styles = newStyles(m.theme)
		m.list.Styles.Title = m.styles.title
		return m, nil

	case key.Matches(keyMsg, m.keys.Logout):
		m = m.teardown()
		m.deps.Gate.Logout()
		m.state = stateLogin
		m.user.Email = ""
		m.status = ""
		m.err = nil
		cmd := m.login.focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// rearmDebouncer replaces the debouncer so callbacks scheduled before a reset
// never fire.
func (m Model) rearmDebouncer() Model {
	if m.debouncer != nil {
		m.debouncer.Stop()
	}
	m.debouncer = debounce.New(m.deps.Debounce)
	return m
}

// updateSearch records every keystroke as the raw search text and schedules
// the debounced apply. enter flushes the pending apply instead of waiting.
func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.searchInput.Blur()
			m.state = stateList
			m.debouncer.Flush()
			return m, nil
		case "esc":
			m.searchInput.Blur()
			m.state = stateList
			return m, nil
		}
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		m.deps.Store.SetSearchQuery(after)
		session, send := m.session, m.send
		m.debouncer.Trigger(func() {
			send.Send(searchSettledMsg{session: session, query: after})
		})
	}
	return m, cmd
}

func next[T comparable](cycle []T, cur T) T {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return m.styles.status.Render("No tasks match.")
	}
	t := item.Task
	now := time.Now()

	desc := m.styles.descBox.Render(t.Description)

	prio := string(t.Priority)
	if st, ok := m.styles.priority[t.Priority]; ok {
		prio = st.Render(prio)
	}

	due := "due:       " + t.DueDate
	if days, ok := t.DaysUntilDue(now); ok && !t.Completed() {
		switch {
		case days < 0:
			due = m.styles.err.Render(fmt.Sprintf("⚠️ %s (%d day(s) overdue)", due, -days))
		case days == 0:
			due = "📅 " + due + " (today)"
		case days == 1:
			due += " (tomorrow)"
		}
	}

	var sb strings.Builder
	sb.WriteString(m.styles.title.Render(t.Title) + "\n\n")
	sb.WriteString(desc + "\n\n")
	sb.WriteString("priority:  " + prio + "\n")
	sb.WriteString("status:    " + string(t.Status) + "\n")
	sb.WriteString(due + "\n")
	sb.WriteString("created:   " + t.CreatedAt.Local().Format("2006-01-02 15:04") + "\n")
	if t.UpdatedAt != nil {
		sb.WriteString("updated:   " + t.UpdatedAt.Local().Format("2006-01-02 15:04") + "\n")
	}
	if t.CompletedAt != nil {
		sb.WriteString("completed: " + t.CompletedAt.Local().Format("2006-01-02 15:04") + "\n")
	}
	sb.WriteString("\n" + m.styles.status.Render("e: edit  d: delete  enter: toggle"))
	return sb.String()
}
