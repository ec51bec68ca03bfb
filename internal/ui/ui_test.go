package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nissyi-gh/taskdeck/internal/auth"
	"github.com/nissyi-gh/taskdeck/internal/filter"
	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/nissyi-gh/taskdeck/internal/notify"
	"github.com/nissyi-gh/taskdeck/internal/storage"
	"github.com/nissyi-gh/taskdeck/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	local, err := storage.OpenSession()
	require.NoError(t, err)
	session, err := storage.OpenSession()
	require.NoError(t, err)
	t.Cleanup(func() {
		local.Close()
		session.Close()
	})

	s := store.NewTaskStore(local)
	n := notify.New(s, time.Hour)
	t.Cleanup(n.Stop)
	return NewModel(context.Background(), Deps{
		Gate:     auth.NewGate(session),
		Store:    s,
		Notifier: n,
		Prefs:    local,
		Debounce: time.Second,
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func login(t *testing.T, m Model) Model {
	t.Helper()
	m.login.email.SetValue(auth.DemoEmail)
	m.login.password.SetValue(auth.DemoPassword)
	m.login.active = 1
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestLoginRejectsInvalidEmail(t *testing.T) {
	m := newTestModel(t)
	m.login.email.SetValue("not-an-email")
	m.login.password.SetValue("secret1")
	m.login.active = 1

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateLogin, m.state)
	assert.ErrorIs(t, m.err, auth.ErrInvalidEmail)
	assert.False(t, m.deps.Notifier.Running())
}

func TestLoginStartsNotifierAndLogoutStopsIt(t *testing.T) {
	m := login(t, newTestModel(t))
	assert.Equal(t, stateList, m.state)
	assert.Equal(t, auth.DemoEmail, m.user.Email)
	assert.True(t, m.deps.Notifier.Running())

	m = update(t, m, runes("L"))
	assert.Equal(t, stateLogin, m.state)
	assert.False(t, m.deps.Notifier.Running())
	assert.False(t, m.deps.Gate.IsAuthenticated())
}

func TestSearchSettledFromOldSessionIsIgnored(t *testing.T) {
	m := login(t, newTestModel(t))

	m = update(t, m, searchSettledMsg{session: m.session - 1, query: "stale"})
	assert.Empty(t, m.query)

	m = update(t, m, searchSettledMsg{session: m.session, query: "rent"})
	assert.Equal(t, "rent", m.query)
}

func TestSearchKeystrokesUpdateRawQueryImmediately(t *testing.T) {
	m := login(t, newTestModel(t))
	m = update(t, m, runes("/"))
	require.Equal(t, stateSearch, m.state)

	m = update(t, m, runes("r"))
	m = update(t, m, runes("e"))
	assert.Equal(t, "re", m.deps.Store.SearchQuery())
	assert.Empty(t, m.query, "list query waits for the debounce")
	assert.True(t, m.debouncer.Pending())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateList, m.state)
	assert.False(t, m.debouncer.Pending())
}

func TestSearchEnterAppliesWithoutWaiting(t *testing.T) {
	m := login(t, newTestModel(t))
	msgs := make(chan tea.Msg, 8)
	m.send.attach(func(msg tea.Msg) { msgs <- msg })

	m = update(t, m, runes("/"))
	m = update(t, m, runes("r"))
	m = update(t, m, runes("e"))
	require.True(t, m.debouncer.Pending())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.debouncer.Pending())

	// The debounce is a full second; the flushed apply must arrive well
	// before that.
	timeout := time.After(200 * time.Millisecond)
	for {
		select {
		case msg := <-msgs:
			settled, ok := msg.(searchSettledMsg)
			if !ok {
				continue
			}
			assert.Equal(t, "re", settled.query)
			m = update(t, m, settled)
			assert.Equal(t, "re", m.query)
			return
		case <-timeout:
			t.Fatal("search was not applied on enter")
		}
	}
}

func TestFilterKeysCycle(t *testing.T) {
	m := login(t, newTestModel(t))

	m = update(t, m, runes("s"))
	assert.Equal(t, filter.StatusPending, m.deps.Store.Filters().Status)
	m = update(t, m, runes("s"))
	assert.Equal(t, filter.StatusCompleted, m.deps.Store.Filters().Status)

	m = update(t, m, runes("p"))
	assert.Equal(t, filter.PriorityHigh, m.deps.Store.Filters().Priority)

	m = update(t, m, runes("c"))
	assert.Equal(t, filter.StatusAll, m.deps.Store.Filters().Status)
	assert.Equal(t, filter.PriorityAll, m.deps.Store.Filters().Priority)
}

func TestFormShowsFieldErrors(t *testing.T) {
	m := login(t, newTestModel(t))
	m = update(t, m, runes("a"))
	require.Equal(t, stateForm, m.state)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, stateForm, m.state)
	assert.Contains(t, m.form.errs, model.FieldTitle)
	assert.Contains(t, m.form.errs, model.FieldDescription)
	assert.Contains(t, m.form.errs, model.FieldDueDate)
	assert.NotContains(t, m.form.errs, model.FieldPriority)
	assert.Empty(t, m.deps.Store.All())
}

func TestFormAddsTask(t *testing.T) {
	m := login(t, newTestModel(t))
	m = update(t, m, runes("a"))
	m.form.title.SetValue("Pay rent")
	m.form.desc.SetValue("Transfer before the 1st")
	m.form.due.SetValue("2026-11-01")
	m.form.active = fieldPriority
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, model.PriorityHigh, m.form.priority)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateList, m.state)
	all := m.deps.Store.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Pay rent", all[0].Title)
	assert.Equal(t, model.PriorityHigh, all[0].Priority)
	assert.Equal(t, "2026-11-01", all[0].DueDate)
}

func TestTaskItemMarks(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	overdue := TaskItem{Task: model.Task{Title: "late", Priority: model.PriorityHigh, Status: model.StatusPending, DueDate: "2026-10-18"}, now: now}
	today := TaskItem{Task: model.Task{Title: "now", Priority: model.PriorityLow, Status: model.StatusPending, DueDate: "2026-10-19"}, now: now}
	done := TaskItem{Task: model.Task{Title: "done", Priority: model.PriorityLow, Status: model.StatusCompleted, DueDate: "2026-10-18"}, now: now}

	assert.Equal(t, "[ ] !!! ⚠️ late", overdue.Title())
	assert.Equal(t, "[ ] !   📅 now", today.Title())
	assert.Equal(t, "[x] !   done", done.Title())
}

func TestDateInputDefaultsYearAndMonth(t *testing.T) {
	d := newDateInput()
	d.now = func() time.Time { return time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, "", d.String())

	d.SetValue("--9")
	assert.Equal(t, "2026-03-09", d.String())
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", v)

	d.SetValue("2026-02-30")
	_, err = d.Value()
	assert.Error(t, err)
}
