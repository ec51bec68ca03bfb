package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nissyi-gh/taskdeck/internal/auth"
	"github.com/nissyi-gh/taskdeck/internal/debounce"
	"github.com/nissyi-gh/taskdeck/internal/filter"
	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/nissyi-gh/taskdeck/internal/notify"
	"github.com/nissyi-gh/taskdeck/internal/stats"
	"github.com/nissyi-gh/taskdeck/internal/storage"
	"github.com/nissyi-gh/taskdeck/internal/store"
	"github.com/nissyi-gh/taskdeck/internal/theme"
)

type appState int

const (
	stateLogin appState = iota
	stateList
	stateSearch
	stateForm
	stateConfirm
	stateNotifications
)

// Deps are the collaborators the TUI drives.
type Deps struct {
	Gate            *auth.Gate
	Store           *store.TaskStore
	Notifier        *notify.Notifier
	Prefs           storage.KV
	Debounce        time.Duration
	DefaultStatus   filter.StatusFilter
	DefaultPriority filter.PriorityFilter
}

// sender delivers messages produced off the UI goroutine (timers, the
// notifier) to the running program. Sends are asynchronous so a callback can
// never block on the event loop.
type sender struct {
	mu      sync.Mutex
	deliver func(tea.Msg)
}

func (s *sender) Send(msg tea.Msg) {
	s.mu.Lock()
	deliver := s.deliver
	s.mu.Unlock()
	if deliver != nil {
		go deliver(msg)
	}
}

// attach routes messages to fn, normally (*tea.Program).Send.
func (s *sender) attach(fn func(tea.Msg)) {
	s.mu.Lock()
	s.deliver = fn
	s.mu.Unlock()
}

type tasksLoadedMsg []model.Task

// searchSettledMsg carries the debounced search text. session ties it to the
// login that produced it.
type searchSettledMsg struct {
	session int
	query   string
}

type notifiedMsg struct {
	session int
}

// Model is the top-level BubbleTea model for the taskdeck TUI.
type Model struct {
	state   appState
	deps    Deps
	send    *sender
	ctx     context.Context
	keys    extraKeyMap
	theme   theme.Theme
	styles  styles
	session int
	user    auth.Session

	login       loginForm
	list        list.Model
	searchInput textinput.Model
	query       string
	debouncer   *debounce.Debouncer
	form        taskForm
	noteCursor  int

	status string
	err    error
	width  int
	height int
}

// NewModel creates a new TUI model. It starts on the login screen unless a
// session record is already present.
func NewModel(ctx context.Context, d Deps) Model {
	if d.DefaultStatus == "" {
		d.DefaultStatus = filter.StatusAll
	}
	if d.DefaultPriority == "" {
		d.DefaultPriority = filter.PriorityAll
	}
	keys := newExtraKeyMap()
	th := theme.Load(d.Prefs)
	st := newStyles(th)

	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(0)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "taskdeck"
	l.Styles.Title = st.title
	l.SetShowHelp(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	si := textinput.New()
	si.Placeholder = "Search title or description..."
	si.CharLimit = 256
	si.Prompt = "/ "

	m := Model{
		state:       stateLogin,
		deps:        d,
		send:        &sender{},
		ctx:         ctx,
		keys:        keys,
		theme:       th,
		styles:      st,
		login:       newLoginForm(),
		list:        l,
		searchInput: si,
		form:        newTaskForm(),
	}
	if sess, ok := d.Gate.Current(); ok {
		m = m.admit(sess)
	} else {
		m.login.focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.state == stateLogin {
		return textinput.Blink
	}
	return m.loadTasks
}

// admit switches to the dashboard for sess and arms the per-session timers.
func (m Model) admit(sess auth.Session) Model {
	m.session++
	m.user = sess
	m.state = stateList
	m.query = ""
	m.searchInput.Reset()
	m.deps.Store.ClearFilters()
	m.deps.Store.SetStatusFilter(m.deps.DefaultStatus)
	m.deps.Store.SetPriorityFilter(m.deps.DefaultPriority)
	m = m.rearmDebouncer()

	n := m.deps.Notifier
	session, send := m.session, m.send
	n.SetHook(sess.Email, func(notify.Notification) { send.Send(notifiedMsg{session: session}) })
	n.Start(m.ctx)
	return m
}

// teardown stops everything admit started. Late callbacks carry the old
// session number and are ignored.
func (m Model) teardown() Model {
	m.deps.Notifier.Stop()
	m.deps.Notifier.SetHook("", nil)
	m.deps.Notifier.ClearAll()
	if m.debouncer != nil {
		m.debouncer.Stop()
	}
	m.session++
	return m
}

func (m Model) loadTasks() tea.Msg {
	return tasksLoadedMsg(m.deps.Store.Query(m.query))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := m.styles.app.GetFrameSize()
		m.list.SetSize((msg.Width-h)*60/100, msg.Height-v-4)
		m.form.setWidth(msg.Width - h)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m = m.teardown()
			return m, tea.Quit
		}

	case tasksLoadedMsg:
		items := make([]list.Item, len(msg))
		now := time.Now()
		for i, t := range msg {
			items[i] = TaskItem{Task: t, now: now}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case searchSettledMsg:
		if msg.session != m.session || m.state == stateLogin {
			return m, nil
		}
		m.query = msg.query
		return m, m.loadTasks

	case notifiedMsg:
		if msg.session != m.session {
			return m, nil
		}
		if n := len(m.deps.Notifier.Notifications()); n > 0 {
			m.status = fmt.Sprintf("📧 %d reminder(s) waiting", n)
		}
		return m, nil
	}

	switch m.state {
	case stateLogin:
		return m.updateLogin(msg)
	case stateList:
		return m.updateList(msg)
	case stateSearch:
		return m.updateSearch(msg)
	case stateForm:
		return m.updateForm(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateNotifications:
		return m.updateNotifications(msg)
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			if item, ok := m.list.SelectedItem().(TaskItem); ok {
				m.deps.Store.Delete(item.Task.ID)
				m.status = "Deleted " + item.Task.Title
			}
			m.state = stateList
			return m, m.loadTasks
		case "n", "esc":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m Model) View() string {
	var errView string
	if m.err != nil {
		errView = "\n" + m.styles.err.Render("Error: "+m.err.Error()) + "\n"
	}

	switch m.state {
	case stateLogin:
		return m.styles.app.Render(m.viewLogin() + errView)
	case stateForm:
		return m.styles.app.Render(m.viewForm() + errView)
	case stateConfirm:
		item, _ := m.list.SelectedItem().(TaskItem)
		return m.styles.app.Render(
			m.styles.confirm.Render("Delete Task?") + "\n\n" +
				"  " + item.Task.Title + "\n\n" +
				m.styles.status.Render("y: delete • n/esc: cancel") +
				errView,
		)
	case stateNotifications:
		return m.styles.app.Render(m.viewNotifications() + errView)
	default:
		var sb strings.Builder
		sb.WriteString(m.viewHeader())
		sb.WriteString("\n")
		if m.state == stateSearch {
			sb.WriteString(m.searchInput.View())
		} else {
			sb.WriteString(m.styles.status.Render(m.filterLine()))
		}
		sb.WriteString("\n")
		h, v := m.styles.app.GetFrameSize()
		detail := m.styles.detail.
			Width(m.width - h - m.list.Width()).
			Height(m.height - v - 4).
			Render(m.renderDetail())
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), detail))
		if m.status != "" {
			sb.WriteString("\n" + m.styles.status.Render(m.status))
		}
		return m.styles.app.Render(sb.String() + errView)
	}
}

// viewHeader shows statistics over the full collection, independent of the
// active filters.
func (m Model) viewHeader() string {
	s := stats.Calculate(m.deps.Store.All(), time.Now())
	bell := "🔔 0"
	if n := len(m.deps.Notifier.Notifications()); n > 0 {
		bell = m.styles.bell.Render(fmt.Sprintf("🔔 %d", n))
	}
	left := m.styles.title.Render("taskdeck") + "  " + m.styles.status.Render(m.user.Email)
	statsLine := fmt.Sprintf("Total %d  Completed %d  Pending %d  ", s.Total, s.Completed, s.Pending)
	overdue := fmt.Sprintf("Overdue %d", s.Overdue)
	if s.Overdue > 0 {
		overdue = m.styles.err.Render(overdue)
	}
	rate := fmt.Sprintf("  %d%% done", s.CompletionRate)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", bell) + "\n" + statsLine + overdue + rate
}

func (m Model) filterLine() string {
	c := m.deps.Store.Filters()
	q := m.query
	if q == "" {
		q = "-"
	}
	return fmt.Sprintf("search: %s   status: %s   priority: %s", q, c.Status, c.Priority)
}

// Run starts the TUI and blocks until the user quits. Timers are stopped
// before it returns.
func Run(ctx context.Context, d Deps) error {
	m := NewModel(ctx, d)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.send.attach(p.Send)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.teardown()
	} else {
		d.Notifier.Stop()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
