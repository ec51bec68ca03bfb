package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nissyi-gh/taskdeck/internal/auth"
)

type loginForm struct {
	email    textinput.Model
	password textinput.Model
	active   int // 0:email, 1:password
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginForm{email: email, password: password}
}

func (f *loginForm) focus() tea.Cmd {
	if f.active == 1 {
		f.email.Blur()
		return f.password.Focus()
	}
	f.password.Blur()
	return f.email.Focus()
}

func (f *loginForm) reset() {
	f.email.Reset()
	f.password.Reset()
	f.active = 0
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			m.login.active = 1 - m.login.active
			cmd := m.login.focus()
			return m, cmd
		case "enter":
			if m.login.active == 0 {
				m.login.active = 1
				cmd := m.login.focus()
				return m, cmd
			}
			sess, err := m.deps.Gate.Login(m.login.email.Value(), m.login.password.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.status = ""
			m.login.reset()
			m = m.admit(sess)
			return m, m.loadTasks
		}
	}

	var cmd tea.Cmd
	if m.login.active == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m Model) viewLogin() string {
	emailLabel, passLabel := m.styles.label, m.styles.label
	if m.login.active == 0 {
		emailLabel = m.styles.focused
	} else {
		passLabel = m.styles.focused
	}
	return m.styles.title.Render("taskdeck · Sign in") + "\n\n" +
		emailLabel.Render("Email") + m.login.email.View() + "\n" +
		passLabel.Render("Password") + m.login.password.View() + "\n\n" +
		m.styles.status.Render("Demo account: "+auth.DemoEmail+" / "+auth.DemoPassword) + "\n" +
		m.styles.status.Render("tab: switch field • enter: sign in • esc: quit")
}
