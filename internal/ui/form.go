package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nissyi-gh/taskdeck/internal/model"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldDueDate
	fieldCount
)

// taskForm edits the four user-supplied fields of a task. editID is empty
// while creating.
type taskForm struct {
	editID   string
	title    textinput.Model
	desc     textarea.Model
	priority model.Priority
	due      dateInput
	active   int
	errs     model.ValidationErrors
}

func newTaskForm() taskForm {
	title := textinput.New()
	title.Placeholder = "Task title..."
	title.CharLimit = 256
	title.Width = 50

	desc := textarea.New()
	desc.Placeholder = "Task description..."
	desc.CharLimit = 4096
	desc.ShowLineNumbers = false
	desc.SetWidth(50)
	desc.SetHeight(3)

	return taskForm{
		title:    title,
		desc:     desc,
		priority: model.PriorityMedium,
		due:      newDateInput(),
	}
}

func (f *taskForm) setWidth(w int) {
	if w > 20 {
		f.title.Width = min(w-16, 80)
		f.desc.SetWidth(min(w-16, 80))
	}
}

func (f *taskForm) openNew() {
	f.editID = ""
	f.title.Reset()
	f.desc.Reset()
	f.priority = model.PriorityMedium
	f.due.Reset()
	f.active = fieldTitle
	f.errs = nil
}

func (f *taskForm) openEdit(t model.Task) {
	f.openNew()
	f.editID = t.ID
	f.title.SetValue(t.Title)
	f.desc.SetValue(t.Description)
	f.priority = t.Priority
	f.due.SetValue(t.DueDate)
}

func (f *taskForm) focusCurrent() tea.Cmd {
	f.title.Blur()
	f.desc.Blur()
	f.due.Blur()
	switch f.active {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.desc.Focus()
	case fieldDueDate:
		return f.due.Focus()
	}
	return nil
}

func (f taskForm) draft() model.Draft {
	return model.Draft{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimSpace(f.desc.Value()),
		Priority:    f.priority,
		DueDate:     f.due.String(),
	}
}

func (f taskForm) patch() model.Patch {
	d := f.draft()
	return model.Patch{
		Title:       &d.Title,
		Description: &d.Description,
		Priority:    &d.Priority,
		DueDate:     &d.DueDate,
	}
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := &m.form
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = stateList
			return m, nil
		case "tab":
			f.active = (f.active + 1) % fieldCount
			cmd := f.focusCurrent()
			return m, cmd
		case "shift+tab":
			f.active = (f.active + fieldCount - 1) % fieldCount
			cmd := f.focusCurrent()
			return m, cmd
		case "ctrl+s":
			return m.submitForm()
		case "enter":
			if f.active != fieldDescription {
				return m.submitForm()
			}
		case "left", "right", " ":
			if f.active == fieldPriority {
				if keyMsg.String() == "left" {
					f.priority = prev(model.Priorities, f.priority)
				} else {
					f.priority = next(model.Priorities, f.priority)
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.active {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	case fieldDueDate:
		f.due, cmd = f.due.Update(msg)
	}
	return m, cmd
}

// submitForm adds or updates the task. Validation errors keep the form open
// with a message under each offending field.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := &m.form
	var err error
	if f.editID == "" {
		var t model.Task
		t, err = m.deps.Store.Add(f.draft())
		if err == nil {
			m.status = "Added " + t.Title
		}
	} else {
		err = m.deps.Store.Update(f.editID, f.patch())
		if err == nil {
			m.status = "Updated " + f.draft().Title
		}
	}

	var verrs model.ValidationErrors
	if errors.As(err, &verrs) {
		f.errs = verrs
		return m, nil
	}
	if err != nil {
		m.err = err
		return m, nil
	}
	f.errs = nil
	m.err = nil
	m.state = stateList
	return m, m.loadTasks
}

func prev[T comparable](cycle []T, cur T) T {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+len(cycle)-1)%len(cycle)]
		}
	}
	return cycle[0]
}

func (m Model) viewForm() string {
	f := m.form
	heading := "New Task"
	if f.editID != "" {
		heading = "Edit Task"
	}

	label := func(idx int, name string) string {
		if f.active == idx {
			return m.styles.focused.Render(name)
		}
		return m.styles.label.Render(name)
	}
	fieldErr := func(key string) string {
		if msg, ok := f.errs[key]; ok {
			return "\n" + m.styles.label.Render("") + m.styles.err.Render(msg)
		}
		return ""
	}

	var prios []string
	for _, p := range model.Priorities {
		s := string(p)
		if p == f.priority {
			s = m.styles.priority[p].Render("[" + s + "]")
		} else {
			s = m.styles.status.Render(" " + s + " ")
		}
		prios = append(prios, s)
	}

	var sb strings.Builder
	sb.WriteString(m.styles.title.Render(heading) + "\n\n")
	sb.WriteString(label(fieldTitle, "Title") + f.title.View() + fieldErr(model.FieldTitle) + "\n\n")
	sb.WriteString(label(fieldDescription, "Description") + "\n" + f.desc.View() + fieldErr(model.FieldDescription) + "\n\n")
	sb.WriteString(label(fieldPriority, "Priority") + strings.Join(prios, " ") + fieldErr(model.FieldPriority) + "\n\n")
	sb.WriteString(label(fieldDueDate, "Due date") + f.due.View() + fieldErr(model.FieldDueDate) + "\n\n")
	sb.WriteString(m.styles.status.Render("tab: next field • ←/→: priority or date part • enter/ctrl+s: save • esc: cancel"))
	return sb.String()
}
