package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/nissyi-gh/taskdeck/internal/theme"
)

type palette struct {
	accent, muted, danger, confirm, text, border string
}

var palettes = map[theme.Theme]palette{
	theme.Light: {accent: "170", muted: "241", danger: "196", confirm: "212", text: "235", border: "245"},
	theme.Dark:  {accent: "213", muted: "245", danger: "203", confirm: "219", text: "252", border: "240"},
}

type styles struct {
	app      lipgloss.Style
	title    lipgloss.Style
	status   lipgloss.Style
	err      lipgloss.Style
	confirm  lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	bell     lipgloss.Style
	detail   lipgloss.Style
	descBox  lipgloss.Style
	priority map[model.Priority]lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[theme.Light]
	}
	return styles{
		app:     lipgloss.NewStyle().Padding(1, 2).Foreground(lipgloss.Color(p.text)),
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.danger)),
		confirm: lipgloss.NewStyle().Foreground(lipgloss.Color(p.confirm)).Bold(true),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)).Width(13),
		focused: lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true).Width(13),
		bell:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.confirm)).Bold(true),
		detail: lipgloss.NewStyle().
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.border)),
		descBox: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)),
		priority: map[model.Priority]lipgloss.Style{
			model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		},
	}
}
