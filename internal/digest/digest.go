package digest

import (
	"fmt"
	"strings"
	"time"
)

const signature = `--
taskdeck reminders
This message was generated locally and was not delivered.`

// Line is one task mentioned in a reminder.
type Line struct {
	Title    string
	DueDate  string
	Priority string
}

// Email is the content of a simulated reminder email.
type Email struct {
	To      string
	Subject string
	Date    time.Time
	Intro   string
	Lines   []Line
}

// Render returns e as plain text with mail-style headers.
func Render(e Email) string {
	var sb strings.Builder

	to := e.To
	if to == "" {
		to = "(no recipient)"
	}
	sb.WriteString(fmt.Sprintf("To: %s\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\n", e.Subject))
	if !e.Date.IsZero() {
		sb.WriteString(fmt.Sprintf("Date: %s\n", e.Date.Format(time.RFC1123Z)))
	}
	sb.WriteString("\n")

	if e.Intro != "" {
		sb.WriteString(e.Intro)
		sb.WriteString("\n\n")
	}

	for _, l := range e.Lines {
		sb.WriteString(fmt.Sprintf("- %s", l.Title))
		var meta []string
		if l.Priority != "" {
			meta = append(meta, l.Priority+" priority")
		}
		if l.DueDate != "" {
			meta = append(meta, "due "+l.DueDate)
		}
		if len(meta) > 0 {
			sb.WriteString(fmt.Sprintf(" (%s)", strings.Join(meta, ", ")))
		}
		sb.WriteString("\n")
	}
	if len(e.Lines) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(signature)
	sb.WriteString("\n")
	return sb.String()
}
