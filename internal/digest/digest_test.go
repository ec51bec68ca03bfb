package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	out := Render(Email{
		To:      "a@b.com",
		Subject: "Task Reminder: 2 task(s) due soon",
		Date:    time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
		Intro:   "You have 2 pending task(s) due within the next 24 hours.",
		Lines: []Line{
			{Title: "Pay rent", DueDate: "2026-04-01", Priority: "high"},
			{Title: "Water plants"},
		},
	})

	assert.True(t, strings.HasPrefix(out, "To: a@b.com\nSubject: Task Reminder: 2 task(s) due soon\nDate: Wed, 01 Apr 2026 08:00:00 +0000\n\n"))
	assert.Contains(t, out, "- Pay rent (high priority, due 2026-04-01)\n")
	assert.Contains(t, out, "- Water plants\n")
	assert.Contains(t, out, "was not delivered")
}

func TestRenderWithoutRecipient(t *testing.T) {
	out := Render(Email{Subject: "s"})
	assert.Contains(t, out, "To: (no recipient)\n")
	assert.NotContains(t, out, "Date:")
}
