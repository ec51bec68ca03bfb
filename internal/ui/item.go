package ui

import (
	"fmt"
	"time"

	"github.com/nissyi-gh/taskdeck/internal/model"
)

var priorityMarks = map[model.Priority]string{
	model.PriorityHigh:   "!!!",
	model.PriorityMedium: "!! ",
	model.PriorityLow:    "!  ",
}

// TaskItem wraps model.Task to satisfy the list.DefaultItem interface.
type TaskItem struct {
	Task model.Task
	now  time.Time
}

func (i TaskItem) Title() string {
	check := "[ ]"
	if i.Task.Completed() {
		check = "[x]"
	}
	dueMark := ""
	if i.Task.IsOverdue(i.now) {
		dueMark = "⚠️ "
	} else if !i.Task.Completed() && i.Task.IsDueToday(i.now) {
		dueMark = "📅 "
	}
	return fmt.Sprintf("%s %s %s%s", check, priorityMarks[i.Task.Priority], dueMark, i.Task.Title)
}

func (i TaskItem) Description() string {
	return fmt.Sprintf("due %s · %s", i.Task.DueDate, i.Task.Description)
}

func (i TaskItem) FilterValue() string {
	return i.Task.Title
}
