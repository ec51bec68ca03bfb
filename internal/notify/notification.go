package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nissyi-gh/taskdeck/internal/model"
)

// TaskRef is a snapshot of the task fields a reminder refers to.
type TaskRef struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	DueDate  string         `json:"dueDate"`
	Priority model.Priority `json:"priority"`
}

// Notification is one simulated reminder email.
type Notification struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Tasks     []TaskRef `json:"tasks"`
}

// DueSoon returns the tasks that are not completed and due today or
// tomorrow. Overdue tasks are excluded.
func DueSoon(tasks []model.Task, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Completed() {
			continue
		}
		days, ok := t.DaysUntilDue(now)
		if ok && days >= 0 && days <= 1 {
			out = append(out, t)
		}
	}
	return out
}

// Compose builds a single aggregate notification covering tasks.
func Compose(tasks []model.Task, now time.Time) Notification {
	refs := make([]TaskRef, 0, len(tasks))
	for _, t := range tasks {
		refs = append(refs, TaskRef{ID: t.ID, Title: t.Title, DueDate: t.DueDate, Priority: t.Priority})
	}
	return Notification{
		ID:        uuid.NewString(),
		Timestamp: now,
		Subject:   fmt.Sprintf("Task Reminder: %d task(s) due soon", len(tasks)),
		Message:   fmt.Sprintf("You have %d pending task(s) due within the next 24 hours.", len(tasks)),
		Tasks:     refs,
	}
}
