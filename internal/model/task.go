package model

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for due dates.
const DateLayout = "2006-01-02"

// Priority is the urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every valid priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the two known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task represents a single task in the collection.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	DueDate     string     `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Completed returns true if the task has been marked done.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// Due parses the due date as midnight in loc.
func (t Task) Due(loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(t.DueDate), loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// DaysUntilDue returns the number of calendar days between today and the due
// date, negative when the date has passed. ok is false when the due date does
// not parse.
func (t Task) DaysUntilDue(now time.Time) (days int, ok bool) {
	due, ok := t.Due(now.Location())
	if !ok {
		return 0, false
	}
	return daysBetween(now, due), true
}

// IsOverdue returns true if the task is past its due date and not completed.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed() {
		return false
	}
	days, ok := t.DaysUntilDue(now)
	return ok && days < 0
}

// IsDueToday returns true if the task's due date is today.
func (t Task) IsDueToday(now time.Time) bool {
	days, ok := t.DaysUntilDue(now)
	return ok && days == 0
}

// daysBetween counts whole calendar days from a to b, ignoring clock time.
// Both dates are projected onto UTC midnights so DST shifts cannot skew it.
func daysBetween(a, b time.Time) int {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
