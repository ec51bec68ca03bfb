// Package filter derives the visible subset of a task list. Every function is
// pure: inputs are never mutated.
package filter

import (
	"fmt"
	"strings"

	"github.com/nissyi-gh/taskdeck/internal/model"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = StatusFilter(model.StatusPending)
	StatusCompleted StatusFilter = StatusFilter(model.StatusCompleted)
)

// StatusFilters is the cycle order used by the UI.
var StatusFilters = []StatusFilter{StatusAll, StatusPending, StatusCompleted}

// PriorityFilter selects tasks by priority.
type PriorityFilter string

const (
	PriorityAll    PriorityFilter = "all"
	PriorityHigh   PriorityFilter = PriorityFilter(model.PriorityHigh)
	PriorityMedium PriorityFilter = PriorityFilter(model.PriorityMedium)
	PriorityLow    PriorityFilter = PriorityFilter(model.PriorityLow)
)

// PriorityFilters is the cycle order used by the UI.
var PriorityFilters = []PriorityFilter{PriorityAll, PriorityHigh, PriorityMedium, PriorityLow}

// Criteria bundles the three pipeline inputs.
type Criteria struct {
	Query    string
	Status   StatusFilter
	Priority PriorityFilter
}

// ParseStatus converts user input into a StatusFilter. Empty means all.
func ParseStatus(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return StatusAll, nil
	case StatusAll, StatusPending, StatusCompleted:
		return f, nil
	}
	return "", fmt.Errorf("unknown status filter %q (want all, pending or completed)", s)
}

// ParsePriority converts user input into a PriorityFilter. Empty means all.
func ParsePriority(s string) (PriorityFilter, error) {
	switch f := PriorityFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return PriorityAll, nil
	case PriorityAll, PriorityHigh, PriorityMedium, PriorityLow:
		return f, nil
	}
	return "", fmt.Errorf("unknown priority filter %q (want all, high, medium or low)", s)
}

// Search keeps tasks whose title or description contains query, ignoring
// case. A blank query returns tasks unchanged.
func Search(tasks []model.Task, query string) []model.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

// ByStatus keeps tasks whose status equals f.
func ByStatus(tasks []model.Task, f StatusFilter) []model.Task {
	if f == StatusAll || f == "" {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if StatusFilter(t.Status) == f {
			out = append(out, t)
		}
	}
	return out
}

// ByPriority keeps tasks whose priority equals f.
func ByPriority(tasks []model.Task, f PriorityFilter) []model.Task {
	if f == PriorityAll || f == "" {
		return tasks
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if PriorityFilter(t.Priority) == f {
			out = append(out, t)
		}
	}
	return out
}

// Apply runs search, then status, then priority over a copy of tasks.
func Apply(tasks []model.Task, c Criteria) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	out = Search(out, c.Query)
	out = ByStatus(out, c.Status)
	return ByPriority(out, c.Priority)
}
