package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Field names used as keys in ValidationErrors.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPriority    = "priority"
	FieldDueDate     = "dueDate"
)

// Draft holds the user-supplied fields of a task that does not exist yet.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     string
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	Priority    *Priority
	DueDate     *string
	Status      *Status
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.DueDate == nil && p.Status == nil
}

// ValidationErrors maps a field name to a user-facing message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "invalid task: " + strings.Join(parts, "; ")
}

// Validate checks that every required field of d is present and well formed.
// It returns nil when d is valid.
func Validate(d Draft) ValidationErrors {
	errs := ValidationErrors{}
	checkTitle(errs, d.Title)
	checkDescription(errs, d.Description)
	checkPriority(errs, d.Priority)
	checkDueDate(errs, d.DueDate)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidatePatch applies the Validate rules to the fields present in p only.
func ValidatePatch(p Patch) ValidationErrors {
	errs := ValidationErrors{}
	if p.Title != nil {
		checkTitle(errs, *p.Title)
	}
	if p.Description != nil {
		checkDescription(errs, *p.Description)
	}
	if p.Priority != nil {
		checkPriority(errs, *p.Priority)
	}
	if p.DueDate != nil {
		checkDueDate(errs, *p.DueDate)
	}
	if p.Status != nil && !p.Status.Valid() {
		errs["status"] = "Status must be pending or completed"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkTitle(errs ValidationErrors, v string) {
	if strings.TrimSpace(v) == "" {
		errs[FieldTitle] = "Title is required"
	}
}

func checkDescription(errs ValidationErrors, v string) {
	if strings.TrimSpace(v) == "" {
		errs[FieldDescription] = "Description is required"
	}
}

func checkPriority(errs ValidationErrors, p Priority) {
	switch {
	case p == "":
		errs[FieldPriority] = "Priority is required"
	case !p.Valid():
		errs[FieldPriority] = "Priority must be high, medium or low"
	}
}

func checkDueDate(errs ValidationErrors, v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		errs[FieldDueDate] = "Due date is required"
		return
	}
	if _, err := time.Parse(DateLayout, v); err != nil {
		errs[FieldDueDate] = "Due date must be YYYY-MM-DD"
	}
}
