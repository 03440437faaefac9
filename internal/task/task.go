// Package task holds the task collection and everything derived from it:
// the store, filter projection, stats, deadline reminders and edit mode.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	CreatedAtLayout = "2006-01-02T15:04:05.000Z"
)

// Task is a single to-do item.
type Task struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Date        string `json:"date" yaml:"date"`
	Completed   bool   `json:"completed" yaml:"completed"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
}

// Fields is the user-editable part of a task.
type Fields struct {
	Title       string
	Description string
	Category    string
	Date        string
}

var (
	ErrNotFound   = errors.New("task not found")
	ErrValidation = errors.New("invalid task")
)

// ValidationError reports the first required field that failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (f Fields) normalize() Fields {
	return Fields{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Category:    strings.TrimSpace(f.Category),
		Date:        strings.TrimSpace(f.Date),
	}
}

// Validate trims the fields and checks the required ones.
func (f Fields) Validate() (Fields, error) {
	f = f.normalize()
	switch {
	case f.Title == "":
		return f, &ValidationError{Field: "title", Reason: "empty"}
	case f.Description == "":
		return f, &ValidationError{Field: "description", Reason: "empty"}
	case f.Date == "":
		return f, &ValidationError{Field: "date", Reason: "empty"}
	}
	if _, err := time.Parse(DateLayout, f.Date); err != nil {
		return f, &ValidationError{Field: "date", Reason: "not a YYYY-MM-DD date"}
	}
	return f, nil
}

// Fields returns the editable fields of t, used to pre-fill the edit form.
func (t Task) Fields() Fields {
	return Fields{
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Date:        t.Date,
	}
}

func (t *Task) apply(f Fields) {
	t.Title = f.Title
	t.Description = f.Description
	t.Category = f.Category
	t.Date = f.Date
}
