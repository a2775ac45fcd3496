package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// MinTitleLength is the number of characters a trimmed title must exceed.
const MinTitleLength = 3

// MaxDescriptionLength caps the optional description.
const MaxDescriptionLength = 1000

// Toggle returns the opposite status. Unknown values fall back to pending.
func (s Status) Toggle() Status {
	if s == StatusPending {
		return StatusCompleted
	}
	return StatusPending
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task represents a single to-do item.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Status      Status     `json:"status" yaml:"status"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Validate checks user input before it is handed to the store.
// The store itself never validates.
func (t *Task) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(t.Title)) <= MinTitleLength {
		return errors.New("title must be more than 3 characters")
	}

	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return errors.New("description must be 1000 characters or fewer")
	}

	return nil
}

// IsCompleted returns true if the task has been marked done.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}
