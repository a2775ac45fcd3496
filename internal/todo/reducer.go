// Package todo holds the task collection and the mutations applied to it.
//
// The reducer functions in this file are pure: each takes the current
// collection and returns a new one, leaving the input untouched. Persistence
// is layered on top by Service.
package todo

import (
	"slices"
	"time"

	"tasklist/internal/models"
)

// Add appends a new pending task to the end of the collection.
func Add(tasks []models.Task, id, title, description string, now time.Time) []models.Task {
	next := make([]models.Task, 0, len(tasks)+1)
	next = append(next, tasks...)
	return append(next, models.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      models.StatusPending,
		CreatedAt:   now,
	})
}

// Remove drops the task with the given id. Unknown ids leave the collection as is.
func Remove(tasks []models.Task, id string) []models.Task {
	next := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	return next
}

// Update replaces the title and description of the matching task.
func Update(tasks []models.Task, id, title, description string, now time.Time) []models.Task {
	return apply(tasks, id, func(t *models.Task) {
		t.Title = title
		t.Description = description
		t.UpdatedAt = &now
	})
}

// ToggleStatus flips the matching task between pending and completed.
func ToggleStatus(tasks []models.Task, id string, now time.Time) []models.Task {
	return apply(tasks, id, func(t *models.Task) {
		t.Status = t.Status.Toggle()
		t.UpdatedAt = &now
	})
}

// Find returns the task with the given id.
func Find(tasks []models.Task, id string) (models.Task, bool) {
	i := slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, false
	}
	return tasks[i], true
}

func apply(tasks []models.Task, id string, fn func(*models.Task)) []models.Task {
	next := slices.Clone(tasks)
	if next == nil {
		next = []models.Task{}
	}
	for i := range next {
		if next[i].ID == id {
			fn(&next[i])
		}
	}
	return next
}
