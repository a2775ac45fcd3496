package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tasklist/internal/models"
)

var errNoMatch = errors.New("no matching task")

// resolveTaskRef finds the task a user means by ref. In order, ref may be a
// full id, a 1-based position as printed by "list", or a unique id prefix.
func resolveTaskRef(tasks []models.Task, ref string) (models.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Task{}, errors.New("task reference required")
	}

	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(tasks) {
			return tasks[n-1], nil
		}
	}

	var matches []models.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return models.Task{}, errNoMatch
	case 1:
		return matches[0], nil
	default:
		return models.Task{}, fmt.Errorf("ambiguous task reference %q matches %d tasks", ref, len(matches))
	}
}
