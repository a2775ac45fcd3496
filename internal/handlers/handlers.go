package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tasklist/internal/models"
)

// TaskStore is the task collection as seen by the HTTP layer.
type TaskStore interface {
	Tasks() []models.Task
	Get(id string) (models.Task, bool)
	Add(ctx context.Context, title, description string) models.Task
	Remove(ctx context.Context, id string)
	Update(ctx context.Context, id, title, description string)
	ToggleStatus(ctx context.Context, id string)
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	tasks  TaskStore
	logger *slog.Logger
}

// New creates a new Handlers instance.
func New(tasks TaskStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		tasks:  tasks,
		logger: logger,
	}
}

// taskID extracts the task id from URL parameters.
func taskID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	w.Write([]byte(message))
}

func (h *Handlers) respondJSON(w http.ResponseWriter, code int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("failed to encode response", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}
