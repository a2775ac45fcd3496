package handlers

import (
	"net/http"
	"slices"

	"tasklist/internal/models"
)

// ListTasks returns the collection, oldest first unless ?order=newest.
// ?status=pending|completed narrows the result.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks := h.tasks.Tasks()

	if status := models.Status(r.URL.Query().Get("status")); status != "" {
		if !status.Valid() {
			respondError(w, http.StatusBadRequest, "status must be 'pending' or 'completed'")
			return
		}
		tasks = slices.DeleteFunc(tasks, func(t models.Task) bool { return t.Status != status })
	}

	switch r.URL.Query().Get("order") {
	case "", "oldest":
	case "newest":
		slices.Reverse(tasks)
	default:
		respondError(w, http.StatusBadRequest, "order must be 'oldest' or 'newest'")
		return
	}

	h.respondJSON(w, http.StatusOK, tasks)
}

// GetTask returns a single task.
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	task, ok := h.tasks.Get(taskID(r))
	if !ok {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// CreateTask adds a new pending task.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	input := models.Task{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	if err := input.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task := h.tasks.Add(r.Context(), input.Title, input.Description)
	h.respondJSON(w, http.StatusCreated, task)
}

// UpdateTask replaces the title and description of a task.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	input := models.Task{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	if err := input.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.tasks.Update(r.Context(), id, input.Title, input.Description)

	// The store ignores unknown ids, so read back to tell the client.
	task, ok := h.tasks.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// DeleteTask deletes a task. Deleting an unknown id succeeds.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	h.tasks.Remove(r.Context(), taskID(r))
	w.WriteHeader(http.StatusOK)
}

// ToggleTask flips a task between pending and completed.
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)

	h.tasks.ToggleStatus(r.Context(), id)

	task, ok := h.tasks.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// Health reports that the server is up.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
