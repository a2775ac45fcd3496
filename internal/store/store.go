package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"tasklist/internal/models"
)

// DefaultKey is the key the task collection is stored under.
const DefaultKey = "todos"

// KV is a local, synchronous key-value backend.
type KV interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Adapter persists the whole task collection as a JSON array under one key.
// It never returns errors: failures are logged and the caller carries on with
// in-memory state.
type Adapter struct {
	kv     KV
	key    string
	logger *slog.Logger
}

// NewAdapter creates an Adapter. An empty key falls back to DefaultKey and a
// nil logger to slog.Default().
func NewAdapter(kv KV, key string, logger *slog.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		kv:     kv,
		key:    key,
		logger: logger.With("component", "persistence", "key", key),
	}
}

// Load reads the stored collection. Missing, unreadable or malformed state
// yields an empty collection.
func (a *Adapter) Load(ctx context.Context) []models.Task {
	raw, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		a.logger.Warn("failed to read stored tasks, starting empty", "error", err)
		return []models.Task{}
	}
	if !ok {
		return []models.Task{}
	}

	tasks, err := decodeTasks(raw)
	if err != nil {
		a.logger.Warn("stored tasks are corrupt, starting empty", "error", err)
		return []models.Task{}
	}

	return a.dedupe(tasks)
}

// Save overwrites the stored collection with tasks.
func (a *Adapter) Save(ctx context.Context, tasks []models.Task) {
	if tasks == nil {
		tasks = []models.Task{}
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		a.logger.Error("could not serialize tasks", "error", err, "count", len(tasks))
		return
	}

	if err := a.kv.Set(ctx, a.key, string(data)); err != nil {
		a.logger.Error("could not save tasks", "error", err, "count", len(tasks))
	}
}

func decodeTasks(raw string) ([]models.Task, error) {
	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// dedupe drops entries without an id and repeated ids, keeping the first.
func (a *Adapter) dedupe(tasks []models.Task) []models.Task {
	seen := make(map[string]struct{}, len(tasks))
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			a.logger.Warn("dropping stored task without id", "title", t.Title)
			continue
		}
		if _, dup := seen[t.ID]; dup {
			a.logger.Warn("dropping stored task with duplicate id", "id", t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}
