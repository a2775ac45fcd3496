package todo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"tasklist/internal/models"
)

// Persister loads and saves the full task collection.
// Implementations absorb their own failures: Load always returns a usable
// collection and Save never reports an error to the caller.
type Persister interface {
	Load(ctx context.Context) []models.Task
	Save(ctx context.Context, tasks []models.Task)
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator overrides how new task ids are produced.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// Service owns the in-memory task collection. Every mutation is applied
// through the reducer and then written through the Persister.
type Service struct {
	mu        sync.Mutex
	tasks     []models.Task
	persister Persister
	now       func() time.Time
	newID     func() string
}

// NewService creates a Service backed by p. Call Init to seed it.
func NewService(p Persister, opts ...Option) *Service {
	s := &Service{
		tasks:     []models.Task{},
		persister: p,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init replaces the in-memory collection with the persisted one.
func (s *Service) Init(ctx context.Context) {
	loaded := s.persister.Load(ctx)
	if loaded == nil {
		loaded = []models.Task{}
	}

	s.mu.Lock()
	s.tasks = loaded
	s.mu.Unlock()
}

// Tasks returns a copy of the collection, oldest first.
func (s *Service) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Get returns the task with the given id.
func (s *Service) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Find(s.tasks, id)
}

// Add creates a pending task and returns it.
func (s *Service) Add(ctx context.Context, title, description string) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	s.commit(ctx, Add(s.tasks, id, title, description, s.now()))
	task, _ := Find(s.tasks, id)
	return task
}

// Remove deletes the task with the given id, if any.
func (s *Service) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ctx, Remove(s.tasks, id))
}

// Update sets a new title and description on the task with the given id, if any.
func (s *Service) Update(ctx context.Context, id, title, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ctx, Update(s.tasks, id, title, description, s.now()))
}

// ToggleStatus flips the status of the task with the given id, if any.
func (s *Service) ToggleStatus(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ctx, ToggleStatus(s.tasks, id, s.now()))
}

// commit must be called with mu held.
func (s *Service) commit(ctx context.Context, next []models.Task) {
	s.tasks = next
	s.persister.Save(ctx, slices.Clone(next))
}
