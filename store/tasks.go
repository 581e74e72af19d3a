// Package store holds the client-side mirrors of server state. Each store
// exclusively owns its collection: the realtime router and UI components only
// ever call the store's mutation methods, never write state directly.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"teamboard/domain"
)

// ErrEmptyTitle is the only client-side validation the task store performs.
var ErrEmptyTitle = errors.New("store: task title must not be empty")

// TasksBackend is the slice of the REST client the task store needs.
type TasksBackend interface {
	ListTasks(ctx context.Context, projectID string) ([]domain.Task, error)
	CreateTask(ctx context.Context, n domain.NewTask) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, upd domain.TaskUpdate) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Tasks is the single source of truth for the task collection.
type Tasks struct {
	api TasksBackend

	mu      sync.Mutex
	tasks   []domain.Task
	loading bool
	lastErr string
	applied map[string]int64 // task id -> seq of the newest applied update response
	seq     int64

	signal signal
}

func NewTasks(api TasksBackend) *Tasks {
	return &Tasks{api: api, applied: make(map[string]int64)}
}

// Watch returns a channel that receives a wake-up after any change to the
// collection, loading flag or error field, plus a stop function.
func (s *Tasks) Watch() (<-chan struct{}, func()) { return s.signal.watch() }

// Snapshot returns a copy of the current collection.
func (s *Tasks) Snapshot() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Tasks) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the message of the most recent failed operation, empty when the
// last operation succeeded.
func (s *Tasks) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Tasks) ClearErr() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
	s.signal.notify()
}

func (s *Tasks) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
	s.signal.notify()
}

func (s *Tasks) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.signal.notify()
}

// Fetch replaces the collection with the server's answer, optionally scoped
// to one project. On failure the previous collection stays intact:
// stale-but-available beats empty.
func (s *Tasks) Fetch(ctx context.Context, projectID string) error {
	s.begin()
	tasks, err := s.api.ListTasks(ctx, projectID)
	if err != nil {
		s.fail(err)
		return fmt.Errorf("fetch tasks: %w", err)
	}
	s.mu.Lock()
	s.tasks = tasks
	s.loading = false
	s.mu.Unlock()
	s.signal.notify()
	return nil
}

// Create sends the fields to the backend and prepends the server-returned
// task on success. On failure no local mutation happens.
func (s *Tasks) Create(ctx context.Context, n domain.NewTask) (domain.Task, error) {
	if strings.TrimSpace(n.Title) == "" {
		s.fail(ErrEmptyTitle)
		return domain.Task{}, ErrEmptyTitle
	}
	s.begin()
	task, err := s.api.CreateTask(ctx, n)
	if err != nil {
		s.fail(err)
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.mu.Lock()
	s.tasks = append([]domain.Task{task}, s.tasks...)
	s.loading = false
	s.mu.Unlock()
	s.signal.notify()
	return task, nil
}

// Update sends a partial update and, on success, replaces the matching local
// task with the server's full representation so server-computed fields stay
// correct. A success response that lost the race to a newer update of the
// same task is discarded locally; the newer state stands.
func (s *Tasks) Update(ctx context.Context, id string, upd domain.TaskUpdate) (domain.Task, error) {
	seq := atomic.AddInt64(&s.seq, 1)
	s.begin()
	task, err := s.api.UpdateTask(ctx, id, upd)
	if err != nil {
		s.fail(err)
		return domain.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}
	s.mu.Lock()
	if seq > s.applied[id] {
		s.applied[id] = seq
		if i := indexOf(s.tasks, id); i >= 0 {
			s.tasks[i] = task
		}
	}
	s.loading = false
	s.mu.Unlock()
	s.signal.notify()
	return task, nil
}

// Delete removes the task locally only after the backend accepts the delete.
func (s *Tasks) Delete(ctx context.Context, id string) error {
	s.begin()
	if err := s.api.DeleteTask(ctx, id); err != nil {
		s.fail(err)
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	s.mu.Lock()
	s.tasks = removeByID(s.tasks, id)
	s.loading = false
	s.mu.Unlock()
	s.signal.notify()
	return nil
}

// UpsertFromEvent merges a task received on the realtime path: replace when
// the id is present, otherwise prepend. It never duplicates.
func (s *Tasks) UpsertFromEvent(task domain.Task) {
	s.mu.Lock()
	if i := indexOf(s.tasks, task.ID); i >= 0 {
		s.tasks[i] = task
	} else {
		s.tasks = append([]domain.Task{task}, s.tasks...)
	}
	s.mu.Unlock()
	s.signal.notify()
}

// RemoveByID drops a task on the realtime path; absent ids are a no-op.
func (s *Tasks) RemoveByID(id string) {
	s.mu.Lock()
	n := len(s.tasks)
	s.tasks = removeByID(s.tasks, id)
	changed := len(s.tasks) != n
	s.mu.Unlock()
	if changed {
		s.signal.notify()
	}
}

// MoveStatus is the transactional helper behind optimistic drag-and-drop:
// snapshot the prior status, apply the new one locally so the move renders
// before the round-trip, attempt the remote call, restore the snapshot on
// failure. The restore is a targeted single-field correction and leaves the
// field alone when something else already moved the task again during the
// round-trip.
func (s *Tasks) MoveStatus(ctx context.Context, id string, status domain.Status) error {
	s.mu.Lock()
	i := indexOf(s.tasks, id)
	if i < 0 {
		// Deleted concurrently; nothing to move.
		s.mu.Unlock()
		return nil
	}
	prev := s.tasks[i].Status
	if prev == status {
		s.mu.Unlock()
		return nil
	}
	s.tasks[i].Status = status
	s.mu.Unlock()
	s.signal.notify()

	if _, err := s.Update(ctx, id, domain.TaskUpdate{Status: &status}); err != nil {
		s.mu.Lock()
		if j := indexOf(s.tasks, id); j >= 0 && s.tasks[j].Status == status {
			s.tasks[j].Status = prev
		}
		s.mu.Unlock()
		s.signal.notify()
		return err
	}
	return nil
}

func indexOf(tasks []domain.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func removeByID(tasks []domain.Task, id string) []domain.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
