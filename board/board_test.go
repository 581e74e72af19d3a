package board

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"teamboard/domain"
	"teamboard/store"
)

type stubBackend struct {
	updateFn    func(ctx context.Context, id string, upd domain.TaskUpdate) (domain.Task, error)
	updateCalls int
}

func (s *stubBackend) ListTasks(context.Context, string) ([]domain.Task, error) {
	return nil, errors.New("unexpected ListTasks call")
}

func (s *stubBackend) CreateTask(context.Context, domain.NewTask) (domain.Task, error) {
	return domain.Task{}, errors.New("unexpected CreateTask call")
}

func (s *stubBackend) UpdateTask(ctx context.Context, id string, upd domain.TaskUpdate) (domain.Task, error) {
	s.updateCalls++
	if s.updateFn == nil {
		return domain.Task{}, errors.New("unexpected UpdateTask call")
	}
	return s.updateFn(ctx, id, upd)
}

func (s *stubBackend) DeleteTask(context.Context, string) error {
	return errors.New("unexpected DeleteTask call")
}

func board(t *testing.T, api store.TasksBackend, seed ...domain.Task) *store.Tasks {
	t.Helper()
	tasks := store.NewTasks(api)
	for i := len(seed) - 1; i >= 0; i-- {
		tasks.UpsertFromEvent(seed[i])
	}
	return tasks
}

func statusOf(t *testing.T, tasks *store.Tasks, id string) domain.Status {
	t.Helper()
	for _, task := range tasks.Snapshot() {
		if task.ID == id {
			return task.Status
		}
	}
	t.Fatalf("task %s not found", id)
	return ""
}

func TestApplyCommitsCrossColumnMove(t *testing.T) {
	api := &stubBackend{
		updateFn: func(_ context.Context, id string, upd domain.TaskUpdate) (domain.Task, error) {
			if id != "1" || upd.Status == nil || *upd.Status != domain.StatusDone {
				t.Fatalf("unexpected request: id=%s upd=%+v", id, upd)
			}
			return domain.Task{ID: "1", Status: domain.StatusDone}, nil
		},
	}
	tasks := board(t, api, domain.Task{ID: "1", Status: domain.StatusTodo})

	err := Apply(context.Background(), tasks, Drop{
		TaskID:      "1",
		Source:      Position{Column: domain.StatusTodo, Index: 0},
		Destination: &Position{Column: domain.StatusDone, Index: 0},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := statusOf(t, tasks, "1"); got != domain.StatusDone {
		t.Fatalf("expected status committed, got %s", got)
	}
}

func TestApplyRevertsOnRejection(t *testing.T) {
	sawOptimistic := false
	var tasks *store.Tasks
	api := &stubBackend{}
	api.updateFn = func(context.Context, string, domain.TaskUpdate) (domain.Task, error) {
		// The move must already be visible while the request is in flight.
		sawOptimistic = statusOf(t, tasks, "1") == domain.StatusInProgress
		return domain.Task{}, errors.New("rejected")
	}
	tasks = board(t, api, domain.Task{ID: "1", Status: domain.StatusTodo})

	err := Apply(context.Background(), tasks, Drop{
		TaskID:      "1",
		Source:      Position{Column: domain.StatusTodo},
		Destination: &Position{Column: domain.StatusInProgress},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !sawOptimistic {
		t.Fatal("expected the optimistic status before the round-trip finished")
	}
	if got := statusOf(t, tasks, "1"); got != domain.StatusTodo {
		t.Fatalf("expected status reverted, got %s", got)
	}
	if tasks.Err() == "" {
		t.Fatal("expected error recorded")
	}
}

func TestApplyNoOpDrops(t *testing.T) {
	api := &stubBackend{}
	tasks := board(t, api, domain.Task{ID: "1", Status: domain.StatusTodo})
	before := tasks.Snapshot()

	drops := []Drop{
		// Cancelled drag.
		{TaskID: "1", Source: Position{Column: domain.StatusTodo}},
		// Dropped exactly where it started.
		{TaskID: "1", Source: Position{Column: domain.StatusTodo, Index: 1}, Destination: &Position{Column: domain.StatusTodo, Index: 1}},
		// Reordered inside its own column.
		{TaskID: "1", Source: Position{Column: domain.StatusTodo, Index: 0}, Destination: &Position{Column: domain.StatusTodo, Index: 2}},
	}
	for _, d := range drops {
		if err := Apply(context.Background(), tasks, d); err != nil {
			t.Fatalf("apply %+v: %v", d, err)
		}
	}
	if api.updateCalls != 0 {
		t.Fatalf("expected no backend calls, got %d", api.updateCalls)
	}
	if !reflect.DeepEqual(tasks.Snapshot(), before) {
		t.Fatal("no-op drop mutated the collection")
	}
}

func TestApplyVanishedTaskIsSilent(t *testing.T) {
	api := &stubBackend{}
	tasks := board(t, api) // empty collection

	err := Apply(context.Background(), tasks, Drop{
		TaskID:      "gone",
		Source:      Position{Column: domain.StatusTodo},
		Destination: &Position{Column: domain.StatusDone},
	})
	if err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if api.updateCalls != 0 {
		t.Fatal("expected no backend call for a vanished task")
	}
}

func TestColumnFilters(t *testing.T) {
	alice := &domain.Ref{ID: "u1", Name: "alice"}
	bob := &domain.Ref{ID: "u2", Name: "bob"}
	input := []domain.Task{
		{ID: "1", Status: domain.StatusTodo, Project: domain.Ref{ID: "p1"}, Assignee: alice},
		{ID: "2", Status: domain.StatusDone, Project: domain.Ref{ID: "p1"}, Assignee: alice},
		{ID: "3", Status: domain.StatusTodo, Project: domain.Ref{ID: "p2"}, Assignee: bob},
		{ID: "4", Status: domain.StatusTodo, Project: domain.Ref{ID: "p1"}},
		{ID: "5", Status: domain.StatusTodo, Project: domain.Ref{ID: "p1"}, Assignee: alice},
	}

	cases := []struct {
		name       string
		status     domain.Status
		projectID  string
		assigneeID string
		want       []string
	}{
		{"status only", domain.StatusTodo, "", "", []string{"1", "3", "4", "5"}},
		{"project", domain.StatusTodo, "p1", "", []string{"1", "4", "5"}},
		{"assignee skips unassigned", domain.StatusTodo, "", "u1", []string{"1", "5"}},
		{"both filters", domain.StatusTodo, "p1", "u1", []string{"1", "5"}},
		{"empty column", domain.StatusInProgress, "", "", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Column(input, tc.status, tc.projectID, tc.assigneeID)
			ids := make([]string, 0, len(got))
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			if !reflect.DeepEqual(ids, tc.want) {
				t.Fatalf("got %v, want %v", ids, tc.want)
			}
		})
	}
}

func TestColumnDoesNotMutateInput(t *testing.T) {
	input := []domain.Task{
		{ID: "1", Status: domain.StatusTodo},
		{ID: "2", Status: domain.StatusDone},
	}
	before := make([]domain.Task, len(input))
	copy(before, input)

	_ = Column(input, domain.StatusDone, "", "")
	if !reflect.DeepEqual(input, before) {
		t.Fatal("input slice mutated")
	}
}
