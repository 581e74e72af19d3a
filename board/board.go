// Package board implements the drag-and-drop reconciliation rules and the
// column projections over the task collection. Columns are derived views,
// recomputed on every change; nothing here holds state of its own.
package board

import (
	"context"

	"teamboard/domain"
	"teamboard/store"
)

// Position locates a card on the board.
type Position struct {
	Column domain.Status
	Index  int
}

// Drop describes one finished drag operation. A nil Destination means the
// drag was cancelled.
type Drop struct {
	TaskID      string
	Source      Position
	Destination *Position
}

// Apply reconciles a finished drag with the task store. Cross-column moves
// change the task's status optimistically and revert on rejection; everything
// else is a no-op. Intra-column reordering has no durable effect because
// tasks carry no ordering field.
func Apply(ctx context.Context, tasks *store.Tasks, d Drop) error {
	if d.Destination == nil {
		return nil
	}
	dst := *d.Destination
	if dst == d.Source {
		return nil
	}
	if dst.Column == d.Source.Column {
		return nil
	}
	return tasks.MoveStatus(ctx, d.TaskID, dst.Column)
}

// Column returns the tasks belonging to one column, optionally narrowed to a
// project and an assignee. The filter is pure and stable: tasks keep their
// relative order and the input slice is never mutated.
func Column(tasks []domain.Task, status domain.Status, projectID, assigneeID string) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != status {
			continue
		}
		if projectID != "" && t.Project.ID != projectID {
			continue
		}
		if assigneeID != "" && (t.Assignee == nil || t.Assignee.ID != assigneeID) {
			continue
		}
		out = append(out, t)
	}
	return out
}
