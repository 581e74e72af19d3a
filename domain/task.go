package domain

import (
	"encoding/json"
	"time"
)

// Status is a board column value. Transitions are unordered: any status is
// reachable from any other.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is one unit of work. ID is the reconciliation key across REST
// responses and realtime events; timestamps are server assigned.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Project     Ref       `json:"projectId"`
	Assignee    *Ref      `json:"assignedTo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string    `json:"id"`
		LegacyID    string    `json:"_id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Status      Status    `json:"status"`
		Priority    Priority  `json:"priority"`
		Project     Ref       `json:"projectId"`
		Assignee    *Ref      `json:"assignedTo"`
		CreatedAt   time.Time `json:"createdAt"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Task{
		ID:          canonicalID(raw.ID, raw.LegacyID),
		Title:       raw.Title,
		Description: raw.Description,
		Status:      raw.Status,
		Priority:    raw.Priority,
		Project:     raw.Project,
		Assignee:    raw.Assignee,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
	}
	return nil
}

// NewTask carries the fields for a create request. The server assigns id and
// timestamps and fills defaults for omitted status and priority.
type NewTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	ProjectID   string   `json:"projectId"`
	AssignedTo  string   `json:"assignedTo,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
}

// TaskUpdate carries a partial update; nil fields are left untouched by the
// server.
type TaskUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	AssignedTo  *string   `json:"assignedTo,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
}
