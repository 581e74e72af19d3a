package domain

import "encoding/json"

// Realtime event names broadcast by the backend. Task and message events
// arrive on the team scope; notifications arrive on the personal scope.
const (
	EventTaskCreated     = "task:created"
	EventTaskUpdated     = "task:updated"
	EventTaskDeleted     = "task:deleted"
	EventMessageNew      = "message:new"
	EventNotificationNew = "notification:new"
	EventUserTyping      = "user-typing"
	EventUserStopTyping  = "user-stop-typing"
)

// Envelope is the wire frame for one realtime event.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// TaskDeleted is the payload of a task:deleted event. Deletions carry only
// the identifier, never the full task.
type TaskDeleted struct {
	TaskID string `json:"taskId"`
}

// Typing is the payload of the user-typing / user-stop-typing events.
type Typing struct {
	TeamID string `json:"teamId"`
	UserID string `json:"userId"`
	Name   string `json:"userName,omitempty"`
}
