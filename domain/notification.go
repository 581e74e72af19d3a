package domain

import (
	"encoding/json"
	"time"
)

type NotificationType string

const (
	NotifyTaskAssigned   NotificationType = "task_assigned"
	NotifyTaskUpdated    NotificationType = "task_updated"
	NotifyMessage        NotificationType = "message"
	NotifyTeamInvite     NotificationType = "team_invite"
	NotifyProjectCreated NotificationType = "project_created"
	NotifyMention        NotificationType = "mention"
)

// NotificationMeta points at the entities a notification is about.
type NotificationMeta struct {
	TaskID    string `json:"taskId,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	SenderID  string `json:"senderId,omitempty"`
}

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"isRead"`
	Link      string           `json:"link,omitempty"`
	Metadata  NotificationMeta `json:"metadata,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string           `json:"id"`
		LegacyID  string           `json:"_id"`
		UserID    string           `json:"userId"`
		Type      NotificationType `json:"type"`
		Title     string           `json:"title"`
		Message   string           `json:"message"`
		IsRead    bool             `json:"isRead"`
		Link      string           `json:"link"`
		Metadata  NotificationMeta `json:"metadata"`
		CreatedAt time.Time        `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Notification{
		ID:        canonicalID(raw.ID, raw.LegacyID),
		UserID:    raw.UserID,
		Type:      raw.Type,
		Title:     raw.Title,
		Message:   raw.Message,
		IsRead:    raw.IsRead,
		Link:      raw.Link,
		Metadata:  raw.Metadata,
		CreatedAt: raw.CreatedAt,
	}
	return nil
}
