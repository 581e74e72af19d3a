package domain

import (
	"encoding/json"
	"time"
)

// Message is one chat message in the team channel.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Ref       `json:"senderId"`
	Team      Ref       `json:"teamId"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string    `json:"id"`
		LegacyID  string    `json:"_id"`
		Content   string    `json:"content"`
		Sender    Ref       `json:"senderId"`
		Team      Ref       `json:"teamId"`
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Message{
		ID:        canonicalID(raw.ID, raw.LegacyID),
		Content:   raw.Content,
		Sender:    raw.Sender,
		Team:      raw.Team,
		Timestamp: raw.Timestamp,
	}
	return nil
}
