package domain

import (
	"encoding/json"
	"time"
)

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Team        Ref       `json:"teamId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Project) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string    `json:"id"`
		LegacyID    string    `json:"_id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Team        Ref       `json:"teamId"`
		CreatedAt   time.Time `json:"createdAt"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Project{
		ID:          canonicalID(raw.ID, raw.LegacyID),
		Name:        raw.Name,
		Description: raw.Description,
		Team:        raw.Team,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
	}
	return nil
}

// NewProject carries the fields for a project create request.
type NewProject struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProjectUpdate carries a partial project update.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
