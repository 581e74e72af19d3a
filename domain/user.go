package domain

import "encoding/json"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
)

// User is a team member as reported by the backend.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Team         Ref    `json:"teamId"`
	ProfileImage string `json:"profileImage,omitempty"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string `json:"id"`
		LegacyID     string `json:"_id"`
		Email        string `json:"email"`
		Name         string `json:"name"`
		Role         Role   `json:"role"`
		Team         Ref    `json:"teamId"`
		ProfileImage string `json:"profileImage"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User{
		ID:           canonicalID(raw.ID, raw.LegacyID),
		Email:        raw.Email,
		Name:         raw.Name,
		Role:         raw.Role,
		Team:         raw.Team,
		ProfileImage: raw.ProfileImage,
	}
	return nil
}

// TeamUpdate carries a partial team update.
type TeamUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// NewMember carries the fields for inviting a member to the team.
type NewMember struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Admin       Ref    `json:"adminId"`
}

func (t *Team) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string `json:"id"`
		LegacyID    string `json:"_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Admin       Ref    `json:"adminId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Team{
		ID:          canonicalID(raw.ID, raw.LegacyID),
		Name:        raw.Name,
		Description: raw.Description,
		Admin:       raw.Admin,
	}
	return nil
}
