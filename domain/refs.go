package domain

import "encoding/json"

// Ref points at a related entity. The backend serializes references either as
// a bare id string or as an embedded object that may carry the legacy "_id"
// field alongside "id". Ref normalizes both shapes into a canonical ID at
// decode time so nothing downstream branches on payload shape.
type Ref struct {
	ID   string
	Name string
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*r = Ref{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	var obj struct {
		ID       string `json:"id"`
		LegacyID string `json:"_id"`
		Name     string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = Ref{ID: canonicalID(obj.ID, obj.LegacyID), Name: obj.Name}
	return nil
}

// MarshalJSON emits the bare id form; request payloads only ever carry ids.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// canonicalID resolves the backend's dual identifier fields. The legacy field
// wins when both are present, matching how the backend keys its own lookups.
func canonicalID(id, legacy string) string {
	if legacy != "" {
		return legacy
	}
	return id
}
