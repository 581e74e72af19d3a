package domain

import "encoding/json"

// AssistantCommand is a natural-language request to the command assistant.
// Interpretation happens server side; this is only the client shape.
type AssistantCommand struct {
	Message   string `json:"message"`
	ProjectID string `json:"projectId,omitempty"`
}

// AssistantResponse is the assistant's answer. Data, when present, holds the
// task(s) or project(s) the action touched.
type AssistantResponse struct {
	Action   string          `json:"action"`
	Response string          `json:"response"`
	Data     json.RawMessage `json:"data,omitempty"`
}
