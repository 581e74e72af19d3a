package rest

import (
	"context"
	"net/http"

	"teamboard/domain"
)

// Assistant sends a natural-language command for server-side interpretation.
func (c *Client) Assistant(ctx context.Context, cmd domain.AssistantCommand) (domain.AssistantResponse, error) {
	var resp domain.AssistantResponse
	if err := c.do(ctx, http.MethodPost, "/assistant/command", nil, cmd, &resp); err != nil {
		return domain.AssistantResponse{}, err
	}
	return resp, nil
}
