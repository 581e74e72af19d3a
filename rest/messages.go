package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"teamboard/domain"
)

// ListMessages fetches team chat history, newest last. A non-zero limit caps
// the page; before restricts to messages older than the given message id.
func (c *Client) ListMessages(ctx context.Context, limit int, before string) ([]domain.Message, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if before != "" {
		q.Set("before", before)
	}
	var messages []domain.Message
	if err := c.do(ctx, http.MethodGet, "/messages", q, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) SendMessage(ctx context.Context, content string) (domain.Message, error) {
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	var msg domain.Message
	if err := c.do(ctx, http.MethodPost, "/messages", nil, body, &msg); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}
