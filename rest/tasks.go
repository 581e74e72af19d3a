package rest

import (
	"context"
	"net/http"
	"net/url"

	"teamboard/domain"
)

// ListTasks fetches all tasks visible to the current user, optionally scoped
// to one project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	q := url.Values{}
	if projectID != "" {
		q.Set("projectId", projectID)
	}
	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", q, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task; the server assigns id and timestamps.
func (c *Client) CreateTask(ctx context.Context, n domain.NewTask) (domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, n, &task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateTask sends a partial update and returns the server's full
// representation, including the refreshed updatedAt.
func (c *Client) UpdateTask(ctx context.Context, id string, upd domain.TaskUpdate) (domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), nil, upd, &task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, nil)
}
