package rest

import (
	"context"
	"net/http"
	"net/url"

	"teamboard/domain"
)

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (domain.Project, error) {
	var project domain.Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, nil, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (c *Client) CreateProject(ctx context.Context, n domain.NewProject) (domain.Project, error) {
	var project domain.Project
	if err := c.do(ctx, http.MethodPost, "/projects", nil, n, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, upd domain.ProjectUpdate) (domain.Project, error) {
	var project domain.Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), nil, upd, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil, nil)
}
