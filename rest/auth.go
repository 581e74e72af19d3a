package rest

import (
	"context"
	"net/http"

	"teamboard/domain"
)

// Me returns the authenticated user behind the current bearer token.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, name string) (domain.User, error) {
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	var user domain.User
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, body, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
