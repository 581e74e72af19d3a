package rest

import (
	"context"
	"net/http"
	"net/url"

	"teamboard/domain"
)

func (c *Client) GetTeam(ctx context.Context) (domain.Team, error) {
	var team domain.Team
	if err := c.do(ctx, http.MethodGet, "/team", nil, nil, &team); err != nil {
		return domain.Team{}, err
	}
	return team, nil
}

func (c *Client) UpdateTeam(ctx context.Context, upd domain.TeamUpdate) (domain.Team, error) {
	var team domain.Team
	if err := c.do(ctx, http.MethodPut, "/team", nil, upd, &team); err != nil {
		return domain.Team{}, err
	}
	return team, nil
}

func (c *Client) ListMembers(ctx context.Context) ([]domain.User, error) {
	var members []domain.User
	if err := c.do(ctx, http.MethodGet, "/team/members", nil, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (c *Client) AddMember(ctx context.Context, m domain.NewMember) (domain.User, error) {
	var member domain.User
	if err := c.do(ctx, http.MethodPost, "/team/members", nil, m, &member); err != nil {
		return domain.User{}, err
	}
	return member, nil
}

func (c *Client) UpdateMemberRole(ctx context.Context, memberID string, role domain.Role) (domain.User, error) {
	body := struct {
		Role domain.Role `json:"role"`
	}{Role: role}
	var member domain.User
	if err := c.do(ctx, http.MethodPut, "/team/members/"+url.PathEscape(memberID), nil, body, &member); err != nil {
		return domain.User{}, err
	}
	return member, nil
}

func (c *Client) RemoveMember(ctx context.Context, memberID string) error {
	return c.do(ctx, http.MethodDelete, "/team/members/"+url.PathEscape(memberID), nil, nil, nil)
}
