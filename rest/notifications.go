package rest

import (
	"context"
	"net/http"
	"net/url"

	"teamboard/domain"
)

// NotificationList is the payload of GET /notifications.
type NotificationList struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

func (c *Client) ListNotifications(ctx context.Context) (NotificationList, error) {
	var list NotificationList
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, nil, &list); err != nil {
		return NotificationList{}, err
	}
	return list, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/notifications/read-all", nil, nil, nil)
}
