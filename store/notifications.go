package store

import (
	"context"
	"fmt"
	"sync"

	"teamboard/domain"
	"teamboard/rest"
)

type NotificationsBackend interface {
	ListNotifications(ctx context.Context) (rest.NotificationList, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// Notifications mirrors the bell: the notification list plus its unread
// counter.
type Notifications struct {
	api NotificationsBackend

	mu      sync.Mutex
	items   []domain.Notification
	unread  int
	loading bool
	lastErr string

	signal signal
}

func NewNotifications(api NotificationsBackend) *Notifications {
	return &Notifications{api: api}
}

func (s *Notifications) Watch() (<-chan struct{}, func()) { return s.signal.watch() }

func (s *Notifications) Snapshot() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Notifications) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

func (s *Notifications) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Notifications) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Notifications) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
	s.signal.notify()

	list, err := s.api.ListNotifications(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.signal.notify()
		return fmt.Errorf("fetch notifications: %w", err)
	}
	s.mu.Lock()
	s.items = list.Notifications
	s.unread = list.UnreadCount
	s.loading = false
	s.mu.Unlock()
	s.signal.notify()
	return nil
}

// MarkRead flips one notification after the server accepts it. The unread
// counter never goes below zero.
func (s *Notifications) MarkRead(ctx context.Context, id string) error {
	if err := s.api.MarkNotificationRead(ctx, id); err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.signal.notify()
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			if !s.items[i].IsRead {
				s.items[i].IsRead = true
				if s.unread > 0 {
					s.unread--
				}
			}
			break
		}
	}
	s.mu.Unlock()
	s.signal.notify()
	return nil
}

func (s *Notifications) MarkAllRead(ctx context.Context) error {
	if err := s.api.MarkAllNotificationsRead(ctx); err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.signal.notify()
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	s.mu.Lock()
	for i := range s.items {
		s.items[i].IsRead = true
	}
	s.unread = 0
	s.mu.Unlock()
	s.signal.notify()
	return nil
}

// Add prepends a notification from the realtime path and bumps the unread
// counter; ids already present are ignored.
func (s *Notifications) Add(n domain.Notification) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == n.ID {
			s.mu.Unlock()
			return
		}
	}
	s.items = append([]domain.Notification{n}, s.items...)
	if !n.IsRead {
		s.unread++
	}
	s.mu.Unlock()
	s.signal.notify()
}
