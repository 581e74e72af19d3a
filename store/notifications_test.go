package store

import (
	"context"
	"errors"
	"testing"

	"teamboard/domain"
	"teamboard/rest"
)

type stubNotificationsAPI struct {
	listFn        func(ctx context.Context) (rest.NotificationList, error)
	markReadFn    func(ctx context.Context, id string) error
	markAllReadFn func(ctx context.Context) error
}

func (s *stubNotificationsAPI) ListNotifications(ctx context.Context) (rest.NotificationList, error) {
	if s.listFn == nil {
		return rest.NotificationList{}, errors.New("unexpected ListNotifications call")
	}
	return s.listFn(ctx)
}

func (s *stubNotificationsAPI) MarkNotificationRead(ctx context.Context, id string) error {
	if s.markReadFn == nil {
		return errors.New("unexpected MarkNotificationRead call")
	}
	return s.markReadFn(ctx, id)
}

func (s *stubNotificationsAPI) MarkAllNotificationsRead(ctx context.Context) error {
	if s.markAllReadFn == nil {
		return errors.New("unexpected MarkAllNotificationsRead call")
	}
	return s.markAllReadFn(ctx)
}

func TestNotificationsFetchAdoptsServerCount(t *testing.T) {
	api := &stubNotificationsAPI{
		listFn: func(context.Context) (rest.NotificationList, error) {
			return rest.NotificationList{
				Notifications: []domain.Notification{{ID: "n1"}, {ID: "n2", IsRead: true}},
				UnreadCount:   1,
			}, nil
		},
	}
	s := NewNotifications(api)

	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if s.Unread() != 1 || len(s.Snapshot()) != 2 {
		t.Fatalf("unexpected state: unread=%d items=%d", s.Unread(), len(s.Snapshot()))
	}
}

func TestMarkReadFlipsAfterServerAccepts(t *testing.T) {
	accepted := false
	api := &stubNotificationsAPI{
		markReadFn: func(_ context.Context, id string) error {
			if id != "n1" {
				t.Fatalf("unexpected id %q", id)
			}
			accepted = true
			return nil
		},
	}
	s := NewNotifications(api)
	s.Add(domain.Notification{ID: "n1"})

	if err := s.MarkRead(context.Background(), "n1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !accepted {
		t.Fatal("backend never called")
	}
	if got := s.Snapshot(); !got[0].IsRead {
		t.Fatal("notification not flipped")
	}
	if s.Unread() != 0 {
		t.Fatalf("unexpected unread count %d", s.Unread())
	}

	// Marking it again keeps the counter at zero.
	if err := s.MarkRead(context.Background(), "n1"); err != nil {
		t.Fatalf("second mark read: %v", err)
	}
	if s.Unread() != 0 {
		t.Fatalf("counter went negative: %d", s.Unread())
	}
}

func TestMarkReadFailureLeavesStateAlone(t *testing.T) {
	api := &stubNotificationsAPI{
		markReadFn: func(context.Context, string) error { return errors.New("rejected") },
	}
	s := NewNotifications(api)
	s.Add(domain.Notification{ID: "n1"})

	if err := s.MarkRead(context.Background(), "n1"); err == nil {
		t.Fatal("expected error")
	}
	if s.Snapshot()[0].IsRead || s.Unread() != 1 {
		t.Fatal("state mutated despite rejection")
	}
	if s.Err() == "" {
		t.Fatal("expected error recorded")
	}
}

func TestMarkAllReadZeroesCounter(t *testing.T) {
	api := &stubNotificationsAPI{
		markAllReadFn: func(context.Context) error { return nil },
	}
	s := NewNotifications(api)
	s.Add(domain.Notification{ID: "n1"})
	s.Add(domain.Notification{ID: "n2"})

	if err := s.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	if s.Unread() != 0 {
		t.Fatalf("unexpected unread count %d", s.Unread())
	}
	for _, n := range s.Snapshot() {
		if !n.IsRead {
			t.Fatalf("notification %s not flipped", n.ID)
		}
	}
}

func TestAddPrependsAndDeduplicates(t *testing.T) {
	s := NewNotifications(&stubNotificationsAPI{})

	s.Add(domain.Notification{ID: "n1"})
	s.Add(domain.Notification{ID: "n2"})
	s.Add(domain.Notification{ID: "n2"})
	s.Add(domain.Notification{ID: "n3", IsRead: true})

	got := s.Snapshot()
	if len(got) != 3 || got[0].ID != "n3" || got[1].ID != "n2" || got[2].ID != "n1" {
		t.Fatalf("unexpected order: %+v", got)
	}
	// Already-read arrivals do not bump the counter.
	if s.Unread() != 2 {
		t.Fatalf("unexpected unread count %d", s.Unread())
	}
}
