package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"teamboard/domain"
)

type MessagesBackend interface {
	ListMessages(ctx context.Context, limit int, before string) ([]domain.Message, error)
	SendMessage(ctx context.Context, content string) (domain.Message, error)
}

// Messages mirrors the team chat history in arrival order, plus the typing
// presence of teammates currently composing.
type Messages struct {
	api MessagesBackend

	mu       sync.Mutex
	messages []domain.Message
	typing   map[string]string // user id -> display name
	loading  bool
	lastErr  string

	signal signal
}

func NewMessages(api MessagesBackend) *Messages {
	return &Messages{api: api}
}

func (s *Messages) Watch() (<-chan struct{}, func()) { return s.signal.watch() }

func (s *Messages) Snapshot() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Messages) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Messages) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Messages) ClearErr() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
	s.signal.notify()
}

func (s *Messages) Fetch(ctx context.Context, limit int, before string) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
	s.signal.notify()

	messages, err := s.api.ListMessages(ctx, limit, before)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.signal.notify()
		return fmt.Errorf("fetch messages: %w", err)
	}
	s.mu.Lock()
	s.messages = messages
	s.loading = false
	s.mu.Unlock()
	s.signal.notify()
	return nil
}

// Send posts a message. The local collection is left alone: the server
// broadcasts a message:new event that Append picks up, and Append's
// idempotency absorbs the echo of our own send.
func (s *Messages) Send(ctx context.Context, content string) (domain.Message, error) {
	msg, err := s.api.SendMessage(ctx, content)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.signal.notify()
		return domain.Message{}, fmt.Errorf("send message: %w", err)
	}
	return msg, nil
}

// Append adds a message from the realtime path; ids already present are
// ignored.
func (s *Messages) Append(msg domain.Message) {
	s.mu.Lock()
	for i := range s.messages {
		if s.messages[i].ID == msg.ID {
			s.mu.Unlock()
			return
		}
	}
	s.messages = append(s.messages, msg)
	delete(s.typing, msg.Sender.ID)
	s.mu.Unlock()
	s.signal.notify()
}

// SetTyping records that a teammate started composing. Repeats from the same
// user refresh the name without signalling.
func (s *Messages) SetTyping(t domain.Typing) {
	if t.UserID == "" {
		return
	}
	s.mu.Lock()
	if s.typing == nil {
		s.typing = make(map[string]string)
	}
	_, present := s.typing[t.UserID]
	s.typing[t.UserID] = t.Name
	s.mu.Unlock()
	if !present {
		s.signal.notify()
	}
}

// ClearTyping removes a teammate from the typing set; absent ids are a no-op.
func (s *Messages) ClearTyping(userID string) {
	s.mu.Lock()
	_, present := s.typing[userID]
	delete(s.typing, userID)
	s.mu.Unlock()
	if present {
		s.signal.notify()
	}
}

// Typing returns who is composing right now, sorted by user id so renders are
// stable.
func (s *Messages) Typing() []domain.Typing {
	s.mu.Lock()
	out := make([]domain.Typing, 0, len(s.typing))
	for id, name := range s.typing {
		out = append(out, domain.Typing{UserID: id, Name: name})
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
