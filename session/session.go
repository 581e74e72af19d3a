// Package session ties a user's authenticated lifetime to the stores and the
// realtime connection. Stores are constructed here and passed around
// explicitly; there are no package-level instances.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"

	"teamboard/domain"
	"teamboard/realtime"
	"teamboard/rest"
	"teamboard/store"
)

// ErrStarted is returned by Start on a session that is already running.
var ErrStarted = errors.New("session: already started")

// Backend is the full REST surface the stores consume. Both *rest.Client and
// *rest.Cache satisfy it.
type Backend interface {
	store.TasksBackend
	store.ProjectsBackend
	store.MessagesBackend
	store.NotificationsBackend
}

// Session owns one user's stores and their realtime bindings.
type Session struct {
	router *realtime.Router
	token  rest.TokenSource

	Tasks         *store.Tasks
	Projects      *store.Projects
	Messages      *store.Messages
	Notifications *store.Notifications

	mu      sync.Mutex
	unsubs  []func()
	started bool
}

// New builds a session around the given backend and router. The token source
// may be nil; it is only used for expiry introspection.
func New(api Backend, router *realtime.Router, token rest.TokenSource) *Session {
	return &Session{
		router:        router,
		token:         token,
		Tasks:         store.NewTasks(api),
		Projects:      store.NewProjects(api),
		Messages:      store.NewMessages(api),
		Notifications: store.NewNotifications(api),
	}
}

// Start connects the realtime router for the user's team and binds inbound
// events to store mutations. It requires a known team affiliation.
func (s *Session) Start(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrStarted
	}
	if user.Team.ID == "" {
		return realtime.ErrNoTeam
	}
	if err := s.router.Connect(ctx, user.Team.ID, user.ID); err != nil {
		return err
	}
	s.unsubs = []func(){
		s.router.Subscribe(domain.EventTaskCreated, decode(domain.EventTaskCreated, s.Tasks.UpsertFromEvent)),
		s.router.Subscribe(domain.EventTaskUpdated, decode(domain.EventTaskUpdated, s.Tasks.UpsertFromEvent)),
		s.router.Subscribe(domain.EventTaskDeleted, decode(domain.EventTaskDeleted, func(d domain.TaskDeleted) {
			s.Tasks.RemoveByID(d.TaskID)
		})),
		s.router.Subscribe(domain.EventMessageNew, decode(domain.EventMessageNew, s.Messages.Append)),
		s.router.Subscribe(domain.EventNotificationNew, decode(domain.EventNotificationNew, s.Notifications.Add)),
		s.router.Subscribe(domain.EventUserTyping, decode(domain.EventUserTyping, func(t domain.Typing) {
			// Our own typing echoes back on the team scope; drop it.
			if t.UserID == user.ID {
				return
			}
			s.Messages.SetTyping(t)
		})),
		s.router.Subscribe(domain.EventUserStopTyping, decode(domain.EventUserStopTyping, func(t domain.Typing) {
			s.Messages.ClearTyping(t.UserID)
		})),
	}
	s.started = true
	s.logTokenExpiry()
	log.WithFields(log.Fields{"user": user.ID, "team": user.Team.ID}).Info("session started")
	return nil
}

// Stop unbinds every realtime subscription and closes the router connection.
// It is safe to call more than once.
func (s *Session) Stop() {
	s.mu.Lock()
	unsubs := s.unsubs
	started := s.started
	s.unsubs = nil
	s.started = false
	s.mu.Unlock()
	if !started {
		return
	}
	for _, unsub := range unsubs {
		unsub()
	}
	if err := s.router.Close(); err != nil {
		log.Errorf("close realtime: %v", err)
	}
	log.Info("session stopped")
}

// HandleAuthError tears the session down when err wraps a session expiry and
// reports whether it did. Call sites feed every store error through it.
func (s *Session) HandleAuthError(err error) bool {
	if err == nil || !errors.Is(err, rest.ErrSessionExpired) {
		return false
	}
	log.Warn("session expired, disconnecting")
	s.Stop()
	return true
}

// logTokenExpiry inspects the bearer token's exp claim without verifying the
// signature; verification is the server's side of the boundary.
func (s *Session) logTokenExpiry() {
	if s.token == nil {
		return
	}
	tok := s.token()
	if tok == "" {
		return
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		log.Debugf("bearer token is not a JWT: %v", err)
		return
	}
	if !claims.VerifyExpiresAt(time.Now().Unix(), false) {
		log.Warn("bearer token already expired; backend calls will be rejected")
	}
}

// decode unmarshals one event payload and hands it to fn. Malformed payloads
// are logged and dropped, matching the at-most-once contract: a consumer that
// suspects a gap refetches instead.
func decode[T any](event string, fn func(T)) realtime.Handler {
	return func(data json.RawMessage) {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			log.WithField("event", event).Errorf("unable to parse payload: %v", err)
			return
		}
		fn(v)
	}
}
