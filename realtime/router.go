// Package realtime owns the single live connection to the team-scoped event
// stream and fans inbound events out to whichever store subscribed.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"teamboard/domain"
)

// ErrNoTeam is returned when Connect is called without a team affiliation.
var ErrNoTeam = errors.New("realtime: no team affiliation")

// ErrAlreadyConnected is returned by Connect while a connection is live.
var ErrAlreadyConnected = errors.New("realtime: already connected")

const closeTimeout = 5 * time.Second

// Handler receives the raw payload of one event.
type Handler func(data json.RawMessage)

// TeamChannel is the broadcast scope shared by every member of a team.
func TeamChannel(teamID string) string { return "team:" + teamID }

// UserChannel is the personal scope for direct notifications.
func UserChannel(userID string) string { return "user:" + userID }

// Router holds at most one live pub/sub connection and a fan-out table keyed
// by event name. Handlers run on the reader goroutine; they are expected to
// do nothing but call store mutation methods.
type Router struct {
	rc *redis.Client

	mu       sync.Mutex
	subs     map[string]map[string]Handler // event name -> subscriber id -> handler
	pubsub   *redis.PubSub
	cancel   context.CancelFunc
	done     chan struct{}
	channels []string
}

func New(rc *redis.Client) *Router {
	return &Router{rc: rc, subs: make(map[string]map[string]Handler)}
}

// Connect joins the team scope and, when userID is non-empty, the personal
// scope, then starts reading. It fails fast when the transport is down rather
// than silently buffering subscriptions.
func (r *Router) Connect(ctx context.Context, teamID, userID string) error {
	if teamID == "" {
		return ErrNoTeam
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pubsub != nil {
		return ErrAlreadyConnected
	}
	if err := r.rc.Ping(ctx).Err(); err != nil {
		return err
	}
	channels := []string{TeamChannel(teamID)}
	if userID != "" {
		channels = append(channels, UserChannel(userID))
	}
	readCtx, cancel := context.WithCancel(context.Background())
	pubsub := r.rc.Subscribe(readCtx, channels...)

	r.pubsub = pubsub
	r.cancel = cancel
	r.done = make(chan struct{})
	r.channels = channels
	go r.read(readCtx, pubsub.Channel(), r.done)

	log.WithFields(log.Fields{"team": teamID, "user": userID}).Debug("realtime connected")
	return nil
}

func (r *Router) read(ctx context.Context, ch <-chan *redis.Message, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env domain.Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.WithField("channel", msg.Channel).Errorf("unable to parse event: %v", err)
				continue
			}
			if env.Event == "" {
				log.WithField("channel", msg.Channel).Warn("event without a name - ignoring it")
				continue
			}
			r.dispatch(env.Event, env.Data)
		}
	}
}

func (r *Router) dispatch(event string, data json.RawMessage) {
	r.mu.Lock()
	handlers := make([]Handler, 0, len(r.subs[event]))
	for _, h := range r.subs[event] {
		handlers = append(handlers, h)
	}
	r.mu.Unlock()
	for _, h := range handlers {
		h(data)
	}
}

// Subscribe registers a handler for the named event and returns its
// unsubscribe function. Any number of independent handlers may listen to the
// same event name.
func (r *Router) Subscribe(event string, h Handler) (unsubscribe func()) {
	id := uuid.NewString()
	r.mu.Lock()
	if r.subs[event] == nil {
		r.subs[event] = make(map[string]Handler)
	}
	r.subs[event][id] = h
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		entries := r.subs[event]
		delete(entries, id)
		if len(entries) == 0 {
			delete(r.subs, event)
		}
	}
}

// Close leaves the subscribed scopes before closing the connection, so the
// server does not retain a stale membership, and waits for the reader to
// exit. Close is a no-op when not connected.
func (r *Router) Close() error {
	r.mu.Lock()
	pubsub := r.pubsub
	cancel := r.cancel
	done := r.done
	channels := r.channels
	r.pubsub = nil
	r.cancel = nil
	r.done = nil
	r.channels = nil
	r.mu.Unlock()
	if pubsub == nil {
		return nil
	}

	ctx, cancelTimeout := context.WithTimeout(context.Background(), closeTimeout)
	defer cancelTimeout()
	if err := pubsub.Unsubscribe(ctx, channels...); err != nil {
		log.Errorf("realtime unsubscribe: %v", err)
	}
	cancel()
	err := pubsub.Close()
	select {
	case <-done:
	case <-ctx.Done():
		log.Error("realtime reader did not exit before timeout")
	}
	return err
}
