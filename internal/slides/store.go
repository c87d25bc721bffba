package slides

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"lechefer/pkg/realtime"
)

// ErrSessionNotFound is returned for an unknown session id.
var ErrSessionNotFound = errors.New("session not found")

// Event kinds published to a session's subscribers.
const (
	EventSlide = "slide"
	EventMode  = "mode"
)

// Event tells stream subscribers what changed.
type Event struct {
	Kind string
	Page int
	Mode Mode
}

// Session is one page load's slideshow.
type Session struct {
	ID        string
	CreatedAt time.Time
	*Controller

	lastSeen atomic.Int64
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen is when the session was created or last lost a viewer.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load()).UTC()
}

// Store holds viewer sessions and delegates to realtime.RoomStore for
// broadcast and the per-session timer loop.
type Store struct {
	r   *realtime.RoomStore[*Session, Event]
	now func() time.Time
}

// NewStore creates an empty in-memory session store.
func NewStore() *Store {
	return &Store{
		r:   realtime.NewRoomStore[*Session, Event](),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateSession starts a fresh slideshow over images.
func (s *Store) CreateSession(images []ImageMetadata) (*Session, error) {
	now := s.now()
	ctrl, err := NewController(images, now)
	if err != nil {
		return nil, err
	}
	sess := &Session{ID: newID(), CreatedAt: now, Controller: ctrl}
	sess.touch(now)
	s.r.Create(sess.ID, sess)
	return sess, nil
}

// GetSession returns a session by ID if it exists.
func (s *Store) GetSession(id string) (*Session, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, true
}

// Broadcaster returns the event hub for a session.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster[Event], bool) {
	return s.r.Broadcaster(id)
}

// Mount starts the session's timer loop. The timer is re-established at
// mount time; mounting an already mounted session does nothing.
func (s *Store) Mount(id string) error {
	sess, ok := s.GetSession(id)
	if !ok {
		return ErrSessionNotFound
	}
	if s.r.Running(id) {
		return nil
	}
	sess.RestartTimer(s.now())
	getState := func() *Session {
		sess, _ := s.GetSession(id)
		return sess
	}
	tick := func(state *Session, now time.Time) (time.Time, []Event, bool) {
		if state == nil {
			return time.Time{}, nil, true
		}
		var events []Event
		if state.Tick(now) {
			events = append(events, Event{Kind: EventSlide, Page: state.Page(), Mode: state.Mode()})
		}
		next, ok := state.NextTick()
		if !ok {
			return time.Time{}, nil, true
		}
		return next, events, false
	}
	s.r.RunLoop(id, getState, tick)
	return nil
}

// Mounted reports whether the session's timer loop is running.
func (s *Store) Mounted(id string) bool {
	return s.r.Running(id)
}

// Release drops one viewer. Once no subscribers remain the timer is cancelled;
// the session stays until Sweep so a reconnecting stream can mount it again.
func (s *Store) Release(id string) {
	sess, ok := s.GetSession(id)
	if !ok {
		return
	}
	hub, ok := s.r.Broadcaster(id)
	if ok && hub.Len() > 0 {
		return
	}
	sess.touch(s.now())
	s.r.StopLoop(id)
}

// Unmount cancels the timer and forgets the session.
func (s *Store) Unmount(id string) bool {
	return s.r.Remove(id)
}

// SetMode switches a session's mode, publishing and waking its loop on change.
func (s *Store) SetMode(id string, m Mode) (Mode, error) {
	sess, ok := s.GetSession(id)
	if !ok {
		return Showcase, ErrSessionNotFound
	}
	if sess.SetMode(m, s.now()) {
		s.modeChanged(sess)
	}
	return m, nil
}

// Toggle flips a session's mode.
func (s *Store) Toggle(id string) (Mode, error) {
	sess, ok := s.GetSession(id)
	if !ok {
		return Showcase, ErrSessionNotFound
	}
	m := sess.Toggle(s.now())
	s.modeChanged(sess)
	return m, nil
}

// Paginate steps a session manually.
func (s *Store) Paginate(id string, direction int) error {
	sess, ok := s.GetSession(id)
	if !ok {
		return ErrSessionNotFound
	}
	if err := sess.Paginate(direction, s.now()); err != nil {
		return err
	}
	s.r.Publish(id, Event{Kind: EventSlide, Page: sess.Page(), Mode: sess.Mode()})
	return nil
}

func (s *Store) modeChanged(sess *Session) {
	s.r.Publish(sess.ID, Event{Kind: EventMode, Page: sess.Page(), Mode: sess.Mode()})
	s.r.Wake(sess.ID)
}

// Sweep removes sessions with no running timer and no subscribers that have
// been idle longer than maxIdle. It returns how many were removed.
func (s *Store) Sweep(maxIdle time.Duration) int {
	now := s.now()
	removed := 0
	for _, id := range s.r.IDs() {
		sess, ok := s.GetSession(id)
		if !ok || s.r.Running(id) {
			continue
		}
		if hub, ok := s.r.Broadcaster(id); ok && hub.Len() > 0 {
			continue
		}
		if now.Sub(sess.LastSeen()) < maxIdle {
			continue
		}
		if s.r.Remove(id) {
			removed++
		}
	}
	return removed
}

func newID() string {
	// 10 bytes -> 16 chars of base32, short and url-safe.
	buf := make([]byte, 10)
	_, _ = rand.Read(buf)
	encoder := base32.StdEncoding.WithPadding(base32.NoPadding)
	return strings.ToLower(encoder.EncodeToString(buf))
}
