// Package session owns the per-client room stores served by the API. Each
// session is one independent client of the shared room collection.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"ecotrivia/backend/internal/broadcast"
	"ecotrivia/backend/internal/hub"
	"ecotrivia/backend/internal/models"
	"ecotrivia/backend/internal/presence"
	"ecotrivia/backend/internal/reconcile"
	"ecotrivia/backend/internal/room"
	"ecotrivia/backend/internal/storage"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown or closed sessions.
var ErrNotFound = errors.New("session not found")

// EventSnapshot is the hub event type carrying a room.Snapshot.
const EventSnapshot = "snapshot"

// Deps are shared by every session of a Manager.
type Deps struct {
	Port     storage.Port
	Bus      broadcast.Broadcaster
	Hub      *hub.Hub
	Presence *presence.Tracker
	// Room is the template for each session's store. ClientID and OnChange are set per session.
	Room   room.Options
	Sync   reconcile.Config
	Logger *slog.Logger
	// IdleTimeout closes sessions unused for this long. Zero keeps them until logout.
	IdleTimeout time.Duration
	Now         func() time.Time
}

// Session is one signed-in client.
type Session struct {
	ID    string
	Store *room.Store

	cancel context.CancelFunc
	done   chan struct{}

	now      func() time.Time
	lastSeen atomic.Int64
	streams  atomic.Int32
}

func (s *Session) touch() {
	s.lastSeen.Store(s.now().UnixNano())
}

// Attach marks the session as held by an open event stream, which keeps it
// from expiring until release is called.
func (s *Session) Attach() (release func()) {
	s.streams.Add(1)
	s.touch()
	return func() {
		s.touch()
		s.streams.Add(-1)
	}
}

func (s *Session) idleSince(cutoff time.Time) bool {
	return s.streams.Load() == 0 && s.lastSeen.Load() < cutoff.UnixNano()
}

// Manager creates, finds and closes sessions.
type Manager struct {
	deps Deps
	log  *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty manager.
func NewManager(deps Deps) *Manager {
	if deps.Hub == nil {
		deps.Hub = hub.NewHub()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Manager{
		deps:     deps,
		log:      deps.Logger,
		sessions: make(map[string]*Session),
	}
}

// Topic is the hub topic that receives a session's snapshots.
func Topic(id string) string {
	return "session:" + id
}

// Hub returns the hub snapshots are published on.
func (m *Manager) Hub() *hub.Hub {
	return m.deps.Hub
}

// Open signs u in on a new session and starts reconciling it.
func (m *Manager) Open(ctx context.Context, u models.User) (*Session, error) {
	id := uuid.NewString()
	opts := m.deps.Room
	opts.ClientID = id
	opts.Logger = m.log
	opts.OnChange = func(snap room.Snapshot) {
		m.deps.Hub.Broadcast(Topic(id), hub.Event{Type: EventSnapshot, Payload: snap})
	}

	store := room.New(m.deps.Port, m.deps.Bus, opts)
	store.SetUser(u)
	if err := store.Sync(ctx); err != nil {
		store.Close()
		return nil, err
	}
	if m.deps.Presence != nil {
		if err := m.deps.Presence.Add(ctx, u); err != nil {
			m.log.Warn("failed to mark user online", "user", u.ID, "err", err)
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s := &Session{ID: id, Store: store, cancel: cancel, done: make(chan struct{}), now: m.deps.Now}
	s.touch()
	runner := reconcile.NewRunner(store, m.deps.Bus, m.deps.Sync, m.log)
	go func() {
		defer close(s.done)
		if err := runner.Run(runCtx); err != nil {
			m.log.Error("reconciler stopped", "session", id, "err", err)
		}
	}()

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.log.Info("session opened", "session", id, "user", u.ID)
	return s, nil
}

// Get returns an open session and counts as activity on it.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.touch()
	return s, nil
}

// Close logs the session's user out and stops its reconciler.
func (m *Manager) Close(ctx context.Context, id string) error {
	if !m.close(ctx, id, nil) {
		return ErrNotFound
	}
	return nil
}

// close removes the session unless keep accepts it, and reports whether it did.
func (m *Manager) close(ctx context.Context, id string, keep func(*Session) bool) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok || (keep != nil && keep(s)) {
		m.mu.Unlock()
		return false
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	u, signedIn := s.Store.User()
	s.Store.Logout()
	m.stop(s)
	if signedIn && m.deps.Presence != nil {
		if err := m.deps.Presence.Remove(ctx, u.ID); err != nil {
			m.log.Warn("failed to mark user offline", "user", u.ID, "err", err)
		}
	}
	m.log.Info("session closed", "session", id)
	return true
}

// Users returns the users of all open sessions.
func (m *Manager) Users() []models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.User, 0, len(m.sessions))
	for _, s := range m.sessions {
		if u, ok := s.Store.User(); ok {
			out = append(out, u)
		}
	}
	return out
}

// Reap closes the sessions idle for longer than IdleTimeout and returns
// their ids. Sessions with an attached event stream are never idle.
func (m *Manager) Reap(ctx context.Context) []string {
	if m.deps.IdleTimeout <= 0 {
		return nil
	}
	cutoff := m.deps.Now().Add(-m.deps.IdleTimeout)
	expired := func(s *Session) bool { return s.idleSince(cutoff) }

	m.mu.RLock()
	var idle []string
	for id, s := range m.sessions {
		if expired(s) {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	reaped := idle[:0]
	for _, id := range idle {
		// activity may have arrived since the scan
		if m.close(ctx, id, func(s *Session) bool { return !expired(s) }) {
			reaped = append(reaped, id)
			m.log.Info("session expired", "session", id)
		}
	}
	return reaped
}

// RunReaper expires idle sessions until ctx is done, checking twice per
// IdleTimeout.
func (m *Manager) RunReaper(ctx context.Context) {
	if m.deps.IdleTimeout <= 0 {
		return
	}
	ticker := time.NewTicker(m.deps.IdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Reap(ctx)
		}
	}
}

// RunPresence refreshes the online list until ctx is done.
func (m *Manager) RunPresence(ctx context.Context, interval time.Duration) {
	if m.deps.Presence == nil {
		return
	}
	m.deps.Presence.Run(ctx, interval, m.Users)
}

// Shutdown stops every session without logging users out.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		sessions = append(sessions, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.cancel()
		s.Store.Close()
	}
	for _, s := range sessions {
		select {
		case <-s.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *Manager) stop(s *Session) {
	s.cancel()
	s.Store.Close()
	<-s.done
}
