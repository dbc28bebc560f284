package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ecotrivia/backend/internal/broadcast"
	"ecotrivia/backend/internal/hub"
	"ecotrivia/backend/internal/models"
	"ecotrivia/backend/internal/presence"
	"ecotrivia/backend/internal/reconcile"
	"ecotrivia/backend/internal/room"
	"ecotrivia/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, opts ...func(*Deps)) *Manager {
	t.Helper()
	port := storage.NewMemory()
	h := hub.NewHub()
	deps := Deps{
		Port:     port,
		Bus:      broadcast.NewLocal(h, broadcast.DefaultChannel),
		Hub:      h,
		Presence: presence.New(port, storage.NewKeys("ecotrivia-").OnlineUsers, []models.User{}, nil, nil),
		Sync:     reconcile.Config{PollInterval: 20 * time.Millisecond},
	}
	for _, fn := range opts {
		fn(&deps)
	}
	m := NewManager(deps)
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })
	return m
}

func TestOpenGetClose(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	u := models.User{ID: "158435", Name: "Ana"}

	s, err := m.Open(ctx, u)
	require.NoError(t, err)
	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, []models.User{u}, m.Users())

	online, err := m.deps.Presence.Online(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.User{u}, online)

	require.NoError(t, m.Close(ctx, s.ID))
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Close(ctx, s.ID), ErrNotFound)
	assert.Empty(t, m.Users())

	online, err = m.deps.Presence.Online(ctx)
	require.NoError(t, err)
	assert.Empty(t, online)
}

func TestSessionsFollowEachOther(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	host, err := m.Open(ctx, models.User{ID: "a", Name: "A"})
	require.NoError(t, err)
	guest, err := m.Open(ctx, models.User{ID: "b", Name: "B"})
	require.NoError(t, err)

	r, err := host.Store.Create(ctx, "Shared", 4, false)
	require.NoError(t, err)

	// the guest's reconciler picks the room up from the change signal
	require.Eventually(t, func() bool { return len(guest.Store.Rooms()) == 1 }, 2*time.Second, 5*time.Millisecond)

	_, err = guest.Store.Join(ctx, r.ID)
	require.NoError(t, err)
	require.NoError(t, host.Store.Start(ctx))

	require.Eventually(t, func() bool {
		snap := guest.Store.Snapshot()
		return snap.CurrentRoom != nil && snap.CurrentRoom.State == models.StatePlaying && snap.Question != nil
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSnapshotsArePublished(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	s, err := m.Open(ctx, models.User{ID: "a"})
	require.NoError(t, err)

	inbox := make(hub.Client, 8)
	m.Hub().Subscribe(Topic(s.ID), inbox)
	defer m.Hub().Unsubscribe(Topic(s.ID), inbox)

	_, err = s.Store.Create(ctx, "Watched", 2, false)
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case data := <-inbox:
			var event struct {
				Type    string        `json:"type"`
				Payload room.Snapshot `json:"payload"`
			}
			require.NoError(t, json.Unmarshal(data, &event))
			assert.Equal(t, EventSnapshot, event.Type)
			// poll snapshots may arrive first
			if event.Payload.CurrentRoom == nil {
				continue
			}
			assert.Equal(t, "Watched", event.Payload.CurrentRoom.Name)
			return
		case <-deadline:
			t.Fatal("no snapshot published")
		}
	}
}

func TestReapIdleSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 4, 22, 12, 0, 0, 0, time.UTC)
	m := newManager(t, func(d *Deps) {
		d.IdleTimeout = time.Minute
		d.Now = func() time.Time { return now }
	})
	ana := models.User{ID: "158435", Name: "Ana"}
	livia := models.User{ID: "111111", Name: "Livia"}
	lucas := models.User{ID: "222222", Name: "Lucas"}

	idle, err := m.Open(ctx, ana)
	require.NoError(t, err)
	active, err := m.Open(ctx, livia)
	require.NoError(t, err)
	streaming, err := m.Open(ctx, lucas)
	require.NoError(t, err)
	release := streaming.Attach()

	now = now.Add(45 * time.Second)
	_, err = m.Get(active.ID)
	require.NoError(t, err)
	now = now.Add(30 * time.Second)

	assert.Equal(t, []string{idle.ID}, m.Reap(ctx))
	_, err = m.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ElementsMatch(t, []models.User{livia, lucas}, m.Users())

	online, err := m.deps.Presence.Online(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.User{livia, lucas}, online)

	// a closed stream starts the idle clock
	release()
	now = now.Add(59 * time.Second)
	assert.Empty(t, m.Reap(ctx))
	_, err = m.Get(active.ID)
	require.NoError(t, err)
	now = now.Add(2 * time.Second)
	assert.Equal(t, []string{streaming.ID}, m.Reap(ctx))
	assert.Equal(t, []models.User{livia}, m.Users())
}

func TestReapDisabled(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	_, err := m.Open(ctx, models.User{ID: "a"})
	require.NoError(t, err)
	assert.Empty(t, m.Reap(ctx))
	assert.Len(t, m.Users(), 1)
}
