package storage

import (
	"context"
	"testing"

	"ecotrivia/backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGorm(t *testing.T) Port {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Record{}))

	// a second connection would see a different :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return NewGorm(db)
}

func setupRedis(t *testing.T) Port {
	t.Helper()

	srv := miniredis.RunT(t)
	return NewRedis(redis.NewClient(&redis.Options{Addr: srv.Addr()}))
}

// ports runs fn against every implementation.
func ports(t *testing.T, fn func(t *testing.T, p Port)) {
	impls := map[string]func(t *testing.T) Port{
		"memory": func(*testing.T) Port { return NewMemory() },
		"gorm":   setupGorm,
		"redis":  setupRedis,
	}
	for name, setup := range impls {
		t.Run(name, func(t *testing.T) {
			p := setup(t)
			t.Cleanup(func() { _ = p.Close() })
			fn(t, p)
		})
	}
}

func TestPort_GetMissing(t *testing.T) {
	ports(t, func(t *testing.T, p Port) {
		_, err := p.Get(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPort_CompareAndSwap(t *testing.T) {
	ports(t, func(t *testing.T, p Port) {
		ctx := context.Background()

		rev, err := p.Put(ctx, "rooms", []byte(`[]`), 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rev)

		_, err = p.Put(ctx, "rooms", []byte(`["late"]`), 0)
		assert.ErrorIs(t, err, ErrRevisionMismatch, "create over an existing key")

		rev, err = p.Put(ctx, "rooms", []byte(`["a"]`), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), rev)

		_, err = p.Put(ctx, "rooms", []byte(`["stale"]`), 1)
		assert.ErrorIs(t, err, ErrRevisionMismatch)

		e, err := p.Get(ctx, "rooms")
		require.NoError(t, err)
		assert.Equal(t, `["a"]`, string(e.Value))
		assert.Equal(t, int64(2), e.Revision)
	})
}

func TestPort_AnyRevision(t *testing.T) {
	ports(t, func(t *testing.T, p Port) {
		ctx := context.Background()

		rev, err := p.Put(ctx, "signal", []byte("1"), AnyRevision)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rev)

		rev, err = p.Put(ctx, "signal", []byte("2"), AnyRevision)
		require.NoError(t, err)
		assert.Equal(t, int64(2), rev)
	})
}

func TestPort_Delete(t *testing.T) {
	ports(t, func(t *testing.T, p Port) {
		ctx := context.Background()

		_, err := p.Put(ctx, "k", []byte("v"), 0)
		require.NoError(t, err)
		require.NoError(t, p.Delete(ctx, "k"))
		require.NoError(t, p.Delete(ctx, "k"))

		_, err = p.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNewKeys(t *testing.T) {
	k := NewKeys("ecotrivia-")
	assert.Equal(t, "ecotrivia-rooms", k.Rooms)
	assert.Equal(t, "ecotrivia-online-users", k.OnlineUsers)
	assert.Equal(t, "ecotrivia-room-update", k.RoomUpdate)
}
