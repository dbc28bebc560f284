package main

import (
	"errors"
	"log/slog"

	"ecotrivia/backend/internal/broadcast"
	"ecotrivia/backend/internal/catalog"
	"ecotrivia/backend/internal/config"
	"ecotrivia/backend/internal/database"
	"ecotrivia/backend/internal/hub"
	"ecotrivia/backend/internal/room"
	"ecotrivia/backend/internal/scoring"
	"ecotrivia/backend/internal/storage"

	"github.com/redis/go-redis/v9"
)

// backend holds the shared storage and broadcast connections.
type backend struct {
	port storage.Port
	bus  broadcast.Broadcaster
	hub  *hub.Hub
	keys storage.Keys
}

func openBackend(cfg *config.Config) (*backend, error) {
	b := &backend{hub: hub.NewHub(), keys: storage.NewKeys(cfg.KeyPrefix)}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		b.port = storage.NewMemory()
	case config.DriverSQLite, config.DriverPostgres:
		db, err := database.Open(cfg.StorageDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.port = storage.NewGorm(db)
	case config.DriverRedis:
		b.port = storage.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	switch cfg.BroadcastDriver {
	case config.DriverLocal:
		b.bus = broadcast.NewLocal(b.hub, cfg.BroadcastChannel)
	case config.DriverRedis:
		b.bus = broadcast.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.BroadcastChannel)
	case config.DriverNATS:
		bus, err := broadcast.ConnectNATS(cfg.NATSURL, cfg.BroadcastChannel)
		if err != nil {
			_ = b.port.Close()
			return nil, err
		}
		b.bus = bus
	}

	slog.Info("backend ready", "storage", cfg.StorageDriver, "broadcast", cfg.BroadcastDriver)
	return b, nil
}

// roomOptions builds the store template shared by sessions and admin commands.
func (b *backend) roomOptions(cfg *config.Config) (room.Options, error) {
	questions, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return room.Options{}, err
	}
	return room.Options{
		Keys:         b.keys,
		Catalog:      questions,
		Scoring:      scoring.Engine{UseTimeLimit: cfg.UseTimeLimit},
		TickInterval: cfg.TickInterval,
		StaleAfter:   cfg.StaleAfter,
	}, nil
}

func (b *backend) Close() error {
	return errors.Join(b.bus.Close(), b.port.Close())
}
