// Package presence maintains the shared list of users shown as online.
package presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"ecotrivia/backend/internal/models"
	"ecotrivia/backend/internal/storage"
)

const (
	minOnline   = 3
	maxOnline   = 6
	maxAttempts = 8
)

// DefaultRoster returns the directory used when none is configured.
func DefaultRoster() []models.User {
	return []models.User{
		{ID: "158435", Name: "Ana Júlia Furtado", Level: 10, TotalScore: 1250, GamesPlayed: 8, CorrectAnswers: 45},
		{ID: "148723", Name: "Natã da Silva Almeida", Level: 10, TotalScore: 1250, GamesPlayed: 8, CorrectAnswers: 45},
		{ID: "111111", Name: "Livia", Level: 7, TotalScore: 1100, GamesPlayed: 5, CorrectAnswers: 22},
		{ID: "222222", Name: "Lucas", Level: 4, TotalScore: 900, GamesPlayed: 5, CorrectAnswers: 30},
	}
}

// Tracker writes the online-users record.
type Tracker struct {
	port   storage.Port
	key    string
	roster []models.User
	log    *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a tracker for key. A nil roster uses DefaultRoster and a nil
// src seeds randomly.
func New(port storage.Port, key string, roster []models.User, src rand.Source, logger *slog.Logger) *Tracker {
	if roster == nil {
		roster = DefaultRoster()
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		port:   port,
		key:    key,
		roster: slices.Clone(roster),
		log:    logger,
		rng:    rand.New(src),
	}
}

// generate draws between three and six roster entries.
func (t *Tracker) generate() []models.User {
	t.mu.Lock()
	defer t.mu.Unlock()

	users := slices.Clone(t.roster)
	t.rng.Shuffle(len(users), func(i, j int) { users[i], users[j] = users[j], users[i] })
	n := minOnline + t.rng.IntN(maxOnline-minOnline+1)
	return users[:min(n, len(users))]
}

// Refresh replaces the record with a fresh draw that includes every user in current.
func (t *Tracker) Refresh(ctx context.Context, current ...models.User) ([]models.User, error) {
	users := t.generate()
	for _, u := range current {
		users = include(users, u)
	}
	if err := t.write(ctx, users, storage.AnyRevision); err != nil {
		return nil, err
	}
	return users, nil
}

// Online returns the persisted list, or a fresh draw when it is missing or unreadable.
func (t *Tracker) Online(ctx context.Context) ([]models.User, error) {
	users, _, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		return t.generate(), nil
	}
	return users, nil
}

// Add marks u as online.
func (t *Tracker) Add(ctx context.Context, u models.User) error {
	return t.update(ctx, func(users []models.User) []models.User {
		return include(users, u)
	})
}

// Remove drops the user with id from the list.
func (t *Tracker) Remove(ctx context.Context, id string) error {
	return t.update(ctx, func(users []models.User) []models.User {
		return slices.DeleteFunc(users, func(u models.User) bool { return u.ID == id })
	})
}

// Run refreshes every interval until ctx is done. current is asked for the
// signed-in users on each refresh.
func (t *Tracker) Run(ctx context.Context, interval time.Duration, current func() []models.User) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var users []models.User
			if current != nil {
				users = current()
			}
			if _, err := t.Refresh(ctx, users...); err != nil && ctx.Err() == nil {
				t.log.Warn("presence refresh failed", "err", err)
			}
		}
	}
}

func (t *Tracker) update(ctx context.Context, fn func([]models.User) []models.User) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		users, rev, err := t.load(ctx)
		if err != nil {
			return err
		}
		if users == nil {
			users = t.generate()
		}
		err = t.write(ctx, fn(users), rev)
		if errors.Is(err, storage.ErrRevisionMismatch) {
			continue
		}
		return err
	}
	return fmt.Errorf("failed to update %s: %w", t.key, storage.ErrRevisionMismatch)
}

// load returns nil users when the record is missing or corrupt.
func (t *Tracker) load(ctx context.Context) ([]models.User, int64, error) {
	entry, err := t.port.Get(ctx, t.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	var users []models.User
	if err := json.Unmarshal(entry.Value, &users); err != nil {
		t.log.Warn("discarding corrupt online users", "key", t.key, "err", err)
		return nil, entry.Revision, nil
	}
	if users == nil {
		users = []models.User{}
	}
	return users, entry.Revision, nil
}

func (t *Tracker) write(ctx context.Context, users []models.User, rev int64) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode online users: %w", err)
	}
	_, err = t.port.Put(ctx, t.key, data, rev)
	return err
}

func include(users []models.User, u models.User) []models.User {
	if slices.ContainsFunc(users, func(o models.User) bool { return o.ID == u.ID }) {
		return users
	}
	return append(users, u)
}
