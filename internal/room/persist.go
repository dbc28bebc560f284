package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"ecotrivia/backend/internal/broadcast"
	"ecotrivia/backend/internal/models"
	"ecotrivia/backend/internal/storage"
)

// errUnchanged aborts a mutation without writing.
var errUnchanged = errors.New("unchanged")

// load reads the persisted collection. A missing or corrupt record reads as
// empty; the returned revision is what a write must expect.
func (s *Store) load(ctx context.Context) ([]models.GameRoom, int64, error) {
	entry, err := s.port.Get(ctx, s.opts.Keys.Rooms)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	var rooms []models.GameRoom
	if err := json.Unmarshal(entry.Value, &rooms); err != nil {
		s.log.Warn("discarding corrupt room collection", "key", s.opts.Keys.Rooms, "err", err)
		return nil, entry.Revision, nil
	}
	return rooms, entry.Revision, nil
}

// mutateLocked applies fn to a fresh read of the collection and writes the
// result with compare-and-swap, retrying when another client wrote first.
// On success and on fn errors the local collection is replaced by what was read
// or written.
func (s *Store) mutateLocked(ctx context.Context, fn func([]models.GameRoom) ([]models.GameRoom, error)) error {
	for attempt := 0; attempt < s.opts.MaxAttempts; attempt++ {
		rooms, rev, err := s.load(ctx)
		if err != nil {
			return err
		}

		next, err := fn(cloneAll(rooms))
		if err != nil {
			s.rooms = rooms
			s.followLocked()
			if errors.Is(err, errUnchanged) {
				return nil
			}
			return err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode rooms: %w", err)
		}
		newRev, err := s.port.Put(ctx, s.opts.Keys.Rooms, data, rev)
		if errors.Is(err, storage.ErrRevisionMismatch) {
			s.log.Debug("room collection changed underneath, retrying", "attempt", attempt+1)
			continue
		}
		if err != nil {
			return err
		}

		s.rooms = next
		s.followLocked()
		s.signal(ctx, newRev)
		return nil
	}
	return ErrConflict
}

// updateRoomLocked rewrites one room. fn sees the persisted room and may reject
// the change by returning an error.
func (s *Store) updateRoomLocked(ctx context.Context, id string, fn func(*models.GameRoom) error) error {
	return s.mutateLocked(ctx, func(rooms []models.GameRoom) ([]models.GameRoom, error) {
		return s.updateIn(rooms, id, fn)
	})
}

// updateIn applies fn to room id within rooms and bumps its revision.
func (s *Store) updateIn(rooms []models.GameRoom, id string, fn func(*models.GameRoom) error) ([]models.GameRoom, error) {
	i := indexOf(rooms, id)
	if i < 0 {
		return nil, ErrRoomNotFound
	}
	r := rooms[i]
	if err := fn(&r); err != nil {
		return nil, err
	}
	r.Revision++
	r.UpdatedAt = s.opts.Now()
	rooms[i] = r
	return rooms, nil
}

// signal tells other clients to reconcile. Failures only delay them until their next poll.
func (s *Store) signal(ctx context.Context, rev int64) {
	now := s.opts.Now()
	stamp := []byte(strconv.FormatInt(now.UnixMilli(), 10))
	if _, err := s.port.Put(ctx, s.opts.Keys.RoomUpdate, stamp, storage.AnyRevision); err != nil {
		s.log.Warn("failed to write update signal", "err", err)
	}
	if s.bus == nil {
		return
	}
	err := s.bus.Publish(ctx, broadcast.Signal{
		Key:      s.opts.Keys.Rooms,
		Origin:   s.opts.ClientID,
		Revision: rev,
		At:       now,
	})
	if err != nil {
		s.log.Warn("failed to broadcast room update", "err", err)
	}
}

func cloneAll(rooms []models.GameRoom) []models.GameRoom {
	out := make([]models.GameRoom, len(rooms))
	for i, r := range rooms {
		out[i] = r.Clone()
	}
	return out
}
