package room

import (
	"context"

	"ecotrivia/backend/internal/models"
)

// Sweep removes rooms that are empty, finished or, with StaleAfter set,
// abandoned, and returns their ids. Nothing is written when every room survives.
func (s *Store) Sweep(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	var removed []string
	err := s.mutateLocked(ctx, func(rooms []models.GameRoom) ([]models.GameRoom, error) {
		removed = removed[:0]
		kept := rooms[:0]
		for _, r := range rooms {
			if s.keep(r) {
				kept = append(kept, r)
				continue
			}
			removed = append(removed, r.ID)
		}
		if len(removed) == 0 {
			return nil, errUnchanged
		}
		return kept, nil
	})
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if len(removed) > 0 {
		s.log.Info("swept rooms", "count", len(removed), "rooms", removed)
		s.changed(snap)
	}
	return removed, nil
}

func (s *Store) keep(r models.GameRoom) bool {
	if len(r.Players) == 0 || !r.State.Active() {
		return false
	}
	if s.opts.StaleAfter > 0 && !r.UpdatedAt.IsZero() && s.opts.Now().Sub(r.UpdatedAt) > s.opts.StaleAfter {
		return false
	}
	return true
}
