package room

import (
	"context"
	"errors"
	"time"

	"ecotrivia/backend/internal/models"
)

// Tick advances the active question's countdown by one step. When it reaches
// zero an unanswered player is submitted with models.NoAnswer.
func (s *Store) Tick(ctx context.Context) error {
	_, err := s.tick(ctx)
	return err
}

// tick reports whether the countdown should keep running.
func (s *Store) tick(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if ctx.Err() != nil || s.question == nil || s.showResults || s.timeLeft <= 0 {
		s.mu.Unlock()
		return false, nil
	}

	s.timeLeft--
	if s.timeLeft > 0 {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.changed(snap)
		return true, nil
	}

	r, _ := s.currentLocked()
	_, err := s.submitLocked(ctx, models.NoAnswer, r.Settings.TimePerQuestion)
	if err != nil && !errors.Is(err, ErrAlreadyAnswered) {
		s.log.Warn("timeout submission failed", "room", r.ID, "err", err)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
	return false, err
}

func (s *Store) startCountdownLocked() {
	s.stopCountdownLocked()
	if s.opts.TickInterval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stopTimer = cancel
	go s.runCountdown(ctx)
}

func (s *Store) stopCountdownLocked() {
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
}

func (s *Store) runCountdown(ctx context.Context) {
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if running, _ := s.tick(ctx); !running {
				return
			}
		}
	}
}

// Close stops the countdown. The store stays usable.
func (s *Store) Close() {
	s.mu.Lock()
	s.stopCountdownLocked()
	s.mu.Unlock()
}
