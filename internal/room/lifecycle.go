package room

import (
	"context"
	"fmt"
	"strings"

	"ecotrivia/backend/internal/models"
	"ecotrivia/backend/internal/selector"

	"github.com/google/uuid"
)

// Create opens a new room hosted by the current user and enters it.
func (s *Store) Create(ctx context.Context, name string, maxPlayers int, isPrivate bool) (models.GameRoom, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return models.GameRoom{}, ErrNoCurrentUser
	}
	if s.roomID != "" {
		s.mu.Unlock()
		return models.GameRoom{}, ErrAlreadyInRoom
	}
	name = strings.TrimSpace(name)
	if name == "" || maxPlayers < 1 {
		s.mu.Unlock()
		return models.GameRoom{}, ErrInvalidRoom
	}

	user := *s.user
	var created models.GameRoom
	err := s.mutateLocked(ctx, func(rooms []models.GameRoom) ([]models.GameRoom, error) {
		if roomOf(rooms, user.ID) >= 0 {
			return nil, ErrAlreadyInRoom
		}
		id := uuid.NewString()
		for indexOf(rooms, id) >= 0 {
			id = uuid.NewString()
		}
		created = models.GameRoom{
			ID:         id,
			Name:       name,
			Players:    []models.User{user},
			MaxPlayers: maxPlayers,
			IsPrivate:  isPrivate,
			State:      models.StateWaiting,
			Scores:     map[string]int{user.ID: 0},
			Settings:   s.settings.Merge(models.SettingsPatch{}),
			Revision:   1,
			UpdatedAt:  s.opts.Now(),
		}
		s.roomID = id
		return append(rooms, created), nil
	})
	if err != nil {
		s.roomID = ""
		s.followLocked()
		s.mu.Unlock()
		return models.GameRoom{}, err
	}
	s.log.Info("room created", "room", created.ID, "name", name, "host", user.ID)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
	return created.Clone(), nil
}

// Join adds the current user to a room that still has a free seat.
// Private rooms are joinable by id. A user plays in one room at a time.
func (s *Store) Join(ctx context.Context, roomID string) (models.GameRoom, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return models.GameRoom{}, ErrNoCurrentUser
	}
	if s.roomID != "" && s.roomID != roomID {
		s.mu.Unlock()
		return models.GameRoom{}, ErrAlreadyInRoom
	}

	user := *s.user
	prev := s.roomID
	s.roomID = roomID
	err := s.mutateLocked(ctx, func(rooms []models.GameRoom) ([]models.GameRoom, error) {
		if i := roomOf(rooms, user.ID); i >= 0 && rooms[i].ID != roomID {
			return nil, ErrAlreadyInRoom
		}
		return s.updateIn(rooms, roomID, func(r *models.GameRoom) error {
			if r.HasPlayer(user.ID) {
				return errUnchanged
			}
			if r.IsFull() {
				return ErrRoomFull
			}
			r.Players = append(r.Players, user)
			r.Scores[user.ID] = 0
			return nil
		})
	})
	if err != nil {
		s.roomID = prev
		s.followLocked()
		s.mu.Unlock()
		return models.GameRoom{}, err
	}

	joined, ok := s.currentLocked()
	if !ok {
		s.mu.Unlock()
		return models.GameRoom{}, ErrRoomNotFound
	}
	s.log.Info("room joined", "room", roomID, "user", user.ID, "players", len(joined.Players))
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
	return joined.Clone(), nil
}

// Leave removes the current user from their room, deleting it when it
// becomes empty. Local room state is cleared even if the write fails.
func (s *Store) Leave(ctx context.Context) error {
	s.mu.Lock()
	if s.user == nil || s.roomID == "" {
		s.mu.Unlock()
		return ErrNotInRoom
	}

	userID := s.user.ID
	roomID := s.roomID
	s.clearRoomLocked()

	err := s.mutateLocked(ctx, func(rooms []models.GameRoom) ([]models.GameRoom, error) {
		i := indexOf(rooms, roomID)
		if i < 0 {
			return nil, errUnchanged
		}
		r := rooms[i]
		remaining := r.Players[:0:0]
		for _, p := range r.Players {
			if p.ID != userID {
				remaining = append(remaining, p)
			}
		}
		if len(remaining) == len(r.Players) {
			return nil, errUnchanged
		}
		if len(remaining) == 0 {
			s.log.Info("room deleted, last player left", "room", roomID)
			return append(rooms[:i], rooms[i+1:]...), nil
		}
		r.Players = remaining
		r.Revision++
		r.UpdatedAt = s.opts.Now()
		rooms[i] = r
		return rooms, nil
	})
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
	return err
}

// Start fixes the question sequence from the current settings and begins
// the first question. Only the host may start; a finished room can be
// started again with scores reset.
func (s *Store) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNoCurrentUser
	}
	if s.roomID == "" {
		s.mu.Unlock()
		return ErrNotInRoom
	}

	settings := s.settings.Merge(models.SettingsPatch{})
	if err := settings.Validate(); err != nil {
		s.mu.Unlock()
		return wrapSettings(err)
	}
	sequence := selector.IDs(s.opts.Selector.Select(s.opts.Catalog.All(), settings))
	if len(sequence) == 0 {
		s.mu.Unlock()
		return ErrNoQuestions
	}

	userID := s.user.ID
	err := s.updateRoomLocked(ctx, s.roomID, func(r *models.GameRoom) error {
		if !r.IsHost(userID) {
			return ErrNotHost
		}
		if r.State == models.StatePlaying {
			return ErrInvalidState
		}
		if r.State == models.StateFinished {
			for id := range r.Scores {
				r.Scores[id] = 0
			}
		}
		r.State = models.StatePlaying
		r.Round++
		r.QuestionIndex = 0
		r.TimeRemaining = settings.TimePerQuestion
		r.Settings = settings
		r.QuestionIDs = sequence
		r.Answered = nil
		return nil
	})
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.log.Info("game started", "room", s.roomID, "questions", len(sequence), "difficulty", settings.Difficulty)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
	return nil
}

// SubmitAnswer scores the current user's answer to the active question.
// A player may answer each question once, whichever client they use.
func (s *Store) SubmitAnswer(ctx context.Context, optionIndex, timeSpent int) (models.PlayerAnswer, error) {
	s.mu.Lock()
	answer, err := s.submitLocked(ctx, optionIndex, timeSpent)
	if err != nil {
		s.mu.Unlock()
		return models.PlayerAnswer{}, err
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
	return answer, nil
}

func (s *Store) submitLocked(ctx context.Context, optionIndex, timeSpent int) (models.PlayerAnswer, error) {
	if s.user == nil {
		return models.PlayerAnswer{}, ErrNoCurrentUser
	}
	r, ok := s.currentLocked()
	if !ok || s.question == nil {
		return models.PlayerAnswer{}, ErrNoQuestion
	}
	userID := s.user.ID
	for _, a := range s.answers {
		if a.PlayerID == userID {
			return models.PlayerAnswer{}, ErrAlreadyAnswered
		}
	}

	timeSpent = max(0, timeSpent)
	result := s.opts.Scoring.Evaluate(*s.question, optionIndex, timeSpent, r.Settings.TimePerQuestion)
	round, index := s.round, s.qIndex

	err := s.updateRoomLocked(ctx, r.ID, func(r *models.GameRoom) error {
		if r.State != models.StatePlaying || r.Round != round || r.QuestionIndex != index {
			return ErrConflict
		}
		if !r.HasPlayer(userID) {
			return ErrNotInRoom
		}
		if r.HasAnswered(userID) {
			return ErrAlreadyAnswered
		}
		r.Answered = append(r.Answered, userID)
		r.Scores[userID] += result.Points
		return nil
	})
	if err != nil {
		return models.PlayerAnswer{}, err
	}

	answer := models.PlayerAnswer{
		PlayerID:    userID,
		AnswerIndex: optionIndex,
		TimeSpent:   timeSpent,
		Correct:     result.Correct,
		Points:      result.Points,
	}
	s.answers = append(s.answers, answer)
	s.showResults = true
	s.stopCountdownLocked()
	s.log.Debug("answer submitted", "room", r.ID, "user", userID, "correct", result.Correct, "points", result.Points)
	return answer, nil
}

// NextQuestion advances the room, finishing it once QuestionsPerGame
// questions have been asked. The sequence wraps when it is shorter than that.
func (s *Store) NextQuestion(ctx context.Context) error {
	s.mu.Lock()
	if s.roomID == "" {
		s.mu.Unlock()
		return ErrNotInRoom
	}

	round, index := s.round, s.qIndex
	finished := false
	err := s.updateRoomLocked(ctx, s.roomID, func(r *models.GameRoom) error {
		if r.State != models.StatePlaying {
			return ErrInvalidState
		}
		if r.Round != round || r.QuestionIndex != index {
			return ErrConflict
		}

		next := r.QuestionIndex + 1
		if next >= r.Settings.QuestionsPerGame {
			finish(r)
			finished = true
			return nil
		}
		id, ok := selector.Pick(r.QuestionIDs, next)
		if _, known := s.opts.Catalog.Get(id); !ok || !known {
			finish(r)
			finished = true
			return nil
		}
		r.QuestionIndex = next
		r.TimeRemaining = r.Settings.TimePerQuestion
		r.Answered = nil
		return nil
	})
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if finished {
		s.log.Info("game finished", "room", s.roomID)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
	return nil
}

// EndGame finishes the current room and shows the final scoreboard.
func (s *Store) EndGame(ctx context.Context) error {
	s.mu.Lock()
	if s.roomID == "" {
		s.mu.Unlock()
		return ErrNotInRoom
	}

	err := s.updateRoomLocked(ctx, s.roomID, func(r *models.GameRoom) error {
		if r.State == models.StateFinished {
			return errUnchanged
		}
		finish(r)
		return nil
	})
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.log.Info("game finished", "room", s.roomID)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
	return nil
}

// DeleteRoom removes a room regardless of its players.
func (s *Store) DeleteRoom(ctx context.Context, roomID string) error {
	s.mu.Lock()
	err := s.mutateLocked(ctx, func(rooms []models.GameRoom) ([]models.GameRoom, error) {
		i := indexOf(rooms, roomID)
		if i < 0 {
			return nil, ErrRoomNotFound
		}
		return append(rooms[:i], rooms[i+1:]...), nil
	})
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
	return err
}

// Reset removes the whole room collection, including a record that no longer
// decodes.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	if err := s.port.Delete(ctx, s.opts.Keys.Rooms); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to delete rooms: %w", err)
	}
	s.rooms = nil
	s.clearRoomLocked()
	s.signal(ctx, 0)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Info("room collection reset")
	s.changed(snap)
	return nil
}

func finish(r *models.GameRoom) {
	r.State = models.StateFinished
	r.TimeRemaining = 0
	r.Answered = nil
}
