// Package room holds one client's view of all rooms and the state machine
// that creates, joins, plays and finishes them.
package room

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"ecotrivia/backend/internal/broadcast"
	"ecotrivia/backend/internal/catalog"
	"ecotrivia/backend/internal/models"
	"ecotrivia/backend/internal/scoring"
	"ecotrivia/backend/internal/selector"
	"ecotrivia/backend/internal/storage"

	"github.com/google/uuid"
)

// Options configures a Store. Zero values fall back to defaults.
type Options struct {
	// ClientID identifies this client in broadcast signals.
	ClientID string
	Keys     storage.Keys
	Catalog  *catalog.Catalog
	Selector *selector.Selector
	Scoring  scoring.Engine
	Logger   *slog.Logger
	Now      func() time.Time
	// TickInterval is the countdown period. Zero disables the countdown
	// goroutine; callers then drive Tick themselves.
	TickInterval time.Duration
	// StaleAfter makes the sweep drop rooms untouched for this long. Zero disables it.
	StaleAfter time.Duration
	// MaxAttempts bounds compare-and-swap retries of one write.
	MaxAttempts int
	// OnChange receives a snapshot after every local state change.
	OnChange func(Snapshot)
}

// Store is one client's authoritative view of the shared room collection.
// It is the only component that reads or writes room data in the Port.
type Store struct {
	port storage.Port
	bus  broadcast.Broadcaster
	opts Options
	log  *slog.Logger

	mu       sync.Mutex
	user     *models.User
	settings models.GameSettings
	rooms    []models.GameRoom

	roomID      string
	final       *models.GameRoom
	round       int
	qIndex      int
	question    *models.Question
	answers     []models.PlayerAnswer
	showResults bool
	timeLeft    int
	stopTimer   context.CancelFunc
}

// New creates a Store backed by port that announces writes on bus.
func New(port storage.Port, bus broadcast.Broadcaster, opts Options) *Store {
	if opts.ClientID == "" {
		opts.ClientID = uuid.NewString()
	}
	if opts.Keys == (storage.Keys{}) {
		opts.Keys = storage.NewKeys("ecotrivia-")
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Selector == nil {
		opts.Selector = selector.New(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 8
	}
	return &Store{
		port:     port,
		bus:      bus,
		opts:     opts,
		log:      opts.Logger.With("client", opts.ClientID),
		settings: models.DefaultSettings(),
	}
}

// ClientID returns the id this store signs its broadcasts with.
func (s *Store) ClientID() string {
	return s.opts.ClientID
}

// Snapshot is a read-only copy of the client state for presentation.
type Snapshot struct {
	User        *models.User          `json:"user,omitempty"`
	Settings    models.GameSettings   `json:"settings"`
	Rooms       []models.GameRoom     `json:"rooms"`
	CurrentRoom *models.GameRoom      `json:"currentRoom,omitempty"`
	Question    *models.Question      `json:"currentQuestion,omitempty"`
	Answers     []models.PlayerAnswer `json:"playerAnswers"`
	ShowResults bool                  `json:"showResults"`
	TimeLeft    int                   `json:"timeLeft"`
	Leaderboard []models.Standing     `json:"leaderboard,omitempty"`
}

// Snapshot returns the current client state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Settings:    s.settings.Merge(models.SettingsPatch{}),
		Rooms:       make([]models.GameRoom, 0, len(s.rooms)),
		Answers:     slices.Clone(s.answers),
		ShowResults: s.showResults,
		TimeLeft:    s.timeLeft,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	for _, r := range s.rooms {
		snap.Rooms = append(snap.Rooms, r.Clone())
	}
	if r, ok := s.currentLocked(); ok {
		r = r.Clone()
		snap.CurrentRoom = &r
		snap.Leaderboard = r.Leaderboard()
	}
	if s.question != nil {
		q := *s.question
		snap.Question = &q
	}
	return snap
}

// Rooms returns the locally known room collection.
func (s *Store) Rooms() []models.GameRoom {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.GameRoom, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r.Clone())
	}
	return out
}

// CurrentRoom returns the room the current user is in.
func (s *Store) CurrentRoom() (models.GameRoom, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.currentLocked()
	if !ok {
		return models.GameRoom{}, false
	}
	return r.Clone(), true
}

func (s *Store) currentLocked() (models.GameRoom, bool) {
	if s.roomID == "" {
		return models.GameRoom{}, false
	}
	i := indexOf(s.rooms, s.roomID)
	if i >= 0 {
		return s.rooms[i], true
	}
	// a finished room keeps showing its scoreboard after the sweep removed it
	if s.final != nil && s.final.ID == s.roomID {
		return *s.final, true
	}
	return models.GameRoom{}, false
}

// User returns the current user.
func (s *Store) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// SetUser makes u the current user. Switching to a different user drops
// the local room state of the previous one; a known room u plays in becomes current.
func (s *Store) SetUser(u models.User) {
	s.mu.Lock()
	if s.user != nil && s.user.ID != u.ID {
		s.clearRoomLocked()
	}
	s.user = &u
	s.followLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
}

// Logout forgets the current user and the local room state. The user stays
// a member of the persisted room until the sweep or another leave removes it.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.clearRoomLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
}

// Settings returns the settings the next Start will use.
func (s *Store) Settings() models.GameSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Merge(models.SettingsPatch{})
}

// SetSettings merges a partial update into the settings.
func (s *Store) SetSettings(p models.SettingsPatch) (models.GameSettings, error) {
	s.mu.Lock()
	next := s.settings.Merge(p)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return s.Settings(), wrapSettings(err)
	}
	s.settings = next
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
	return next.Merge(models.SettingsPatch{}), nil
}

// Sync replaces the local collection with the persisted one.
func (s *Store) Sync(ctx context.Context) error {
	s.mu.Lock()
	rooms, _, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.rooms = rooms
	s.followLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changed(snap)
	return nil
}

// followLocked derives the local question state from the current room, so
// every client in a room moves when any one of them starts or advances it.
// Without a current room, the room the user already plays in is picked up.
func (s *Store) followLocked() {
	if s.roomID != "" {
		r, ok := s.currentLocked()
		if !ok || s.user == nil || !r.HasPlayer(s.user.ID) {
			s.clearRoomLocked()
		}
	}
	if s.roomID == "" {
		if s.user == nil {
			return
		}
		i := roomOf(s.rooms, s.user.ID)
		if i < 0 {
			return
		}
		s.roomID = s.rooms[i].ID
	}
	r, _ := s.currentLocked()

	s.final = nil
	switch r.State {
	case models.StateWaiting:
		s.stopCountdownLocked()
		s.question = nil
		s.answers = nil
		s.showResults = false
		s.timeLeft = 0

	case models.StateFinished:
		f := r.Clone()
		s.final = &f
		s.stopCountdownLocked()
		s.question = nil
		s.showResults = true
		s.timeLeft = 0

	case models.StatePlaying:
		if s.question == nil || s.round != r.Round || s.qIndex != r.QuestionIndex {
			if !s.enterQuestionLocked(r) {
				return
			}
		}
		// answered from another client of the same user
		if r.HasAnswered(s.user.ID) && !s.showResults {
			s.showResults = true
			s.stopCountdownLocked()
		}
	}
}

// enterQuestionLocked loads the room's active question and starts its countdown.
func (s *Store) enterQuestionLocked(r models.GameRoom) bool {
	s.round = r.Round
	s.qIndex = r.QuestionIndex
	s.answers = nil
	s.showResults = false
	s.timeLeft = r.Settings.TimePerQuestion

	id, ok := selector.Pick(r.QuestionIDs, r.QuestionIndex)
	if !ok {
		s.question = nil
		return false
	}
	q, ok := s.opts.Catalog.Get(id)
	if !ok {
		s.log.Warn("question missing from catalog", "room", r.ID, "question", id)
		s.question = nil
		return false
	}
	s.question = &q
	s.startCountdownLocked()
	return true
}

func (s *Store) clearRoomLocked() {
	s.stopCountdownLocked()
	s.roomID = ""
	s.final = nil
	s.round = 0
	s.qIndex = 0
	s.question = nil
	s.answers = nil
	s.showResults = false
	s.timeLeft = 0
}

func (s *Store) changed(snap Snapshot) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(snap)
	}
}

func indexOf(rooms []models.GameRoom, id string) int {
	return slices.IndexFunc(rooms, func(r models.GameRoom) bool { return r.ID == id })
}

// roomOf returns the index of the first room userID plays in, or -1.
func roomOf(rooms []models.GameRoom, userID string) int {
	return slices.IndexFunc(rooms, func(r models.GameRoom) bool { return r.HasPlayer(userID) })
}
