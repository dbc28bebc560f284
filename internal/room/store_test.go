package room

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"ecotrivia/backend/internal/broadcast"
	"ecotrivia/backend/internal/hub"
	"ecotrivia/backend/internal/models"
	"ecotrivia/backend/internal/selector"
	"ecotrivia/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = models.User{ID: "158435", Name: "Alice", Level: 5}
	bob   = models.User{ID: "148723", Name: "Bob", Level: 3}
	carol = models.User{ID: "111111", Name: "Carol", Level: 7}
)

type env struct {
	port storage.Port
	bus  broadcast.Broadcaster
	now  time.Time
}

func newEnv() *env {
	return &env{
		port: storage.NewMemory(),
		bus:  broadcast.NewLocal(hub.NewHub(), broadcast.DefaultChannel),
		now:  time.Date(2024, 4, 22, 12, 0, 0, 0, time.UTC),
	}
}

func (e *env) store(t *testing.T, u models.User, opts ...func(*Options)) *Store {
	t.Helper()
	o := Options{
		ClientID: "tab-" + u.ID,
		Selector: selector.New(rand.NewPCG(1, 2)),
		Now:      func() time.Time { return e.now },
	}
	for _, fn := range opts {
		fn(&o)
	}
	s := New(e.port, e.bus, o)
	s.SetUser(u)
	t.Cleanup(s.Close)
	return s
}

func intp(v int) *int { return &v }

func difficulty(d models.DifficultyFilter) *models.DifficultyFilter { return &d }

func TestOceanQuiz(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	b := e.store(t, bob)

	created, err := a.Create(ctx, "Ocean Quiz", 4, false)
	require.NoError(t, err)
	assert.Equal(t, models.StateWaiting, created.State)
	assert.Equal(t, []models.User{alice}, created.Players)
	assert.Equal(t, map[string]int{alice.ID: 0}, created.Scores)

	require.NoError(t, b.Sync(ctx))
	joined, err := b.Join(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.User{alice, bob}, joined.Players)
	assert.Equal(t, map[string]int{alice.ID: 0, bob.ID: 0}, joined.Scores)

	_, err = a.SetSettings(models.SettingsPatch{
		QuestionsPerGame: intp(1),
		TimePerQuestion:  intp(30),
		Difficulty:       difficulty(models.FilterEasy),
		Categories:       []models.Category{models.CategoryClimateChange},
	})
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))

	require.NoError(t, b.Sync(ctx))
	snap := b.Snapshot()
	require.NotNil(t, snap.CurrentRoom)
	assert.Equal(t, models.StatePlaying, snap.CurrentRoom.State)
	require.NotNil(t, snap.Question)
	assert.Equal(t, models.CategoryClimateChange, snap.Question.Category)
	assert.Equal(t, models.DifficultyEasy, snap.Question.Difficulty)
	assert.Equal(t, 30, snap.TimeLeft)

	answer, err := b.SubmitAnswer(ctx, snap.Question.CorrectIndex, 5)
	require.NoError(t, err)
	assert.True(t, answer.Correct)
	assert.Equal(t, snap.Question.Points+(30-5)*2, answer.Points)

	snap = b.Snapshot()
	assert.True(t, snap.ShowResults)
	assert.Equal(t, 150, snap.CurrentRoom.Scores[bob.ID])

	require.NoError(t, b.NextQuestion(ctx))
	room, ok := b.CurrentRoom()
	require.True(t, ok)
	assert.Equal(t, models.StateFinished, room.State)

	require.NoError(t, a.Sync(ctx))
	snap = a.Snapshot()
	require.NotNil(t, snap.CurrentRoom)
	assert.Equal(t, models.StateFinished, snap.CurrentRoom.State)
	assert.Equal(t, bob.ID, snap.Leaderboard[0].Player.ID)
	assert.Equal(t, 1, snap.Leaderboard[0].Rank)
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	anon := New(e.port, e.bus, Options{})
	_, err := anon.Create(ctx, "Nobody", 4, false)
	assert.ErrorIs(t, err, ErrNoCurrentUser)

	a := e.store(t, alice)
	_, err = a.Create(ctx, "  ", 4, false)
	assert.ErrorIs(t, err, ErrInvalidRoom)
	_, err = a.Create(ctx, "Zero seats", 0, false)
	assert.ErrorIs(t, err, ErrInvalidRoom)

	_, err = a.Create(ctx, "First", 4, false)
	require.NoError(t, err)
	_, err = a.Create(ctx, "Second", 4, false)
	assert.ErrorIs(t, err, ErrAlreadyInRoom)
}

func TestCreate_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	b := e.store(t, bob)

	ra, err := a.Create(ctx, "A", 2, false)
	require.NoError(t, err)
	rb, err := b.Create(ctx, "B", 2, true)
	require.NoError(t, err)

	assert.NotEqual(t, ra.ID, rb.ID)
	require.NoError(t, a.Sync(ctx))
	assert.Len(t, a.Rooms(), 2)
}

func TestJoin_FullRoomRefused(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	b := e.store(t, bob)
	c := e.store(t, carol)

	r, err := a.Create(ctx, "Duo", 2, false)
	require.NoError(t, err)
	_, err = b.Join(ctx, r.ID)
	require.NoError(t, err)

	_, err = c.Join(ctx, r.ID)
	assert.ErrorIs(t, err, ErrRoomFull)
	_, ok := c.CurrentRoom()
	assert.False(t, ok)

	require.NoError(t, a.Sync(ctx))
	room, _ := a.CurrentRoom()
	assert.Len(t, room.Players, 2)
}

func TestJoin_Errors(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	b := e.store(t, bob)

	_, err := b.Join(ctx, "missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	r1, err := a.Create(ctx, "One", 4, false)
	require.NoError(t, err)
	r2, err := b.Create(ctx, "Two", 4, false)
	require.NoError(t, err)

	_, err = b.Join(ctx, r1.ID)
	assert.ErrorIs(t, err, ErrAlreadyInRoom)

	// joining the room you are already in is a no-op
	again, err := b.Join(ctx, r2.ID)
	require.NoError(t, err)
	assert.Len(t, again.Players, 1)
}

func TestLeave(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	b := e.store(t, bob)

	assert.ErrorIs(t, a.Leave(ctx), ErrNotInRoom)

	r, err := a.Create(ctx, "Pair", 4, false)
	require.NoError(t, err)
	_, err = b.Join(ctx, r.ID)
	require.NoError(t, err)

	require.NoError(t, a.Leave(ctx))
	_, ok := a.CurrentRoom()
	assert.False(t, ok)

	require.NoError(t, b.Sync(ctx))
	room, ok := b.CurrentRoom()
	require.True(t, ok)
	assert.Equal(t, []models.User{bob}, room.Players)
	assert.True(t, room.IsHost(bob.ID), "next player becomes host")
	assert.Contains(t, room.Scores, alice.ID, "departed player's score is retained")

	require.NoError(t, b.Leave(ctx))
	require.NoError(t, a.Sync(ctx))
	assert.Empty(t, a.Rooms(), "last leave deletes the room")
}

func TestStart_HostOnly(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	b := e.store(t, bob)

	r, err := a.Create(ctx, "Hosted", 4, false)
	require.NoError(t, err)
	_, err = b.Join(ctx, r.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, b.Start(ctx), ErrNotHost)
	require.NoError(t, a.Start(ctx))
	assert.ErrorIs(t, a.Start(ctx), ErrInvalidState)
}

func TestStart_NoQuestions(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)

	_, err := a.Create(ctx, "Empty", 4, false)
	require.NoError(t, err)
	_, err = a.SetSettings(models.SettingsPatch{
		Difficulty: difficulty(models.FilterHard),
		Categories: []models.Category{models.CategoryEnergy},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, a.Start(ctx), ErrNoQuestions)
	room, _ := a.CurrentRoom()
	assert.Equal(t, models.StateWaiting, room.State)
}

func TestSetSettings_Invalid(t *testing.T) {
	e := newEnv()
	a := e.store(t, alice)

	_, err := a.SetSettings(models.SettingsPatch{QuestionsPerGame: intp(0)})
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, models.DefaultSettings(), a.Settings())

	got, err := a.SetSettings(models.SettingsPatch{TimePerQuestion: intp(15)})
	require.NoError(t, err)
	assert.Equal(t, 15, got.TimePerQuestion)
	assert.Equal(t, 10, got.QuestionsPerGame)
}

func TestSubmitAnswer_OncePerQuestion(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)

	_, err := a.SubmitAnswer(ctx, 0, 1)
	assert.ErrorIs(t, err, ErrNoQuestion)

	_, err = a.Create(ctx, "Solo", 1, false)
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))

	q := a.Snapshot().Question
	require.NotNil(t, q)
	first, err := a.SubmitAnswer(ctx, q.CorrectIndex, 10)
	require.NoError(t, err)
	_, err = a.SubmitAnswer(ctx, q.CorrectIndex, 0)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)

	room, _ := a.CurrentRoom()
	assert.Equal(t, first.Points, room.Scores[alice.ID])
}

func TestSubmitAnswer_WrongAndNegativeTime(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)

	_, err := a.Create(ctx, "Solo", 1, false)
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))

	q := a.Snapshot().Question
	require.NotNil(t, q)
	wrong := (q.CorrectIndex + 1) % len(q.Options)
	ans, err := a.SubmitAnswer(ctx, wrong, -4)
	require.NoError(t, err)
	assert.False(t, ans.Correct)
	assert.Zero(t, ans.Points)
	assert.Zero(t, ans.TimeSpent)
}

func TestSubmitAnswer_StaleQuestionConflicts(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	b := e.store(t, bob)

	r, err := a.Create(ctx, "Race", 4, false)
	require.NoError(t, err)
	_, err = b.Join(ctx, r.ID)
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))
	require.NoError(t, b.Sync(ctx))

	// the host advances while bob is still looking at question one
	require.NoError(t, a.NextQuestion(ctx))

	_, err = b.SubmitAnswer(ctx, 0, 3)
	assert.ErrorIs(t, err, ErrConflict)

	// the failed write still brings bob onto the new question
	snap := b.Snapshot()
	assert.Equal(t, 1, snap.CurrentRoom.QuestionIndex)
	assert.False(t, snap.ShowResults)
	_, err = b.SubmitAnswer(ctx, 0, 3)
	assert.NoError(t, err)
}

func TestNextQuestion_FinishesAfterLimit(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)

	_, err := a.Create(ctx, "Marathon", 1, false)
	require.NoError(t, err)
	_, err = a.SetSettings(models.SettingsPatch{QuestionsPerGame: intp(4)})
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		snap := a.Snapshot()
		require.NotNil(t, snap.Question)
		seen[snap.Question.ID] = true
		assert.Equal(t, i, snap.CurrentRoom.QuestionIndex)
		require.NoError(t, a.NextQuestion(ctx))
	}
	room, _ := a.CurrentRoom()
	assert.Equal(t, models.StatePlaying, room.State)
	assert.Len(t, seen, 3, "the fixed sequence does not repeat questions")

	require.NoError(t, a.NextQuestion(ctx))
	room, _ = a.CurrentRoom()
	assert.Equal(t, models.StateFinished, room.State)
	assert.ErrorIs(t, a.NextQuestion(ctx), ErrInvalidState)
}

func TestNextQuestion_SequenceIsStable(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	b := e.store(t, bob)

	r, err := a.Create(ctx, "Stable", 4, false)
	require.NoError(t, err)
	_, err = b.Join(ctx, r.ID)
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Sync(ctx))
		qa, qb := a.Snapshot().Question, b.Snapshot().Question
		require.NotNil(t, qa)
		require.NotNil(t, qb)
		assert.Equal(t, qa.ID, qb.ID)
		require.NoError(t, a.NextQuestion(ctx))
	}
}

func TestScoresAreMonotonic(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)

	_, err := a.Create(ctx, "Climb", 1, false)
	require.NoError(t, err)
	_, err = a.SetSettings(models.SettingsPatch{QuestionsPerGame: intp(5)})
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))

	prev := 0
	for i := 0; i < 5; i++ {
		q := a.Snapshot().Question
		require.NotNil(t, q)
		choice := q.CorrectIndex
		if i%2 == 1 {
			choice = (choice + 1) % len(q.Options)
		}
		_, err := a.SubmitAnswer(ctx, choice, i*3)
		require.NoError(t, err)

		room, _ := a.CurrentRoom()
		assert.GreaterOrEqual(t, room.Scores[alice.ID], prev)
		prev = room.Scores[alice.ID]
		require.NoError(t, a.NextQuestion(ctx))
	}
	room, _ := a.CurrentRoom()
	assert.Equal(t, models.StateFinished, room.State)
}

func TestEndGame_AndRestart(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)

	assert.ErrorIs(t, a.EndGame(ctx), ErrNotInRoom)

	_, err := a.Create(ctx, "Replay", 1, false)
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))
	q := a.Snapshot().Question
	_, err = a.SubmitAnswer(ctx, q.CorrectIndex, 0)
	require.NoError(t, err)

	require.NoError(t, a.EndGame(ctx))
	require.NoError(t, a.EndGame(ctx))
	snap := a.Snapshot()
	assert.Equal(t, models.StateFinished, snap.CurrentRoom.State)
	assert.True(t, snap.ShowResults)
	assert.Nil(t, snap.Question)
	assert.Positive(t, snap.CurrentRoom.Scores[alice.ID])

	require.NoError(t, a.Start(ctx))
	snap = a.Snapshot()
	assert.Equal(t, models.StatePlaying, snap.CurrentRoom.State)
	assert.Equal(t, 2, snap.CurrentRoom.Round)
	assert.Zero(t, snap.CurrentRoom.Scores[alice.ID])
	assert.NotNil(t, snap.Question)
}

func TestConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	host := e.store(t, alice)
	r, err := host.Create(ctx, "Crowd", 10, false)
	require.NoError(t, err)

	users := []models.User{bob, carol, {ID: "222222", Name: "Dana"}, {ID: "333333", Name: "Eve"}}
	errs := make(chan error, len(users))
	for _, u := range users {
		s := e.store(t, u)
		go func() {
			_, err := s.Join(ctx, r.ID)
			errs <- err
		}()
	}
	for range users {
		require.NoError(t, <-errs)
	}

	require.NoError(t, host.Sync(ctx))
	room, _ := host.CurrentRoom()
	assert.Len(t, room.Players, len(users)+1)
	assert.Equal(t, int64(len(users)+1), room.Revision)
}

func TestSync_CorruptCollectionReadsEmpty(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)

	_, err := e.port.Put(ctx, storage.NewKeys("ecotrivia-").Rooms, []byte("{not json"), storage.AnyRevision)
	require.NoError(t, err)
	require.NoError(t, a.Sync(ctx))
	assert.Empty(t, a.Rooms())

	// the corrupt record is overwritten by the next write
	_, err = a.Create(ctx, "Fresh", 2, false)
	require.NoError(t, err)
	require.NoError(t, a.Sync(ctx))
	assert.Len(t, a.Rooms(), 1)
}

func TestSync_RemovedFromRoomClearsLocalState(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	admin := New(e.port, e.bus, Options{ClientID: "admin"})

	r, err := a.Create(ctx, "Doomed", 2, false)
	require.NoError(t, err)
	require.NoError(t, admin.DeleteRoom(ctx, r.ID))
	assert.ErrorIs(t, admin.DeleteRoom(ctx, r.ID), ErrRoomNotFound)

	require.NoError(t, a.Sync(ctx))
	_, ok := a.CurrentRoom()
	assert.False(t, ok)
}

func TestWritesAreSignalled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e := newEnv()
	signals, err := e.bus.Subscribe(ctx)
	require.NoError(t, err)

	a := e.store(t, alice)
	_, err = a.Create(ctx, "Loud", 2, false)
	require.NoError(t, err)

	select {
	case sig := <-signals:
		assert.Equal(t, a.ClientID(), sig.Origin)
		assert.Equal(t, storage.NewKeys("ecotrivia-").Rooms, sig.Key)
	case <-time.After(time.Second):
		t.Fatal("no signal published")
	}

	stamp, err := e.port.Get(ctx, storage.NewKeys("ecotrivia-").RoomUpdate)
	require.NoError(t, err)
	assert.NotEmpty(t, stamp.Value)
}

func TestLogoutClearsRoomButKeepsMembership(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	var last Snapshot
	a := e.store(t, alice, func(o *Options) { o.OnChange = func(s Snapshot) { last = s } })

	r, err := a.Create(ctx, "Ghost", 2, false)
	require.NoError(t, err)
	a.Logout()

	assert.Nil(t, last.User)
	assert.Nil(t, last.CurrentRoom)
	_, ok := a.User()
	assert.False(t, ok)

	require.NoError(t, a.Sync(ctx))
	rooms := a.Rooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, r.ID, rooms[0].ID)
	assert.True(t, rooms[0].HasPlayer(alice.ID))
}

func TestSubmitAnswer_OncePerPlayerAcrossClients(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	tab1 := e.store(t, bob)
	tab2 := e.store(t, bob, func(o *Options) { o.ClientID = "tab-2" })

	r, err := a.Create(ctx, "Twins", 4, false)
	require.NoError(t, err)
	_, err = tab1.Join(ctx, r.ID)
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))
	require.NoError(t, tab1.Sync(ctx))
	require.NoError(t, tab2.Sync(ctx))

	q := tab1.Snapshot().Question
	require.NotNil(t, q)
	require.NotNil(t, tab2.Snapshot().Question, "second tab picks up the room bob plays in")

	first, err := tab1.SubmitAnswer(ctx, q.CorrectIndex, 5)
	require.NoError(t, err)
	_, err = tab2.SubmitAnswer(ctx, q.CorrectIndex, 5)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.True(t, tab2.Snapshot().ShowResults)

	require.NoError(t, a.Sync(ctx))
	room, ok := a.CurrentRoom()
	require.True(t, ok)
	assert.Equal(t, first.Points, room.Scores[bob.ID])

	// the next question accepts a new answer
	require.NoError(t, a.NextQuestion(ctx))
	require.NoError(t, tab2.Sync(ctx))
	next := tab2.Snapshot().Question
	require.NotNil(t, next)
	_, err = tab2.SubmitAnswer(ctx, next.CorrectIndex, 5)
	require.NoError(t, err)
}

func TestJoin_OneRoomPerUserAcrossClients(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	b := e.store(t, bob)
	c := e.store(t, carol)

	r1, err := a.Create(ctx, "First", 4, false)
	require.NoError(t, err)
	_, err = b.Join(ctx, r1.ID)
	require.NoError(t, err)
	r2, err := c.Create(ctx, "Second", 4, false)
	require.NoError(t, err)

	// signing in again restores the room bob still plays in
	b.Logout()
	b.SetUser(bob)
	current, ok := b.CurrentRoom()
	require.True(t, ok)
	assert.Equal(t, r1.ID, current.ID)
	_, err = b.Join(ctx, r2.ID)
	assert.ErrorIs(t, err, ErrAlreadyInRoom)

	// a client that never saw the room is refused by the persisted membership
	fresh := e.store(t, bob, func(o *Options) { o.ClientID = "tab-2" })
	_, err = fresh.Join(ctx, r2.ID)
	assert.ErrorIs(t, err, ErrAlreadyInRoom)
	current, ok = fresh.CurrentRoom()
	require.True(t, ok)
	assert.Equal(t, r1.ID, current.ID)

	other := e.store(t, bob, func(o *Options) { o.ClientID = "tab-3" })
	_, err = other.Create(ctx, "Third", 4, false)
	assert.ErrorIs(t, err, ErrAlreadyInRoom)

	require.NoError(t, c.Sync(ctx))
	assert.Len(t, c.Rooms(), 2)
	room, _ := c.CurrentRoom()
	assert.Equal(t, []models.User{carol}, room.Players)
}

func TestLeave_AlreadyRemovedDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	tab1 := e.store(t, bob)
	tab2 := e.store(t, bob, func(o *Options) { o.ClientID = "tab-2" })

	r, err := a.Create(ctx, "Door", 4, false)
	require.NoError(t, err)
	_, err = tab1.Join(ctx, r.ID)
	require.NoError(t, err)
	require.NoError(t, tab2.Sync(ctx))

	require.NoError(t, tab1.Leave(ctx))
	require.NoError(t, tab2.Leave(ctx))
	_, ok := tab2.CurrentRoom()
	assert.False(t, ok)

	require.NoError(t, a.Sync(ctx))
	room, ok := a.CurrentRoom()
	require.True(t, ok)
	assert.Equal(t, []models.User{alice}, room.Players)
	assert.Equal(t, int64(3), room.Revision, "create, join and one leave")
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := e.store(t, alice)
	admin := New(e.port, e.bus, Options{ClientID: "admin"})
	keys := storage.NewKeys("ecotrivia-")

	_, err := a.Create(ctx, "Wiped", 2, false)
	require.NoError(t, err)
	_, err = e.port.Put(ctx, keys.Rooms, []byte("{not json"), storage.AnyRevision)
	require.NoError(t, err)

	require.NoError(t, admin.Reset(ctx))
	_, err = e.port.Get(ctx, keys.Rooms)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, a.Sync(ctx))
	_, ok := a.CurrentRoom()
	assert.False(t, ok)
	_, err = a.Create(ctx, "Again", 2, false)
	require.NoError(t, err)
}
