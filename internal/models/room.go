package models

import (
	"maps"
	"slices"
	"time"
)

// GameState is the persisted lifecycle state of a room.
type GameState string

const (
	StateWaiting  GameState = "waiting"
	StatePlaying  GameState = "playing"
	StateFinished GameState = "finished"
)

// Active reports whether rooms in this state survive the sweep.
func (s GameState) Active() bool {
	return s == StateWaiting || s == StatePlaying
}

// GameRoom is a self-contained game session.
// Players is ordered; the first player is the host.
type GameRoom struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Players       []User         `json:"players"`
	MaxPlayers    int            `json:"maxPlayers"`
	IsPrivate     bool           `json:"isPrivate"`
	State         GameState      `json:"gameState"`
	Round         int            `json:"round"`
	QuestionIndex int            `json:"questionIndex"`
	TimeRemaining int            `json:"timeRemaining"`
	Scores        map[string]int `json:"scores"`
	Settings      GameSettings   `json:"settings"`
	QuestionIDs   []string       `json:"questionIds,omitempty"`
	Answered      []string       `json:"answered,omitempty"`
	Revision      int64          `json:"revision"`
	UpdatedAt     time.Time      `json:"lastUpdate"`
}

// Clone returns a deep copy so callers can mutate it freely.
func (r GameRoom) Clone() GameRoom {
	out := r
	out.Players = slices.Clone(r.Players)
	out.Scores = maps.Clone(r.Scores)
	if out.Scores == nil {
		out.Scores = make(map[string]int)
	}
	out.Settings.Categories = slices.Clone(r.Settings.Categories)
	out.QuestionIDs = slices.Clone(r.QuestionIDs)
	out.Answered = slices.Clone(r.Answered)
	return out
}

// Host returns the first player, if any.
func (r GameRoom) Host() (User, bool) {
	if len(r.Players) == 0 {
		return User{}, false
	}
	return r.Players[0], true
}

// IsHost reports whether userID is the room's host.
func (r GameRoom) IsHost(userID string) bool {
	host, ok := r.Host()
	return ok && host.ID == userID
}

// HasPlayer reports whether userID is in the player list.
func (r GameRoom) HasPlayer(userID string) bool {
	return slices.ContainsFunc(r.Players, func(u User) bool { return u.ID == userID })
}

// HasAnswered reports whether userID already answered the current question.
func (r GameRoom) HasAnswered(userID string) bool {
	return slices.Contains(r.Answered, userID)
}

// IsFull reports whether the room refuses further joins.
func (r GameRoom) IsFull() bool {
	return len(r.Players) >= r.MaxPlayers
}

// Standing is one row of a room's scoreboard.
type Standing struct {
	Player User `json:"player"`
	Score  int  `json:"score"`
	Rank   int  `json:"rank"`
}

// Leaderboard orders current players by score, highest first.
// Ties keep player order and share a rank.
func (r GameRoom) Leaderboard() []Standing {
	out := make([]Standing, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, Standing{Player: p, Score: r.Scores[p.ID]})
	}
	slices.SortStableFunc(out, func(a, b Standing) int { return b.Score - a.Score })
	for i := range out {
		switch {
		case i > 0 && out[i].Score == out[i-1].Score:
			out[i].Rank = out[i-1].Rank
		default:
			out[i].Rank = i + 1
		}
	}
	return out
}
