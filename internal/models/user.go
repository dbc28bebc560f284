package models

// User is a player identity handed to the core by the login flow.
// The core never mutates the aggregate stat fields.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Level          int    `json:"level"`
	TotalScore     int    `json:"totalScore"`
	GamesPlayed    int    `json:"gamesPlayed"`
	CorrectAnswers int    `json:"correctAnswers"`
}
