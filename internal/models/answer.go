package models

// NoAnswer is the option index recorded when the countdown runs out.
const NoAnswer = -1

// PlayerAnswer is one player's answer to the current question.
// It only lives on the client that submitted it.
type PlayerAnswer struct {
	PlayerID    string `json:"playerId"`
	AnswerIndex int    `json:"answerIndex"`
	TimeSpent   int    `json:"timeSpent"`
	Correct     bool   `json:"isCorrect"`
	Points      int    `json:"points"`
}
