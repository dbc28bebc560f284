// Package scoring evaluates answers and awards points.
package scoring

import "ecotrivia/backend/internal/models"

// ReferenceWindow is the fixed duration, in seconds, the time bonus counts down from.
const ReferenceWindow = 30

// bonusPerSecond is awarded for every second left in the window.
const bonusPerSecond = 2

// Result is the outcome of one answer.
type Result struct {
	Correct bool
	Points  int
}

// Engine computes points. With UseTimeLimit the bonus window is the room's
// configured time per question instead of ReferenceWindow.
type Engine struct {
	UseTimeLimit bool
}

// Evaluate scores the chosen option for q.
func (e Engine) Evaluate(q models.Question, chosen, timeSpent, timeLimit int) Result {
	window := ReferenceWindow
	if e.UseTimeLimit && timeLimit > 0 {
		window = timeLimit
	}
	return Evaluate(q, chosen, timeSpent, window)
}

// Evaluate scores chosen against q with a time bonus counted from window.
func Evaluate(q models.Question, chosen, timeSpent, window int) Result {
	if chosen != q.CorrectIndex {
		return Result{}
	}
	bonus := max(0, (window-timeSpent)*bonusPerSecond)
	return Result{Correct: true, Points: q.Points + bonus}
}
