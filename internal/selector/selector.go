// Package selector filters and samples the question catalog for a game.
package selector

import (
	"math/rand/v2"
	"sync"

	"ecotrivia/backend/internal/models"
)

// Selector shuffles with its own random source.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Selector drawing from src. A nil src is seeded randomly,
// so orderings are not reproducible across games.
func New(src rand.Source) *Selector {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Selector{rng: rand.New(src)}
}

// Filter keeps the questions matching the difficulty filter and the enabled categories.
func Filter(questions []models.Question, settings models.GameSettings) []models.Question {
	out := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if settings.Difficulty.Matches(q.Difficulty) && settings.HasCategory(q.Category) {
			out = append(out, q)
		}
	}
	return out
}

// Shuffle returns a uniformly permuted copy of questions.
func (s *Selector) Shuffle(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	copy(out, questions)

	s.mu.Lock()
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	s.mu.Unlock()

	return out
}

// Select filters and shuffles questions and keeps at most QuestionsPerGame of them.
// The result is empty when nothing matches.
func (s *Selector) Select(questions []models.Question, settings models.GameSettings) []models.Question {
	pool := s.Shuffle(Filter(questions, settings))
	if n := settings.QuestionsPerGame; n >= 0 && len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

// IDs extracts question ids in order.
func IDs(questions []models.Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

// Pick returns the id at index, wrapping around once the sequence is exhausted.
func Pick(ids []string, index int) (string, bool) {
	if len(ids) == 0 || index < 0 {
		return "", false
	}
	return ids[index%len(ids)], true
}
