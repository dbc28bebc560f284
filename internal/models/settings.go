package models

import (
	"errors"
	"fmt"
	"slices"
)

// DifficultyFilter selects questions by tier. DifficultyMixed accepts all tiers.
type DifficultyFilter string

const (
	DifficultyMixed DifficultyFilter = "mixed"
	FilterEasy      DifficultyFilter = "easy"
	FilterMedium    DifficultyFilter = "medium"
	FilterHard      DifficultyFilter = "hard"
)

// Matches reports whether a question of tier d passes the filter.
func (f DifficultyFilter) Matches(d Difficulty) bool {
	return f == DifficultyMixed || string(f) == string(d)
}

func (f DifficultyFilter) valid() bool {
	switch f {
	case DifficultyMixed, FilterEasy, FilterMedium, FilterHard:
		return true
	}
	return false
}

// GameSettings configures how a room's question sequence is built and timed.
type GameSettings struct {
	QuestionsPerGame int              `json:"questionsPerGame"`
	TimePerQuestion  int              `json:"timePerQuestion"`
	Difficulty       DifficultyFilter `json:"difficulty"`
	Categories       []Category       `json:"categories"`
}

// SettingsPatch is a partial update of GameSettings; nil fields are kept.
type SettingsPatch struct {
	QuestionsPerGame *int              `json:"questionsPerGame,omitempty"`
	TimePerQuestion  *int              `json:"timePerQuestion,omitempty"`
	Difficulty       *DifficultyFilter `json:"difficulty,omitempty"`
	Categories       []Category        `json:"categories,omitempty"`
}

// DefaultSettings returns ten mixed questions, 30 seconds each, all categories.
func DefaultSettings() GameSettings {
	return GameSettings{
		QuestionsPerGame: 10,
		TimePerQuestion:  30,
		Difficulty:       DifficultyMixed,
		Categories:       slices.Clone(AllCategories),
	}
}

// Validate checks the recognised ranges of every option.
func (s GameSettings) Validate() error {
	if s.QuestionsPerGame <= 0 {
		return fmt.Errorf("questionsPerGame must be positive, got %d", s.QuestionsPerGame)
	}
	if s.TimePerQuestion <= 0 {
		return fmt.Errorf("timePerQuestion must be positive, got %d", s.TimePerQuestion)
	}
	if !s.Difficulty.valid() {
		return fmt.Errorf("unknown difficulty %q", s.Difficulty)
	}
	if len(s.Categories) == 0 {
		return errors.New("at least one category must be enabled")
	}
	for _, c := range s.Categories {
		if !c.Valid() {
			return fmt.Errorf("unknown category %q", c)
		}
	}
	return nil
}

// HasCategory reports whether c is enabled.
func (s GameSettings) HasCategory(c Category) bool {
	return slices.Contains(s.Categories, c)
}

// Merge returns a copy of s with the non-nil fields of p applied.
func (s GameSettings) Merge(p SettingsPatch) GameSettings {
	out := s
	out.Categories = slices.Clone(s.Categories)
	if p.QuestionsPerGame != nil {
		out.QuestionsPerGame = *p.QuestionsPerGame
	}
	if p.TimePerQuestion != nil {
		out.TimePerQuestion = *p.TimePerQuestion
	}
	if p.Difficulty != nil {
		out.Difficulty = *p.Difficulty
	}
	if p.Categories != nil {
		out.Categories = slices.Clone(p.Categories)
	}
	return out
}
