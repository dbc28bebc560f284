// Package catalog serves the static, read-only question bank.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"ecotrivia/backend/internal/models"
)

//go:embed questions.json
var builtin []byte

// CategoryInfo is display metadata for a category.
type CategoryInfo struct {
	Category models.Category `json:"id"`
	Name     string          `json:"name"`
	Icon     string          `json:"icon"`
}

var categoryInfo = map[models.Category]CategoryInfo{
	models.CategoryRecycling:              {models.CategoryRecycling, "Recycling", "♻️"},
	models.CategoryBiodiversity:           {models.CategoryBiodiversity, "Biodiversity", "🌿"},
	models.CategoryEnergy:                 {models.CategoryEnergy, "Energy", "⚡"},
	models.CategoryClimateChange:          {models.CategoryClimateChange, "Climate Change", "🌡️"},
	models.CategorySustainableConsumption: {models.CategorySustainableConsumption, "Sustainable Consumption", "🛒"},
	models.CategoryPollution:              {models.CategoryPollution, "Pollution", "🏭"},
	models.CategoryConservation:           {models.CategoryConservation, "Conservation", "🌍"},
}

// Catalog is an immutable set of questions indexed by id.
type Catalog struct {
	questions []models.Question
	byID      map[string]int
}

// New builds a catalog from questions. Duplicate ids are rejected.
func New(questions []models.Question) (*Catalog, error) {
	c := &Catalog{
		questions: slices.Clone(questions),
		byID:      make(map[string]int, len(questions)),
	}
	for i, q := range c.questions {
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, fmt.Errorf("question %q: correct answer %d out of range", q.ID, q.CorrectIndex)
		}
		c.byID[q.ID] = i
	}
	return c, nil
}

// Load reads a JSON array of questions.
func Load(r io.Reader) (*Catalog, error) {
	var questions []models.Question
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return nil, fmt.Errorf("failed to decode question catalog: %w", err)
	}
	return New(questions)
}

// LoadFile reads a catalog from path, or returns the builtin one when path is empty.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the builtin catalog.
func Default() *Catalog {
	var questions []models.Question
	if err := json.Unmarshal(builtin, &questions); err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	c, err := New(questions)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// All returns every question in catalog order.
func (c *Catalog) All() []models.Question {
	return slices.Clone(c.questions)
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Get looks up a question by id.
func (c *Catalog) Get(id string) (models.Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Question{}, false
	}
	return c.questions[i], true
}

// Categories returns display metadata for every known category.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(models.AllCategories))
	for _, c := range models.AllCategories {
		out = append(out, categoryInfo[c])
	}
	return out
}
