package selector

import (
	"math/rand/v2"
	"testing"

	"ecotrivia/backend/internal/catalog"
	"ecotrivia/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settings(difficulty models.DifficultyFilter, n int, cats ...models.Category) models.GameSettings {
	return models.GameSettings{
		QuestionsPerGame: n,
		TimePerQuestion:  30,
		Difficulty:       difficulty,
		Categories:       cats,
	}
}

func TestFilter(t *testing.T) {
	all := catalog.Default().All()

	tests := []struct {
		name     string
		settings models.GameSettings
		want     int
	}{
		{"mixed all categories", settings(models.DifficultyMixed, 10, models.AllCategories...), 10},
		{"easy climate", settings(models.FilterEasy, 10, models.CategoryClimateChange), 1},
		{"medium pollution", settings(models.FilterMedium, 10, models.CategoryPollution), 3},
		{"hard energy", settings(models.FilterHard, 10, models.CategoryEnergy), 0},
		{"no categories", settings(models.DifficultyMixed, 10), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(all, tt.settings)
			assert.Len(t, got, tt.want)
			for _, q := range got {
				assert.True(t, tt.settings.Difficulty.Matches(q.Difficulty))
				assert.True(t, tt.settings.HasCategory(q.Category))
			}
		})
	}
}

func TestSelect_TakesFirstN(t *testing.T) {
	s := New(rand.NewPCG(1, 2))
	got := s.Select(catalog.Default().All(), settings(models.DifficultyMixed, 4, models.AllCategories...))
	assert.Len(t, got, 4)

	seen := map[string]bool{}
	for _, q := range got {
		assert.False(t, seen[q.ID], "duplicate question %s", q.ID)
		seen[q.ID] = true
	}
}

func TestSelect_FewerAvailableThanRequested(t *testing.T) {
	s := New(nil)
	got := s.Select(catalog.Default().All(), settings(models.DifficultyMixed, 10, models.CategoryPollution))
	assert.Len(t, got, 3)
}

func TestSelect_EmptyWhenNothingMatches(t *testing.T) {
	s := New(nil)
	assert.Empty(t, s.Select(catalog.Default().All(), settings(models.DifficultyMixed, 10)))
}

func TestShuffle_IsPermutation(t *testing.T) {
	s := New(rand.NewPCG(7, 7))
	all := catalog.Default().All()
	got := s.Shuffle(all)
	require.Len(t, got, len(all))
	assert.ElementsMatch(t, IDs(all), IDs(got))
	assert.Equal(t, "1", all[0].ID, "input must not be reordered")
}

func TestPick(t *testing.T) {
	ids := []string{"a", "b", "c"}

	id, ok := Pick(ids, 1)
	assert.True(t, ok)
	assert.Equal(t, "b", id)

	id, ok = Pick(ids, 4)
	assert.True(t, ok)
	assert.Equal(t, "b", id)

	_, ok = Pick(nil, 0)
	assert.False(t, ok)
}
