package models

// Difficulty is the tier of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Category tags the topic of a question.
type Category string

const (
	CategoryRecycling              Category = "recycling"
	CategoryBiodiversity           Category = "biodiversity"
	CategoryEnergy                 Category = "energy"
	CategoryClimateChange          Category = "climate-change"
	CategorySustainableConsumption Category = "sustainable-consumption"
	CategoryPollution              Category = "pollution"
	CategoryConservation           Category = "conservation"
)

// AllCategories lists every known category in display order.
var AllCategories = []Category{
	CategoryRecycling,
	CategoryBiodiversity,
	CategoryEnergy,
	CategoryClimateChange,
	CategorySustainableConsumption,
	CategoryPollution,
	CategoryConservation,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Question is an immutable catalog entry.
type Question struct {
	ID           string     `json:"id"`
	Prompt       string     `json:"question"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctAnswer"`
	Difficulty   Difficulty `json:"difficulty"`
	Category     Category   `json:"category"`
	Explanation  string     `json:"explanation,omitempty"`
	Points       int        `json:"points"`
}
