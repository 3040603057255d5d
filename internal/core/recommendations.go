package core

import "time"

// RecommendationSource tells where a recommendation set came from
type RecommendationSource string

const (
	SourceModel  RecommendationSource = "model"
	SourceSample RecommendationSource = "sample"
)

// FitnessActivity is one suggested workout
type FitnessActivity struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
	CaloriesBurn    int    `json:"caloriesBurn"`
	ImageURL        string `json:"imageUrl"`
}

// Routine is one relaxation routine or sleep tip
type Routine struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
	Level           string `json:"level"`
	ImageURL        string `json:"imageUrl"`
}

// RelaxationRoutines groups routines by category
type RelaxationRoutines struct {
	Yoga       []Routine `json:"yoga"`
	Meditation []Routine `json:"meditation"`
	SleepTips  []Routine `json:"sleepTips"`
}

// Recommendations is one generated recommendation set
type Recommendations struct {
	ID                     string               `json:"id"`
	FitnessRecommendations []FitnessActivity    `json:"fitnessRecommendations"`
	RelaxationRoutines     RelaxationRoutines   `json:"relaxationRoutines"`
	Source                 RecommendationSource `json:"source"`
	GeneratedAt            time.Time            `json:"generatedAt"`
}

// RecommendationHistoryEntry is a previous set displaced by a newer one
type RecommendationHistoryEntry struct {
	FitnessRecommendations []FitnessActivity  `json:"fitnessRecommendations"`
	RelaxationRoutines     RelaxationRoutines `json:"relaxationRoutines"`
	MovedToHistoryAt       time.Time          `json:"movedToHistoryAt"`
}
