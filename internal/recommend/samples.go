package recommend

import (
	"math/rand/v2"
	"restwell/internal/core"
	"time"
)

const (
	sampleFitnessCount = 5
	sampleRoutineCount = 2
)

var sampleFitness = []core.FitnessActivity{
	{Title: "Morning Walking Routine", Description: "A gentle 30-minute walk to start your day and boost your metabolism.", DurationMinutes: 30, CaloriesBurn: 150},
	{Title: "Beginner Strength Training", Description: "Basic strength exercises using your body weight to build muscle.", DurationMinutes: 20, CaloriesBurn: 180},
	{Title: "Evening Stretch Routine", Description: "Gentle stretching to improve flexibility and prepare for sleep.", DurationMinutes: 15, CaloriesBurn: 70},
	{Title: "Light Cardio Session", Description: "A mix of jumping jacks, high knees, and jogging in place to get your heart rate up.", DurationMinutes: 25, CaloriesBurn: 200},
	{Title: "Balance Exercises", Description: "Simple exercises to improve your balance and core strength.", DurationMinutes: 15, CaloriesBurn: 80},
	{Title: "Swimming Workout", Description: "Low-impact full body workout in the pool with varied strokes.", DurationMinutes: 40, CaloriesBurn: 250},
	{Title: "Pilates Core Routine", Description: "Focus on strengthening your core with controlled movements.", DurationMinutes: 20, CaloriesBurn: 120},
	{Title: "Cycling Session", Description: "Moderate-intensity cycling to improve cardiovascular health.", DurationMinutes: 35, CaloriesBurn: 280},
	{Title: "Bodyweight Circuit", Description: "A series of exercises performed in succession with minimal rest.", DurationMinutes: 25, CaloriesBurn: 220},
	{Title: "Resistance Band Workout", Description: "Full-body strength training using resistance bands.", DurationMinutes: 20, CaloriesBurn: 150},
}

var sampleYoga = []core.Routine{
	{Title: "Bedtime Yoga Sequence", Description: "Gentle yoga poses to help you unwind before bed.", DurationMinutes: 15, Level: "Beginner"},
	{Title: "Morning Yoga Flow", Description: "Energizing yoga sequence to start your day right.", DurationMinutes: 20, Level: "Beginner"},
	{Title: "Yin Yoga for Sleep", Description: "Slow-paced style of yoga with poses held for longer periods.", DurationMinutes: 25, Level: "All Levels"},
	{Title: "Stress Relief Yoga", Description: "Calming poses focused on releasing tension in the body.", DurationMinutes: 18, Level: "Beginner"},
	{Title: "Gentle Neck & Shoulder Release", Description: "Targeted poses to relieve tension in the upper body.", DurationMinutes: 12, Level: "All Levels"},
}

var sampleMeditation = []core.Routine{
	{Title: "Deep Sleep Meditation", Description: "Guided meditation to help you fall into a deep, restful sleep.", DurationMinutes: 10, Level: "All Levels"},
	{Title: "Mindful Breathing", Description: "Focus on your breath to calm your mind and reduce stress.", DurationMinutes: 5, Level: "Beginner"},
	{Title: "Body Scan Relaxation", Description: "Progressively relax each part of your body to prepare for sleep.", DurationMinutes: 15, Level: "Beginner"},
	{Title: "Gratitude Meditation", Description: "Focus on things you're thankful for to promote positive thoughts.", DurationMinutes: 8, Level: "All Levels"},
	{Title: "Anxiety Relief Meditation", Description: "Calm anxious thoughts and find mental peace before bedtime.", DurationMinutes: 12, Level: "All Levels"},
}

var sampleSleepTips = []core.Routine{
	{Title: "Evening Routine Guide", Description: "Simple steps to create a relaxing evening routine for better sleep.", DurationMinutes: 3, Level: "Quick Tips"},
	{Title: "Sleep Environment Setup", Description: "How to optimize your bedroom for quality sleep.", DurationMinutes: 4, Level: "Quick Tips"},
	{Title: "Digital Detox Before Bed", Description: "How to reduce screen time to improve sleep quality.", DurationMinutes: 3, Level: "Quick Tips"},
	{Title: "Optimal Sleep Schedule", Description: "Tips for maintaining consistent sleep and wake times.", DurationMinutes: 5, Level: "Quick Tips"},
	{Title: "Foods That Help Sleep", Description: "Dietary choices that can improve your sleep quality.", DurationMinutes: 4, Level: "Quick Tips"},
}

// SampleSuggestions picks fallback content from the fixed catalogues.
// The selection depends only on the UTC calendar day of now.
func SampleSuggestions(now time.Time) *Suggestions {
	day := uint64(now.UTC().Unix() / 86400)
	r := rand.New(rand.NewPCG(day, 0x5eed))

	s := &Suggestions{
		FitnessRecommendations: pick(r, sampleFitness, sampleFitnessCount),
		RelaxationRoutines: core.RelaxationRoutines{
			Yoga:       pick(r, sampleYoga, sampleRoutineCount),
			Meditation: pick(r, sampleMeditation, sampleRoutineCount),
			SleepTips:  pick(r, sampleSleepTips, sampleRoutineCount),
		},
	}
	applyImages(s.FitnessRecommendations, &s.RelaxationRoutines)
	return s
}

// pick returns n distinct items in random order without touching the catalogue
func pick[T any](r *rand.Rand, items []T, n int) []T {
	n = min(n, len(items))
	out := make([]T, 0, n)
	for _, i := range r.Perm(len(items))[:n] {
		out = append(out, items[i])
	}
	return out
}
