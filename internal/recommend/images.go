package recommend

import (
	"net/url"
	"restwell/internal/core"
	"strings"
)

// PlaceholderImage is used when no keyword matches a title
const PlaceholderImage = "https://placehold.co/400x300"

const keywordImageDir = "/assets/keywords/"

type keywordImage struct {
	keyword string
	file    string
}

// keywordImages is matched in order; compound keywords come first so
// "bedtime yoga" wins over "yoga".
var keywordImages = []keywordImage{
	{"bedtime yoga", "Bedtime Yoga.jpg"},
	{"body scan", "Body Scan.jpg"},
	{"breathing", "Breathing.jpg"},
	{"caffeine", "Caffeine.jpg"},
	{"dark", "Dark.jpg"},
	{"meditation", "Meditation.jpg"},
	{"morning yoga", "Morning Yoga.jpg"},
	{"relaxation", "Relaxation.jpg"},
	{"screen", "Screen.jpg"},
	{"sleep", "Sleep.jpg"},
	{"yoga", "Yoga.jpg"},
	{"workout", "Workout.jpg"},
	{"bodyweight", "Bodyweight.jpg"},
	{"dance", "Dance.jpg"},
	{"run", "Run.jpg"},
	{"core", "Core.jpg"},
	{"cycling", "Cycling.jpg"},
	{"hike", "Hike.jpg"},
	{"low", "Low.jpg"},
	{"walk", "Walk.jpg"},
	{"stretching", "Stretching.jpg"},
	{"strength", "Strength.jpg"},
	{"hiit", "HIIT.jpg"},
	{"cardio", "Cardio.jpg"},
	{"mindfulness", "Mindfulness.jpg"},
	{"noise", "Noise.jpg"},
	{"salutations", "Salutations.jpg"},
}

// ImageFor returns the image URL for the first keyword contained in title
func ImageFor(title string) string {
	normalized := strings.ToLower(title)
	for _, ki := range keywordImages {
		if normalized != "" && strings.Contains(normalized, ki.keyword) {
			return imageURL(ki.file)
		}
	}
	return PlaceholderImage
}

func imageURL(file string) string {
	return keywordImageDir + url.PathEscape(file)
}

// applyImages replaces every image URL in recs with the keyword match for its title
func applyImages(fitness []core.FitnessActivity, routines *core.RelaxationRoutines) {
	for i := range fitness {
		fitness[i].ImageURL = ImageFor(fitness[i].Title)
	}
	for _, group := range [][]core.Routine{routines.Yoga, routines.Meditation, routines.SleepTips} {
		for i := range group {
			group[i].ImageURL = ImageFor(group[i].Title)
		}
	}
}
