package fitbit

import (
	"encoding/json"
	"restwell/internal/core"
	"strconv"
	"strings"
)

const (
	metersPerStep = 0.762
	bmrShare      = 0.7
)

// flexInt decodes numbers the API sometimes sends as strings ("8234")
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*n = flexInt(f)
	return nil
}

type stageMinutes struct {
	Minutes int `json:"minutes"`
}

type sleepPayload struct {
	Sleep []struct {
		MinutesAsleep int `json:"minutesAsleep"`
		Efficiency    int `json:"efficiency"`
		Levels        struct {
			Summary struct {
				Deep  stageMinutes `json:"deep"`
				Light stageMinutes `json:"light"`
				REM   stageMinutes `json:"rem"`
				Wake  stageMinutes `json:"wake"`
			} `json:"summary"`
		} `json:"levels"`
	} `json:"sleep"`
}

type heartRatePayload struct {
	ActivitiesHeart []struct {
		DateTime string `json:"dateTime"`
		Value    struct {
			RestingHeartRate int                  `json:"restingHeartRate"`
			HeartRateZones   []core.HeartRateZone `json:"heartRateZones"`
		} `json:"value"`
	} `json:"activities-heart"`
}

type seriesPoint struct {
	DateTime string  `json:"dateTime"`
	Value    flexInt `json:"value"`
}

type stepsPayload struct {
	ActivitiesSteps []seriesPoint `json:"activities-steps"`
}

type caloriesPayload struct {
	ActivitiesCalories []seriesPoint `json:"activities-calories"`
}

// normalizeSleep reads the first sleep session; absent fields stay zero
func normalizeSleep(p *sleepPayload) core.SleepSummary {
	if len(p.Sleep) == 0 {
		return core.SleepSummary{}
	}
	first := p.Sleep[0]
	summary := first.Levels.Summary
	return core.SleepSummary{
		TotalMinutes: first.MinutesAsleep,
		Efficiency:   first.Efficiency,
		Stages: core.SleepStages{
			Deep:  summary.Deep.Minutes,
			Light: summary.Light.Minutes,
			REM:   summary.REM.Minutes,
			Wake:  summary.Wake.Minutes,
		},
	}
}

func normalizeHeartRate(p *heartRatePayload) core.HeartRateSummary {
	out := core.HeartRateSummary{Zones: []core.HeartRateZone{}}
	if len(p.ActivitiesHeart) == 0 {
		return out
	}
	value := p.ActivitiesHeart[0].Value
	out.Resting = value.RestingHeartRate
	if value.HeartRateZones != nil {
		out.Zones = value.HeartRateZones
	}
	return out
}

// normalizeSteps derives distance in meters from the step count
func normalizeSteps(p *stepsPayload) core.StepsSummary {
	if len(p.ActivitiesSteps) == 0 {
		return core.StepsSummary{}
	}
	steps := int(p.ActivitiesSteps[0].Value)
	return core.StepsSummary{
		Steps:    steps,
		Distance: float64(steps) * metersPerStep,
	}
}

// normalizeCalories approximates BMR as a fixed share of the day's calories
func normalizeCalories(p *caloriesPayload) core.CaloriesSummary {
	if len(p.ActivitiesCalories) == 0 {
		return core.CaloriesSummary{}
	}
	calories := int(p.ActivitiesCalories[0].Value)
	return core.CaloriesSummary{
		Calories: calories,
		BMR:      float64(calories) * bmrShare,
	}
}

var _ json.Unmarshaler = (*flexInt)(nil)
