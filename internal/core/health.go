package core

import "time"

// DateLayout is the calendar-date format used by the provider and for snapshot keys
const DateLayout = "2006-01-02"

// SleepStages holds minutes spent in each sleep stage
type SleepStages struct {
	Deep  int `json:"deep"`
	Light int `json:"light"`
	REM   int `json:"rem"`
	Wake  int `json:"wake"`
}

// SleepSummary is the normalized sleep metric for one night
type SleepSummary struct {
	TotalMinutes int         `json:"totalMinutes"`
	Efficiency   int         `json:"efficiency"`
	Stages       SleepStages `json:"stages"`
}

// HeartRateZone is one provider-reported heart rate zone
type HeartRateZone struct {
	Name        string  `json:"name"`
	Min         int     `json:"min"`
	Max         int     `json:"max"`
	Minutes     int     `json:"minutes"`
	CaloriesOut float64 `json:"caloriesOut"`
}

// HeartRateSummary is the normalized heart rate metric for one day
type HeartRateSummary struct {
	Resting int             `json:"resting"`
	Zones   []HeartRateZone `json:"zones"`
}

// StepsSummary is the normalized step metric for one day. Distance is in meters.
type StepsSummary struct {
	Steps    int     `json:"steps"`
	Distance float64 `json:"distance"`
}

// CaloriesSummary is the normalized energy metric for one day
type CaloriesSummary struct {
	Calories int     `json:"calories"`
	BMR      float64 `json:"bmr"`
}

// DailySnapshot bundles all normalized metrics for one calendar date
type DailySnapshot struct {
	Date      string           `json:"date"`
	Sleep     SleepSummary     `json:"sleep"`
	HeartRate HeartRateSummary `json:"heartRate"`
	Steps     StepsSummary     `json:"steps"`
	Calories  CaloriesSummary  `json:"calories"`
}

// SyncResult is the outcome of one successful sync
type SyncResult struct {
	Today     *DailySnapshot `json:"today"`
	Yesterday *DailySnapshot `json:"yesterday"`
	LastSync  time.Time      `json:"lastSync"`
}

// SleepHours converts the snapshot's sleep minutes into hours
func (s *DailySnapshot) SleepHours() float64 {
	return float64(s.Sleep.TotalMinutes) / 60
}
