package core

import (
	"fmt"
	"time"
)

// UserProfile is the onboarding document for the household user
type UserProfile struct {
	Basic       BasicInfo       `json:"basic"`
	Physical    PhysicalInfo    `json:"physical"`
	Health      HealthInfo      `json:"health"`
	Sleep       SleepPatterns   `json:"sleep"`
	Fitness     FitnessInfo     `json:"fitness"`
	Routine     RoutineInfo     `json:"routine"`
	Environment EnvironmentInfo `json:"environment"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BasicInfo holds identity details
type BasicInfo struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
}

// PhysicalInfo holds body measurements as entered by the user
type PhysicalInfo struct {
	Gender string `json:"gender"`
	Weight string `json:"weight"`
	Height string `json:"height"`
}

// HealthInfo holds declared conditions
type HealthInfo struct {
	SleepDisorders    []string `json:"sleep_disorders"`
	HealthConditions  []string `json:"health_conditions"`
	TakingMedications bool     `json:"taking_medications"`
}

// SleepPatterns holds the self-assessed sleep habits
type SleepPatterns struct {
	SleepHours    string   `json:"sleep_hours"`
	SleepIssues   []string `json:"sleep_issues"`
	TrackingSleep bool     `json:"tracking_sleep"`
}

// FitnessInfo holds goals and preferences
type FitnessInfo struct {
	FitnessGoal         string   `json:"fitness_goal"`
	ActivityPreferences []string `json:"activity_preferences"`
	FollowsRoutine      bool     `json:"follows_routine"`
}

// RoutineInfo holds the daily rhythm
type RoutineInfo struct {
	WakeUpTime  string `json:"wake_up_time"`
	BedTime     string `json:"bed_time"`
	EnergyLevel string `json:"energy_level"`
}

// EnvironmentInfo holds bedroom and evening habits
type EnvironmentInfo struct {
	SleepEnvironment  string `json:"sleep_environment"`
	ConsumesBeforeBed string `json:"consumes_before_bed"`
}

// Validate checks fields with a fixed format
func (p *UserProfile) Validate() error {
	if p.Basic.DateOfBirth != "" {
		if _, err := time.Parse(DateLayout, p.Basic.DateOfBirth); err != nil {
			return fmt.Errorf("%w: date_of_birth", ErrInvalidDate)
		}
	}
	return nil
}
