package recommend

import (
	"restwell/internal/core"
	"time"
)

// weeklyWindow is how many recent snapshots feed the averages
const weeklyWindow = 7

// Request is the document sent to the generator
type Request struct {
	UserProfile     ProfileSection     `json:"userProfile"`
	HealthData      HealthSection      `json:"healthData"`
	SleepData       SleepSection       `json:"sleepData"`
	FitnessData     FitnessSection     `json:"fitnessData"`
	RoutineData     RoutineSection     `json:"routineData"`
	EnvironmentData EnvironmentSection `json:"environmentData"`
	FitbitData      *WearableSection   `json:"fitbitData,omitempty"`
}

type ProfileSection struct {
	Name   string `json:"name,omitempty"`
	Age    *int   `json:"age"`
	Gender string `json:"gender"`
	Weight string `json:"weight"`
	Height string `json:"height"`
}

type HealthSection struct {
	SleepDisorders    []string `json:"sleepDisorders"`
	HealthConditions  []string `json:"healthConditions"`
	TakingMedications bool     `json:"takingMedications"`
}

type SleepSection struct {
	AverageSleepHours string   `json:"averageSleepHours"`
	SleepIssues       []string `json:"sleepIssues"`
	TracksSleep       bool     `json:"tracksSleep"`
}

type FitnessSection struct {
	FitnessGoal         string   `json:"fitnessGoal"`
	ActivityPreferences []string `json:"activityPreferences"`
	FollowsRoutine      bool     `json:"followsRoutine"`
}

type RoutineSection struct {
	WakeUpTime  string `json:"wakeUpTime"`
	BedTime     string `json:"bedTime"`
	EnergyLevel string `json:"energyLevel"`
}

type EnvironmentSection struct {
	SleepEnvironment  string `json:"sleepEnvironment"`
	ConsumesBeforeBed string `json:"consumesBeforeBed"`
}

// WearableSection summarizes synced tracker data
type WearableSection struct {
	Latest        WearableDay     `json:"latest"`
	WeeklyAverage WearableAverage `json:"weeklyAverage"`
}

type WearableDay struct {
	Date             string  `json:"date"`
	SleepHours       float64 `json:"sleepHours"`
	StepCount        int     `json:"stepCount"`
	CaloriesBurned   int     `json:"caloriesBurned"`
	RestingHeartRate int     `json:"restingHeartRate"`
}

type WearableAverage struct {
	Days           int            `json:"days"`
	SleepHours     float64        `json:"sleepHours"`
	StepCount      float64        `json:"stepCount"`
	CaloriesBurned float64        `json:"caloriesBurned"`
	HeartRate      HeartRateRange `json:"heartRate"`
}

type HeartRateRange struct {
	Average float64 `json:"average"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
}

// DefaultRequest is used when no profile has been saved yet
func DefaultRequest() *Request {
	age := 30
	return &Request{
		UserProfile: ProfileSection{Name: "Demo User", Age: &age, Gender: "not specified", Weight: "70", Height: "170"},
		HealthData:  HealthSection{SleepDisorders: []string{}, HealthConditions: []string{}},
		SleepData: SleepSection{
			AverageSleepHours: "6-7",
			SleepIssues:       []string{"difficulty_falling_asleep", "waking_up_night"},
		},
		FitnessData: FitnessSection{FitnessGoal: "improve_sleep", ActivityPreferences: []string{"walking", "yoga"}},
	}
}

// BuildRequest composes the generator input from a profile and recent snapshots.
// A nil profile yields DefaultRequest. snapshots must be ordered newest first.
func BuildRequest(profile *core.UserProfile, snapshots []*core.DailySnapshot, now time.Time) *Request {
	req := DefaultRequest()
	if profile != nil {
		req = &Request{
			UserProfile: ProfileSection{
				Gender: profile.Physical.Gender,
				Weight: profile.Physical.Weight,
				Height: profile.Physical.Height,
			},
			HealthData: HealthSection{
				SleepDisorders:    nonNil(profile.Health.SleepDisorders),
				HealthConditions:  nonNil(profile.Health.HealthConditions),
				TakingMedications: profile.Health.TakingMedications,
			},
			SleepData: SleepSection{
				AverageSleepHours: profile.Sleep.SleepHours,
				SleepIssues:       nonNil(profile.Sleep.SleepIssues),
				TracksSleep:       profile.Sleep.TrackingSleep,
			},
			FitnessData: FitnessSection{
				FitnessGoal:         profile.Fitness.FitnessGoal,
				ActivityPreferences: nonNil(profile.Fitness.ActivityPreferences),
				FollowsRoutine:      profile.Fitness.FollowsRoutine,
			},
			RoutineData: RoutineSection{
				WakeUpTime:  profile.Routine.WakeUpTime,
				BedTime:     profile.Routine.BedTime,
				EnergyLevel: profile.Routine.EnergyLevel,
			},
			EnvironmentData: EnvironmentSection{
				SleepEnvironment:  profile.Environment.SleepEnvironment,
				ConsumesBeforeBed: profile.Environment.ConsumesBeforeBed,
			},
		}
		if age, ok := CalculateAge(profile.Basic.DateOfBirth, now); ok {
			req.UserProfile.Age = &age
		}
	}

	req.FitbitData = summarizeSnapshots(snapshots)
	return req
}

// summarizeSnapshots averages over the days actually present, up to a week
func summarizeSnapshots(snapshots []*core.DailySnapshot) *WearableSection {
	if len(snapshots) == 0 {
		return nil
	}
	if len(snapshots) > weeklyWindow {
		snapshots = snapshots[:weeklyWindow]
	}

	latest := snapshots[0]
	section := &WearableSection{
		Latest: WearableDay{
			Date:             latest.Date,
			SleepHours:       latest.SleepHours(),
			StepCount:        latest.Steps.Steps,
			CaloriesBurned:   latest.Calories.Calories,
			RestingHeartRate: latest.HeartRate.Resting,
		},
	}

	avg := &section.WeeklyAverage
	avg.Days = len(snapshots)
	var heartSum, heartDays int
	for _, s := range snapshots {
		avg.SleepHours += s.SleepHours()
		avg.StepCount += float64(s.Steps.Steps)
		avg.CaloriesBurned += float64(s.Calories.Calories)

		// Days without a resting rate reported are left out of the range
		if r := s.HeartRate.Resting; r > 0 {
			if heartDays == 0 || r < avg.HeartRate.Min {
				avg.HeartRate.Min = r
			}
			if r > avg.HeartRate.Max {
				avg.HeartRate.Max = r
			}
			heartSum += r
			heartDays++
		}
	}
	n := float64(avg.Days)
	avg.SleepHours /= n
	avg.StepCount /= n
	avg.CaloriesBurned /= n
	if heartDays > 0 {
		avg.HeartRate.Average = float64(heartSum) / float64(heartDays)
	}

	return section
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
