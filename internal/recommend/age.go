package recommend

import (
	"restwell/internal/core"
	"time"
)

// CalculateAge returns whole years between a YYYY-MM-DD date of birth and now.
// ok is false when dateOfBirth is empty or malformed.
func CalculateAge(dateOfBirth string, now time.Time) (age int, ok bool) {
	if dateOfBirth == "" {
		return 0, false
	}
	dob, err := time.Parse(core.DateLayout, dateOfBirth)
	if err != nil {
		return 0, false
	}

	age = now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}
