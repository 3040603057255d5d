package bot

import (
	"errors"
	"net/http"
	"restwell/internal/core"
	"restwell/internal/fitbit"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", formatMinutes(0))
	assert.Equal(t, "45m", formatMinutes(45))
	assert.Equal(t, "1h 00m", formatMinutes(60))
	assert.Equal(t, "7h 05m", formatMinutes(425))
}

func TestFormatSnapshot_MissingData(t *testing.T) {
	text := FormatSnapshot("Today", &core.DailySnapshot{Date: "2026-03-01"}, time.Time{})

	assert.Contains(t, text, "Resting HR:* n/a")
	assert.Contains(t, text, "Sleep:* 0m")
	assert.NotContains(t, text, "efficiency")
	assert.NotContains(t, text, "Last sync")
}

func TestFormatRecommendations(t *testing.T) {
	recs := &core.Recommendations{
		FitnessRecommendations: []core.FitnessActivity{
			{Title: "Morning Yoga Flow", Description: "Gentle stretches", DurationMinutes: 20, CaloriesBurn: 80},
		},
		RelaxationRoutines: core.RelaxationRoutines{
			Meditation: []core.Routine{{Title: "Body Scan", DurationMinutes: 10}},
			SleepTips:  []core.Routine{{Title: "Dim the lights", Description: "An hour before bed"}},
		},
		Source: core.SourceSample,
	}

	text := FormatRecommendations(recs)

	assert.Contains(t, text, "Sample suggestions")
	assert.Contains(t, text, "Morning Yoga Flow* (20 min, ~80 kcal)")
	assert.Contains(t, text, "Body Scan* (10 min)")
	assert.Contains(t, text, "Dim the lights*\n")
	assert.NotContains(t, text, "*Yoga*")
}

func TestFormatAuthURL(t *testing.T) {
	text := FormatAuthURL(&AuthURL{
		ExpiresIn:     900,
		RequestedData: fitbit.RequestedData,
	})

	assert.Contains(t, text, "Sleep Data")
	assert.Contains(t, text, "15 minutes")
}

func TestFormatAuthStatus(t *testing.T) {
	assert.Contains(t, FormatAuthStatus(&AuthStatus{}), "not connected")
	assert.Contains(t, FormatAuthStatus(&AuthStatus{Connected: true}), "expired")
	assert.Contains(t, FormatAuthStatus(&AuthStatus{Connected: true, AccessValid: true, ExpiresInSeconds: 7200}), "2h 00m")
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "reconnect required",
			err:  &APIError{StatusCode: http.StatusUnauthorized, Code: "RECONNECT_REQUIRED"},
			want: "/connect",
		},
		{
			name: "expired provider token",
			err:  &APIError{StatusCode: http.StatusUnauthorized, Code: "EXPIRED_TOKEN"},
			want: "/connect",
		},
		{
			name: "rate limited",
			err:  &APIError{StatusCode: http.StatusTooManyRequests, Code: "RATE_LIMIT"},
			want: "rate limit",
		},
		{
			name: "no snapshot yet",
			err:  &APIError{StatusCode: http.StatusNotFound, Code: "NOT_FOUND"},
			want: "/sync",
		},
		{
			name: "bad API key",
			err:  &APIError{StatusCode: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "Unauthorized"},
			want: "Unauthorized",
		},
		{
			name: "transport error",
			err:  errors.New("request failed: connection refused"),
			want: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, FormatError(tt.err), tt.want)
		})
	}
}
