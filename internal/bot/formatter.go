package bot

import (
	"errors"
	"fmt"
	"net/http"
	"restwell/internal/core"
	"strings"
	"time"
)

// timezone is the IANA timezone for formatting times (set during bot initialization)
var timezone *time.Location

// SetTimezone sets the timezone for time formatting
func SetTimezone(tz string) error {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %s: %w", tz, err)
	}
	timezone = loc
	return nil
}

// formatTime formats a time in the configured timezone
func formatTime(t time.Time, layout string) string {
	if timezone != nil {
		t = t.In(timezone)
	}
	return t.Format(layout)
}

// FormatSnapshot formats one day of metrics into a Telegram message
func FormatSnapshot(title string, snapshot *core.DailySnapshot, lastSync time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 *%s*\n", title))
	sb.WriteString(fmt.Sprintf("Date: %s\n\n", snapshot.Date))

	sleep := snapshot.Sleep
	sb.WriteString(fmt.Sprintf("😴 *Sleep:* %s", formatMinutes(sleep.TotalMinutes)))
	if sleep.Efficiency > 0 {
		sb.WriteString(fmt.Sprintf(" (%d%% efficiency)", sleep.Efficiency))
	}
	sb.WriteString("\n")
	if sleep.TotalMinutes > 0 {
		sb.WriteString(fmt.Sprintf("   Deep %d · Light %d · REM %d · Wake %d min\n",
			sleep.Stages.Deep, sleep.Stages.Light, sleep.Stages.REM, sleep.Stages.Wake))
	}

	if snapshot.HeartRate.Resting > 0 {
		sb.WriteString(fmt.Sprintf("❤️ *Resting HR:* %d bpm\n", snapshot.HeartRate.Resting))
	} else {
		sb.WriteString("❤️ *Resting HR:* n/a\n")
	}

	sb.WriteString(fmt.Sprintf("👟 *Steps:* %d (%.1f km)\n",
		snapshot.Steps.Steps, snapshot.Steps.Distance/1000))
	sb.WriteString(fmt.Sprintf("🔥 *Calories:* %d kcal\n", snapshot.Calories.Calories))

	if !lastSync.IsZero() {
		sb.WriteString(fmt.Sprintf("\n_Last sync: %s_\n", formatTime(lastSync, "Jan 2 15:04")))
	}

	return sb.String()
}

// FormatSyncResult formats the outcome of a manual sync
func FormatSyncResult(result *core.SyncResult) string {
	var sb strings.Builder

	sb.WriteString("✅ *Sync complete*\n\n")
	if result.Today != nil {
		sb.WriteString(fmt.Sprintf("Today: %d steps, %d kcal\n",
			result.Today.Steps.Steps, result.Today.Calories.Calories))
	}
	if result.Yesterday != nil {
		sb.WriteString(fmt.Sprintf("Last night: %s of sleep\n",
			formatMinutes(result.Yesterday.Sleep.TotalMinutes)))
	}
	sb.WriteString(fmt.Sprintf("\n_Synced at %s_\n", formatTime(result.LastSync, "15:04")))

	return sb.String()
}

// FormatRecommendations formats a recommendation set
func FormatRecommendations(recs *core.Recommendations) string {
	var sb strings.Builder

	sb.WriteString("🧘 *Your recommendations*\n")
	if recs.Source == core.SourceSample {
		sb.WriteString("_Sample suggestions_\n")
	}

	if len(recs.FitnessRecommendations) > 0 {
		sb.WriteString("\n🏃 *Fitness*\n")
		for _, a := range recs.FitnessRecommendations {
			sb.WriteString(fmt.Sprintf("• *%s* (%d min, ~%d kcal)\n   %s\n",
				a.Title, a.DurationMinutes, a.CaloriesBurn, a.Description))
		}
	}

	writeRoutines(&sb, "🧘 *Yoga*", recs.RelaxationRoutines.Yoga)
	writeRoutines(&sb, "🕯 *Meditation*", recs.RelaxationRoutines.Meditation)
	writeRoutines(&sb, "🌙 *Sleep tips*", recs.RelaxationRoutines.SleepTips)

	return sb.String()
}

func writeRoutines(sb *strings.Builder, heading string, routines []core.Routine) {
	if len(routines) == 0 {
		return
	}
	sb.WriteString("\n" + heading + "\n")
	for _, r := range routines {
		if r.DurationMinutes > 0 {
			sb.WriteString(fmt.Sprintf("• *%s* (%d min)\n   %s\n", r.Title, r.DurationMinutes, r.Description))
		} else {
			sb.WriteString(fmt.Sprintf("• *%s*\n   %s\n", r.Title, r.Description))
		}
	}
}

// FormatAuthURL formats the connect instructions
func FormatAuthURL(authURL *AuthURL) string {
	var sb strings.Builder

	sb.WriteString("🔗 *Connect your Fitbit account*\n\n")
	if len(authURL.RequestedData) > 0 {
		sb.WriteString("Restwell will read:\n")
		for _, scope := range authURL.RequestedData {
			sb.WriteString(fmt.Sprintf("• %s\n", scope.Name))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("The link is valid for %d minutes.", authURL.ExpiresIn/60))

	return sb.String()
}

// FormatAuthStatus formats the Fitbit connection status
func FormatAuthStatus(status *AuthStatus) string {
	if !status.Connected {
		return "🔌 Fitbit is *not connected*. Use /connect to link your account."
	}
	if !status.AccessValid {
		return "⚠️ Fitbit is connected but the access token has expired. It will be refreshed on the next /sync."
	}
	return fmt.Sprintf("✅ Fitbit is *connected*.\nAccess token valid for %s.",
		formatMinutes(status.ExpiresInSeconds/60))
}

// reconnectCodes are API error codes that only a new Fitbit consent can fix
var reconnectCodes = map[string]bool{
	"RECONNECT_REQUIRED": true,
	"EXPIRED_TOKEN":      true,
	"INVALID_TOKEN":      true,
}

// FormatError formats an error message
func FormatError(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case reconnectCodes[apiErr.Code]:
			return "🔌 *Fitbit needs to be reconnected*\n\nUse /connect to link your account again."
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return "⏳ *Fitbit rate limit reached*\n\nPlease try again in a few minutes."
		case apiErr.StatusCode == http.StatusNotFound:
			return "📭 *No data yet*\n\nUse /sync to fetch your latest Fitbit data."
		}
	}
	return fmt.Sprintf("❌ *Error*\n\n%s", err.Error())
}

// formatMinutes renders a duration in minutes as "7h 30m"
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
