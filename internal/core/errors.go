package core

import "errors"

var (
	ErrNoCredentials          = errors.New("no valid credentials - please reconnect your Fitbit account")
	ErrSnapshotNotFound       = errors.New("snapshot not found")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrRecommendationNotFound = errors.New("no saved recommendations")
	ErrInvalidOAuthState      = errors.New("oauth state is unknown or already used")
	ErrInvalidDate            = errors.New("date must be formatted as YYYY-MM-DD")
)
