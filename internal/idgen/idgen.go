package idgen

import (
	"github.com/google/uuid"
)

// ID prefixes for different models
const (
	PrefixRecommendation = "rec_"
	PrefixRequest        = "req_"
)

// NewRecommendation generates a new recommendation set ID with rec_ prefix
func NewRecommendation() string {
	return PrefixRecommendation + uuid.New().String()
}

// NewRequest generates a new HTTP request ID with req_ prefix
func NewRequest() string {
	return PrefixRequest + uuid.New().String()
}

// New generates a generic UUID without prefix (for internal use only)
func New() string {
	return uuid.New().String()
}
