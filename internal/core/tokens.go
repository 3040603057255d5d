package core

import "time"

// TokenGrant is what the provider's token endpoint returns for a code exchange or refresh
type TokenGrant struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	UserID       string `json:"user_id,omitempty"`
}

// TokenPair is the persisted access+refresh credential bundle.
// ExpiresAt is unix milliseconds and is only ever produced by NewTokenPair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// NewTokenPair builds a pair from a grant issued at issuedAt
func NewTokenPair(grant *TokenGrant, issuedAt time.Time) *TokenPair {
	return &TokenPair{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresAt:    issuedAt.UnixMilli() + int64(grant.ExpiresIn)*1000,
	}
}

// ExpiresAtTime returns the expiry as a time.Time
func (p *TokenPair) ExpiresAtTime() time.Time {
	return time.UnixMilli(p.ExpiresAt)
}

// Remaining returns how long the access token stays valid after now
func (p *TokenPair) Remaining(now time.Time) time.Duration {
	return time.Duration(p.ExpiresAt-now.UnixMilli()) * time.Millisecond
}

// IsValid reports whether the access token has not yet expired
func (p *TokenPair) IsValid(now time.Time) bool {
	return p.ExpiresAt > now.UnixMilli()
}
