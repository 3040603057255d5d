package fitbit

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"restwell/internal/core"
	"strings"
	"time"
)

// StateMaxAge bounds how long an authorization URL stays usable
const StateMaxAge = 15 * time.Minute

// tokenResponse is the token endpoint body; ExpiresIn is a pointer so a missing field is detectable
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    *int   `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	UserID       string `json:"user_id"`
}

// GenerateState returns a random value for the OAuth state parameter
func GenerateState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// AuthURL builds the authorization URL the user is sent to
func (c *Client) AuthURL(state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.config.ClientID)
	params.Set("redirect_uri", c.config.RedirectURI)
	params.Set("scope", c.config.Scope)
	params.Set("state", state)
	params.Set("prompt", "login")

	return c.config.AuthURI + "?" + params.Encode()
}

// ExchangeCode trades an authorization code for a token grant
func (c *Client) ExchangeCode(ctx context.Context, code string) (*core.TokenGrant, error) {
	return c.requestToken(ctx, url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"redirect_uri": {c.config.RedirectURI},
	})
}

// RefreshToken trades a refresh token for a new grant
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*core.TokenGrant, error) {
	return c.requestToken(ctx, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	})
}

// requestToken posts a form to the token endpoint with HTTP Basic client credentials
func (c *Client) requestToken(ctx context.Context, form url.Values) (*core.TokenGrant, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(c.config.ClientID, c.config.ClientSecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, ClassifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ClassifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Fitbit token request failed",
			"component", "fitbit",
			"grant_type", form.Get("grant_type"),
			"status_code", resp.StatusCode,
		)
		return nil, ClassifyResponse(resp.StatusCode, body)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if tokenResp.ExpiresIn == nil {
		return nil, fmt.Errorf("%w: expires_in missing", ErrMalformedResponse)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: access_token missing", ErrMalformedResponse)
	}

	c.logger.Info("Fitbit token request succeeded",
		"component", "fitbit",
		"grant_type", form.Get("grant_type"),
		"expires_in_seconds", *tokenResp.ExpiresIn,
		"has_new_refresh_token", tokenResp.RefreshToken != "",
	)

	return &core.TokenGrant{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresIn:    *tokenResp.ExpiresIn,
		TokenType:    tokenResp.TokenType,
		Scope:        tokenResp.Scope,
		UserID:       tokenResp.UserID,
	}, nil
}
