package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"restwell/internal/core"
	"restwell/internal/fitbit"
	"time"
)

// RestwellClient is the subset of the REST API the bot uses
type RestwellClient interface {
	Sync(ctx context.Context) (*core.SyncResult, error)
	GetLatestSnapshot(ctx context.Context) (*LatestSnapshot, error)
	GenerateRecommendations(ctx context.Context) (*core.Recommendations, error)
	GetRecommendations(ctx context.Context) (*core.Recommendations, error)
	GetAuthURL(ctx context.Context) (*AuthURL, error)
	GetAuthStatus(ctx context.Context) (*AuthStatus, error)
}

// RestwellAPI is a client for the restwell REST API
type RestwellAPI struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

// NewRestwellAPI creates a new restwell API client
func NewRestwellAPI(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *RestwellAPI {
	return &RestwellAPI{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// LatestSnapshot is the response of GET /v1/snapshots/latest
type LatestSnapshot struct {
	Snapshot *core.DailySnapshot `json:"snapshot"`
	LastSync time.Time           `json:"last_sync"`
}

// AuthURL is the response of GET /v1/auth/fitbit/url
type AuthURL struct {
	URL           string             `json:"url"`
	State         string             `json:"state"`
	ExpiresIn     int                `json:"expires_in"`
	RequestedData []fitbit.DataScope `json:"requested_data"`
}

// AuthStatus is the response of GET /v1/auth/fitbit/status
type AuthStatus struct {
	Connected        bool      `json:"connected"`
	AccessValid      bool      `json:"access_token_valid"`
	ExpiresAt        time.Time `json:"expires_at"`
	ExpiresInSeconds int       `json:"expires_in_seconds"`
}

// APIError is a non-2xx response from the REST API
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Code       string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d: %s (%s)", e.StatusCode, e.Message, e.Code)
}

// Sync triggers a Fitbit sync
func (a *RestwellAPI) Sync(ctx context.Context) (*core.SyncResult, error) {
	var result core.SyncResult
	if err := a.doRequest(ctx, http.MethodPost, "/v1/sync", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLatestSnapshot retrieves the most recent stored snapshot
func (a *RestwellAPI) GetLatestSnapshot(ctx context.Context) (*LatestSnapshot, error) {
	var latest LatestSnapshot
	if err := a.doRequest(ctx, http.MethodGet, "/v1/snapshots/latest", nil, &latest); err != nil {
		return nil, err
	}
	return &latest, nil
}

// GenerateRecommendations asks the server for a fresh recommendation set
func (a *RestwellAPI) GenerateRecommendations(ctx context.Context) (*core.Recommendations, error) {
	var recs core.Recommendations
	if err := a.doRequest(ctx, http.MethodPost, "/v1/recommendations", nil, &recs); err != nil {
		return nil, err
	}
	return &recs, nil
}

// GetRecommendations retrieves the current recommendation set
func (a *RestwellAPI) GetRecommendations(ctx context.Context) (*core.Recommendations, error) {
	var recs core.Recommendations
	if err := a.doRequest(ctx, http.MethodGet, "/v1/recommendations", nil, &recs); err != nil {
		return nil, err
	}
	return &recs, nil
}

// GetAuthURL requests a Fitbit authorization URL
func (a *RestwellAPI) GetAuthURL(ctx context.Context) (*AuthURL, error) {
	var authURL AuthURL
	if err := a.doRequest(ctx, http.MethodGet, "/v1/auth/fitbit/url", nil, &authURL); err != nil {
		return nil, err
	}
	return &authURL, nil
}

// GetAuthStatus retrieves the Fitbit connection status
func (a *RestwellAPI) GetAuthStatus(ctx context.Context) (*AuthStatus, error) {
	var status AuthStatus
	if err := a.doRequest(ctx, http.MethodGet, "/v1/auth/fitbit/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// doRequest performs an HTTP request to the restwell API
func (a *RestwellAPI) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := a.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Restwell-Key", a.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	a.logger.Debug("API request",
		"component", "bot.api",
		"method", method,
		"url", url,
	)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(respBody)
		}
		return apiErr
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
