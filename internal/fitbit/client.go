package fitbit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"restwell/internal/core"
	"restwell/internal/metrics"
)

// Client talks to the Fitbit OAuth and Web APIs
type Client struct {
	config     Config
	httpClient *http.Client
	retrier    *Retrier
	logger     *slog.Logger
}

// NewClient creates a new Fitbit client
func NewClient(config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	config = config.WithDefaults()

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		retrier: NewRetrier(logger),
		logger:  logger,
	}
}

// Config returns the effective client configuration
func (c *Client) Config() Config {
	return c.config
}

// FetchSleep returns the normalized main sleep session for date
func (c *Client) FetchSleep(ctx context.Context, accessToken, date string) (core.SleepSummary, error) {
	var payload sleepPayload
	if err := c.fetch(ctx, "sleep", accessToken, fmt.Sprintf("/1.2/user/-/sleep/date/%s.json", date), &payload); err != nil {
		return core.SleepSummary{}, err
	}
	return normalizeSleep(&payload), nil
}

// FetchHeartRate returns the normalized heart rate summary for date
func (c *Client) FetchHeartRate(ctx context.Context, accessToken, date string) (core.HeartRateSummary, error) {
	var payload heartRatePayload
	if err := c.fetch(ctx, "heart", accessToken, fmt.Sprintf("/1/user/-/activities/heart/date/%s/1d.json", date), &payload); err != nil {
		return core.HeartRateSummary{}, err
	}
	return normalizeHeartRate(&payload), nil
}

// FetchSteps returns the normalized step count for date
func (c *Client) FetchSteps(ctx context.Context, accessToken, date string) (core.StepsSummary, error) {
	var payload stepsPayload
	if err := c.fetch(ctx, "steps", accessToken, fmt.Sprintf("/1/user/-/activities/steps/date/%s/1d.json", date), &payload); err != nil {
		return core.StepsSummary{}, err
	}
	return normalizeSteps(&payload), nil
}

// FetchCalories returns the normalized calories for date
func (c *Client) FetchCalories(ctx context.Context, accessToken, date string) (core.CaloriesSummary, error) {
	var payload caloriesPayload
	if err := c.fetch(ctx, "calories", accessToken, fmt.Sprintf("/1/user/-/activities/calories/date/%s/1d.json", date), &payload); err != nil {
		return core.CaloriesSummary{}, err
	}
	return normalizeCalories(&payload), nil
}

// fetch performs an authenticated GET under the retry policy
func (c *Client) fetch(ctx context.Context, endpoint, accessToken, path string, out any) error {
	err := c.retrier.Do(ctx, func(ctx context.Context) error {
		err := c.getJSON(ctx, accessToken, path, out)
		if err != nil {
			metrics.RecordProviderRequest(endpoint, string(ClassifyTransport(err).Kind))
			return err
		}
		metrics.RecordProviderRequest(endpoint, "ok")
		return nil
	})
	if err != nil {
		c.logger.Error("Fitbit data request failed",
			"component", "fitbit",
			"endpoint", endpoint,
			"error", err,
		)
	}
	return err
}

// getJSON performs a single authenticated GET and decodes the body into out
func (c *Client) getJSON(ctx context.Context, accessToken, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIBaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ClassifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ClassifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ClassifyResponse(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Kind:    KindUnknownError,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("%v: %v", ErrMalformedResponse, err),
		}
	}
	return nil
}
