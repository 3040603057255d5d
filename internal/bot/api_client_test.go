package bot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"restwell/internal/core"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *RestwellAPI {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRestwellAPI(server.URL, "bot-key", 5*time.Second, logger)
}

func TestRestwellAPI_Sync(t *testing.T) {
	var gotMethod, gotPath, gotKey string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Restwell-Key")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(core.SyncResult{
			Today:     &core.DailySnapshot{Date: "2026-03-01", Steps: core.StepsSummary{Steps: 1200}},
			Yesterday: &core.DailySnapshot{Date: "2026-02-28"},
			LastSync:  time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		})
	})

	result, err := api.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v1/sync", gotPath)
	assert.Equal(t, "bot-key", gotKey)
	assert.Equal(t, 1200, result.Today.Steps.Steps)
	assert.Equal(t, "2026-02-28", result.Yesterday.Date)
}

func TestRestwellAPI_LatestSnapshot(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/snapshots/latest", r.URL.Path)
		w.Write([]byte(`{"snapshot":{"date":"2026-03-01","heartRate":{"resting":61,"zones":[]}},"last_sync":"2026-03-01T08:00:00Z"}`))
	})

	latest, err := api.GetLatestSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest.Snapshot)
	assert.Equal(t, 61, latest.Snapshot.HeartRate.Resting)
	assert.Equal(t, 8, latest.LastSync.Hour())
}

func TestRestwellAPI_ErrorResponse(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"no valid credentials","code":"RECONNECT_REQUIRED"}`))
	})

	_, err := api.GetAuthStatus(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "RECONNECT_REQUIRED", apiErr.Code)
	assert.Equal(t, "no valid credentials", apiErr.Message)
}

func TestRestwellAPI_NonJSONError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	})

	_, err := api.GetRecommendations(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.Empty(t, apiErr.Code)
}

func TestRestwellAPI_GenerateRecommendations(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/recommendations", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(core.Recommendations{ID: "rec_1", Source: core.SourceSample})
	})

	recs, err := api.GenerateRecommendations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rec_1", recs.ID)
	assert.Equal(t, core.SourceSample, recs.Source)
}
