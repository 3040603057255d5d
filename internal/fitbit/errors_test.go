package fitbit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status   int
		wantKind ErrorKind
	}{
		{400, KindInvalidRequest},
		{401, KindUnauthorized},
		{403, KindForbidden},
		{404, KindNotFound},
		{429, KindRateLimit},
		{500, KindServerError},
		{502, KindUnknownError},
		{418, KindUnknownError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			apiErr := ClassifyStatus(tt.status)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.NotEmpty(t, apiErr.Message)
		})
	}
}

func TestClassifyStatus_IsStable(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, KindRateLimit, ClassifyStatus(429).Kind)
		assert.Equal(t, KindNotFound, ClassifyStatus(404).Kind)
	}
}

func TestClassifyResponse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
	}{
		{
			name:     "expired token body",
			status:   401,
			body:     `{"errors":[{"errorType":"expired_token","message":"Access token expired: abc"}],"success":false}`,
			wantKind: KindExpiredToken,
		},
		{
			name:     "invalid token body",
			status:   401,
			body:     `{"errors":[{"errorType":"invalid_token","message":"Access token invalid: abc"}],"success":false}`,
			wantKind: KindInvalidToken,
		},
		{
			name:     "other 401 error type",
			status:   401,
			body:     `{"errors":[{"errorType":"invalid_client"}]}`,
			wantKind: KindUnauthorized,
		},
		{
			name:     "401 with unparseable body",
			status:   401,
			body:     `<html>nope</html>`,
			wantKind: KindUnauthorized,
		},
		{
			name:     "body ignored for non-401",
			status:   429,
			body:     `{"errors":[{"errorType":"expired_token"}]}`,
			wantKind: KindRateLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ClassifyResponse(tt.status, []byte(tt.body))
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestClassifyTransport_PassesThroughAPIError(t *testing.T) {
	original := &APIError{Kind: KindForbidden, Status: 403, Message: "Forbidden"}
	wrapped := fmt.Errorf("request failed: %w", original)

	assert.Same(t, original, ClassifyTransport(wrapped))
	assert.Nil(t, ClassifyTransport(nil))
}

func TestClassifyTransport_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, err = http.DefaultClient.Do(req)
	require.Error(t, err)

	apiErr := ClassifyTransport(err)
	assert.Equal(t, KindTimeout, apiErr.Kind)
	assert.Equal(t, 0, apiErr.Status)
}

func TestClassifyTransport_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := http.Get(url)
	require.Error(t, err)

	apiErr := ClassifyTransport(err)
	assert.Equal(t, KindNetworkError, apiErr.Kind)
	assert.Equal(t, 0, apiErr.Status)
}

func TestClassifyTransport_Unknown(t *testing.T) {
	apiErr := ClassifyTransport(errors.New("something odd"))
	assert.Equal(t, KindUnknownError, apiErr.Kind)
	assert.Equal(t, 0, apiErr.Status)
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("sync failed: %w", &APIError{Kind: KindTimeout})
	assert.Equal(t, KindTimeout, KindOf(err))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}
