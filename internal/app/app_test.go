package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"restwell/config"
	"restwell/internal/core"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "app.db")},
		Security: config.SecurityConfig{APIKey: "key"},
		Fitbit: config.FitbitConfig{
			ClientID:     "client",
			ClientSecret: "secret",
			RedirectURI:  "http://localhost:8080/auth/fitbit/callback",
		},
	}
}

func TestNew_WithoutGenAIKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	a, err := New(ctx, testConfig(t), logger)
	require.NoError(t, err)
	defer a.Close()

	status, err := a.Tokens.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Connected)

	_, err = a.Sync.Run(ctx)
	assert.ErrorIs(t, err, core.ErrNoCredentials)

	recs := a.Recommendations.Generate(ctx)
	require.NotNil(t, recs)
	assert.Equal(t, core.SourceSample, recs.Source)
	assert.NotEmpty(t, recs.ID)

	assert.Contains(t, a.Fitbit.AuthURL("state-1"), "client_id=client")
}
