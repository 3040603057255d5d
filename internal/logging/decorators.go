package logging

import (
	"context"
	"log/slog"
	"restwell/internal/core"
	"restwell/internal/recommend"
	"restwell/internal/tokens"
	"time"
)

// RefresherLogger wraps a token Refresher and logs every refresh attempt.
// Token values are never logged.
type RefresherLogger struct {
	refresher tokens.Refresher
	logger    *slog.Logger
}

// NewRefresherLogger creates a new logging decorator for a token Refresher
func NewRefresherLogger(refresher tokens.Refresher, logger *slog.Logger) tokens.Refresher {
	return &RefresherLogger{
		refresher: refresher,
		logger:    logger.With("interface", "Refresher"),
	}
}

func (l *RefresherLogger) RefreshToken(ctx context.Context, refreshToken string) (*core.TokenGrant, error) {
	start := time.Now()
	l.logger.Debug("RefreshToken called")

	grant, err := l.refresher.RefreshToken(ctx, refreshToken)
	duration := time.Since(start)

	if err != nil {
		l.logger.Error("RefreshToken failed",
			"duration", duration,
			"error", err)
		return nil, err
	}

	l.logger.Info("RefreshToken completed",
		"expires_in", grant.ExpiresIn,
		"rotated", grant.RefreshToken != "" && grant.RefreshToken != refreshToken,
		"duration", duration)

	return grant, nil
}

// GeneratorLogger wraps a recommendation Generator and logs each model call
type GeneratorLogger struct {
	generator recommend.Generator
	logger    *slog.Logger
}

// NewGeneratorLogger creates a new logging decorator for a recommendation Generator
func NewGeneratorLogger(generator recommend.Generator, logger *slog.Logger) recommend.Generator {
	return &GeneratorLogger{
		generator: generator,
		logger:    logger.With("interface", "Generator"),
	}
}

func (l *GeneratorLogger) Generate(ctx context.Context, req *recommend.Request) (*recommend.Suggestions, error) {
	start := time.Now()
	l.logger.Info("Generate called",
		"has_fitbit_data", req.FitbitData != nil)

	suggestions, err := l.generator.Generate(ctx, req)
	duration := time.Since(start)

	if err != nil {
		l.logger.Error("Generate failed",
			"duration", duration,
			"error", err)
		return nil, err
	}

	l.logger.Info("Generate completed",
		"fitness", len(suggestions.FitnessRecommendations),
		"yoga", len(suggestions.RelaxationRoutines.Yoga),
		"meditation", len(suggestions.RelaxationRoutines.Meditation),
		"sleep_tips", len(suggestions.RelaxationRoutines.SleepTips),
		"duration", duration)

	return suggestions, nil
}
