package recommend

import (
	"context"
	"errors"
	"log/slog"
	"restwell/internal/core"
	"restwell/internal/idgen"
	"restwell/internal/metrics"
	"time"
)

// Storage is the persistence the service needs
type Storage interface {
	GetProfile(ctx context.Context) (*core.UserProfile, error)
	ListRecentSnapshots(ctx context.Context, limit int) ([]*core.DailySnapshot, error)
	SaveRecommendations(ctx context.Context, recs *core.Recommendations) error
	GetRecommendations(ctx context.Context) (*core.Recommendations, error)
	GetRecommendationHistory(ctx context.Context) ([]*core.RecommendationHistoryEntry, error)
	ClearRecommendationHistory(ctx context.Context) error
}

// Service produces recommendation sets and keeps the current one plus one previous
type Service struct {
	storage   Storage
	generator Generator
	now       func() time.Time
	logger    *slog.Logger
}

// NewService creates a recommendation service. generator may be nil, in which
// case every set comes from the sample catalogues.
func NewService(storage Storage, generator Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		storage:   storage,
		generator: generator,
		now:       time.Now,
		logger:    logger,
	}
}

// Generate builds a new recommendation set and stores it as current.
// Generation failures fall back to sample content; storage failures are logged only.
func (s *Service) Generate(ctx context.Context) *core.Recommendations {
	now := s.now()
	req := s.buildRequest(ctx, now)

	recs := &core.Recommendations{
		ID:          idgen.NewRecommendation(),
		GeneratedAt: now,
	}

	suggestions, err := s.generate(ctx, req)
	if err != nil {
		s.logger.Warn("Recommendation generation failed, using sample content",
			"component", "recommend",
			"error", err,
		)
		suggestions = SampleSuggestions(now)
		recs.Source = core.SourceSample
	} else {
		applyImages(suggestions.FitnessRecommendations, &suggestions.RelaxationRoutines)
		recs.Source = core.SourceModel
	}
	recs.FitnessRecommendations = suggestions.FitnessRecommendations
	recs.RelaxationRoutines = suggestions.RelaxationRoutines

	metrics.RecordRecommendations(string(recs.Source))

	if err := s.storage.SaveRecommendations(ctx, recs); err != nil {
		s.logger.Error("Failed to save recommendations",
			"component", "recommend",
			"recommendation_id", recs.ID,
			"error", err,
		)
	}

	return recs
}

var errNoGenerator = errors.New("no generator configured")

func (s *Service) generate(ctx context.Context, req *Request) (*Suggestions, error) {
	if s.generator == nil {
		return nil, errNoGenerator
	}
	return s.generator.Generate(ctx, req)
}

// buildRequest gathers the profile and recent snapshots; missing data degrades the request
func (s *Service) buildRequest(ctx context.Context, now time.Time) *Request {
	profile, err := s.storage.GetProfile(ctx)
	if err != nil {
		if !errors.Is(err, core.ErrProfileNotFound) {
			s.logger.Error("Failed to load profile", "component", "recommend", "error", err)
		}
		profile = nil
	}

	snapshots, err := s.storage.ListRecentSnapshots(ctx, weeklyWindow)
	if err != nil {
		s.logger.Error("Failed to load snapshots", "component", "recommend", "error", err)
		snapshots = nil
	}

	return BuildRequest(profile, snapshots, now)
}

// Saved returns the current set, or today's sample content when none is stored
func (s *Service) Saved(ctx context.Context) (*core.Recommendations, error) {
	recs, err := s.storage.GetRecommendations(ctx)
	if err == nil {
		return recs, nil
	}
	if !errors.Is(err, core.ErrRecommendationNotFound) {
		return nil, err
	}

	now := s.now()
	sample := SampleSuggestions(now)
	return &core.Recommendations{
		FitnessRecommendations: sample.FitnessRecommendations,
		RelaxationRoutines:     sample.RelaxationRoutines,
		Source:                 core.SourceSample,
		GeneratedAt:            now,
	}, nil
}

// History returns the previous set, if any
func (s *Service) History(ctx context.Context) ([]*core.RecommendationHistoryEntry, error) {
	return s.storage.GetRecommendationHistory(ctx)
}

// ClearHistory drops the previous set
func (s *Service) ClearHistory(ctx context.Context) error {
	return s.storage.ClearRecommendationHistory(ctx)
}
