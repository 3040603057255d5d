package recommend

import (
	"context"
	"errors"
	"restwell/internal/core"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStorage struct {
	profile    *core.UserProfile
	profileErr error
	snapshots  []*core.DailySnapshot
	current    *core.Recommendations
	history    []*core.RecommendationHistoryEntry
	saveErr    error
	saves      int
}

func (m *mockStorage) GetProfile(ctx context.Context) (*core.UserProfile, error) {
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	if m.profile == nil {
		return nil, core.ErrProfileNotFound
	}
	return m.profile, nil
}

func (m *mockStorage) ListRecentSnapshots(ctx context.Context, limit int) ([]*core.DailySnapshot, error) {
	return m.snapshots, nil
}

func (m *mockStorage) SaveRecommendations(ctx context.Context, recs *core.Recommendations) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.current != nil {
		m.history = []*core.RecommendationHistoryEntry{{
			FitnessRecommendations: m.current.FitnessRecommendations,
			RelaxationRoutines:     m.current.RelaxationRoutines,
		}}
	}
	m.current = recs
	return nil
}

func (m *mockStorage) GetRecommendations(ctx context.Context) (*core.Recommendations, error) {
	if m.current == nil {
		return nil, core.ErrRecommendationNotFound
	}
	return m.current, nil
}

func (m *mockStorage) GetRecommendationHistory(ctx context.Context) ([]*core.RecommendationHistoryEntry, error) {
	return m.history, nil
}

func (m *mockStorage) ClearRecommendationHistory(ctx context.Context) error {
	m.history = nil
	return nil
}

type mockGenerator struct {
	req         *Request
	suggestions *Suggestions
	err         error
}

func (m *mockGenerator) Generate(ctx context.Context, req *Request) (*Suggestions, error) {
	m.req = req
	return m.suggestions, m.err
}

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestService(storage Storage, generator Generator) *Service {
	s := NewService(storage, generator, nil)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestService_Generate_UsesModel(t *testing.T) {
	storage := &mockStorage{
		profile:   &core.UserProfile{Basic: core.BasicInfo{DateOfBirth: "1990-01-01"}},
		snapshots: []*core.DailySnapshot{snapshot("2026-10-18", 420, 8000, 2000, 60)},
	}
	generator := &mockGenerator{suggestions: &Suggestions{
		FitnessRecommendations: []core.FitnessActivity{{Title: "Evening Walk", ImageURL: PlaceholderImage}},
		RelaxationRoutines: core.RelaxationRoutines{
			Yoga: []core.Routine{{Title: "Bedtime Yoga"}},
		},
	}}

	recs := newTestService(storage, generator).Generate(context.Background())

	assert.Equal(t, core.SourceModel, recs.Source)
	assert.True(t, strings.HasPrefix(recs.ID, "rec_"))
	assert.Equal(t, fixedNow, recs.GeneratedAt)
	assert.Equal(t, "/assets/keywords/Walk.jpg", recs.FitnessRecommendations[0].ImageURL)
	assert.Equal(t, "/assets/keywords/Bedtime%20Yoga.jpg", recs.RelaxationRoutines.Yoga[0].ImageURL)

	require.NotNil(t, generator.req)
	assert.Equal(t, 36, *generator.req.UserProfile.Age)
	assert.Equal(t, 8000, generator.req.FitbitData.Latest.StepCount)
	assert.Equal(t, recs, storage.current)
}

func TestService_Generate_FallsBackToSamples(t *testing.T) {
	tests := []struct {
		name      string
		generator Generator
	}{
		{"generator error", &mockGenerator{err: errors.New("HTTP 500")}},
		{"no generator", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &mockStorage{}
			recs := newTestService(storage, tt.generator).Generate(context.Background())

			assert.Equal(t, core.SourceSample, recs.Source)
			assert.Len(t, recs.FitnessRecommendations, 5)
			assert.Len(t, recs.RelaxationRoutines.SleepTips, 2)
			assert.Equal(t, SampleSuggestions(fixedNow).FitnessRecommendations, recs.FitnessRecommendations)
			assert.Equal(t, 1, storage.saves)
		})
	}
}

func TestService_Generate_SaveFailureNotSurfaced(t *testing.T) {
	storage := &mockStorage{saveErr: errors.New("disk full"), profileErr: errors.New("db locked")}

	recs := newTestService(storage, nil).Generate(context.Background())
	require.NotNil(t, recs)
	assert.Equal(t, core.SourceSample, recs.Source)
	assert.Equal(t, 1, storage.saves)
}

func TestService_SavedAndHistory(t *testing.T) {
	storage := &mockStorage{}
	s := newTestService(storage, nil)
	ctx := context.Background()

	// Nothing stored yet: sample content, not persisted
	saved, err := s.Saved(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.SourceSample, saved.Source)
	assert.Empty(t, saved.ID)
	assert.Zero(t, storage.saves)

	first := s.Generate(ctx)
	second := s.Generate(ctx)

	saved, err = s.Saved(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, saved.ID)

	history, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, first.FitnessRecommendations, history[0].FitnessRecommendations)

	require.NoError(t, s.ClearHistory(ctx))
	history, err = s.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}
