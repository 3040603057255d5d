package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"restwell/internal/core"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// ErrIncompleteSuggestions is returned when generated content misses a category
var ErrIncompleteSuggestions = errors.New("generated recommendations are incomplete")

// Suggestions is the generated content before it is stamped and stored
type Suggestions struct {
	FitnessRecommendations []core.FitnessActivity  `json:"fitnessRecommendations"`
	RelaxationRoutines     core.RelaxationRoutines `json:"relaxationRoutines"`
}

// Generator produces personalized suggestions for a request
type Generator interface {
	Generate(ctx context.Context, req *Request) (*Suggestions, error)
}

const systemPrompt = `You are a health and fitness expert specializing in sleep optimization and exercise recommendations.
Analyze the user's profile and provide personalized recommendations based on their age, gender,
sleep patterns, fitness goals, preferences, Fitbit data, and health conditions.

Pay special attention to:
1. Any diagnosed sleep disorders (insomnia, sleep apnea, etc.)
2. Existing health conditions (hypertension, diabetes, etc.)
3. Whether they are taking medications that affect sleep/activity

Consider the following Fitbit data when making recommendations:
- Daily step count and weekly average
- Daily calories burned and weekly average
- Resting heart rate (average, min, max)
- Sleep duration and patterns

Use this data to:
1. Adjust exercise intensity based on current activity levels and health conditions
2. Suggest activities that complement their current routine and are safe for their health conditions
3. Consider their heart rate patterns and any cardiovascular conditions
4. Align recommendations with their sleep schedule and any sleep disorders
5. Take into account any medications that might affect exercise or sleep

Respond ONLY with a valid JSON object that contains two sections:
1. "fitnessRecommendations": An array of 5 fitness activities with title, description, durationMinutes, caloriesBurn, and imageUrl fields
2. "relaxationRoutines": An object with 3 categories: "yoga", "meditation", and "sleepTips", each containing an array of 2 routines with title, description, durationMinutes, level, and imageUrl fields

Make the recommendations as personalized and specific as possible based on the user's data.
For all image URLs, use "https://placehold.co/400x300" as a placeholder.`

// contentGenerator is the subset of *genai.Models used here
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIGenerator generates suggestions with Google's Gemini API
type GenAIGenerator struct {
	models contentGenerator
	model  string
	logger *slog.Logger
}

// NewGenAIGenerator creates a Gemini-backed generator
func NewGenAIGenerator(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIGenerator{
		models: client.Models,
		model:  model,
		logger: logger,
	}, nil
}

// Generate sends the request as JSON and decodes the JSON reply
func (g *GenAIGenerator) Generate(ctx context.Context, req *Request) (*Suggestions, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
		TopP:              genai.Ptr[float32](1.0),
		ResponseMIMEType:  "application/json",
	}
	contents := []*genai.Content{
		genai.NewContentFromText(string(payload), genai.RoleUser),
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}

	return parseSuggestions(resp.Text())
}

// parseSuggestions decodes a model reply, tolerating a fenced code block around it
func parseSuggestions(text string) (*Suggestions, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var s Suggestions
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &s); err != nil {
		return nil, fmt.Errorf("failed to decode generated recommendations: %w", err)
	}

	r := s.RelaxationRoutines
	if len(s.FitnessRecommendations) == 0 || len(r.Yoga) == 0 || len(r.Meditation) == 0 || len(r.SleepTips) == 0 {
		return nil, ErrIncompleteSuggestions
	}
	return &s, nil
}
