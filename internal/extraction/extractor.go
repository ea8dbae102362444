package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Extractor is the paid extraction capability. Implementations must be
// idempotent from the caller's perspective; the pipeline guarantees it is
// invoked at most once per seeker regardless.
type Extractor interface {
	// ExtractResume turns raw resume text into structured candidate data.
	ExtractResume(ctx context.Context, resumeText string) (*ParsedResume, error)
	// Close releases any resources held by the extractor.
	Close() error
}

// GeminiExtractor implements Extractor using Google Gemini.
type GeminiExtractor struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// NewGeminiExtractor creates an extractor backed by the Gemini API.
func NewGeminiExtractor(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiExtractor{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// ExtractResume submits the resume text to Gemini and decodes the response.
func (e *GeminiExtractor) ExtractResume(ctx context.Context, resumeText string) (*ParsedResume, error) {
	prompt := BuildExtractionPrompt(ResumeSchema(), resumeText)

	model := e.client.GenerativeModel(e.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &APICallError{Message: "resume extraction", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}
	text = cleanJSONBlock(text)

	if err := ValidateResumeJSON(text); err != nil {
		return nil, err
	}

	var parsed ParsedResume
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, &ParseError{Message: "failed to decode response JSON", Cause: err}
	}

	e.logger.Info("resume extracted",
		zap.Int("skills", len(parsed.Skills)),
		zap.Int("work_history", len(parsed.WorkHistory)))

	return &parsed, nil
}

// Close releases resources held by the underlying client.
func (e *GeminiExtractor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &ParseError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ParseError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &ParseError{Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
