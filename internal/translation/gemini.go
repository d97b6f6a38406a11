package translation

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"codeberg.org/snonux/autolingo/internal/language"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiTranslator translates with the Gemini API
type GeminiTranslator struct {
	model  string
	client *genai.Client
}

// NewGeminiTranslator creates a Gemini backed translator
func NewGeminiTranslator(ctx context.Context, apiKey, model string) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTranslator{model: model, client: client}, nil
}

// Translate translates text from one language to the other
func (t *GeminiTranslator) Translate(ctx context.Context, text string, from, to language.Language) (string, error) {
	if err := checkPair(from, to); err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	}

	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(buildPrompt(text, from, to)), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translation := cleanResult(resp.Text())
	if translation == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return translation, nil
}

// Name returns the backend name
func (t *GeminiTranslator) Name() string {
	return "gemini"
}
