package translation

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/autolingo/internal/language"
)

// OpenAITranslator translates with OpenAI chat completions
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new translator instance. An empty model
// selects gpt-4o-mini; an empty baseURL uses the public API.
func NewOpenAITranslator(apiKey, model, baseURL string) (*OpenAITranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found")
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAITranslator{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(config),
	}, nil
}

// Translate translates text from one language to the other
func (t *OpenAITranslator) Translate(ctx context.Context, text string, from, to language.Language) (string, error) {
	if err := checkPair(from, to); err != nil {
		return "", err
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(text, from, to),
			},
		},
		MaxTokens:   200,
		Temperature: 0,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translation := cleanResult(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", fmt.Errorf("empty translation returned")
	}
	return translation, nil
}

// Name returns the backend name
func (t *OpenAITranslator) Name() string {
	return "openai"
}
