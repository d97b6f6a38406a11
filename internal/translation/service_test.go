package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"codeberg.org/snonux/autolingo/internal/language"
)

func TestNewService_UnknownProvider(t *testing.T) {
	_, err := NewService(context.Background(), &Config{Provider: "babelfish"})
	if err == nil || !strings.Contains(err.Error(), "unknown translation provider") {
		t.Errorf("Expected unknown provider error, got %v", err)
	}
}

func TestNewService_MissingKeys(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "OpenAI API key not found"},
		{"gemini", "Gemini API key not found"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			_, err := NewService(context.Background(), &Config{Provider: tt.provider})
			if err == nil || err.Error() != tt.want {
				t.Errorf("Expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNewService_WrapsBreaker(t *testing.T) {
	service, err := NewService(context.Background(), &Config{Provider: "openai", OpenAIKey: "test-key"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := service.(*BreakerService); !ok {
		t.Errorf("Expected *BreakerService, got %T", service)
	}
	if service.Name() != "openai" {
		t.Errorf("Expected name openai, got %s", service.Name())
	}

	plain, err := NewService(context.Background(), &Config{Provider: "openai", OpenAIKey: "test-key", DisableBreaker: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := plain.(*OpenAITranslator); !ok {
		t.Errorf("Expected *OpenAITranslator, got %T", plain)
	}
}

func TestOpenAITranslator_Translate(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Messages) > 0 {
			gotPrompt = req.Messages[0].Content
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":" \"Goedenacht\" "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	translator, err := NewOpenAITranslator("test-key", "", server.URL+"/v1")
	if err != nil {
		t.Fatal(err)
	}

	got, err := translator.Translate(context.Background(), "Good night", language.English, language.Dutch)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "Goedenacht" {
		t.Errorf("Expected 'Goedenacht', got %q", got)
	}
	if !strings.Contains(gotPrompt, "English text to Dutch") || !strings.HasSuffix(gotPrompt, "Good night") {
		t.Errorf("Unexpected prompt: %q", gotPrompt)
	}
}

func TestOpenAITranslator_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	translator, err := NewOpenAITranslator("test-key", "gpt-4o", server.URL)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := translator.Translate(context.Background(), "hond", language.Dutch, language.English); err == nil {
		t.Error("Expected error for empty choices")
	}
}

func TestOpenAITranslator_UnsupportedPair(t *testing.T) {
	translator, err := NewOpenAITranslator("test-key", "", "")
	if err != nil {
		t.Fatal(err)
	}
	_, err = translator.Translate(context.Background(), "hola", language.Language("es"), language.English)
	if !errors.Is(err, language.ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported, got %v", err)
	}
}

func TestOpenAITranslator_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	translator, err := NewOpenAITranslator(apiKey, "", "")
	if err != nil {
		t.Fatal(err)
	}

	translation, err := translator.Translate(context.Background(), "hond", language.Dutch, language.English)
	if err != nil {
		t.Errorf("Translate failed: %v", err)
	}
	if !strings.Contains(strings.ToLower(translation), "dog") {
		t.Errorf("Expected translation to contain 'dog', got %q", translation)
	}
}

func TestGeminiTranslator_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	translator, err := NewGeminiTranslator(context.Background(), apiKey, "")
	if err != nil {
		t.Fatal(err)
	}

	translation, err := translator.Translate(context.Background(), "kat", language.Dutch, language.English)
	if err != nil {
		t.Errorf("Translate failed: %v", err)
	}
	if !strings.Contains(strings.ToLower(translation), "cat") {
		t.Errorf("Expected translation to contain 'cat', got %q", translation)
	}
}

func TestCleanResult(t *testing.T) {
	tests := map[string]string{
		"  dog \n":      "dog",
		"\"dog\"":       "dog",
		"“hond”":        "hond",
		"Goede nacht.": "Goede nacht.",
	}
	for input, want := range tests {
		if got := cleanResult(input); got != want {
			t.Errorf("cleanResult(%q) = %q, want %q", input, got, want)
		}
	}
}
