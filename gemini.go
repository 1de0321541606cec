package revizia

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerator produces raw model text from a prompt. Implementations wrap
// one external generative-text service; every failure mode (network error,
// timeout, bad status, empty candidates) comes back as an error, never a panic.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

const (
	// DefaultGeminiModel is the model used when none is configured.
	DefaultGeminiModel = "gemini-1.5-flash"

	probeTimeout      = 10 * time.Second
	generationTimeout = 30 * time.Second
)

// GeminiClient generates text through the Google Gemini API.
type GeminiClient struct {
	apiKey string
	model  string
}

// NewGeminiClient creates a client for the given API key. The key is treated
// as opaque; validity is only known after ValidateCredential or a generation
// attempt.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		model:  DefaultGeminiModel,
	}
}

// GenerateText sends the prompt to Gemini and returns the text of the first
// candidate. The call is bounded by a 30 second timeout on top of whatever
// deadline ctx already carries.
func (gc *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(gc.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(gc.model)
	model.SetTemperature(0.7)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("no text candidates in Gemini response")
	}

	return text, nil
}

// ValidateCredential issues a minimal generation request and reports whether
// the service accepted the API key. Bounded by a 10 second timeout.
func (gc *GeminiClient) ValidateCredential(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(gc.apiKey))
	if err != nil {
		return false
	}
	defer client.Close()

	resp, err := client.GenerativeModel(gc.model).GenerateContent(ctx, genai.Text("Hello"))
	if err != nil {
		VerboseLog("Credential probe failed: %v", err)
		return false
	}
	return extractText(resp) != ""
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
