package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dipu67/analyzer/internal/store"
	"github.com/dipu67/analyzer/internal/types"
)

const (
	// remoteTimeout bounds every inference call; on expiry the analyzer
	// degrades to the local heuristic instead of retrying.
	remoteTimeout = 30 * time.Second

	maxOutputTokens = 1500

	// Low temperature favors deterministic classification output.
	temperature = 0.3
)

// OpenAIProvider calls an OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// NewOpenAIProvider creates a provider for an OpenAI-compatible API.
func NewOpenAIProvider(endpoint, model, apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: remoteTimeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Analyze sends the corpus with the fixed taxonomy prompt and parses the
// single JSON object the contract requires.
func (p *OpenAIProvider) Analyze(ctx context.Context, corpus string) (types.AnalysisResult, error) {
	var zero types.AnalysisResult

	prompt := buildPrompt(corpus)
	body, err := json.Marshal(chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		return zero, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return zero, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return zero, fmt.Errorf("inference call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return zero, fmt.Errorf("inference service returned status %d: %.300s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return zero, fmt.Errorf("failed to parse completion envelope: %w", err)
	}
	if parsed.Error != nil {
		return zero, fmt.Errorf("inference service error: %s - %s", parsed.Error.Type, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return zero, fmt.Errorf("inference service returned no choices")
	}

	responseText := parsed.Choices[0].Message.Content
	cacheExchange("openai", p.model, prompt, responseText)

	return ParseAnalysisResult(responseText)
}

// cacheExchange saves the prompt/response pair for debugging; failure to
// cache is logged, never surfaced.
func cacheExchange(provider, model, prompt, response string) {
	path, err := store.SaveExchange(store.Exchange{
		Timestamp: time.Now(),
		Provider:  provider,
		Model:     model,
		Prompt:    prompt,
		Response:  response,
	})
	if err != nil {
		log.Printf("providers: failed to cache exchange: %v", err)
		return
	}
	log.Printf("providers: cached exchange to %s", path)
}
