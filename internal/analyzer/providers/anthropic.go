package providers

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/dipu67/analyzer/internal/types"
)

// AnthropicProvider calls Anthropic's Messages API through the official SDK.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &AnthropicProvider{
		client: &client,
		model:  model,
	}
}

// Analyze sends the corpus to Claude. Prefilling the assistant turn with "{"
// keeps the model inside the one-JSON-object contract.
func (p *AnthropicProvider) Analyze(ctx context.Context, corpus string) (types.AnalysisResult, error) {
	var zero types.AnalysisResult

	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	prompt := buildPrompt(corpus)
	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   maxOutputTokens,
		Temperature: anthropic.Float(temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemInstruction},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			anthropic.NewAssistantMessage(anthropic.NewTextBlock("{")),
		},
	})
	if err != nil {
		return zero, fmt.Errorf("inference call failed: %w", err)
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return zero, fmt.Errorf("inference service returned an empty response")
	}

	// The response continues from after the prefilled "{".
	fullJSON := "{" + responseText
	cacheExchange("anthropic", p.model, prompt, fullJSON)

	return ParseAnalysisResult(fullJSON)
}
