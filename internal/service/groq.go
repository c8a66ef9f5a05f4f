package service

import (
	"context"
	"fmt"

	"github.com/kdduha/uml-generator/internal/config"
	"github.com/kdduha/uml-generator/internal/mermaid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// GroqProvider talks to Groq through its OpenAI-compatible chat completions API.
type GroqProvider struct {
	client    openai.Client
	modelName string
}

func NewGroqProvider(cfg config.GroqConfig, opts ...option.RequestOption) *GroqProvider {
	opts = append([]option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	}, opts...)
	return &GroqProvider{
		client:    openai.NewClient(opts...),
		modelName: cfg.Model,
	}
}

func (p *GroqProvider) Generate(ctx context.Context, description string, opts Options) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPromptUML),
			openai.UserMessage(getUserPrompt(description)),
		},
		Temperature: openai.Float(opts.temperature()),
		MaxTokens:   openai.Int(int64(opts.maxTokens(groqMaxTokens))),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params, option.WithAPIKey(opts.Token))
	if err != nil {
		return "", fmt.Errorf("Groq client error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("Groq returned no choices")
	}
	return mermaid.ExtractScript(resp.Choices[0].Message.Content), nil
}
