package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-mini": "gpt-4o-mini",
	"gpt":      "gpt-4o",
}

// OpenAIProvider uses the chat completions endpoint. Any OpenAI-compatible
// server can be targeted through BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	name   string
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	return newChatProvider("openai", cfg.APIKey, cfg.BaseURL, resolveModel(cfg.Model, openaiModels)), nil
}

func newChatProvider(name, apiKey, baseURL, model string) *OpenAIProvider {
	conf := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		conf.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(conf),
		model:  model,
		name:   name,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            messages,
		MaxCompletionTokens: req.maxTokens(),
		Temperature:         float32(req.Temperature),
	})
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s: %w", p.name, errEmptyCompletion)}
	}
	choice := resp.Choices[0]

	model := resp.Model
	if model == "" {
		model = p.model
	}
	return &Response{
		Text: choice.Message.Content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
		Model: model,
		Stop:  normalizeStop(string(choice.FinishReason)),
	}, nil
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, 0, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, 0, err)
	}
	return &ErrProviderUnavailable{Err: err}
}
