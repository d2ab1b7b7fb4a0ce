package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider calls the Gemini API backend (not Vertex).
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	conf := &genai.GenerateContentConfig{MaxOutputTokens: int32(req.maxTokens())}
	if req.Temperature > 0 {
		conf.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		conf.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), conf)
	if err != nil {
		var apiErr *genai.APIError
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(apiErr.Code, 0, err)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}

	text, finish := geminiText(result)
	if strings.TrimSpace(text) == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("gemini: %w", errEmptyCompletion)}
	}

	resp := &Response{Text: text, Model: p.model, Stop: normalizeStop(finish)}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{InputTokens: int(u.PromptTokenCount), OutputTokens: int(u.CandidatesTokenCount)}
	}
	return resp, nil
}

func (p *GeminiProvider) ModelID() string { return p.model }

// geminiText joins the non-thought parts of the first candidate.
func geminiText(result *genai.GenerateContentResponse) (text, finish string) {
	if result == nil || len(result.Candidates) == 0 {
		return "", ""
	}
	cand := result.Candidates[0]
	if cand.Content == nil {
		return "", string(cand.FinishReason)
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String(), string(cand.FinishReason)
}
