package retrieval

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Embedder turns a query into a vector in the same space as the index.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIEmbedder calls an OpenAI-compatible embeddings endpoint.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder creates an embedder. baseURL may be empty.
func NewOpenAIEmbedder(apiKey, baseURL, model string) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("embedding API key is required")
	}
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.EmbeddingModel(model),
	}, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	const op = "embed"
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, opErr(op, OperationErrorValidation, "empty text", nil)
	}
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, opErr(op, OperationErrorEmbedFailed, "create embeddings failed", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, opErr(op, OperationErrorEmbedFailed, "no embedding returned", nil)
	}
	return resp.Data[0].Embedding, nil
}
