package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Embedder produces a fixed-dimensionality embedding vector for a text. The
// dimensionality is consistent across calls within one ranking request.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Close() error
}

// GeminiEmbedder implements Embedder using the Gemini embedding model.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates a new Gemini embedder.
func NewGeminiEmbedder(ctx context.Context, cfg *Config, keys *KeyRing) (*GeminiEmbedder, error) {
	apiKey := keys.Next()
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{
		client: client,
		model:  cfg.EmbedModel,
	}, nil
}

// Embed returns the embedding vector for the given text.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	em := e.client.EmbeddingModel(e.model)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}

	vec := make([]float64, len(resp.Embedding.Values))
	for i, v := range resp.Embedding.Values {
		vec[i] = float64(v)
	}
	return vec, nil
}

// Close releases resources held by the embedder.
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
