package store

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// embeddingDim is the output dimension of the embedding model; existence
// checks query with a zero vector of this size.
const embeddingDim = 1536

// Embedder turns text into a vector. Split out from the store so tests can
// substitute a deterministic implementation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type openAIEmbedder struct {
	client *openai.Client
}

// NewOpenAIEmbedder builds the production embedder.
func NewOpenAIEmbedder(apiKey string) Embedder {
	return &openAIEmbedder{client: openai.NewClient(apiKey)}
}

func (e *openAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embed: empty response")
	}
	return resp.Data[0].Embedding, nil
}
