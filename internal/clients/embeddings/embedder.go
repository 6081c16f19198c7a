// Package embeddings turns free text into vectors for the skill lookup.
package embeddings

//go:generate mockgen -destination=mock/mock_embedder.go -package=mockembeddings . Embedder

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

// Dimensions is the vector width the skills table is declared with
const Dimensions = 1536

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Config struct {
	APIKey string
	// BaseURL overrides the OpenAI endpoint, mostly for tests
	BaseURL    string
	MaxRetries int
}

type openAIEmbedder struct {
	client openai.Client
	model  openai.EmbeddingModel
}

func New(cfg *Config) (Embedder, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, sheeterr.Unavailable("embeddings: openai api key is not configured")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &openAIEmbedder{
		client: openai.NewClient(opts...),
		model:  openai.EmbeddingModelTextEmbedding3Small,
	}, nil
}

func (e *openAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, sheeterr.InvalidArgument("text to embed is required")
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model: e.model,
	})
	if err != nil {
		return nil, sheeterr.Wrap(err, "failed to create embedding")
	}
	if len(resp.Data) == 0 {
		return nil, sheeterr.Internalf("embedding response for model %s was empty", e.model)
	}

	raw := resp.Data[0].Embedding
	vector := make([]float32, len(raw))
	for i, v := range raw {
		vector[i] = float32(v)
	}
	return vector, nil
}
