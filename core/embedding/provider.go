package embedding

import (
	"context"
	"fmt"

	"github.com/finraglabs/finrag/helper"
	"github.com/finraglabs/finrag/llm"
)

// ProviderEmbedder embeds text through a remote LLM provider. Remote models
// frame queries and documents the same way, so no input prefixes are added.
type ProviderEmbedder struct {
	provider llm.Provider
}

// NewProviderEmbedder wraps an LLM provider as an embedder. The embedding
// model is part of the provider configuration.
func NewProviderEmbedder(provider llm.Provider) *ProviderEmbedder {
	return &ProviderEmbedder{provider: provider}
}

func (e *ProviderEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.provider.Embed(ctx, []string{text})
	if err != nil {
		return nil, helper.NewError("embed query", err)
	}
	if len(embeddings) == 0 {
		return nil, helper.NewError("embed query", fmt.Errorf("no embedding returned"))
	}
	return embeddings[0], nil
}

func (e *ProviderEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	embeddings, err := e.provider.Embed(ctx, texts)
	if err != nil {
		return nil, helper.NewError("embed documents", err)
	}
	return embeddings, nil
}
