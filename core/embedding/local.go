package embedding

import (
	"context"
	"fmt"

	"github.com/finraglabs/finrag/helper"
	"github.com/knights-analytics/hugot"
)

// DefaultModelName is the default local embedding model. The e5 family
// expects asymmetric "query: " / "passage: " input prefixes and produces
// 384-dimensional vectors in the small variant.
const DefaultModelName = "intfloat/e5-small-v2"

// DefaultEmbeddingDim is the output dimension of DefaultModelName.
const DefaultEmbeddingDim = 384

const (
	queryPrefix   = "query: "
	passagePrefix = "passage: "
)

// LocalEmbedder runs an ONNX sentence transformer in-process via hugot.
type LocalEmbedder struct {
	session *hugot.Session
	embed   func(texts []string) ([][]float32, error)
}

// NewLocalEmbedder downloads the model if needed and starts a hugot session
// with the Go backend. An empty modelName selects DefaultModelName.
func NewLocalEmbedder(modelName string) (*LocalEmbedder, error) {
	if modelName == "" {
		modelName = DefaultModelName
	}

	modelPath, err := helper.PrepareModel(modelName, "")
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embedder-pipeline",
	}
	sentencePipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create sentence pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create sentence pipeline: %w", err)
	}

	embed := func(texts []string) ([][]float32, error) {
		result, err := sentencePipeline.RunPipeline(texts)
		if err != nil {
			return nil, fmt.Errorf("failed to generate embeddings: %w", err)
		}
		if len(result.Embeddings) != len(texts) {
			return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(result.Embeddings))
		}
		return result.Embeddings, nil
	}

	return &LocalEmbedder{session: session, embed: embed}, nil
}

// EmbedQuery embeds a search query with the query-side prefix.
func (e *LocalEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.embed([]string{queryPrefix + text})
	if err != nil {
		return nil, helper.NewError("embed query", err)
	}
	return embeddings[0], nil
}

// EmbedDocuments embeds filing sentences with the passage-side prefix.
func (e *LocalEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	prefixed := make([]string, len(texts))
	for i, text := range texts {
		prefixed[i] = passagePrefix + text
	}
	embeddings, err := e.embed(prefixed)
	if err != nil {
		return nil, helper.NewError("embed documents", err)
	}
	return embeddings, nil
}

// Close destroys the hugot session and releases the model.
func (e *LocalEmbedder) Close() error {
	if e.session == nil {
		return nil
	}
	return e.session.Destroy()
}
