package embedding

import "context"

// Embedder turns text into dense vectors. Queries and documents are embedded
// separately because some models expect different input framings for the
// two sides of the similarity search.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}
