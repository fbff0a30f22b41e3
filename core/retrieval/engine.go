package retrieval

import (
	"context"
	"log/slog"
	"sort"

	"github.com/finraglabs/finrag/model"
)

// VectorIndex is the similarity search surface the engine retrieves from.
type VectorIndex interface {
	QueryHits(ctx context.Context, embedding []float32, filter model.Filter, topK int) ([]*model.Hit, error)
}

// Engine executes the multi-call retrieval strategy: one strict filtered
// call, one relaxed global call and optional variant calls, merged into a
// deduplicated, distance-sorted union. Individual call failures degrade
// gracefully instead of failing the whole retrieval.
type Engine struct {
	index   VectorIndex
	filters *FilterBuilder
	config  model.RetrievalConfig
	logger  *slog.Logger
}

// NewEngine wires the engine over a vector index.
func NewEngine(index VectorIndex, config model.RetrievalConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		index:   index,
		filters: NewFilterBuilder(config.RecentYearThreshold),
		config:  config,
		logger:  logger,
	}
}

// Retrieve runs all configured vector calls for the query embedding and
// optional variant embeddings. Variant embeddings only run against the
// strict filter. With forceNoFilters the single filtered call runs
// unconstrained and the global call is skipped as redundant.
func (e *Engine) Retrieve(ctx context.Context, query string, embedding []float32, variantQueries []string, variantEmbeddings [][]float32, entities *model.EntityExtractionResult, forceNoFilters bool) (*model.RetrievalBundle, error) {
	filteredFilter := e.filters.BuildFiltered(entities, forceNoFilters)
	var globalFilter model.Filter
	if e.config.EnableGlobal && !forceNoFilters {
		globalFilter = e.filters.BuildGlobal(entities)
	}

	e.logger.Debug("Retrieval filters",
		slog.String("filtered", e.filters.Explain(filteredFilter)),
		slog.String("global", e.filters.Explain(globalFilter)),
	)

	var raw []*model.Hit

	raw = append(raw, e.runCall(ctx, embedding, filteredFilter, e.config.TopKFiltered, model.HitSourceFiltered, 0)...)

	if globalFilter != nil {
		raw = append(raw, e.runCall(ctx, embedding, globalFilter, e.config.TopKGlobal, model.HitSourceGlobal, 0)...)
	}

	for i, variantEmbedding := range variantEmbeddings {
		raw = append(raw, e.runCall(ctx, variantEmbedding, filteredFilter, e.config.TopKFilteredVariants, model.HitSourceFiltered, i+1)...)
	}

	union := e.dedupe(raw)
	union = e.sample(union)

	bundle := &model.RetrievalBundle{
		UnionHits:      union,
		BaseQuery:      query,
		VariantQueries: variantQueries,
	}
	for _, hit := range union {
		if hit.FromSource(model.HitSourceFiltered) {
			bundle.FilteredHits = append(bundle.FilteredHits, hit)
		}
		if hit.FromSource(model.HitSourceGlobal) {
			bundle.GlobalHits = append(bundle.GlobalHits, hit)
		}
	}

	e.logger.Info("Retrieval complete",
		slog.Int("union_hits", len(bundle.UnionHits)),
		slog.Int("filtered_hits", len(bundle.FilteredHits)),
		slog.Int("global_hits", len(bundle.GlobalHits)),
	)

	return bundle, nil
}

// runCall executes one vector call and parses its hits. Failures are logged
// and produce no hits.
func (e *Engine) runCall(ctx context.Context, embedding []float32, filter model.Filter, topK int, source model.HitSource, variantID int) []*model.Hit {
	hits, err := e.index.QueryHits(ctx, embedding, filter, topK)
	if err != nil {
		e.logger.Warn("Vector call failed",
			slog.String("source", string(source)),
			slog.Int("variant_id", variantID),
			slog.Any("error", err),
		)
		return nil
	}

	var parsed []*model.Hit
	for _, hit := range hits {
		if hit.SentenceID == "" || hit.EmbeddingID == "" {
			e.logger.Warn("Skipping hit with missing keys",
				slog.String("sentence_id", hit.SentenceID),
				slog.String("embedding_id", hit.EmbeddingID),
			)
			continue
		}
		if hit.SimilarityScore() < e.config.MinSimilarity {
			continue
		}
		hit.Source = source
		hit.VariantID = variantID
		hit.Sources = map[model.HitSource]bool{source: true}
		hit.VariantIDs = map[int]bool{variantID: true}
		parsed = append(parsed, hit)
	}
	return parsed
}

// dedupe merges hits sharing (sentence_id, embedding_id), keeping the best
// distance and accumulating provenance, then sorts by distance.
func (e *Engine) dedupe(hits []*model.Hit) []*model.Hit {
	type key struct {
		sentenceID  string
		embeddingID string
	}

	merged := map[key]*model.Hit{}
	var order []key
	for _, hit := range hits {
		k := key{hit.SentenceID, hit.EmbeddingID}
		existing, ok := merged[k]
		if !ok {
			merged[k] = hit
			order = append(order, k)
			continue
		}
		if hit.Distance < existing.Distance {
			existing.Distance = hit.Distance
		}
		for source := range hit.Sources {
			existing.Sources[source] = true
		}
		for variantID := range hit.VariantIDs {
			existing.VariantIDs[variantID] = true
		}
	}

	union := make([]*model.Hit, 0, len(merged))
	for _, k := range order {
		union = append(union, merged[k])
	}
	sortHitsByDistance(union)
	return union
}

// sample reduces an oversized union to the configured limit while keeping
// the configured proportion between filtered and global-only hits.
func (e *Engine) sample(union []*model.Hit) []*model.Hit {
	limit := e.config.MaxHitsBeforeExpansion
	if limit <= 0 || len(union) <= limit {
		return union
	}

	var filtered, globalOnly []*model.Hit
	for _, hit := range union {
		if hit.FromSource(model.HitSourceFiltered) {
			filtered = append(filtered, hit)
		} else {
			globalOnly = append(globalOnly, hit)
		}
	}

	// With only one population there is no proportion to keep.
	if len(filtered) == 0 || len(globalOnly) == 0 {
		return union[:limit]
	}

	filteredTake := minInt(int(float64(limit)*e.config.FilteredProportion), len(filtered))
	globalTake := minInt(int(float64(limit)*e.config.GlobalProportion), len(globalOnly))

	// Backfill unused budget, preferring filtered hits.
	remaining := limit - filteredTake - globalTake
	if remaining > 0 {
		extra := minInt(remaining, len(filtered)-filteredTake)
		filteredTake += extra
		remaining -= extra
	}
	if remaining > 0 {
		globalTake += minInt(remaining, len(globalOnly)-globalTake)
	}

	sampled := make([]*model.Hit, 0, filteredTake+globalTake)
	sampled = append(sampled, filtered[:filteredTake]...)
	sampled = append(sampled, globalOnly[:globalTake]...)
	sortHitsByDistance(sampled)

	e.logger.Debug("Sampled union hits",
		slog.Int("filtered_kept", filteredTake),
		slog.Int("global_kept", globalTake),
	)

	return sampled
}

func sortHitsByDistance(hits []*model.Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].SentenceID < hits[j].SentenceID
	})
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
