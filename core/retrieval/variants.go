package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finraglabs/finrag/llm"
	"github.com/finraglabs/finrag/model"
)

// minVariantLength filters out degenerate rephrasings and junk lines from
// the model output.
const minVariantLength = 10

// VariantGenerator produces semantic rephrasings of a query via an LLM.
// Any failure degrades to zero variants, retrieval always proceeds with
// the base query.
type VariantGenerator struct {
	provider llm.Provider
	config   model.VariantConfig
	logger   *slog.Logger
}

// NewVariantGenerator wires the generator over an LLM provider. A nil
// provider disables variant generation.
func NewVariantGenerator(provider llm.Provider, config model.VariantConfig, logger *slog.Logger) *VariantGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &VariantGenerator{
		provider: provider,
		config:   config,
		logger:   logger,
	}
}

// Generate returns up to count rephrasings of the query, one per response
// line, with numbering stripped and short lines dropped.
func (g *VariantGenerator) Generate(ctx context.Context, query string, count int) []string {
	if g.provider == nil || count <= 0 {
		return nil
	}

	trimmed := strings.TrimSpace(query)
	if len(trimmed) < minVariantLength {
		g.logger.Warn("Query too short for variant generation", slog.Int("length", len(trimmed)))
		return nil
	}

	prompt := fmt.Sprintf(
		"Rephrase the following question about SEC filings in %d different ways. "+
			"Keep every company name, year and financial metric unchanged. "+
			"Return one rephrasing per line with no extra commentary.\n\nQuestion: %s",
		count, trimmed,
	)

	resp, err := g.provider.Chat(ctx, llm.ChatRequest{
		Model:       g.config.Model,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: g.config.Temperature,
		MaxTokens:   g.config.MaxTokens,
	})
	if err != nil {
		g.logger.Warn("Variant generation failed", slog.Any("error", err))
		return nil
	}

	variants := parseVariants(resp.Content, count)
	g.logger.Debug("Generated query variants", slog.Int("count", len(variants)))
	return variants
}

// parseVariants extracts one variant per line, stripping leading numbering
// like "1." or "2.", deduplicating and capping at count.
func parseVariants(content string, count int) []string {
	var variants []string
	seen := map[string]bool{}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line[0] >= '0' && line[0] <= '9' {
			if dot := strings.Index(line, "."); dot >= 0 && dot < 3 {
				line = strings.TrimSpace(line[dot+1:])
			}
		}
		if len(line) < minVariantLength || seen[line] {
			continue
		}
		seen[line] = true
		variants = append(variants, line)
		if len(variants) == count {
			break
		}
	}

	return variants
}
