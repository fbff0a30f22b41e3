package retrieval

import (
	"context"
	"log/slog"
	"sort"

	"github.com/finraglabs/finrag/model"
)

// SentenceStore is the sentence lookup surface used for window expansion.
type SentenceStore interface {
	SelectSentencesByWindow(ctx context.Context, cikInt int, reportYear int, sectionName string, fromPos int, toPos int) ([]*model.SentenceRecord, error)
}

// Expander widens each hit into a window of surrounding sentences from the
// same section, so the assembled context reads as coherent prose instead of
// isolated sentences.
type Expander struct {
	store      SentenceStore
	windowSize int
	logger     *slog.Logger
}

// NewExpander returns an expander fetching ±windowSize sentences per hit.
func NewExpander(store SentenceStore, windowSize int, logger *slog.Logger) *Expander {
	if logger == nil {
		logger = slog.Default()
	}
	return &Expander{
		store:      store,
		windowSize: windowSize,
		logger:     logger,
	}
}

// Expand fetches the sentence windows for all union hits and merges
// overlapping windows. A sentence pulled in by several hits keeps the best
// parent distance, stays a core hit if any parent marked it as one, and
// accumulates provenance. Store failures skip the affected hit.
func (e *Expander) Expand(ctx context.Context, hits []*model.Hit) []*model.SentenceRecord {
	type key struct {
		sentenceID string
		cik        int
		year       int
		section    string
	}

	merged := map[key]*model.SentenceRecord{}

	for _, hit := range hits {
		fromPos := hit.SentencePos - e.windowSize
		if fromPos < 0 {
			fromPos = 0
		}
		toPos := hit.SentencePos + e.windowSize
		if hit.SectionSentenceCount > 0 && toPos > hit.SectionSentenceCount-1 {
			toPos = hit.SectionSentenceCount - 1
		}

		window, err := e.store.SelectSentencesByWindow(ctx, hit.CIKInt, hit.ReportYear, hit.SectionName, fromPos, toPos)
		if err != nil {
			e.logger.Warn("Window fetch failed",
				slog.String("sentence_id", hit.SentenceID),
				slog.Any("error", err),
			)
			continue
		}

		for i, sentence := range window {
			record := &model.SentenceRecord{
				SentenceID:           sentence.SentenceID,
				SentencePos:          sentence.SentencePos,
				CIKInt:               sentence.CIKInt,
				ReportYear:           sentence.ReportYear,
				SectionName:          sentence.SectionName,
				DocID:                sentence.DocID,
				CompanyName:          sentence.CompanyName,
				Text:                 sentence.Text,
				IsCoreHit:            sentence.SentenceID == hit.SentenceID,
				ParentHitDistance:    hit.Distance,
				Sources:              copySources(hit.Sources),
				VariantIDs:           copyVariantIDs(hit.VariantIDs),
				SectionSentenceCount: sentence.SectionSentenceCount,
			}
			if i > 0 {
				record.PrevSentenceID = window[i-1].SentenceID
			}
			if i < len(window)-1 {
				record.NextSentenceID = window[i+1].SentenceID
			}

			k := key{record.SentenceID, record.CIKInt, record.ReportYear, record.SectionName}
			existing, ok := merged[k]
			if !ok {
				merged[k] = record
				continue
			}
			if record.ParentHitDistance < existing.ParentHitDistance {
				existing.ParentHitDistance = record.ParentHitDistance
			}
			existing.IsCoreHit = existing.IsCoreHit || record.IsCoreHit
			for source := range record.Sources {
				if existing.Sources == nil {
					existing.Sources = map[model.HitSource]bool{}
				}
				existing.Sources[source] = true
			}
			for variantID := range record.VariantIDs {
				if existing.VariantIDs == nil {
					existing.VariantIDs = map[int]bool{}
				}
				existing.VariantIDs[variantID] = true
			}
			if existing.PrevSentenceID == "" {
				existing.PrevSentenceID = record.PrevSentenceID
			}
			if existing.NextSentenceID == "" {
				existing.NextSentenceID = record.NextSentenceID
			}
		}
	}

	records := make([]*model.SentenceRecord, 0, len(merged))
	for _, record := range merged {
		records = append(records, record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.CIKInt != b.CIKInt {
			return a.CIKInt < b.CIKInt
		}
		if a.ReportYear != b.ReportYear {
			return a.ReportYear < b.ReportYear
		}
		if a.SectionName != b.SectionName {
			return a.SectionName < b.SectionName
		}
		return a.SentencePos < b.SentencePos
	})

	e.logger.Debug("Window expansion complete",
		slog.Int("hits", len(hits)),
		slog.Int("sentences", len(records)),
	)

	return records
}

func copySources(sources map[model.HitSource]bool) map[model.HitSource]bool {
	out := map[model.HitSource]bool{}
	for source := range sources {
		out[source] = true
	}
	return out
}

func copyVariantIDs(variantIDs map[int]bool) map[int]bool {
	out := map[int]bool{}
	for variantID := range variantIDs {
		out[variantID] = true
	}
	return out
}
