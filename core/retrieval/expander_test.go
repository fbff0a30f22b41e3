package retrieval

import (
	"context"
	"fmt"
	"testing"

	"github.com/finraglabs/finrag/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves sentences for one section of fifty sentences and records
// the requested ranges.
type fakeStore struct {
	sentenceCount int
	ranges        [][2]int
	err           error
}

func (f *fakeStore) SelectSentencesByWindow(ctx context.Context, cikInt int, reportYear int, sectionName string, fromPos int, toPos int) ([]*model.SentenceRecord, error) {
	f.ranges = append(f.ranges, [2]int{fromPos, toPos})
	if f.err != nil {
		return nil, f.err
	}

	var sentences []*model.SentenceRecord
	for pos := fromPos; pos <= toPos && pos < f.sentenceCount; pos++ {
		sentences = append(sentences, &model.SentenceRecord{
			SentenceID:           fmt.Sprintf("%d_%d_%s_%04d", cikInt, reportYear, sectionName, pos),
			SentencePos:          pos,
			CIKInt:               cikInt,
			ReportYear:           reportYear,
			SectionName:          sectionName,
			DocID:                "doc-1",
			CompanyName:          "Apple Inc.",
			Text:                 fmt.Sprintf("Sentence %d.", pos),
			SectionSentenceCount: f.sentenceCount,
		})
	}
	return sentences, nil
}

func windowHit(pos int, distance float64, count int) *model.Hit {
	return &model.Hit{
		SentenceID:           fmt.Sprintf("320193_2022_ITEM_7_%04d", pos),
		EmbeddingID:          "run-1",
		Distance:             distance,
		CIKInt:               320193,
		ReportYear:           2022,
		SectionName:          "ITEM_7",
		SentencePos:          pos,
		SectionSentenceCount: count,
		Sources:              map[model.HitSource]bool{model.HitSourceFiltered: true},
		VariantIDs:           map[int]bool{0: true},
	}
}

func TestExpanderExpand(t *testing.T) {
	t.Run("Window covers three sentences on each side", func(t *testing.T) {
		store := &fakeStore{sentenceCount: 50}
		expander := NewExpander(store, 3, nil)

		records := expander.Expand(context.Background(), []*model.Hit{windowHit(10, 0.2, 50)})
		require.Len(t, records, 7)
		assert.Equal(t, [2]int{7, 13}, store.ranges[0])

		for _, record := range records {
			if record.SentencePos == 10 {
				assert.True(t, record.IsCoreHit, "Expected the hit sentence to be marked core")
			} else {
				assert.False(t, record.IsCoreHit)
			}
			assert.Equal(t, 0.2, record.ParentHitDistance)
			assert.True(t, record.Sources[model.HitSourceFiltered])
		}
	})

	t.Run("Window clamps at section start", func(t *testing.T) {
		store := &fakeStore{sentenceCount: 50}
		expander := NewExpander(store, 3, nil)

		records := expander.Expand(context.Background(), []*model.Hit{windowHit(0, 0.2, 50)})
		require.Len(t, records, 4)
		assert.Equal(t, [2]int{0, 3}, store.ranges[0])
		assert.Equal(t, 0, records[0].SentencePos)
	})

	t.Run("Window clamps at section end", func(t *testing.T) {
		store := &fakeStore{sentenceCount: 50}
		expander := NewExpander(store, 3, nil)

		records := expander.Expand(context.Background(), []*model.Hit{windowHit(49, 0.2, 50)})
		require.Len(t, records, 4)
		assert.Equal(t, [2]int{46, 49}, store.ranges[0])
		assert.Equal(t, 49, records[len(records)-1].SentencePos)
	})

	t.Run("Overlapping windows are merged with best parent distance", func(t *testing.T) {
		store := &fakeStore{sentenceCount: 50}
		expander := NewExpander(store, 3, nil)

		globalHit := windowHit(12, 0.1, 50)
		globalHit.Sources = map[model.HitSource]bool{model.HitSourceGlobal: true}
		globalHit.VariantIDs = map[int]bool{1: true}

		records := expander.Expand(context.Background(), []*model.Hit{windowHit(10, 0.4, 50), globalHit})
		// Positions 7..13 and 9..15 overlap into 7..15.
		require.Len(t, records, 9)

		var shared *model.SentenceRecord
		for _, record := range records {
			if record.SentencePos == 12 {
				shared = record
			}
		}
		require.NotNil(t, shared)
		assert.True(t, shared.IsCoreHit, "Expected core flag from the second hit to survive the merge")
		assert.Equal(t, 0.1, shared.ParentHitDistance, "Expected the best parent distance to win")
		assert.True(t, shared.Sources[model.HitSourceFiltered])
		assert.True(t, shared.Sources[model.HitSourceGlobal])
		assert.True(t, shared.VariantIDs[0])
		assert.True(t, shared.VariantIDs[1])
	})

	t.Run("Records are sorted by position", func(t *testing.T) {
		store := &fakeStore{sentenceCount: 50}
		expander := NewExpander(store, 3, nil)

		records := expander.Expand(context.Background(), []*model.Hit{windowHit(20, 0.3, 50), windowHit(5, 0.2, 50)})
		for i := 1; i < len(records); i++ {
			assert.Less(t, records[i-1].SentencePos, records[i].SentencePos)
		}
	})

	t.Run("Navigation links point at window neighbors", func(t *testing.T) {
		store := &fakeStore{sentenceCount: 50}
		expander := NewExpander(store, 3, nil)

		records := expander.Expand(context.Background(), []*model.Hit{windowHit(10, 0.2, 50)})
		first := records[0]
		assert.Empty(t, first.PrevSentenceID)
		assert.Equal(t, records[1].SentenceID, first.NextSentenceID)
	})

	t.Run("Store failure skips the hit", func(t *testing.T) {
		store := &fakeStore{sentenceCount: 50, err: fmt.Errorf("store unavailable")}
		expander := NewExpander(store, 3, nil)

		records := expander.Expand(context.Background(), []*model.Hit{windowHit(10, 0.2, 50)})
		assert.Empty(t, records)
	})

	t.Run("No hits produce no records", func(t *testing.T) {
		store := &fakeStore{sentenceCount: 50}
		expander := NewExpander(store, 3, nil)
		assert.Empty(t, expander.Expand(context.Background(), nil))
	})
}
