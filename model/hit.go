package model

// HitSource marks which retrieval call produced a hit.
type HitSource string

const (
	HitSourceFiltered HitSource = "filtered"
	HitSourceGlobal   HitSource = "global"
)

// Hit is a single sentence-level result from the vector index.
// It preserves both the business key (SentenceID) and the technical
// surrogate key, plus the embedding run that produced the vector.
type Hit struct {
	// Primary keys
	SentenceID          string `json:"sentence_id"`                    // business key, composite string
	SentenceIDSurrogate int64  `json:"sentence_id_numsurrogate"`       // technical surrogate key
	EmbeddingID         string `json:"embedding_id"`                   // embedding run, needed for joins

	// Similarity
	Distance float64 `json:"distance"` // cosine distance from query

	// Filterable metadata
	CIKInt      int    `json:"cik_int"`
	ReportYear  int    `json:"report_year"`
	SectionName string `json:"section_name"` // canonical, e.g. "ITEM_7"
	SIC         string `json:"sic"`
	SentencePos int    `json:"sentence_pos"` // position within section

	// Retrieval provenance. Sources and VariantIDs accumulate during
	// deduplication when the same sentence is found by multiple calls.
	Source     HitSource         `json:"source"`
	VariantID  int               `json:"variant_id"` // 0 = base query, 1+ = variants
	Sources    map[HitSource]bool `json:"-"`
	VariantIDs map[int]bool       `json:"-"`

	// Context metadata for window expansion bounds
	SectionSentenceCount int `json:"section_sentence_count"`

	// Raw metadata row, kept for debugging
	RawMetadata Metadata `json:"raw_metadata,omitempty"`
}

// SimilarityScore converts distance to a similarity in [0, 1],
// where higher is better.
func (h *Hit) SimilarityScore() float64 {
	s := 1.0 - h.Distance/2.0
	if s < 0 {
		return 0
	}
	return s
}

// FromSource reports whether the hit was produced by the given call type,
// considering accumulated provenance.
func (h *Hit) FromSource(source HitSource) bool {
	if h.Sources != nil {
		return h.Sources[source]
	}
	return h.Source == source
}

// RetrievalBundle collects all hits from a multi-call retrieval operation.
// UnionHits is deduplicated by (sentence_id, embedding_id), keeping the best
// distance per pair; FilteredHits and GlobalHits are views of the union by
// contributing source.
type RetrievalBundle struct {
	FilteredHits []*Hit `json:"filtered_hits"`
	GlobalHits   []*Hit `json:"global_hits"`
	UnionHits    []*Hit `json:"union_hits"`

	BaseQuery      string   `json:"base_query"`
	VariantQueries []string `json:"variant_queries,omitempty"`
}

// SentenceRecord is one sentence after window expansion, carrying both the
// text and the provenance of the hits that pulled it in.
type SentenceRecord struct {
	// Identity and position
	SentenceID  string `json:"sentence_id"`
	SentencePos int    `json:"sentence_pos"`

	// Context
	CIKInt      int    `json:"cik_int"`
	ReportYear  int    `json:"report_year"`
	SectionName string `json:"section_name"`
	DocID       string `json:"doc_id"`
	CompanyName string `json:"company_name"`

	// Content
	Text string `json:"text"`

	// Provenance
	IsCoreHit         bool               `json:"is_core_hit"`         // true if an actual retrieval hit, false if neighbor
	ParentHitDistance float64            `json:"parent_hit_distance"` // best distance among contributing hits
	Sources           map[HitSource]bool `json:"-"`
	VariantIDs        map[int]bool       `json:"-"`

	// Navigation, populated for safety
	PrevSentenceID       string `json:"prev_sentence_id,omitempty"`
	NextSentenceID       string `json:"next_sentence_id,omitempty"`
	SectionSentenceCount int    `json:"section_sentence_count,omitempty"`
}
