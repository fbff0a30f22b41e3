package model

// RetrievalConfig centralizes the tunable parameters of the retrieval
// pipeline.
type RetrievalConfig struct {
	// Vector call limits
	TopKFiltered         int `json:"top_k_filtered" yaml:"top_k_filtered"`                   // max results per filtered call
	TopKGlobal           int `json:"top_k_global" yaml:"top_k_global"`                       // max results per global call
	TopKFilteredVariants int `json:"top_k_filtered_variants" yaml:"top_k_filtered_variants"` // max results per variant filtered call

	// Strategy toggles
	EnableGlobal   bool `json:"enable_global" yaml:"enable_global"`
	EnableVariants bool `json:"enable_variants" yaml:"enable_variants"`
	VariantCount   int  `json:"variant_count" yaml:"variant_count"`

	// Similarity and time constraints
	MinSimilarity       float64 `json:"min_similarity" yaml:"min_similarity"`               // drop very weak hits
	RecentYearThreshold int     `json:"recent_year_threshold" yaml:"recent_year_threshold"` // cutoff for "recent" in global calls

	// Window expansion
	WindowSize int `json:"window_size" yaml:"window_size"` // ±N sentences around each hit

	// Proportional sampling before expansion
	MaxHitsBeforeExpansion int     `json:"max_hits_before_expansion" yaml:"max_hits_before_expansion"`
	FilteredProportion     float64 `json:"filtered_proportion" yaml:"filtered_proportion"`
	GlobalProportion       float64 `json:"global_proportion" yaml:"global_proportion"`
}

// DefaultRetrievalConfig returns the documented default configuration.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		TopKFiltered:           30,
		TopKGlobal:             15,
		TopKFilteredVariants:   15,
		EnableGlobal:           true,
		EnableVariants:         false,
		VariantCount:           3,
		MinSimilarity:          0.3,
		RecentYearThreshold:    2015,
		WindowSize:             3,
		MaxHitsBeforeExpansion: 30,
		FilteredProportion:     0.75,
		GlobalProportion:       0.25,
	}
}

// VariantConfig controls semantic variant generation.
type VariantConfig struct {
	Model       string  `json:"model" yaml:"model"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Count       int     `json:"count" yaml:"count"`
}

// DefaultVariantConfig returns sensible defaults for variant generation.
func DefaultVariantConfig() VariantConfig {
	return VariantConfig{
		MaxTokens:   150,
		Temperature: 0.7,
		Count:       3,
	}
}
