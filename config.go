package finrag

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/finraglabs/finrag/core/embedding"
	"github.com/finraglabs/finrag/helper"
	"github.com/finraglabs/finrag/llm"
	"github.com/finraglabs/finrag/model"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration of a FinRAG instance. Database
// credentials are not part of it, they come from FINRAG_DB_* environment
// variables (a .env file is honored).
type Config struct {
	// EmbeddingProvider selects where embeddings come from: "local" runs
	// the ONNX model in-process, "llm" delegates to the LLM provider.
	EmbeddingProvider string `json:"embedding_provider" yaml:"embedding_provider"`
	EmbeddingModel    string `json:"embedding_model" yaml:"embedding_model"`
	EmbeddingDim      int    `json:"embedding_dim" yaml:"embedding_dim"`

	Retrieval model.RetrievalConfig `json:"retrieval" yaml:"retrieval"`
	Variants  model.VariantConfig   `json:"variants" yaml:"variants"`
	LLM       llm.Config            `json:"llm" yaml:"llm"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the documented default configuration with the local
// embedder and variants disabled.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingProvider: "local",
		EmbeddingModel:    embedding.DefaultModelName,
		EmbeddingDim:      embedding.DefaultEmbeddingDim,
		Retrieval:         model.DefaultRetrievalConfig(),
		Variants:          model.DefaultVariantConfig(),
		LogLevel:          "info",
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, helper.NewError("read config file", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, helper.NewError("parse config file", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for values the pipeline cannot work
// with. All violations are reported as ErrInvalidConfig.
func (c *Config) Validate() error {
	switch c.EmbeddingProvider {
	case "", "local", "llm":
	default:
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidConfig, c.EmbeddingProvider)
	}
	if c.EmbeddingDim <= 0 {
		return fmt.Errorf("%w: embedding dimension must be positive", ErrInvalidConfig)
	}
	if c.Retrieval.TopKFiltered <= 0 {
		return fmt.Errorf("%w: top_k_filtered must be positive", ErrInvalidConfig)
	}
	if c.Retrieval.MinSimilarity < 0 || c.Retrieval.MinSimilarity > 1 {
		return fmt.Errorf("%w: min_similarity must be in [0, 1]", ErrInvalidConfig)
	}
	if c.Retrieval.WindowSize < 0 {
		return fmt.Errorf("%w: window_size must not be negative", ErrInvalidConfig)
	}
	if c.Retrieval.FilteredProportion < 0 || c.Retrieval.GlobalProportion < 0 ||
		c.Retrieval.FilteredProportion+c.Retrieval.GlobalProportion > 1 {
		return fmt.Errorf("%w: sampling proportions must be non-negative and sum to at most 1", ErrInvalidConfig)
	}
	if c.Retrieval.EnableVariants && c.LLM.Provider == "" {
		return fmt.Errorf("%w: variants require an llm provider", ErrInvalidConfig)
	}
	if c.EmbeddingProvider == "llm" && c.LLM.Provider == "" {
		return fmt.Errorf("%w: llm embedding requires an llm provider", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) logLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
}
