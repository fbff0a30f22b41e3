// Package finrag provides entity-aware retrieval over SEC filings: queries
// are parsed for companies, years, metrics and sections, turned into
// metadata filters, and run against a pgvector index with window expansion
// and context assembly on top.
package finrag

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/finraglabs/finrag/core/embedding"
	"github.com/finraglabs/finrag/core/entity"
	"github.com/finraglabs/finrag/core/retrieval"
	"github.com/finraglabs/finrag/database"
	"github.com/finraglabs/finrag/helper"
	"github.com/finraglabs/finrag/llm"
	"github.com/finraglabs/finrag/model"
	loadSql "github.com/finraglabs/finrag/sql"
	"github.com/google/uuid"
)

// Query guardrail bounds.
const (
	minQueryLength = 4
	maxQueryLength = 3000
)

// FinRAG provides a unified interface to the retrieval pipeline and the
// underlying database handlers.
type FinRAG struct {
	DB        *helper.Database
	Vectors   *database.VectorsDBHandler
	Sentences *database.SentencesDBHandler
	Companies *database.CompaniesDBHandler
	Sections  *database.SectionsDBHandler

	Entities  *entity.Adapter
	Engine    *retrieval.Engine
	Expander  *retrieval.Expander
	Assembler *retrieval.Assembler
	Variants  *retrieval.VariantGenerator
	Embedder  embedding.Embedder

	config *Config
	log    *slog.Logger
}

// New creates a FinRAG instance: connects to Postgres, installs the SQL
// functions, creates the handlers and loads the company and section
// universes into memory. A nil config uses DefaultConfig.
func New(config *Config) (*FinRAG, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	level, err := config.logLevel()
	if err != nil {
		return nil, err
	}

	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: level,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	dbConfig, err := helper.NewDatabaseConfiguration()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingEnvVariable, err)
	}

	db := helper.NewDatabase("finrag", dbConfig, logger)
	if err := loadSql.Init(db.Instance); err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload SQL functions that already exist.
	vectors, err := database.NewVectorsDBHandler(db, config.EmbeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create vectors handler", err)
	}

	sentences, err := database.NewSentencesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create sentences handler", err)
	}

	companies, err := database.NewCompaniesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create companies handler", err)
	}

	sections, err := database.NewSectionsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create sections handler", err)
	}

	f := &FinRAG{
		DB:        db,
		Vectors:   vectors,
		Sentences: sentences,
		Companies: companies,
		Sections:  sections,
		Engine:    retrieval.NewEngine(vectors, config.Retrieval, logger),
		Expander:  retrieval.NewExpander(sentences, config.Retrieval.WindowSize, logger),
		Assembler: retrieval.NewAssembler(),
		config:    config,
		log:       logger,
	}

	if err := f.reloadUniverses(context.Background()); err != nil {
		return nil, err
	}

	var provider llm.Provider
	if config.LLM.Provider != "" {
		provider, err = llm.NewProvider(config.LLM)
		if err != nil {
			return nil, helper.NewError("create llm provider", err)
		}
	}

	if config.EmbeddingProvider == "llm" {
		f.Embedder = embedding.NewProviderEmbedder(provider)
	} else {
		local, err := embedding.NewLocalEmbedder(config.EmbeddingModel)
		if err != nil {
			return nil, helper.NewError("create local embedder", err)
		}
		f.Embedder = local
	}

	if config.Retrieval.EnableVariants {
		f.Variants = retrieval.NewVariantGenerator(provider, config.Variants, logger)
	}

	return f, nil
}

// reloadUniverses loads all companies and sections from the database and
// rebuilds the entity adapter on top of them.
func (f *FinRAG) reloadUniverses(ctx context.Context) error {
	companies, err := f.Companies.SelectAllCompanies(ctx)
	if err != nil {
		return helper.NewError("load company universe", err)
	}

	sections, err := f.Sections.SelectAllSections(ctx)
	if err != nil {
		return helper.NewError("load section universe", err)
	}

	f.Entities = entity.NewAdapter(
		entity.NewCompanyUniverse(companies),
		entity.NewSectionUniverse(sections),
		f.log,
	)

	f.log.Info("Loaded universes",
		slog.Int("companies", len(companies)),
		slog.Int("sections", len(sections)),
	)

	return nil
}

// Close closes the database connection and releases the local embedding
// model if one is loaded.
func (f *FinRAG) Close() error {
	if closer, ok := f.Embedder.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			f.log.Warn("Failed to close embedder", slog.Any("error", err))
		}
	}
	if f.DB != nil && f.DB.Instance != nil {
		return f.DB.Close()
	}
	return nil
}

// ExtractEntities parses the query for companies, years, metrics and
// sections without running retrieval.
func (f *FinRAG) ExtractEntities(query string) (*model.EntityExtractionResult, error) {
	if utf8.RuneCountInString(query) > maxQueryLength {
		return nil, ErrQueryTooLong
	}
	return f.Entities.Extract(query), nil
}

// checkGuardrails validates the query against the extraction result. Both
// length bounds count runes, not bytes.
func checkGuardrails(query string, entities *model.EntityExtractionResult) error {
	if utf8.RuneCountInString(query) > maxQueryLength {
		return ErrQueryTooLong
	}
	if entities == nil || entities.IsEmpty() {
		if utf8.RuneCountInString(strings.TrimSpace(query)) < minQueryLength {
			return ErrQueryTooShort
		}
		return ErrQueryOutOfScope
	}
	return nil
}

// Retrieve runs the full retrieval pipeline up to the deduplicated and
// sampled hit union: guardrails, entity extraction, optional variant
// generation, embedding and the multi-call vector search.
func (f *FinRAG) Retrieve(ctx context.Context, query string) (*model.RetrievalBundle, error) {
	return f.retrieve(ctx, query, false)
}

// RetrieveUnfiltered runs the same pipeline with all metadata filters
// disabled, searching the whole corpus regardless of the extracted entities.
func (f *FinRAG) RetrieveUnfiltered(ctx context.Context, query string) (*model.RetrievalBundle, error) {
	return f.retrieve(ctx, query, true)
}

func (f *FinRAG) retrieve(ctx context.Context, query string, forceNoFilters bool) (*model.RetrievalBundle, error) {
	traceID := uuid.New().String()

	entities := f.Entities.Extract(query)
	if err := checkGuardrails(query, entities); err != nil {
		f.log.Info("Query rejected",
			slog.String("trace_id", traceID),
			slog.Any("error", err),
		)
		return nil, err
	}

	f.log.Info("Extracted entities",
		slog.String("trace_id", traceID),
		slog.Any("companies", entities.Companies.CIKsInt),
		slog.Any("years", entities.Years.Years),
		slog.Any("metrics", entities.Metrics.Metrics),
		slog.Any("sections", entities.Sections),
	)

	embeddingVec, err := f.Embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, helper.NewError("embed query", err)
	}

	var variantQueries []string
	var variantEmbeddings [][]float32
	if f.Variants != nil {
		for _, variant := range f.Variants.Generate(ctx, query, f.config.Retrieval.VariantCount) {
			variantVec, err := f.Embedder.EmbedQuery(ctx, variant)
			if err != nil {
				f.log.Warn("Failed to embed variant",
					slog.String("trace_id", traceID),
					slog.Any("error", err),
				)
				continue
			}
			variantQueries = append(variantQueries, variant)
			variantEmbeddings = append(variantEmbeddings, variantVec)
		}
	}

	bundle, err := f.Engine.Retrieve(ctx, query, embeddingVec, variantQueries, variantEmbeddings, entities, forceNoFilters)
	if err != nil {
		return nil, helper.NewError("retrieve", err)
	}

	f.log.Info("Retrieved hits",
		slog.String("trace_id", traceID),
		slog.Int("filtered_hits", len(bundle.FilteredHits)),
		slog.Int("global_hits", len(bundle.GlobalHits)),
		slog.Int("union_hits", len(bundle.UnionHits)),
	)

	return bundle, nil
}

// Search runs Retrieve and expands every hit into its sentence window.
// Returns ErrNoResults when nothing survives the similarity floor.
func (f *FinRAG) Search(ctx context.Context, query string) ([]*model.SentenceRecord, error) {
	bundle, err := f.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(bundle.UnionHits) == 0 {
		return nil, ErrNoResults
	}
	return f.Expander.Expand(ctx, bundle.UnionHits), nil
}

// SearchWithContext runs Search and assembles the expanded sentences into a
// single context string grouped per filing section.
func (f *FinRAG) SearchWithContext(ctx context.Context, query string) (string, []*model.SentenceRecord, error) {
	records, err := f.Search(ctx, query)
	if err != nil {
		return "", nil, err
	}
	return f.Assembler.Assemble(records), records, nil
}

// AddSentences embeds and stores filing sentences together with their
// vectors. An empty embeddingID starts a new embedding run.
func (f *FinRAG) AddSentences(ctx context.Context, sentences []*model.SentenceRecord, embeddingID string) (string, error) {
	if embeddingID == "" {
		embeddingID = uuid.New().String()
	}
	if len(sentences) == 0 {
		return embeddingID, nil
	}

	texts := make([]string, len(sentences))
	for i, sentence := range sentences {
		texts[i] = sentence.Text
	}

	embeddings, err := f.Embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return embeddingID, helper.NewError("embed sentences", err)
	}
	if len(embeddings) != len(sentences) {
		return embeddingID, helper.NewError("embed sentences",
			fmt.Errorf("expected %d embeddings, got %d", len(sentences), len(embeddings)))
	}

	for i, sentence := range sentences {
		if err := f.Sentences.InsertSentence(sentence); err != nil {
			return embeddingID, helper.NewError(fmt.Sprintf("insert sentence %d", i), err)
		}

		hit := &model.Hit{
			SentenceID:           sentence.SentenceID,
			EmbeddingID:          embeddingID,
			CIKInt:               sentence.CIKInt,
			ReportYear:           sentence.ReportYear,
			SectionName:          sentence.SectionName,
			SentencePos:          sentence.SentencePos,
			SectionSentenceCount: sentence.SectionSentenceCount,
		}
		if err := f.Vectors.InsertHit(hit, embeddings[i]); err != nil {
			return embeddingID, helper.NewError(fmt.Sprintf("insert vector %d", i), err)
		}
	}

	f.log.Info("Stored sentences",
		slog.Int("count", len(sentences)),
		slog.String("embedding_id", embeddingID),
	)

	return embeddingID, nil
}

// AddCompanies stores companies and reloads the in-memory universe so the
// extractor picks them up immediately.
func (f *FinRAG) AddCompanies(ctx context.Context, companies []*model.CompanyInfo) error {
	for i, company := range companies {
		if err := f.Companies.InsertCompany(company); err != nil {
			return helper.NewError(fmt.Sprintf("insert company %d", i), err)
		}
	}
	return f.reloadUniverses(ctx)
}

// AddSections stores filing sections and reloads the in-memory universe.
func (f *FinRAG) AddSections(ctx context.Context, sections []*model.SectionInfo) error {
	for i, section := range sections {
		if err := f.Sections.InsertSection(section); err != nil {
			return helper.NewError(fmt.Sprintf("insert section %d", i), err)
		}
	}
	return f.reloadUniverses(ctx)
}

// CreateVectorIndex switches the vector index between HNSW and IVFFlat.
func (f *FinRAG) CreateVectorIndex(ctx context.Context, indexType string, params map[string]interface{}) error {
	return f.Vectors.ChangeIndexType(ctx, indexType, params)
}
