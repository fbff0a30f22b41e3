// Package database contains the Postgres handlers backing the retrieval
// pipeline. All access goes through SQL functions loaded at startup.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/finraglabs/finrag/helper"
	"github.com/finraglabs/finrag/model"
	loadSql "github.com/finraglabs/finrag/sql"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// VectorsDBHandlerFunctions defines the interface for vector database operations.
type VectorsDBHandlerFunctions interface {
	InsertHit(hit *model.Hit, embedding []float32) error
	QueryHits(ctx context.Context, embedding []float32, filter model.Filter, topK int) ([]*model.Hit, error)
	CountVectors() (int64, error)
	DeleteVectorsByEmbedding(embeddingID string) (int, error)
	ChangeIndexType(ctx context.Context, indexType string, params map[string]interface{}) error
}

// VectorsDBHandler handles vector-related database operations
type VectorsDBHandler struct {
	db *helper.Database
}

// NewVectorsDBHandler creates a new vectors database handler.
// It loads vector-related SQL functions and creates the vectors table
// with the given embedding dimension.
// If force is true, it will reload the SQL functions even if they already exist.
func NewVectorsDBHandler(db *helper.Database, embeddingDim int, force bool) (*VectorsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	vectorsDbHandler := &VectorsDBHandler{
		db: db,
	}

	err := loadSql.LoadVectorsSql(vectorsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load vectors sql", err)
	}

	err = vectorsDbHandler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized VectorsDBHandler")

	return vectorsDbHandler, nil
}

// CreateTable creates the 'vectors' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *VectorsDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_vectors($1);`, embeddingDim)
	if err != nil {
		log.Panicf("error initializing vectors table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table vectors")

	return nil
}

// InsertHit inserts a sentence embedding together with its filterable
// metadata. On conflict with an existing (sentence_id, embedding_id) pair
// the row is updated. The surrogate key is written back into the hit.
func (h *VectorsDBHandler) InsertHit(hit *model.Hit, embedding []float32) error {
	if hit.RawMetadata == nil {
		hit.RawMetadata = model.Metadata{}
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_vector($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		hit.SentenceID,
		hit.EmbeddingID,
		hit.CIKInt,
		hit.ReportYear,
		hit.SectionName,
		hit.SIC,
		hit.SentencePos,
		hit.SectionSentenceCount,
		hit.RawMetadata,
		pgvector.NewVector(embedding),
	)

	err := row.Scan(&hit.SentenceIDSurrogate)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// QueryHits performs a cosine similarity search constrained by the given
// metadata filter. A nil filter searches the whole index.
func (h *VectorsDBHandler) QueryHits(ctx context.Context, embedding []float32, filter model.Filter, topK int) ([]*model.Hit, error) {
	ciks, years, sections, minYear, err := renderFilter(filter)
	if err != nil {
		return nil, helper.NewError("render filter", err)
	}

	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_hits_by_similarity($1, $2, $3, $4, $5, $6)`,
		pgvector.NewVector(embedding),
		ciks,
		years,
		sections,
		minYear,
		topK,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var hits []*model.Hit
	for rows.Next() {
		hit := &model.Hit{}
		err := rows.Scan(
			&hit.SentenceIDSurrogate,
			&hit.SentenceID,
			&hit.EmbeddingID,
			&hit.CIKInt,
			&hit.ReportYear,
			&hit.SectionName,
			&hit.SIC,
			&hit.SentencePos,
			&hit.SectionSentenceCount,
			&hit.RawMetadata,
			&hit.Distance,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, helper.NewError("rows", err)
	}

	return hits, nil
}

// CountVectors returns the total number of stored vectors.
func (h *VectorsDBHandler) CountVectors() (int64, error) {
	var count int64
	err := h.db.Instance.QueryRow(`SELECT * FROM count_vectors()`).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}
	return count, nil
}

// DeleteVectorsByEmbedding removes all vectors belonging to one embedding run.
func (h *VectorsDBHandler) DeleteVectorsByEmbedding(embeddingID string) (int, error) {
	var deleted int
	err := h.db.Instance.QueryRow(`SELECT * FROM delete_vectors_by_embedding($1)`, embeddingID).Scan(&deleted)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}
	return deleted, nil
}

// renderFilter maps a filter expression onto the static parameters of
// select_hits_by_similarity. The builder only produces equality and
// membership conditions on cik, report_year and section plus a report_year
// lower bound, so those are the shapes supported here. Anything else is
// rejected with an error rather than silently ignored.
func renderFilter(filter model.Filter) (ciks interface{}, years interface{}, sections interface{}, minYear interface{}, err error) {
	var cikValues []int64
	var yearValues []int64
	var sectionValues []string
	var minYearValue *int64

	var walk func(f model.Filter) error
	walk = func(f model.Filter) error {
		switch node := f.(type) {
		case model.Eq:
			return addComparison(node.Field, []interface{}{node.Value}, &cikValues, &yearValues, &sectionValues)
		case model.In:
			return addComparison(node.Field, node.Values, &cikValues, &yearValues, &sectionValues)
		case model.Gte:
			if node.Field != model.FieldReportYear {
				return fmt.Errorf("unsupported lower bound on field %s", node.Field)
			}
			value, ok := toInt64(node.Value)
			if !ok {
				return fmt.Errorf("unsupported lower bound value %v", node.Value)
			}
			minYearValue = &value
			return nil
		case model.And:
			for _, c := range node.Conditions {
				if err := walk(c); err != nil {
					return err
				}
			}
			return nil
		case model.Or:
			// Or only appears as a disjunction of section equalities,
			// which collapses into one membership list.
			for _, c := range node.Conditions {
				eq, ok := c.(model.Eq)
				if !ok || eq.Field != model.FieldSection {
					return fmt.Errorf("unsupported or condition %s", c.String())
				}
				if err := walk(eq); err != nil {
					return err
				}
			}
			return nil
		default:
			return fmt.Errorf("unsupported filter node %s", f.String())
		}
	}

	if filter != nil {
		if err := walk(filter); err != nil {
			return nil, nil, nil, nil, err
		}
	}

	if len(cikValues) > 0 {
		ciks = pq.Array(cikValues)
	}
	if len(yearValues) > 0 {
		years = pq.Array(yearValues)
	}
	if len(sectionValues) > 0 {
		sections = pq.Array(sectionValues)
	}
	if minYearValue != nil {
		minYear = *minYearValue
	}

	return ciks, years, sections, minYear, nil
}

func addComparison(field string, values []interface{}, ciks *[]int64, years *[]int64, sections *[]string) error {
	switch field {
	case model.FieldCIK:
		for _, v := range values {
			value, ok := toInt64(v)
			if !ok {
				return fmt.Errorf("unsupported cik value %v", v)
			}
			*ciks = append(*ciks, value)
		}
	case model.FieldReportYear:
		for _, v := range values {
			value, ok := toInt64(v)
			if !ok {
				return fmt.Errorf("unsupported report_year value %v", v)
			}
			*years = append(*years, value)
		}
	case model.FieldSection:
		for _, v := range values {
			value, ok := v.(string)
			if !ok {
				return fmt.Errorf("unsupported section value %v", v)
			}
			*sections = append(*sections, value)
		}
	default:
		return fmt.Errorf("unsupported filter field %s", field)
	}
	return nil
}

func toInt64(v interface{}) (int64, bool) {
	switch value := v.(type) {
	case int:
		return int64(value), true
	case int32:
		return int64(value), true
	case int64:
		return value, true
	default:
		return 0, false
	}
}
