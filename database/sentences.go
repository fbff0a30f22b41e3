package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/finraglabs/finrag/helper"
	"github.com/finraglabs/finrag/model"
	loadSql "github.com/finraglabs/finrag/sql"
)

// SentencesDBHandlerFunctions defines the interface for sentence database operations.
type SentencesDBHandlerFunctions interface {
	InsertSentence(sentence *model.SentenceRecord) error
	SelectSentence(sentenceID string) (*model.SentenceRecord, error)
	SelectSentencesByWindow(ctx context.Context, cikInt int, reportYear int, sectionName string, fromPos int, toPos int) ([]*model.SentenceRecord, error)
	SelectSectionSentenceCount(cikInt int, reportYear int, sectionName string) (int, error)
	DeleteSentencesByDoc(docID string) (int, error)
}

// SentencesDBHandler handles sentence-related database operations
type SentencesDBHandler struct {
	db *helper.Database
}

// NewSentencesDBHandler creates a new sentences database handler.
// It loads sentence-related SQL functions and creates the sentences table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewSentencesDBHandler(db *helper.Database, force bool) (*SentencesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	sentencesDbHandler := &SentencesDBHandler{
		db: db,
	}

	err := loadSql.LoadSentencesSql(sentencesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load sentences sql", err)
	}

	err = sentencesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized SentencesDBHandler")

	return sentencesDbHandler, nil
}

// CreateTable creates the 'sentences' table in the database.
// If the table already exists, it does not create it again.
func (h *SentencesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_sentences();`)
	if err != nil {
		log.Panicf("error initializing sentences table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table sentences")

	return nil
}

// InsertSentence inserts a sentence, updating on conflict with an
// existing sentence_id.
func (h *SentencesDBHandler) InsertSentence(sentence *model.SentenceRecord) error {
	var id int64
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_sentence($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sentence.SentenceID,
		sentence.SentencePos,
		sentence.CIKInt,
		sentence.ReportYear,
		sentence.SectionName,
		sentence.DocID,
		sentence.CompanyName,
		sentence.Text,
		sentence.SectionSentenceCount,
	)

	err := row.Scan(&id)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectSentence returns a single sentence by its business key.
func (h *SentencesDBHandler) SelectSentence(sentenceID string) (*model.SentenceRecord, error) {
	sentence := &model.SentenceRecord{}
	var surrogate int64
	row := h.db.Instance.QueryRow(`SELECT * FROM select_sentence($1)`, sentenceID)

	err := row.Scan(
		&surrogate,
		&sentence.SentenceID,
		&sentence.SentencePos,
		&sentence.CIKInt,
		&sentence.ReportYear,
		&sentence.SectionName,
		&sentence.DocID,
		&sentence.CompanyName,
		&sentence.Text,
		&sentence.SectionSentenceCount,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return sentence, nil
}

// SelectSentencesByWindow returns all sentences of one (company, year,
// section) whose position falls in the inclusive range, ordered by position.
func (h *SentencesDBHandler) SelectSentencesByWindow(ctx context.Context, cikInt int, reportYear int, sectionName string, fromPos int, toPos int) ([]*model.SentenceRecord, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_sentences_by_window($1, $2, $3, $4, $5)`,
		cikInt,
		reportYear,
		sectionName,
		fromPos,
		toPos,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var sentences []*model.SentenceRecord
	for rows.Next() {
		sentence := &model.SentenceRecord{}
		var surrogate int64
		err := rows.Scan(
			&surrogate,
			&sentence.SentenceID,
			&sentence.SentencePos,
			&sentence.CIKInt,
			&sentence.ReportYear,
			&sentence.SectionName,
			&sentence.DocID,
			&sentence.CompanyName,
			&sentence.Text,
			&sentence.SectionSentenceCount,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		sentences = append(sentences, sentence)
	}
	if err := rows.Err(); err != nil {
		return nil, helper.NewError("rows", err)
	}

	return sentences, nil
}

// SelectSectionSentenceCount returns the number of stored sentences of one
// (company, year, section).
func (h *SentencesDBHandler) SelectSectionSentenceCount(cikInt int, reportYear int, sectionName string) (int, error) {
	var count int
	err := h.db.Instance.QueryRow(
		`SELECT * FROM select_section_sentence_count($1, $2, $3)`,
		cikInt,
		reportYear,
		sectionName,
	).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}
	return count, nil
}

// DeleteSentencesByDoc removes all sentences of one filing document.
func (h *SentencesDBHandler) DeleteSentencesByDoc(docID string) (int, error) {
	var deleted int
	err := h.db.Instance.QueryRow(`SELECT * FROM delete_sentences_by_doc($1)`, docID).Scan(&deleted)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}
	return deleted, nil
}
