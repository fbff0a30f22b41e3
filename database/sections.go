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

// SectionsDBHandlerFunctions defines the interface for section database operations.
type SectionsDBHandlerFunctions interface {
	InsertSection(section *model.SectionInfo) error
	SelectSectionByCanonical(secItemCanonical string) (*model.SectionInfo, error)
	SelectAllSections(ctx context.Context) ([]*model.SectionInfo, error)
}

// SectionsDBHandler handles section-related database operations
type SectionsDBHandler struct {
	db *helper.Database
}

// NewSectionsDBHandler creates a new sections database handler.
// It loads section-related SQL functions and creates the sections table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewSectionsDBHandler(db *helper.Database, force bool) (*SectionsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	sectionsDbHandler := &SectionsDBHandler{
		db: db,
	}

	err := loadSql.LoadSectionsSql(sectionsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load sections sql", err)
	}

	err = sectionsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized SectionsDBHandler")

	return sectionsDbHandler, nil
}

// CreateTable creates the 'sections' table in the database.
// If the table already exists, it does not create it again.
func (h *SectionsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_sections();`)
	if err != nil {
		log.Panicf("error initializing sections table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table sections")

	return nil
}

// InsertSection inserts a section, updating on conflict with an existing
// section_id.
func (h *SectionsDBHandler) InsertSection(section *model.SectionInfo) error {
	var id int64
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_section($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		section.SectionID,
		section.SecItemCanonical,
		section.SectionCode,
		section.SectionName,
		section.SectionDescription,
		section.SectionCategory,
		section.PartNumber,
		section.Priority,
		section.HasSubItems,
	)

	err := row.Scan(&id)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectSectionByCanonical returns a single section by its canonical item name.
func (h *SectionsDBHandler) SelectSectionByCanonical(secItemCanonical string) (*model.SectionInfo, error) {
	section := &model.SectionInfo{}
	row := h.db.Instance.QueryRow(`SELECT * FROM select_section_by_canonical($1)`, secItemCanonical)

	err := row.Scan(
		&section.SectionID,
		&section.SecItemCanonical,
		&section.SectionCode,
		&section.SectionName,
		&section.SectionDescription,
		&section.SectionCategory,
		&section.PartNumber,
		&section.Priority,
		&section.HasSubItems,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return section, nil
}

// SelectAllSections returns the full section universe.
func (h *SectionsDBHandler) SelectAllSections(ctx context.Context) ([]*model.SectionInfo, error) {
	rows, err := h.db.Instance.QueryContext(ctx, `SELECT * FROM select_all_sections()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var sections []*model.SectionInfo
	for rows.Next() {
		section := &model.SectionInfo{}
		err := rows.Scan(
			&section.SectionID,
			&section.SecItemCanonical,
			&section.SectionCode,
			&section.SectionName,
			&section.SectionDescription,
			&section.SectionCategory,
			&section.PartNumber,
			&section.Priority,
			&section.HasSubItems,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, helper.NewError("rows", err)
	}

	return sections, nil
}
