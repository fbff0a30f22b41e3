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

// CompaniesDBHandlerFunctions defines the interface for company database operations.
type CompaniesDBHandlerFunctions interface {
	InsertCompany(company *model.CompanyInfo) error
	SelectCompanyByCIK(cikInt int) (*model.CompanyInfo, error)
	SelectAllCompanies(ctx context.Context) ([]*model.CompanyInfo, error)
	CountCompanies() (int64, error)
}

// CompaniesDBHandler handles company-related database operations
type CompaniesDBHandler struct {
	db *helper.Database
}

// NewCompaniesDBHandler creates a new companies database handler.
// It loads company-related SQL functions and creates the companies table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewCompaniesDBHandler(db *helper.Database, force bool) (*CompaniesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	companiesDbHandler := &CompaniesDBHandler{
		db: db,
	}

	err := loadSql.LoadCompaniesSql(companiesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load companies sql", err)
	}

	err = companiesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized CompaniesDBHandler")

	return companiesDbHandler, nil
}

// CreateTable creates the 'companies' table in the database.
// If the table already exists, it does not create it again.
func (h *CompaniesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_companies();`)
	if err != nil {
		log.Panicf("error initializing companies table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table companies")

	return nil
}

// InsertCompany inserts a company, updating on conflict with an existing
// company_id.
func (h *CompaniesDBHandler) InsertCompany(company *model.CompanyInfo) error {
	var id int64
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_company($1, $2, $3, $4, $5)`,
		company.CompanyID,
		company.CIKInt,
		company.CIKStr,
		company.Ticker,
		company.Name,
	)

	err := row.Scan(&id)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectCompanyByCIK returns a single company by its integer CIK.
func (h *CompaniesDBHandler) SelectCompanyByCIK(cikInt int) (*model.CompanyInfo, error) {
	company := &model.CompanyInfo{}
	row := h.db.Instance.QueryRow(`SELECT * FROM select_company_by_cik($1)`, cikInt)

	err := row.Scan(
		&company.CompanyID,
		&company.CIKInt,
		&company.CIKStr,
		&company.Ticker,
		&company.Name,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return company, nil
}

// SelectAllCompanies returns the full company universe ordered by CIK.
func (h *CompaniesDBHandler) SelectAllCompanies(ctx context.Context) ([]*model.CompanyInfo, error) {
	rows, err := h.db.Instance.QueryContext(ctx, `SELECT * FROM select_all_companies()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var companies []*model.CompanyInfo
	for rows.Next() {
		company := &model.CompanyInfo{}
		err := rows.Scan(
			&company.CompanyID,
			&company.CIKInt,
			&company.CIKStr,
			&company.Ticker,
			&company.Name,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, helper.NewError("rows", err)
	}

	return companies, nil
}

// CountCompanies returns the number of companies in the universe.
func (h *CompaniesDBHandler) CountCompanies() (int64, error) {
	var count int64
	err := h.db.Instance.QueryRow(`SELECT * FROM count_companies()`).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}
	return count, nil
}
