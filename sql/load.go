package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed vectors.sql
var vectorsSQL string

//go:embed sentences.sql
var sentencesSQL string

//go:embed companies.sql
var companiesSQL string

//go:embed sections.sql
var sectionsSQL string

// Function lists for verification
var VectorsFunctions = []string{
	"init_vectors",
	"insert_vector",
	"select_hits_by_similarity",
	"count_vectors",
	"delete_vectors_by_embedding",
}

var SentencesFunctions = []string{
	"init_sentences",
	"insert_sentence",
	"select_sentence",
	"select_sentences_by_window",
	"select_section_sentence_count",
	"delete_sentences_by_doc",
}

var CompaniesFunctions = []string{
	"init_companies",
	"insert_company",
	"select_company_by_cik",
	"select_all_companies",
	"count_companies",
}

var SectionsFunctions = []string{
	"init_sections",
	"insert_section",
	"select_section_by_canonical",
	"select_all_sections",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadVectorsSql loads vector-related SQL functions
func LoadVectorsSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, VectorsFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing vectors functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(vectorsSQL)
	if err != nil {
		return fmt.Errorf("error executing vectors SQL: %w", err)
	}

	exist, err := checkFunctions(db, VectorsFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL vectors functions loaded successfully")
	return nil
}

// LoadSentencesSql loads sentence-related SQL functions
func LoadSentencesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, SentencesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing sentences functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(sentencesSQL)
	if err != nil {
		return fmt.Errorf("error executing sentences SQL: %w", err)
	}

	exist, err := checkFunctions(db, SentencesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL sentences functions loaded successfully")
	return nil
}

// LoadCompaniesSql loads company-related SQL functions
func LoadCompaniesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, CompaniesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing companies functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(companiesSQL)
	if err != nil {
		return fmt.Errorf("error executing companies SQL: %w", err)
	}

	exist, err := checkFunctions(db, CompaniesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL companies functions loaded successfully")
	return nil
}

// LoadSectionsSql loads section-related SQL functions
func LoadSectionsSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, SectionsFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing sections functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(sectionsSQL)
	if err != nil {
		return fmt.Errorf("error executing sections SQL: %w", err)
	}

	exist, err := checkFunctions(db, SectionsFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL sections functions loaded successfully")
	return nil
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadVectorsSql(db, force); err != nil {
		return err
	}

	if err := LoadSentencesSql(db, force); err != nil {
		return err
	}

	if err := LoadCompaniesSql(db, force); err != nil {
		return err
	}

	if err := LoadSectionsSql(db, force); err != nil {
		return err
	}

	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
