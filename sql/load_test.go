package sql

import (
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	db := initDB(t)

	t.Run("Initialize database extensions", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		// Verify pgvector extension is created
		var exists bool
		err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'vector');").Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "pgvector extension should be created")
	})

	t.Run("Initialize database extensions is idempotent", func(t *testing.T) {
		// Running Init multiple times should not error
		err := Init(db.Instance)
		assert.NoError(t, err)

		err = Init(db.Instance)
		assert.NoError(t, err)
	})
}

func TestLoadVectorsSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	// Initialize extensions first
	err := Init(db.Instance)
	require.NoError(t, err)

	t.Run("Load vectors SQL functions", func(t *testing.T) {
		err := LoadVectorsSql(db.Instance, false)
		assert.NoError(t, err)

		// Verify all functions exist
		for _, funcName := range VectorsFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})

	t.Run("Load vectors SQL is idempotent without force", func(t *testing.T) {
		// Loading again without force should be a no-op
		err := LoadVectorsSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load vectors SQL with force reloads", func(t *testing.T) {
		// Loading with force should reload
		err := LoadVectorsSql(db.Instance, true)
		assert.NoError(t, err)

		// Verify functions still exist
		for _, funcName := range VectorsFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist after force reload", funcName)
		}
	})
}

func TestLoadSentencesSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	// Initialize extensions first
	err := Init(db.Instance)
	require.NoError(t, err)

	t.Run("Load sentences SQL functions", func(t *testing.T) {
		err := LoadSentencesSql(db.Instance, false)
		assert.NoError(t, err)

		// Verify all functions exist
		for _, funcName := range SentencesFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})

	t.Run("Load sentences SQL is idempotent without force", func(t *testing.T) {
		err := LoadSentencesSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load sentences SQL with force reloads", func(t *testing.T) {
		err := LoadSentencesSql(db.Instance, true)
		assert.NoError(t, err)
	})
}

func TestLoadCompaniesSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	// Initialize extensions first
	err := Init(db.Instance)
	require.NoError(t, err)

	t.Run("Load companies SQL functions", func(t *testing.T) {
		err := LoadCompaniesSql(db.Instance, false)
		assert.NoError(t, err)

		// Verify all functions exist
		for _, funcName := range CompaniesFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})

	t.Run("Load companies SQL is idempotent without force", func(t *testing.T) {
		err := LoadCompaniesSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load companies SQL with force reloads", func(t *testing.T) {
		err := LoadCompaniesSql(db.Instance, true)
		assert.NoError(t, err)
	})
}

func TestLoadSectionsSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	// Initialize extensions first
	err := Init(db.Instance)
	require.NoError(t, err)

	t.Run("Load sections SQL functions", func(t *testing.T) {
		err := LoadSectionsSql(db.Instance, false)
		assert.NoError(t, err)

		// Verify all functions exist
		for _, funcName := range SectionsFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})

	t.Run("Load sections SQL is idempotent without force", func(t *testing.T) {
		err := LoadSectionsSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load sections SQL with force reloads", func(t *testing.T) {
		err := LoadSectionsSql(db.Instance, true)
		assert.NoError(t, err)
	})
}

func TestLoadAllSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	// Initialize extensions first
	err := Init(db.Instance)
	require.NoError(t, err)

	t.Run("Load all SQL functions", func(t *testing.T) {
		err := LoadAllSql(db.Instance, false)
		assert.NoError(t, err)

		// Verify all vectors functions exist
		for _, funcName := range VectorsFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Vectors function %s should exist", funcName)
		}

		// Verify all sentences functions exist
		for _, funcName := range SentencesFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Sentences function %s should exist", funcName)
		}

		// Verify all companies functions exist
		for _, funcName := range CompaniesFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Companies function %s should exist", funcName)
		}

		// Verify all sections functions exist
		for _, funcName := range SectionsFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Sections function %s should exist", funcName)
		}
	})

	t.Run("Load all SQL is idempotent without force", func(t *testing.T) {
		err := LoadAllSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load all SQL with force reloads", func(t *testing.T) {
		err := LoadAllSql(db.Instance, true)
		assert.NoError(t, err)
	})
}

func TestCheckFunctions(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	// Initialize extensions first
	err := Init(db.Instance)
	require.NoError(t, err)

	t.Run("Check functions returns false when functions don't exist", func(t *testing.T) {
		exists, err := checkFunctions(db.Instance, []string{"nonexistent_function"})
		assert.NoError(t, err)
		assert.False(t, exists, "Should return false for nonexistent function")
	})

	t.Run("Check functions returns true when all functions exist", func(t *testing.T) {
		// Load vectors SQL first
		err := LoadVectorsSql(db.Instance, false)
		require.NoError(t, err)

		exists, err := checkFunctions(db.Instance, VectorsFunctions)
		assert.NoError(t, err)
		assert.True(t, exists, "Should return true when all functions exist")
	})

	t.Run("Check functions returns false when some functions don't exist", func(t *testing.T) {
		// Mix of existing and non-existing functions
		mixedFunctions := append([]string{"init_vectors"}, "nonexistent_function")
		exists, err := checkFunctions(db.Instance, mixedFunctions)
		assert.NoError(t, err)
		assert.False(t, exists, "Should return false when some functions don't exist")
	})

	t.Run("Check functions with empty list", func(t *testing.T) {
		exists, err := checkFunctions(db.Instance, []string{})
		assert.NoError(t, err)
		// With an empty list, the loop doesn't execute and allExist remains false
		// This is actually the correct behavior from the implementation
		assert.False(t, exists, "Should return false for empty function list")
	})
}

func TestFunctionLists(t *testing.T) {
	t.Run("VectorsFunctions list is not empty", func(t *testing.T) {
		assert.NotEmpty(t, VectorsFunctions, "VectorsFunctions should not be empty")
		assert.Greater(t, len(VectorsFunctions), 3, "Should have multiple vector functions")
	})

	t.Run("SentencesFunctions list is not empty", func(t *testing.T) {
		assert.NotEmpty(t, SentencesFunctions, "SentencesFunctions should not be empty")
		assert.Greater(t, len(SentencesFunctions), 3, "Should have multiple sentence functions")
	})

	t.Run("CompaniesFunctions list is not empty", func(t *testing.T) {
		assert.NotEmpty(t, CompaniesFunctions, "CompaniesFunctions should not be empty")
		assert.Greater(t, len(CompaniesFunctions), 3, "Should have multiple company functions")
	})

	t.Run("SectionsFunctions list is not empty", func(t *testing.T) {
		assert.NotEmpty(t, SectionsFunctions, "SectionsFunctions should not be empty")
		assert.Greater(t, len(SectionsFunctions), 3, "Should have multiple section functions")
	})
}

func TestEmbeddedSQL(t *testing.T) {
	t.Run("Init SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, initSQL, "initSQL should be embedded")
		assert.Contains(t, initSQL, "CREATE EXTENSION", "Should contain CREATE EXTENSION")
	})

	t.Run("Vectors SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, vectorsSQL, "vectorsSQL should be embedded")
		assert.Contains(t, vectorsSQL, "CREATE", "Should contain CREATE statements")
	})

	t.Run("Sentences SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, sentencesSQL, "sentencesSQL should be embedded")
		assert.Contains(t, sentencesSQL, "CREATE", "Should contain CREATE statements")
	})

	t.Run("Companies SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, companiesSQL, "companiesSQL should be embedded")
		assert.Contains(t, companiesSQL, "CREATE", "Should contain CREATE statements")
	})

	t.Run("Sections SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, sectionsSQL, "sectionsSQL should be embedded")
		assert.Contains(t, sectionsSQL, "CREATE", "Should contain CREATE statements")
	})
}
