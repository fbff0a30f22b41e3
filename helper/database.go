package helper

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// DatabaseConfiguration holds connection settings for Postgres.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
}

// NewDatabaseConfiguration reads the database configuration from the
// environment. A .env file is loaded first if present.
// Required variables: FINRAG_DB_HOST, FINRAG_DB_PORT, FINRAG_DB_DATABASE,
// FINRAG_DB_USERNAME, FINRAG_DB_PASSWORD.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	// Ignore a missing .env, env vars may come from the environment itself.
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv("FINRAG_DB_HOST"),
		Port:     os.Getenv("FINRAG_DB_PORT"),
		Database: os.Getenv("FINRAG_DB_DATABASE"),
		Username: os.Getenv("FINRAG_DB_USERNAME"),
		Password: os.Getenv("FINRAG_DB_PASSWORD"),
	}

	for key, value := range map[string]string{
		"FINRAG_DB_HOST":     config.Host,
		"FINRAG_DB_PORT":     config.Port,
		"FINRAG_DB_DATABASE": config.Database,
		"FINRAG_DB_USERNAME": config.Username,
		"FINRAG_DB_PASSWORD": config.Password,
	} {
		if value == "" {
			return nil, NewError("read database configuration", fmt.Errorf("missing environment variable %s", key))
		}
	}

	return config, nil
}

// ConnectionString returns the lib/pq connection string for the configuration.
func (c *DatabaseConfiguration) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		c.Host, c.Port, c.Database, c.Username, c.Password,
	)
}

// Database wraps a sql.DB instance with a name and logger.
type Database struct {
	Name     string
	Instance *sql.DB
	Logger   *slog.Logger
}

// NewDatabase opens a connection to Postgres and verifies it with a ping.
// It panics on connection failure, matching the fail-fast startup contract.
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	db, err := sql.Open("postgres", config.ConnectionString())
	if err != nil {
		log.Panicf("error opening database connection: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Panicf("error pinging database: %v", err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("host", config.Host))

	return &Database{
		Name:     name,
		Instance: db,
		Logger:   logger,
	}
}

// Close closes the underlying connection pool.
func (d *Database) Close() error {
	return d.Instance.Close()
}

// NewTestDatabase opens a connection for tests with a quiet default logger.
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return NewDatabase("test", config, logger)
}
