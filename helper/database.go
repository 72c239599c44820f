package helper

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DatabaseConfiguration holds postgres connection settings read from the
// environment. A .env file in the working directory is loaded if present.
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
}

// NewDatabaseConfiguration reads connection settings from the environment
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	_ = godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Database: os.Getenv("DB_DATABASE"),
		Username: os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
		Schema:   os.Getenv("DB_SCHEMA"),
	}

	if config.Host == "" || config.Port == "" || config.Database == "" || config.Username == "" {
		return nil, fmt.Errorf("incomplete database configuration, need DB_HOST, DB_PORT, DB_DATABASE and DB_USERNAME")
	}
	if config.Schema == "" {
		config.Schema = "public"
	}

	return config, nil
}

// Database wraps a sql.DB instance together with the service logger
type Database struct {
	Instance *sql.DB
	Logger   *slog.Logger
}

// NewDatabase opens a postgres connection for the given service name.
// It panics if the database is unreachable, matching startup semantics.
func NewDatabase(service string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	connStr := fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s search_path=%s sslmode=disable",
		config.Host, config.Port, config.Database, config.Username, config.Password, config.Schema,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logger.Error("Failed to open database", slog.String("service", service), slog.Any("error", err))
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("Failed to ping database", slog.String("service", service), slog.Any("error", err))
		panic(err)
	}

	logger.Info("Connected to database", slog.String("service", service), slog.String("database", config.Database))

	return &Database{
		Instance: db,
		Logger:   logger,
	}
}

// NewTestDatabase opens a database connection with a quiet logger for tests
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewDatabase("test", config, logger)
}

// SetTestDatabaseConfigEnvs sets environment variables pointing at the
// test container database for the duration of the test
func SetTestDatabaseConfigEnvs(t *testing.T, port string) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", port)
	t.Setenv("DB_DATABASE", "lessonforge_test")
	t.Setenv("DB_USERNAME", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_SCHEMA", "public")
}

// MustStartPostgresContainer starts a pgvector-enabled postgres container
// for integration tests and returns a teardown func and the mapped port
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	container, err := pgcontainer.Run(
		ctx,
		"pgvector/pgvector:pg17",
		pgcontainer.WithDatabase("lessonforge_test"),
		pgcontainer.WithUsername("postgres"),
		pgcontainer.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", err
	}

	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return container.Terminate, "", err
	}

	return container.Terminate, mappedPort.Port(), nil
}
