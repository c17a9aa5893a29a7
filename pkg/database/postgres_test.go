package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/wonny/grq-validation/pkg/config"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	// Skip if DATABASE_URL is not set
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	db, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

func TestNew(t *testing.T) {
	db := testDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		t.Errorf("Failed to ping database: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	db := testDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := db.HealthCheck(ctx, "public")
	if err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}

	if !status.Healthy {
		t.Error("Expected database to be healthy")
	}
	if !status.SchemaReady {
		t.Error("Expected public schema to exist")
	}
	if status.Stats.MaxConns <= 0 {
		t.Errorf("Expected MaxConns > 0, got %d", status.Stats.MaxConns)
	}
}

func TestSchemaExists_Missing(t *testing.T) {
	db := testDB(t)

	exists, err := db.SchemaExists(context.Background(), "grq_schema_that_does_not_exist")
	if err != nil {
		t.Fatalf("SchemaExists failed: %v", err)
	}
	if exists {
		t.Error("Expected schema to be missing")
	}
}

func TestNew_InvalidURL(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{URL: "://not a url"}}

	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("Expected error for invalid database URL")
	}
}
