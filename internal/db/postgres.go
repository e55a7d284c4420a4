package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens the pool behind DATABASE_URL and makes sure the
// predictions table exists. Errors come back to the caller: the API runs
// without persistence when the database is unreachable.
func ConnectPostgres() (*pgxpool.Pool, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return pool, nil
}

// initSchema creates the predictions table.
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	predictionsSQL := `
		CREATE TABLE IF NOT EXISTS predictions (
			id UUID PRIMARY KEY,
			prediction_type VARCHAR(20) NOT NULL,
			predicted_value DOUBLE PRECISION NULL,
			predicted_class VARCHAR(50) NULL,
			confidence_score DOUBLE PRECISION NOT NULL,
			model_version VARCHAR(100) NOT NULL,
			input_features JSONB NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, predictionsSQL); err != nil {
		return err
	}

	indexSQL := `
		CREATE INDEX IF NOT EXISTS idx_predictions_created_at
		ON predictions (created_at DESC)
	`
	if _, err := pool.Exec(ctx, indexSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
