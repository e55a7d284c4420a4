package db

import (
	"os"
	"testing"
)

func TestConnectPostgres(t *testing.T) {
	originalDSN := os.Getenv("DATABASE_URL")
	defer func() {
		if originalDSN != "" {
			os.Setenv("DATABASE_URL", originalDSN)
		} else {
			os.Unsetenv("DATABASE_URL")
		}
	}()

	t.Run("missing DATABASE_URL returns error", func(t *testing.T) {
		os.Unsetenv("DATABASE_URL")

		pool, err := ConnectPostgres()
		if err == nil {
			pool.Close()
			t.Fatal("expected error when DATABASE_URL is not set")
		}
	})

	t.Run("valid DATABASE_URL should connect", func(t *testing.T) {
		if os.Getenv("DATABASE_URL") == "" {
			t.Skip("DATABASE_URL not set, skipping integration test")
		}

		pool, err := ConnectPostgres()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pool.Close()
	})
}
