package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/db"
	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/model"
	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/prediction"
	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/router"
	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/storage"
)

const defaultModelDir = "ml_models/models"

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	modelDir := os.Getenv("MODEL_DIR")
	if modelDir == "" {
		modelDir = defaultModelDir
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	// ───────────────────────── ARTIFACTS ─────────────────────────
	if storage.Configured() {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Printf("⚠️  Artifact store init failed: %v", err)
		} else {
			err := r2Client.SyncArtifacts(context.Background(), modelDir, []string{
				model.PriceModelFile,
				model.DemandModelFile,
				model.FeatureColumnsFile,
				model.MetadataFile,
			})
			if err != nil {
				log.Printf("⚠️  Artifact sync failed: %v", err)
			}
		}
	}

	log.Println("Loading ML models...")
	registry := model.LoadRegistry(modelDir)
	if registry.Price == nil || registry.Demand == nil {
		log.Println("⚠️  Not all models loaded. Train them first with: go run ./cmd/trainer")
	}

	// ───────────────────────── SINK ─────────────────────────
	var repo prediction.Repository

	pgDB, err := db.ConnectPostgres()
	if err != nil {
		log.Printf("⚠️  Persistence disabled, using in-memory sink: %v", err)
		repo = prediction.NewInMemoryRepository()
	} else {
		defer pgDB.Close()
		repo = prediction.NewPostgresRepository(pgDB)
	}

	// ───────────────────────── WIRING ─────────────────────────
	service := prediction.NewService(registry, repo, prediction.NewPlaceholderEstimator())
	handler := prediction.NewHandler(service, registry)

	r := router.New(handler)

	// ───────────────────────── START ─────────────────────────
	log.Printf("🚀 API running at http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
