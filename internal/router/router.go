package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/prediction"
)

// New builds the API engine with all routes registered.
func New(handler *prediction.Handler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	// ───────────────────────── PREDICTION ─────────────────────────
	predict := r.Group("/predict")
	{
		predict.POST("/price", handler.PredictPrice)
		predict.POST("/demand", handler.PredictDemand)
	}

	r.GET("/predictions", handler.ListPredictions)

	// ───────────────────────── MODELS ─────────────────────────
	r.GET("/models/metadata", handler.Metadata)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", handler.Health)

	return r
}
