package prediction

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/features"
	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/model"
)

type Handler struct {
	service  *Service
	registry *model.Registry
}

func NewHandler(service *Service, registry *model.Registry) *Handler {
	return &Handler{
		service:  service,
		registry: registry,
	}
}

// --------------------------------------------------
// POST /predict/price
// --------------------------------------------------
func (h *Handler) PredictPrice(c *gin.Context) {
	var raw features.RawListingAttributes
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.PredictPrice(c.Request.Context(), raw)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// POST /predict/demand
// --------------------------------------------------
func (h *Handler) PredictDemand(c *gin.Context) {
	var raw features.RawListingAttributes
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.PredictDemand(c.Request.Context(), raw)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// GET /predictions
// --------------------------------------------------
func (h *Handler) ListPredictions(c *gin.Context) {
	limit := DefaultListLimit
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	records, err := h.service.RecentPredictions(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch predictions"})
		return
	}
	if records == nil {
		records = []*Record{}
	}

	c.JSON(http.StatusOK, gin.H{"predictions": records})
}

// --------------------------------------------------
// GET /models/metadata
// --------------------------------------------------
func (h *Handler) Metadata(c *gin.Context) {
	if h.registry.Metadata == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metadata not available"})
		return
	}

	c.JSON(http.StatusOK, h.registry.Metadata)
}

// --------------------------------------------------
// GET /health
// --------------------------------------------------
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"models_loaded": gin.H{
			"price_model":     h.registry.Price != nil,
			"demand_model":    h.registry.Demand != nil,
			"feature_columns": len(h.registry.Schema) > 0,
		},
	})
}

func statusFor(err error) int {
	if errors.Is(err, ErrModelUnavailable) || errors.Is(err, features.ErrSchemaUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
