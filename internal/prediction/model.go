package prediction

import (
	"time"

	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/features"
)

// Prediction kinds.
const (
	KindPrice  = "price"
	KindDemand = "demand"
)

// Demand class labels.
const (
	LabelHighDemand = "high-demand"
	LabelLowDemand  = "low-demand"
)

// Record is one persisted prediction. Written once, never mutated; ID is
// assigned by the sink and stays empty when persistence failed.
type Record struct {
	ID              string              `json:"id"`
	PredictionType  string              `json:"prediction_type"`
	PredictedValue  *float64            `json:"predicted_value,omitempty"`
	PredictedClass  string              `json:"predicted_class,omitempty"`
	ConfidenceScore float64             `json:"confidence_score"`
	ModelVersion    string              `json:"model_version"`
	InputFeatures   features.FeatureSet `json:"input_features"`
	CreatedAt       time.Time           `json:"created_at"`
}

// PriceResult is the response shape of POST /predict/price. PredictionID
// is null when the sink was unavailable.
type PriceResult struct {
	PredictionID   *string `json:"prediction_id"`
	PredictedPrice float64 `json:"predicted_price"`
	Confidence     float64 `json:"confidence"`
	ModelVersion   string  `json:"model_version"`
}

// DemandResult is the response shape of POST /predict/demand.
type DemandResult struct {
	PredictionID   *string `json:"prediction_id"`
	PredictedClass string  `json:"predicted_class"`
	Probability    float64 `json:"probability"`
	ModelVersion   string  `json:"model_version"`
}
