package model

import (
	"encoding/json"
	"os"
)

// ModelInfo describes one trained model: version, training metrics and the
// top feature importances captured at training time.
type ModelInfo struct {
	Version           string             `json:"version"`
	ModelType         string             `json:"model_type"`
	TrainedAt         string             `json:"trained_at"`
	Metrics           map[string]float64 `json:"metrics"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
}

// ModelMetadata is the metadata.json artifact written by the trainer.
// Read-only after load.
type ModelMetadata struct {
	PriceModel     *ModelInfo `json:"price_model"`
	DemandModel    *ModelInfo `json:"demand_model"`
	FeatureColumns []string   `json:"feature_columns"`
}

func loadMetadata(path string) (*ModelMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var meta ModelMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func loadFeatureColumns(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cols []string
	if err := json.Unmarshal(data, &cols); err != nil {
		return nil, err
	}

	return cols, nil
}
