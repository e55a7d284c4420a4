package model

import "fmt"

// Fallbacks when metadata.json is absent.
const (
	DefaultVersion        = "1.0"
	DefaultPriceModelType = "RandomForestRegressor"
	DefaultDemandModel    = "GradientBoostedClassifier"
)

// Registry holds everything loaded from the training artifacts: the two
// predictors, the ordered feature schema and the metadata document.
// Assembled once at startup and shared read-only across requests; any field
// may be nil/empty when its artifact was missing.
type Registry struct {
	Price    Predictor
	Demand   Predictor
	Schema   []string
	Metadata *ModelMetadata
}

// PriceModelVersion returns the tagged version string for price
// predictions, e.g. "RandomForestRegressor-v1.0".
func (r *Registry) PriceModelVersion() string {
	modelType, version := DefaultPriceModelType, DefaultVersion
	if r.Metadata != nil && r.Metadata.PriceModel != nil {
		if r.Metadata.PriceModel.ModelType != "" {
			modelType = r.Metadata.PriceModel.ModelType
		}
		if r.Metadata.PriceModel.Version != "" {
			version = r.Metadata.PriceModel.Version
		}
	}
	return fmt.Sprintf("%s-v%s", modelType, version)
}

// DemandModelVersion returns the tagged version string for demand
// predictions.
func (r *Registry) DemandModelVersion() string {
	modelType, version := DefaultDemandModel, DefaultVersion
	if r.Metadata != nil && r.Metadata.DemandModel != nil {
		if r.Metadata.DemandModel.ModelType != "" {
			modelType = r.Metadata.DemandModel.ModelType
		}
		if r.Metadata.DemandModel.Version != "" {
			version = r.Metadata.DemandModel.Version
		}
	}
	return fmt.Sprintf("%s-v%s", modelType, version)
}

// PriceVersion returns the bare metadata version for the price model.
func (r *Registry) PriceVersion() string {
	if r.Metadata != nil && r.Metadata.PriceModel != nil && r.Metadata.PriceModel.Version != "" {
		return r.Metadata.PriceModel.Version
	}
	return DefaultVersion
}

// DemandVersion returns the bare metadata version for the demand model.
func (r *Registry) DemandVersion() string {
	if r.Metadata != nil && r.Metadata.DemandModel != nil && r.Metadata.DemandModel.Version != "" {
		return r.Metadata.DemandModel.Version
	}
	return DefaultVersion
}
