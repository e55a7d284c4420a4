package model

import (
	"log"
	"path/filepath"
)

// Artifact file names inside the model directory.
const (
	PriceModelFile     = "price_model.json"
	DemandModelFile    = "demand_model.json"
	FeatureColumnsFile = "feature_columns.json"
	MetadataFile       = "metadata.json"
)

// LoadRegistry loads whatever artifacts exist under dir. Missing or broken
// artifacts are logged and leave the corresponding capability unavailable;
// the service itself always starts.
func LoadRegistry(dir string) *Registry {
	reg := &Registry{}

	if price, err := LoadEnsemble(filepath.Join(dir, PriceModelFile)); err != nil {
		log.Printf("⚠️  Price model not loaded: %v", err)
	} else {
		reg.Price = price
		log.Println("✅ Price model loaded")
	}

	if demand, err := LoadEnsemble(filepath.Join(dir, DemandModelFile)); err != nil {
		log.Printf("⚠️  Demand model not loaded: %v", err)
	} else {
		reg.Demand = demand
		log.Println("✅ Demand model loaded")
	}

	if cols, err := loadFeatureColumns(filepath.Join(dir, FeatureColumnsFile)); err != nil {
		log.Printf("⚠️  Feature columns not loaded: %v", err)
	} else {
		reg.Schema = cols
		log.Printf("✅ Feature columns loaded: %d features", len(cols))
	}

	if meta, err := loadMetadata(filepath.Join(dir, MetadataFile)); err != nil {
		log.Printf("⚠️  Model metadata not loaded: %v", err)
	} else {
		reg.Metadata = meta
		log.Println("✅ Model metadata loaded")
	}

	return reg
}
