package prediction

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/features"
	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/model"
)

// ErrModelUnavailable means the model required for the requested prediction
// was not loaded at startup. Surfaced to the caller as service-unavailable,
// never fatal to the process.
var ErrModelUnavailable = errors.New("model not loaded")

// MinPrice floors regression output: a listing price below this is not a
// meaningful prediction.
const MinPrice = 10

// Each sink attempt gets its own deadline so a stalled backend cannot hold
// the response hostage.
const sinkTimeout = 3 * time.Second

// DefaultListLimit caps GET /predictions when no limit is given.
const DefaultListLimit = 50

type Service struct {
	registry   *model.Registry
	repo       Repository
	confidence ConfidenceEstimator
}

func NewService(registry *model.Registry, repo Repository, confidence ConfidenceEstimator) *Service {
	return &Service{
		registry:   registry,
		repo:       repo,
		confidence: confidence,
	}
}

// --------------------------------------------------
// Price prediction (regression)
// --------------------------------------------------
func (s *Service) PredictPrice(ctx context.Context, raw features.RawListingAttributes) (*PriceResult, error) {
	if s.registry.Price == nil {
		return nil, ErrModelUnavailable
	}

	fs := features.Engineer(raw)
	vector, err := features.Align(fs, s.registry.Schema)
	if err != nil {
		return nil, err
	}

	price, err := s.registry.Price.Predict(vector)
	if err != nil {
		return nil, err
	}
	if price < MinPrice {
		price = MinPrice
	}

	confidence := s.confidence.Estimate(vector, price)

	record := &Record{
		PredictionType:  KindPrice,
		PredictedValue:  &price,
		ConfidenceScore: confidence,
		ModelVersion:    s.registry.PriceVersion(),
		InputFeatures:   fs,
	}
	id := s.persist(ctx, record)

	return &PriceResult{
		PredictionID:   id,
		PredictedPrice: price,
		Confidence:     confidence,
		ModelVersion:   s.registry.PriceModelVersion(),
	}, nil
}

// --------------------------------------------------
// Demand prediction (binary classification)
// --------------------------------------------------
func (s *Service) PredictDemand(ctx context.Context, raw features.RawListingAttributes) (*DemandResult, error) {
	if s.registry.Demand == nil {
		return nil, ErrModelUnavailable
	}

	fs := features.Engineer(raw)
	vector, err := features.Align(fs, s.registry.Schema)
	if err != nil {
		return nil, err
	}

	probability, err := s.registry.Demand.Predict(vector)
	if err != nil {
		return nil, err
	}
	if probability < 0 {
		probability = 0
	}
	if probability > 1 {
		probability = 1
	}

	// Exactly 0.5 is low-demand.
	class := LabelLowDemand
	if probability > 0.5 {
		class = LabelHighDemand
	}

	record := &Record{
		PredictionType:  KindDemand,
		PredictedClass:  class,
		ConfidenceScore: probability,
		ModelVersion:    s.registry.DemandVersion(),
		InputFeatures:   fs,
	}
	id := s.persist(ctx, record)

	return &DemandResult{
		PredictionID:   id,
		PredictedClass: class,
		Probability:    probability,
		ModelVersion:   s.registry.DemandModelVersion(),
	}, nil
}

// --------------------------------------------------
// Recent predictions
// --------------------------------------------------
func (s *Service) RecentPredictions(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if s.repo == nil {
		return []*Record{}, nil
	}
	return s.repo.ListRecent(ctx, limit)
}

// persist writes the record best-effort: a single bounded attempt whose
// failure is logged and reported as a nil id, never as a request failure.
func (s *Service) persist(ctx context.Context, record *Record) *string {
	if s.repo == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, sinkTimeout)
	defer cancel()

	id, err := s.repo.Insert(ctx, record)
	if err != nil {
		log.Printf("⚠️  Prediction insert failed: %v", err)
		return nil
	}

	return &id
}
