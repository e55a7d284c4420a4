package prediction

import "math/rand"

// ConfidenceEstimator produces the confidence score attached to a price
// prediction.
type ConfidenceEstimator interface {
	Estimate(vector []float64, prediction float64) float64
}

// PlaceholderEstimator draws a uniform score from [Low, High). The price
// model's real predictive uncertainty is not computed anywhere; this keeps
// the historical placeholder behaviour behind an interface so a proper
// estimator can replace it without touching the service.
type PlaceholderEstimator struct {
	Low  float64
	High float64
}

func NewPlaceholderEstimator() PlaceholderEstimator {
	return PlaceholderEstimator{Low: 0.75, High: 0.95}
}

func (e PlaceholderEstimator) Estimate(vector []float64, prediction float64) float64 {
	return e.Low + rand.Float64()*(e.High-e.Low)
}

// FixedEstimator always returns the same score. Test helper.
type FixedEstimator float64

func (e FixedEstimator) Estimate(vector []float64, prediction float64) float64 {
	return float64(e)
}
