package prediction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/features"
	"github.com/bhargav3138/NYC-AirBnb-Prediction/internal/model"
)

// stubPredictor always returns the same score.
type stubPredictor struct {
	value float64
	err   error
}

func (s stubPredictor) Predict(x []float64) (float64, error) {
	return s.value, s.err
}

// failingRepository rejects every insert.
type failingRepository struct{}

func (failingRepository) Insert(ctx context.Context, record *Record) (string, error) {
	return "", errors.New("connection refused")
}

func (failingRepository) ListRecent(ctx context.Context, limit int) ([]*Record, error) {
	return nil, errors.New("connection refused")
}

// stalledRepository hangs on Insert until the context gives up.
type stalledRepository struct {
	sawDeadline bool
}

func (r *stalledRepository) Insert(ctx context.Context, record *Record) (string, error) {
	_, r.sawDeadline = ctx.Deadline()
	<-ctx.Done()
	return "", ctx.Err()
}

func (r *stalledRepository) ListRecent(ctx context.Context, limit int) ([]*Record, error) {
	return nil, nil
}

func testRegistry(price, demand model.Predictor) *model.Registry {
	return &model.Registry{
		Price:  price,
		Demand: demand,
		Schema: features.Columns(),
	}
}

func TestPredictPriceFloorsAtMinimum(t *testing.T) {
	svc := NewService(testRegistry(stubPredictor{value: -42}, nil), NewInMemoryRepository(), FixedEstimator(0.9))

	result, err := svc.PredictPrice(context.Background(), features.RawListingAttributes{})
	require.NoError(t, err)
	assert.Equal(t, float64(MinPrice), result.PredictedPrice)
}

func TestPredictPricePersistsRecord(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(testRegistry(stubPredictor{value: 185.5}, nil), repo, FixedEstimator(0.9))

	result, err := svc.PredictPrice(context.Background(), features.RawListingAttributes{})
	require.NoError(t, err)

	require.NotNil(t, result.PredictionID)
	assert.Equal(t, 185.5, result.PredictedPrice)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Equal(t, "RandomForestRegressor-v1.0", result.ModelVersion)

	records, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, *result.PredictionID, rec.ID)
	assert.Equal(t, KindPrice, rec.PredictionType)
	require.NotNil(t, rec.PredictedValue)
	assert.Equal(t, 185.5, *rec.PredictedValue)
	assert.Equal(t, "1.0", rec.ModelVersion)

	// Full engineered feature set travels with the record for audit.
	assert.Equal(t, features.Engineer(features.RawListingAttributes{}), rec.InputFeatures)
}

func TestPredictDemandThreshold(t *testing.T) {
	cases := []struct {
		score float64
		class string
	}{
		{0.51, LabelHighDemand},
		{0.50, LabelLowDemand},
		{0.49, LabelLowDemand},
	}

	for _, tc := range cases {
		svc := NewService(testRegistry(nil, stubPredictor{value: tc.score}), NewInMemoryRepository(), FixedEstimator(0.9))

		result, err := svc.PredictDemand(context.Background(), features.RawListingAttributes{})
		require.NoError(t, err)
		assert.Equal(t, tc.class, result.PredictedClass, "score %v", tc.score)
		assert.Equal(t, tc.score, result.Probability)
	}
}

func TestPredictDemandClampsProbability(t *testing.T) {
	svc := NewService(testRegistry(nil, stubPredictor{value: 1.7}), NewInMemoryRepository(), FixedEstimator(0.9))
	result, err := svc.PredictDemand(context.Background(), features.RawListingAttributes{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Probability)
	assert.Equal(t, LabelHighDemand, result.PredictedClass)

	svc = NewService(testRegistry(nil, stubPredictor{value: -0.3}), NewInMemoryRepository(), FixedEstimator(0.9))
	result, err = svc.PredictDemand(context.Background(), features.RawListingAttributes{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Probability)
	assert.Equal(t, LabelLowDemand, result.PredictedClass)
}

func TestPersistenceFailureDoesNotFailPrediction(t *testing.T) {
	svc := NewService(testRegistry(stubPredictor{value: 120}, nil), failingRepository{}, FixedEstimator(0.9))

	result, err := svc.PredictPrice(context.Background(), features.RawListingAttributes{})
	require.NoError(t, err)
	assert.Nil(t, result.PredictionID)
	assert.Equal(t, 120.0, result.PredictedPrice)
}

func TestStalledInsertDoesNotStallPrediction(t *testing.T) {
	repo := &stalledRepository{}
	svc := NewService(testRegistry(stubPredictor{value: 120}, nil), repo, FixedEstimator(0.9))

	start := time.Now()
	result, err := svc.PredictPrice(context.Background(), features.RawListingAttributes{})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Nil(t, result.PredictionID)
	assert.Equal(t, 120.0, result.PredictedPrice)

	// Insert ran under a deadline and the request came back once it fired.
	assert.True(t, repo.sawDeadline)
	assert.GreaterOrEqual(t, elapsed, sinkTimeout)
	assert.Less(t, elapsed, sinkTimeout+2*time.Second)
}

func TestMissingModelIsIsolatedPerKind(t *testing.T) {
	// Demand model loaded, price model absent.
	svc := NewService(testRegistry(nil, stubPredictor{value: 0.8}), NewInMemoryRepository(), FixedEstimator(0.9))

	_, err := svc.PredictPrice(context.Background(), features.RawListingAttributes{})
	assert.ErrorIs(t, err, ErrModelUnavailable)

	result, err := svc.PredictDemand(context.Background(), features.RawListingAttributes{})
	require.NoError(t, err)
	assert.Equal(t, LabelHighDemand, result.PredictedClass)
}

func TestMissingSchemaSurfacesHardError(t *testing.T) {
	registry := &model.Registry{Price: stubPredictor{value: 100}}
	svc := NewService(registry, NewInMemoryRepository(), FixedEstimator(0.9))

	_, err := svc.PredictPrice(context.Background(), features.RawListingAttributes{})
	assert.ErrorIs(t, err, features.ErrSchemaUnavailable)
}

func TestRecentPredictionsNewestFirst(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(testRegistry(stubPredictor{value: 100}, stubPredictor{value: 0.7}), repo, FixedEstimator(0.9))

	_, err := svc.PredictPrice(context.Background(), features.RawListingAttributes{})
	require.NoError(t, err)
	_, err = svc.PredictDemand(context.Background(), features.RawListingAttributes{})
	require.NoError(t, err)

	records, err := svc.RecentPredictions(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, KindDemand, records[0].PredictionType)
	assert.Equal(t, KindPrice, records[1].PredictionType)
}

func TestPlaceholderEstimatorStaysInRange(t *testing.T) {
	est := NewPlaceholderEstimator()
	for i := 0; i < 100; i++ {
		c := est.Estimate(nil, 100)
		assert.GreaterOrEqual(t, c, 0.75)
		assert.Less(t, c, 0.95)
	}
}
