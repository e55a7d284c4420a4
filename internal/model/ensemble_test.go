package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stump returns a depth-1 tree: x[feature] <= threshold ? left : right.
func stump(feature int, threshold, left, right float64) Tree {
	return Tree{Nodes: []Node{
		{Feature: feature, Threshold: threshold, Left: 1, Right: 2},
		{Leaf: true, Value: left},
		{Leaf: true, Value: right},
	}}
}

func TestRegressionEnsembleAveragesTrees(t *testing.T) {
	e := &Ensemble{
		Kind: KindRegression,
		Trees: []Tree{
			stump(0, 0.5, 100, 200),
			stump(0, 0.5, 120, 260),
		},
	}

	low, err := e.Predict([]float64{0.2})
	require.NoError(t, err)
	assert.Equal(t, 110.0, low)

	high, err := e.Predict([]float64{0.9})
	require.NoError(t, err)
	assert.Equal(t, 230.0, high)
}

func TestBinaryEnsembleReturnsProbability(t *testing.T) {
	e := &Ensemble{
		Kind:         KindBinary,
		InitScore:    0,
		LearningRate: 1,
		Trees: []Tree{
			stump(0, 0.5, -4, 4),
		},
	}

	p, err := e.Predict([]float64{0.9})
	require.NoError(t, err)
	assert.Greater(t, p, 0.5)
	assert.Less(t, p, 1.0)

	p, err = e.Predict([]float64{0.1})
	require.NoError(t, err)
	assert.Less(t, p, 0.5)
	assert.Greater(t, p, 0.0)
}

func TestPredictRejectsWrongVectorLength(t *testing.T) {
	e := &Ensemble{
		Kind:         KindRegression,
		FeatureNames: []string{"a", "b", "c"},
		Trees:        []Tree{stump(0, 0.5, 1, 2)},
	}

	_, err := e.Predict([]float64{1})
	assert.Error(t, err)
}

func TestPredictEmptyEnsembleFails(t *testing.T) {
	e := &Ensemble{Kind: KindRegression}
	_, err := e.Predict([]float64{1})
	assert.Error(t, err)
}

func TestSaveAndLoadEnsemble(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	original := &Ensemble{
		Kind:         KindBinary,
		ModelType:    DefaultDemandModel,
		InitScore:    -0.3,
		LearningRate: 0.1,
		FeatureNames: []string{"x"},
		Trees:        []Tree{stump(0, 0.5, -1, 1)},
	}
	require.NoError(t, original.Save(path))

	loaded, err := LoadEnsemble(path)
	require.NoError(t, err)

	want, err := original.Predict([]float64{0.8})
	require.NoError(t, err)
	got, err := loaded.Predict([]float64{0.8})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadEnsembleMissingFile(t *testing.T) {
	_, err := LoadEnsemble(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
