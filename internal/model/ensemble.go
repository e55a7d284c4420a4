package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// Predictor is the inference boundary: a trained model scoring one
// fixed-order feature vector. The serving layer treats implementations as
// opaque.
type Predictor interface {
	Predict(x []float64) (float64, error)
}

// Ensemble kinds.
const (
	KindRegression = "regression"
	KindBinary     = "binary"
)

// Node is one decision-tree node in flattened array form. Leaf nodes carry
// the output value; internal nodes route on Feature <= Threshold.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value"`
}

// Tree is a single decision tree. Nodes[0] is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t *Tree) predict(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Ensemble is a JSON-serializable tree ensemble. A regression ensemble
// averages tree outputs (bagging); a binary ensemble is a boosted model
// whose raw score InitScore + LearningRate*sum(trees) passes through a
// logistic link, yielding a probability in (0,1).
type Ensemble struct {
	Kind         string   `json:"kind"`
	ModelType    string   `json:"model_type"`
	Trees        []Tree   `json:"trees"`
	LearningRate float64  `json:"learning_rate,omitempty"`
	InitScore    float64  `json:"init_score,omitempty"`
	FeatureNames []string `json:"feature_names"`
}

// Predict scores one feature vector.
func (e *Ensemble) Predict(x []float64) (float64, error) {
	if len(e.Trees) == 0 {
		return 0, errors.New("model has no trees")
	}
	if len(e.FeatureNames) > 0 && len(x) != len(e.FeatureNames) {
		return 0, fmt.Errorf("expected %d features, got %d", len(e.FeatureNames), len(x))
	}

	switch e.Kind {
	case KindRegression:
		sum := 0.0
		for i := range e.Trees {
			sum += e.Trees[i].predict(x)
		}
		return sum / float64(len(e.Trees)), nil

	case KindBinary:
		score := e.InitScore
		for i := range e.Trees {
			score += e.LearningRate * e.Trees[i].predict(x)
		}
		return sigmoid(score), nil

	default:
		return 0, fmt.Errorf("unknown ensemble kind %q", e.Kind)
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Save writes the ensemble as a JSON artifact.
func (e *Ensemble) Save(path string) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	return nil
}

// LoadEnsemble reads a JSON model artifact.
func LoadEnsemble(path string) (*Ensemble, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var e Ensemble
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %w", err)
	}
	if len(e.Trees) == 0 {
		return nil, errors.New("model file contains no trees")
	}

	return &e, nil
}
