package model

import (
	"math"
	"math/rand"
	"sort"
)

// --------------------------------------------------
// Native tree-ensemble training (used by cmd/trainer)
// --------------------------------------------------

// ForestConfig configures bagged regression-forest training.
type ForestConfig struct {
	NumTrees       int
	MaxDepth       int
	MinSamplesLeaf int
	MaxFeatures    int // 0 means sqrt(num features)
	Seed           int64
}

// BoostConfig configures gradient-boosted binary classification training.
type BoostConfig struct {
	Rounds         int
	MaxDepth       int
	MinSamplesLeaf int
	LearningRate   float64
	Seed           int64
}

// TrainForestRegressor fits a bagged forest of CART regression trees and
// returns the ensemble plus normalized per-feature importances.
func TrainForestRegressor(X [][]float64, y []float64, featureNames []string, cfg ForestConfig) (*Ensemble, map[string]float64) {
	numFeatures := len(featureNames)
	maxFeatures := cfg.MaxFeatures
	if maxFeatures <= 0 || maxFeatures > numFeatures {
		maxFeatures = int(math.Sqrt(float64(numFeatures)))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	rnd := rand.New(rand.NewSource(cfg.Seed))
	importance := make([]float64, numFeatures)

	trees := make([]Tree, 0, cfg.NumTrees)
	for i := 0; i < cfg.NumTrees; i++ {
		idx := bootstrapIndices(rnd, len(X))
		b := &treeBuilder{
			X:           X,
			y:           y,
			maxDepth:    cfg.MaxDepth,
			minLeaf:     cfg.MinSamplesLeaf,
			maxFeatures: maxFeatures,
			rnd:         rnd,
			importance:  importance,
		}
		var t Tree
		b.grow(&t, idx, 0)
		trees = append(trees, t)
	}

	ensemble := &Ensemble{
		Kind:         KindRegression,
		ModelType:    DefaultPriceModelType,
		Trees:        trees,
		FeatureNames: featureNames,
	}

	return ensemble, normalizeImportance(importance, featureNames)
}

// TrainBoostedClassifier fits gradient-boosted regression trees on the
// logistic loss. Labels must be 0 or 1; the resulting ensemble predicts a
// probability via the logistic link.
func TrainBoostedClassifier(X [][]float64, y []float64, featureNames []string, cfg BoostConfig) (*Ensemble, map[string]float64) {
	n := len(X)
	rnd := rand.New(rand.NewSource(cfg.Seed))
	importance := make([]float64, len(featureNames))

	// Initial raw score: log-odds of the positive rate.
	pos := 0.0
	for _, v := range y {
		pos += v
	}
	p := pos / float64(n)
	p = math.Min(math.Max(p, 1e-6), 1-1e-6)
	initScore := math.Log(p / (1 - p))

	raw := make([]float64, n)
	for i := range raw {
		raw[i] = initScore
	}

	allIdx := make([]int, n)
	for i := range allIdx {
		allIdx[i] = i
	}

	residual := make([]float64, n)
	trees := make([]Tree, 0, cfg.Rounds)

	for round := 0; round < cfg.Rounds; round++ {
		for i := 0; i < n; i++ {
			residual[i] = y[i] - sigmoid(raw[i])
		}

		b := &treeBuilder{
			X:           X,
			y:           residual,
			maxDepth:    cfg.MaxDepth,
			minLeaf:     cfg.MinSamplesLeaf,
			maxFeatures: len(featureNames),
			rnd:         rnd,
			importance:  importance,
		}
		var t Tree
		b.grow(&t, allIdx, 0)
		trees = append(trees, t)

		for i := 0; i < n; i++ {
			raw[i] += cfg.LearningRate * t.predict(X[i])
		}
	}

	ensemble := &Ensemble{
		Kind:         KindBinary,
		ModelType:    DefaultDemandModel,
		Trees:        trees,
		LearningRate: cfg.LearningRate,
		InitScore:    initScore,
		FeatureNames: featureNames,
	}

	return ensemble, normalizeImportance(importance, featureNames)
}

// --------------------------------------------------
// CART regression tree (variance reduction)
// --------------------------------------------------

type treeBuilder struct {
	X           [][]float64
	y           []float64
	maxDepth    int
	minLeaf     int
	maxFeatures int
	rnd         *rand.Rand
	importance  []float64 // accumulated SSE reduction per feature
}

// grow appends the subtree for idx to t and returns its root node index.
func (b *treeBuilder) grow(t *Tree, idx []int, depth int) int {
	nodeIdx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{})

	mean, sse := meanSSE(b.y, idx)
	if depth >= b.maxDepth || len(idx) < 2*b.minLeaf || sse <= 1e-12 {
		t.Nodes[nodeIdx] = Node{Leaf: true, Value: mean}
		return nodeIdx
	}

	bestFeature := -1
	bestThreshold, bestGain := 0.0, 0.0

	total, totalSq := 0.0, 0.0
	for _, i := range idx {
		total += b.y[i]
		totalSq += b.y[i] * b.y[i]
	}

	for _, f := range b.candidateFeatures() {
		order := append([]int(nil), idx...)
		sort.Slice(order, func(i, j int) bool { return b.X[order[i]][f] < b.X[order[j]][f] })

		sum, sumSq := 0.0, 0.0
		for i := 0; i < len(order)-1; i++ {
			v := b.y[order[i]]
			sum += v
			sumSq += v * v

			if b.X[order[i]][f] == b.X[order[i+1]][f] {
				continue
			}

			nLeft := i + 1
			nRight := len(order) - nLeft
			if nLeft < b.minLeaf || nRight < b.minLeaf {
				continue
			}

			sseLeft := sumSq - sum*sum/float64(nLeft)
			sumRight := total - sum
			sseRight := (totalSq - sumSq) - sumRight*sumRight/float64(nRight)

			gain := sse - sseLeft - sseRight
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (b.X[order[i]][f] + b.X[order[i+1]][f]) / 2
			}
		}
	}

	if bestFeature < 0 {
		t.Nodes[nodeIdx] = Node{Leaf: true, Value: mean}
		return nodeIdx
	}

	b.importance[bestFeature] += bestGain

	var left, right []int
	for _, i := range idx {
		if b.X[i][bestFeature] <= bestThreshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	leftIdx := b.grow(t, left, depth+1)
	rightIdx := b.grow(t, right, depth+1)
	t.Nodes[nodeIdx] = Node{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      leftIdx,
		Right:     rightIdx,
	}

	return nodeIdx
}

func (b *treeBuilder) candidateFeatures() []int {
	numFeatures := len(b.X[0])
	if b.maxFeatures >= numFeatures {
		all := make([]int, numFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}

	perm := b.rnd.Perm(numFeatures)
	return perm[:b.maxFeatures]
}

func meanSSE(y []float64, idx []int) (mean, sse float64) {
	if len(idx) == 0 {
		return 0, 0
	}
	for _, i := range idx {
		mean += y[i]
	}
	mean /= float64(len(idx))
	for _, i := range idx {
		d := y[i] - mean
		sse += d * d
	}
	return mean, sse
}

func bootstrapIndices(rnd *rand.Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rnd.Intn(n)
	}
	return idx
}

func normalizeImportance(importance []float64, featureNames []string) map[string]float64 {
	total := 0.0
	for _, v := range importance {
		total += v
	}

	out := make(map[string]float64, len(featureNames))
	for i, name := range featureNames {
		if total > 0 {
			out[name] = importance[i] / total
		} else {
			out[name] = 0
		}
	}
	return out
}
