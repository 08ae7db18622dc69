package forecast

import (
	"math"
	"math/rand"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

// BoostedStrategy trains a gradient-boosted ensemble of shallow regression
// trees on a single autoregressive lag (previous value predicts next value)
// and forecasts by recursive one-step rollout. Hyperparameters are fixed and
// heavily regularized; row subsampling uses a fixed seed so fits are
// deterministic. Requires at least 6 observations.
type BoostedStrategy struct{}

func (BoostedStrategy) Name() string { return StrategyBoosted }

const (
	boostRounds       = 50
	boostDepth        = 2
	boostLearningRate = 0.1
	boostSubsample    = 0.9
	boostSeed         = 7
)

func (BoostedStrategy) FitForecast(history domain.TimeSeries, horizon []domain.Date) ([]float64, error) {
	if len(history) < 6 || len(horizon) < 1 {
		return nil, ErrInapplicable
	}

	values := history.Values()
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrInapplicable
		}
	}

	// Consecutive pairs: previous value -> next value.
	features := values[:len(values)-1]
	targets := values[1:]

	model := fitBoostedModel(features, targets)

	last := values[len(values)-1]
	forecasts := make([]float64, len(horizon))
	for i := range forecasts {
		pred := math.Max(0, model.predict(last))
		if math.IsNaN(pred) || math.IsInf(pred, 0) {
			return nil, ErrInapplicable
		}
		forecasts[i] = pred
		last = pred
	}
	return forecasts, nil
}

type boostedModel struct {
	base  float64
	trees []*treeNode
}

func fitBoostedModel(x, y []float64) *boostedModel {
	n := len(x)

	var base float64
	for _, v := range y {
		base += v
	}
	base /= float64(n)

	model := &boostedModel{base: base}
	rng := rand.New(rand.NewSource(boostSeed))

	current := make([]float64, n)
	for i := range current {
		current[i] = base
	}

	sampleSize := int(boostSubsample*float64(n) + 0.5)
	if sampleSize < 1 {
		sampleSize = n
	}

	residuals := make([]float64, n)
	for round := 0; round < boostRounds; round++ {
		for i := range residuals {
			residuals[i] = y[i] - current[i]
		}

		perm := rng.Perm(n)
		sample := perm[:sampleSize]

		tree := fitTree(x, residuals, sample, boostDepth)
		model.trees = append(model.trees, tree)

		for i := range current {
			current[i] += boostLearningRate * tree.predict(x[i])
		}
	}
	return model
}

func (m *boostedModel) predict(x float64) float64 {
	out := m.base
	for _, tree := range m.trees {
		out += boostLearningRate * tree.predict(x)
	}
	return out
}

// treeNode is a regression tree over the single lag feature. Leaves carry the
// mean residual of their partition.
type treeNode struct {
	leaf      bool
	value     float64
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (t *treeNode) predict(x float64) float64 {
	if t.leaf {
		return t.value
	}
	if x <= t.threshold {
		return t.left.predict(x)
	}
	return t.right.predict(x)
}

func fitTree(x, y []float64, idx []int, depth int) *treeNode {
	if depth == 0 || len(idx) < 2 {
		return leafNode(y, idx)
	}

	threshold, ok := bestSplit(x, y, idx)
	if !ok {
		return leafNode(y, idx)
	}

	var left, right []int
	for _, i := range idx {
		if x[i] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		threshold: threshold,
		left:      fitTree(x, y, left, depth-1),
		right:     fitTree(x, y, right, depth-1),
	}
}

func leafNode(y []float64, idx []int) *treeNode {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	value := 0.0
	if len(idx) > 0 {
		value = sum / float64(len(idx))
	}
	return &treeNode{leaf: true, value: value}
}

// bestSplit scans midpoints between distinct sorted feature values and keeps
// the threshold with the lowest total squared error. Returns ok=false when the
// partition cannot be split (all feature values identical).
func bestSplit(x, y []float64, idx []int) (float64, bool) {
	sorted := make([]int, len(idx))
	copy(sorted, idx)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && x[sorted[j]] < x[sorted[j-1]]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	var total, totalSq float64
	for _, i := range sorted {
		total += y[i]
		totalSq += y[i] * y[i]
	}

	bestErr := math.Inf(1)
	var bestThreshold float64
	found := false

	var leftSum, leftSq float64
	for pos := 0; pos < len(sorted)-1; pos++ {
		i := sorted[pos]
		leftSum += y[i]
		leftSq += y[i] * y[i]

		if x[sorted[pos]] == x[sorted[pos+1]] {
			continue
		}

		nLeft := float64(pos + 1)
		nRight := float64(len(sorted) - pos - 1)
		rightSum := total - leftSum
		rightSq := totalSq - leftSq

		sse := (leftSq - leftSum*leftSum/nLeft) + (rightSq - rightSum*rightSum/nRight)
		if sse < bestErr {
			bestErr = sse
			bestThreshold = (x[sorted[pos]] + x[sorted[pos+1]]) / 2
			found = true
		}
	}

	return bestThreshold, found
}
