package modelstore

import (
	"math"
	"math/rand"
	"sort"
)

// treeNode is a node in a CART regression tree. Leaves predict the mean
// target of the samples that reached them; internal nodes split on a
// single feature threshold (grounded on the hockey-dashboard forest/
// boosting trees, adapted from classification Gini gain to variance
// reduction for a continuous target).
type treeNode struct {
	IsLeaf       bool
	Prediction   float64
	FeatureIndex int
	Threshold    float64
	Left         *treeNode
	Right        *treeNode
}

type treeParams struct {
	maxDepth       int
	minSamplesLeaf int
	maxFeatures    int // 0 means "all features"
}

// buildRegressionTree recursively grows a tree over the rows named by
// indices, splitting on whichever feature/threshold most reduces
// variance of the target.
func buildRegressionTree(features [][]float64, targets []float64, indices []int, depth int, p treeParams, rng *rand.Rand) *treeNode {
	node := &treeNode{Prediction: meanOf(targets, indices)}

	if depth >= p.maxDepth || len(indices) < p.minSamplesLeaf*2 || isConstant(targets, indices) {
		node.IsLeaf = true
		return node
	}

	split := findBestSplit(features, targets, indices, p.maxFeatures, rng)
	if split == nil || len(split.left) < p.minSamplesLeaf || len(split.right) < p.minSamplesLeaf {
		node.IsLeaf = true
		return node
	}

	node.FeatureIndex = split.featureIndex
	node.Threshold = split.threshold
	node.Left = buildRegressionTree(features, targets, split.left, depth+1, p, rng)
	node.Right = buildRegressionTree(features, targets, split.right, depth+1, p, rng)
	return node
}

func (n *treeNode) predict(x []float64) float64 {
	if n.IsLeaf || n.Left == nil || n.Right == nil {
		return n.Prediction
	}
	if n.FeatureIndex >= len(x) || x[n.FeatureIndex] <= n.Threshold {
		return n.Left.predict(x)
	}
	return n.Right.predict(x)
}

type splitCandidate struct {
	featureIndex int
	threshold    float64
	gain         float64
	left, right  []int
}

// findBestSplit evaluates every candidate threshold on a (possibly
// random) subset of features and keeps the split with the largest
// variance-reduction gain (mirrors findBestSplit in the bagged-forest
// and gradient-boosting teacher code, feature selection style borrowed
// from the forest's selectRandomFeatures).
func findBestSplit(features [][]float64, targets []float64, indices []int, maxFeatures int, rng *rand.Rand) *splitCandidate {
	if len(indices) == 0 {
		return nil
	}
	numFeatures := len(features[indices[0]])
	selected := selectFeatureSubset(numFeatures, maxFeatures, rng)

	parentSSE := sseOf(targets, indices)
	var best *splitCandidate
	bestGain := -math.MaxFloat64

	for _, fi := range selected {
		for _, threshold := range candidateThresholds(features, indices, fi) {
			left, right := partition(features, indices, fi, threshold)
			if len(left) == 0 || len(right) == 0 {
				continue
			}
			gain := parentSSE - sseOf(targets, left) - sseOf(targets, right)
			if gain > bestGain {
				bestGain = gain
				best = &splitCandidate{featureIndex: fi, threshold: threshold, gain: gain, left: left, right: right}
			}
		}
	}
	return best
}

// selectFeatureSubset returns every feature index when maxFeatures <= 0
// or >= numFeatures, otherwise a random subset of size maxFeatures
// (forest-style random feature selection at each split).
func selectFeatureSubset(numFeatures, maxFeatures int, rng *rand.Rand) []int {
	all := make([]int, numFeatures)
	for i := range all {
		all[i] = i
	}
	if maxFeatures <= 0 || maxFeatures >= numFeatures || rng == nil {
		return all
	}
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	return all[:maxFeatures]
}

// candidateThresholds returns up to 10 midpoint thresholds between
// consecutive unique values of feature fi among indices.
func candidateThresholds(features [][]float64, indices []int, fi int) []float64 {
	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = features[idx][fi]
	}
	sort.Float64s(values)

	unique := values[:0:0]
	for i, v := range values {
		if i == 0 || v != values[i-1] {
			unique = append(unique, v)
		}
	}

	thresholds := make([]float64, 0, len(unique))
	for i := 0; i < len(unique)-1; i++ {
		thresholds = append(thresholds, (unique[i]+unique[i+1])/2)
	}
	if len(thresholds) > 10 {
		step := len(thresholds) / 10
		sampled := make([]float64, 0, 10)
		for i := 0; i < len(thresholds) && len(sampled) < 10; i += step {
			sampled = append(sampled, thresholds[i])
		}
		return sampled
	}
	return thresholds
}

func partition(features [][]float64, indices []int, fi int, threshold float64) (left, right []int) {
	for _, idx := range indices {
		if features[idx][fi] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	return left, right
}

func meanOf(targets []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	var sum float64
	for _, idx := range indices {
		sum += targets[idx]
	}
	return sum / float64(len(indices))
}

func sseOf(targets []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	mean := meanOf(targets, indices)
	var sse float64
	for _, idx := range indices {
		d := targets[idx] - mean
		sse += d * d
	}
	return sse
}

func isConstant(targets []float64, indices []int) bool {
	if len(indices) == 0 {
		return true
	}
	first := targets[indices[0]]
	for _, idx := range indices[1:] {
		if targets[idx] != first {
			return false
		}
	}
	return true
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
