package modelstore

import (
	"encoding/json"
	"math/rand"
)

// gradientBoostedRegressor fits an additive sequence of shallow trees,
// each one trained on the residuals left by the trees fit so far and
// added back scaled by a learning rate (§4.4 "gradient-boosted
// regressor (100 estimators)"; grounded on GradientBoostingModel in the
// hockey-dashboard teacher, adapted from the log-loss/residual-on-
// probability scheme to squared-error residuals on a continuous
// target).
type gradientBoostedRegressor struct {
	Trees          []*treeNode `json:"trees"`
	LearningRate   float64     `json:"learning_rate"`
	NumEstimators  int         `json:"num_estimators"`
	MaxDepth       int         `json:"max_depth"`
	MinSamplesLeaf int         `json:"min_samples_leaf"`
	InitialValue   float64     `json:"initial_value"`
}

func newGradientBoostedRegressor(numFeatures int) *gradientBoostedRegressor {
	return &gradientBoostedRegressor{
		LearningRate:   0.1,
		NumEstimators:  100,
		MaxDepth:       3,
		MinSamplesLeaf: 5,
	}
}

func (r *gradientBoostedRegressor) fit(features [][]float64, targets []float64) {
	n := len(targets)
	r.InitialValue = meanOf(targets, allIndices(n))

	predictions := make([]float64, n)
	for i := range predictions {
		predictions[i] = r.InitialValue
	}

	residuals := make([]float64, n)
	params := treeParams{maxDepth: r.MaxDepth, minSamplesLeaf: r.MinSamplesLeaf}
	rng := rand.New(rand.NewSource(0)) // feature subset unused (maxFeatures=0 => all)

	r.Trees = make([]*treeNode, 0, r.NumEstimators)
	for t := 0; t < r.NumEstimators; t++ {
		for i := range residuals {
			residuals[i] = targets[i] - predictions[i]
		}
		tree := buildRegressionTree(features, residuals, allIndices(n), 0, params, rng)
		r.Trees = append(r.Trees, tree)
		for i := range predictions {
			predictions[i] += r.LearningRate * tree.predict(features[i])
		}
	}
}

func (r *gradientBoostedRegressor) predict(x []float64) float64 {
	pred := r.InitialValue
	for _, tree := range r.Trees {
		pred += r.LearningRate * tree.predict(x)
	}
	return pred
}

func (r *gradientBoostedRegressor) name() string      { return candidateGradientBoosted }
func (r *gradientBoostedRegressor) needsScaler() bool { return false }

func (r *gradientBoostedRegressor) marshal() (json.RawMessage, error) {
	return json.Marshal(r)
}

func unmarshalGradientBoosted(data json.RawMessage) (*gradientBoostedRegressor, error) {
	var r gradientBoostedRegressor
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
