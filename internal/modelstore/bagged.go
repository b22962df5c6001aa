package modelstore

import (
	"encoding/json"
	"math"
	"math/rand"
)

// baggedTreeRegressor is a bootstrap-aggregated ensemble of regression
// trees: each tree is grown on an independent bootstrap resample with a
// random feature subset considered at every split, and predictions are
// averaged across trees (§4.4 "tree-based bagged ensemble (100
// estimators)"; grounded on RandomForestModel in the hockey-dashboard
// teacher, adapted from majority-vote classification to averaged
// regression).
type baggedTreeRegressor struct {
	Trees          []*treeNode `json:"trees"`
	NumEstimators  int         `json:"num_estimators"`
	MaxDepth       int         `json:"max_depth"`
	MinSamplesLeaf int         `json:"min_samples_leaf"`
	MaxFeatures    int         `json:"max_features"`
	Seed           int64       `json:"seed"`
}

func newBaggedTreeRegressor(numFeatures int, seed int64) *baggedTreeRegressor {
	maxFeatures := int(math.Sqrt(float64(numFeatures)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}
	return &baggedTreeRegressor{
		NumEstimators:  100,
		MaxDepth:       6,
		MinSamplesLeaf: 3,
		MaxFeatures:    maxFeatures,
		Seed:           seed,
	}
}

func (r *baggedTreeRegressor) fit(features [][]float64, targets []float64) {
	rng := rand.New(rand.NewSource(r.Seed))
	n := len(targets)
	params := treeParams{maxDepth: r.MaxDepth, minSamplesLeaf: r.MinSamplesLeaf, maxFeatures: r.MaxFeatures}

	r.Trees = make([]*treeNode, r.NumEstimators)
	for t := 0; t < r.NumEstimators; t++ {
		bootstrap := make([]int, n)
		for i := range bootstrap {
			bootstrap[i] = rng.Intn(n)
		}
		r.Trees[t] = buildRegressionTree(features, targets, bootstrap, 0, params, rng)
	}
}

func (r *baggedTreeRegressor) predict(x []float64) float64 {
	if len(r.Trees) == 0 {
		return 0
	}
	var sum float64
	for _, tree := range r.Trees {
		sum += tree.predict(x)
	}
	return sum / float64(len(r.Trees))
}

func (r *baggedTreeRegressor) name() string     { return candidateBaggedTree }
func (r *baggedTreeRegressor) needsScaler() bool { return false }

func (r *baggedTreeRegressor) marshal() (json.RawMessage, error) {
	return json.Marshal(r)
}

func unmarshalBaggedTree(data json.RawMessage) (*baggedTreeRegressor, error) {
	var r baggedTreeRegressor
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
