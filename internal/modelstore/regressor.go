package modelstore

import (
	"encoding/json"
	"fmt"
)

// regressor is the common surface all three candidate models implement
// so train() can fit each, score it on the held-out split, and keep the
// one with the lowest MAE (§4.4 Fitting).
type regressor interface {
	fit(features [][]float64, targets []float64)
	predict(x []float64) float64
	name() string
	needsScaler() bool
	marshal() (json.RawMessage, error)
}

// candidateName enumerates the three regressors §4.4 fits per position.
const (
	candidateBaggedTree     = "bagged_tree"
	candidateGradientBoosted = "gradient_boosted"
	candidateRidge          = "ridge"
)

// newCandidates builds one fresh instance of each candidate regressor,
// sized to numFeatures.
func newCandidates(numFeatures int, seed int64) []regressor {
	return []regressor{
		newBaggedTreeRegressor(numFeatures, seed),
		newGradientBoostedRegressor(numFeatures),
		newRidgeRegressor(numFeatures),
	}
}

// loadRegressor reconstructs a regressor from its persisted candidate
// name and raw model bytes (§4.4 load).
func loadRegressor(candidate string, data json.RawMessage) (regressor, error) {
	switch candidate {
	case candidateBaggedTree:
		return unmarshalBaggedTree(data)
	case candidateGradientBoosted:
		return unmarshalGradientBoosted(data)
	case candidateRidge:
		return unmarshalRidge(data)
	default:
		return nil, fmt.Errorf("modelstore: unknown candidate %q", candidate)
	}
}
