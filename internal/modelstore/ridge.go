package modelstore

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ridgeLambda is the L2 regularization strength added to the normal
// equations' diagonal (§4.4 "L2-regularized linear model on
// standardized features").
const ridgeLambda = 1.0

// ridgeRegressor is an L2-regularized linear regressor solved via the
// normal equations. It expects standardization to have already been
// applied to its inputs by the caller (the Scaler lives alongside the
// artifact, not inside the regressor) (grounded on the gonum/mat usage
// in the dfs-sim portfolio optimizer's covariance/solve pipeline).
type ridgeRegressor struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

func newRidgeRegressor(numFeatures int) *ridgeRegressor {
	return &ridgeRegressor{Weights: make([]float64, numFeatures)}
}

func (r *ridgeRegressor) fit(features [][]float64, targets []float64) {
	n := len(targets)
	if n == 0 {
		return
	}
	d := len(features[0])

	// Design matrix with an intercept column of ones.
	x := mat.NewDense(n, d+1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j := 0; j < d; j++ {
			x.Set(i, j+1, features[i][j])
		}
		y.Set(i, 0, targets[i])
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for i := 0; i < d+1; i++ {
		if i == 0 {
			continue // don't regularize the intercept
		}
		xtx.Set(i, i, xtx.At(i, i)+ridgeLambda)
	}

	var xty mat.Dense
	xty.Mul(x.T(), y)

	var beta mat.Dense
	if err := beta.Solve(&xtx, &xty); err != nil {
		return
	}

	r.Intercept = beta.At(0, 0)
	r.Weights = make([]float64, d)
	for j := 0; j < d; j++ {
		r.Weights[j] = beta.At(j+1, 0)
	}
}

func (r *ridgeRegressor) predict(x []float64) float64 {
	pred := r.Intercept
	for j, w := range r.Weights {
		if j >= len(x) {
			break
		}
		pred += w * x[j]
	}
	return pred
}

func (r *ridgeRegressor) name() string      { return candidateRidge }
func (r *ridgeRegressor) needsScaler() bool { return true }

func (r *ridgeRegressor) marshal() (json.RawMessage, error) {
	return json.Marshal(r)
}

func unmarshalRidge(data json.RawMessage) (*ridgeRegressor, error) {
	var r ridgeRegressor
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// fitScaler computes per-feature mean/std over features (§4.4 "fit ...
// an L2-regularized linear model on standardized features").
func fitScaler(features [][]float64) (mean, std []float64) {
	if len(features) == 0 {
		return nil, nil
	}
	d := len(features[0])
	mean = make([]float64, d)
	std = make([]float64, d)

	for _, row := range features {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(len(features))
	}

	for _, row := range features {
		for j, v := range row {
			diff := v - mean[j]
			std[j] += diff * diff
		}
	}
	for j := range std {
		std[j] /= float64(len(features))
		if std[j] > 0 {
			std[j] = math.Sqrt(std[j])
		} else {
			std[j] = 1 // avoid division by zero for a constant feature
		}
	}
	return mean, std
}

func applyScaler(x []float64, mean, std []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		if j < len(mean) && std[j] != 0 {
			out[j] = (v - mean[j]) / std[j]
		} else {
			out[j] = v
		}
	}
	return out
}
