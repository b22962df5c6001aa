package modelstore

import "math/rand"

// splitSeed fixes the 80/20 train/held-out split so candidate selection
// is reproducible across identical training runs (§4.4 "split 80/20
// with fixed seed").
const splitSeed = 42

// trainTestSplit partitions row indices [0,n) into an 80% train set and
// a 20% held-out set using a fixed-seed shuffle.
func trainTestSplit(n int) (train, test []int) {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rand.New(rand.NewSource(splitSeed)).Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	cut := int(float64(n) * 0.8)
	return order[:cut], order[cut:]
}

func meanAbsoluteError(predictions, actuals []float64) float64 {
	if len(predictions) == 0 {
		return 0
	}
	var sum float64
	for i, p := range predictions {
		d := p - actuals[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(len(predictions))
}
