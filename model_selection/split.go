// Package model_selection provides data splitting and cross-validation for
// scitree classifiers.
package model_selection

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/scitree/pkg/errors"
)

// TrainTestSplit shuffles the rows of X and y with a PCG source seeded by
// seed and holds out ceil(testSize*n) of them for testing. The inputs are
// not modified; the returned row slices alias the rows of X.
func TrainTestSplit[L any](X [][]float64, y []L, testSize float64, seed uint64) (XTrain, XTest [][]float64, yTrain, yTest []L, err error) {
	n := len(X)
	if len(y) != n {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", n, len(y), 0)
	}
	if !(testSize > 0 && testSize < 1) {
		return nil, nil, nil, nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest < 1 || n-nTest < 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit",
			"not enough samples to hold out a non-empty train and test set")
	}

	perm := permutation(n, true, seed)
	test, train := perm[:nTest], perm[nTest:]

	XTrain, yTrain = take(X, y, train)
	XTest, yTest = take(X, y, test)
	return XTrain, XTest, yTrain, yTest, nil
}

func permutation(n int, shuffle bool, seed uint64) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if shuffle {
		r := rand.New(rand.NewPCG(seed, seed))
		r.Shuffle(n, func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})
	}
	return idx
}

func take[L any](X [][]float64, y []L, idx []int) ([][]float64, []L) {
	xs := make([][]float64, len(idx))
	ys := make([]L, len(idx))
	for i, j := range idx {
		xs[i] = X[j]
		ys[i] = y[j]
	}
	return xs, ys
}
