package model_selection

import "github.com/YuminosukeSato/scitree/pkg/errors"

// CVFold holds the row indices of one train/test split.
type CVFold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold splits n rows into NSplits contiguous test folds. The first n%NSplits
// folds receive one extra row. With Shuffle set, rows are permuted first
// using RandomSeed.
type KFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed uint64
}

// NewKFold creates a k-fold splitter. nSplits below 2 defaults to 5.
func NewKFold(nSplits int, shuffle bool, randomSeed uint64) *KFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &KFold{NSplits: nSplits, Shuffle: shuffle, RandomSeed: randomSeed}
}

// Split returns NSplits folds over n rows. Every row appears in exactly one
// test fold.
func (kf *KFold) Split(n int) ([]CVFold, error) {
	if kf.NSplits < 2 {
		return nil, errors.NewValidationError("n_splits", "must be >= 2", kf.NSplits)
	}
	if n < kf.NSplits {
		return nil, errors.NewValueError("KFold.Split", "n_splits exceeds the number of samples")
	}

	perm := permutation(n, kf.Shuffle, kf.RandomSeed)
	folds := make([]CVFold, kf.NSplits)
	size, rem := n/kf.NSplits, n%kf.NSplits

	start := 0
	for i := range folds {
		end := start + size
		if i < rem {
			end++
		}
		test := append([]int(nil), perm[start:end]...)
		train := make([]int, 0, n-len(test))
		train = append(train, perm[:start]...)
		train = append(train, perm[end:]...)
		folds[i] = CVFold{TrainIndices: train, TestIndices: test}
		start = end
	}
	return folds, nil
}
