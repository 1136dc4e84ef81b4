package model_selection

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/scitree/metrics"
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"github.com/YuminosukeSato/scitree/tree"
)

// CVResult stores per-fold accuracies and timings.
type CVResult struct {
	TrainScores []float64
	TestScores  []float64
	FitTimes    []time.Duration
}

// MeanScore returns the mean test accuracy.
func (cv *CVResult) MeanScore() float64 {
	if len(cv.TestScores) == 0 {
		return 0
	}
	return stat.Mean(cv.TestScores, nil)
}

// StdScore returns the sample standard deviation of the test accuracies.
func (cv *CVResult) StdScore() float64 {
	if len(cv.TestScores) <= 1 {
		return 0
	}
	return stat.StdDev(cv.TestScores, nil)
}

// CrossValidate fits a fresh classifier from newClassifier on each fold's
// training rows and scores accuracy on its train and test rows.
func CrossValidate[L comparable](newClassifier func() *tree.Classifier[L], X [][]float64, y []L, kf *KFold) (*CVResult, error) {
	if len(y) != len(X) {
		return nil, errors.NewDimensionError("CrossValidate", len(X), len(y), 0)
	}
	folds, err := kf.Split(len(X))
	if err != nil {
		return nil, err
	}

	logger := log.GetLoggerWithName("model_selection")
	res := &CVResult{}
	for i, fold := range folds {
		XTrain, yTrain := take(X, y, fold.TrainIndices)
		XTest, yTest := take(X, y, fold.TestIndices)

		clf := newClassifier()
		start := time.Now()
		if err := clf.Fit(XTrain, yTrain); err != nil {
			return nil, errors.Wrapf(err, "fold %d", i)
		}
		res.FitTimes = append(res.FitTimes, time.Since(start))

		trainScore, err := score(clf, XTrain, yTrain)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d", i)
		}
		testScore, err := score(clf, XTest, yTest)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d", i)
		}
		res.TrainScores = append(res.TrainScores, trainScore)
		res.TestScores = append(res.TestScores, testScore)

		logger.Debug("fold scored",
			"fold", i,
			log.OperationKey, log.OperationScore,
			log.SamplesKey, len(XTest),
			log.AccuracyKey, testScore,
		)
	}
	return res, nil
}

func score[L comparable](clf *tree.Classifier[L], X [][]float64, y []L) (float64, error) {
	pred, err := clf.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyLabels(y, pred)
}
