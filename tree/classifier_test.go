package tree

import (
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

func TestClassifierNotFitted(t *testing.T) {
	clf := NewClassifier[int]()

	_, err := clf.PredictOne([]float64{1, 2})
	var nf *errors.NotFittedError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "DecisionTree", nf.ModelName)
	assert.Equal(t, "PredictOne", nf.Method)

	_, err = clf.Predict([][]float64{{1, 2}})
	assert.True(t, errors.As(err, &nf))
	_, err = clf.PredictProba([][]float64{{1, 2}})
	assert.True(t, errors.As(err, &nf))
	_, err = clf.Tree()
	assert.True(t, errors.As(err, &nf))
	_, err = clf.Classes()
	assert.True(t, errors.As(err, &nf))
	assert.True(t, errors.As(clf.Save(filepath.Join(t.TempDir(), "m.gob")), &nf))
}

func TestClassifierFitPredict(t *testing.T) {
	clf := NewClassifier[int](MaxDepth(3))
	require.NoError(t, clf.Fit(scenarioX, scenarioY))

	got, err := clf.Predict(scenarioX)
	require.NoError(t, err)
	assert.Equal(t, scenarioY, got)

	one, err := clf.PredictOne([]float64{1, 5})
	require.NoError(t, err)
	assert.Equal(t, 0, one)

	proba, err := clf.PredictProba([][]float64{{1, 1}, {4, 4}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, proba)

	classes, err := clf.Classes()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, classes)
}

func TestClassifierRefitReplacesTree(t *testing.T) {
	clf := NewClassifier[int]()
	require.NoError(t, clf.Fit(scenarioX, scenarioY))
	first, err := clf.Tree()
	require.NoError(t, err)

	require.NoError(t, clf.Fit([][]float64{{0}, {1}}, []int{5, 5}))
	second, err := clf.Tree()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 1, second.NFeatures)

	got, err := clf.PredictOne([]float64{0.5})
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestClassifierFailedFitKeepsPreviousTree(t *testing.T) {
	clf := NewClassifier[int]()
	require.NoError(t, clf.Fit(scenarioX, scenarioY))

	err := clf.Fit([][]float64{{1, 2}, {3}}, []int{0, 1})
	require.Error(t, err)

	got, err := clf.Predict(scenarioX)
	require.NoError(t, err)
	assert.Equal(t, scenarioY, got)
}

func TestClassifierFitRejectsBadParams(t *testing.T) {
	clf := NewClassifier[int](MaxDepth(-3))
	err := clf.Fit(scenarioX, scenarioY)
	var valErr *errors.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "max_depth", valErr.ParamName)
}

func TestClassifierParams(t *testing.T) {
	clf := NewClassifier[string]()
	assert.Equal(t, map[string]interface{}{
		"max_depth":         Unbounded,
		"criterion":         "entropy",
		"min_samples_split": 2,
		"min_samples_leaf":  1,
	}, clf.GetParams())

	require.NoError(t, clf.SetParams(map[string]interface{}{
		"max_depth": 4.0,
		"criterion": "gini",
	}))
	params := clf.GetParams()
	assert.Equal(t, 4, params["max_depth"])
	assert.Equal(t, "gini", params["criterion"])

	require.NoError(t, clf.SetParams(map[string]interface{}{"max_depth": nil}))
	assert.Equal(t, Unbounded, clf.GetParams()["max_depth"])

	bad := []map[string]interface{}{
		{"max_depth": -5},
		{"max_depth": 2.5},
		{"max_depth": "deep"},
		{"criterion": 3},
		{"criterion": "mse"},
		{"min_samples_split": 1},
		{"min_samples_leaf": 0},
		{"splitter": "best"},
	}
	for _, p := range bad {
		err := clf.SetParams(p)
		var valErr *errors.ValidationError
		assert.True(t, errors.As(err, &valErr), "%v", p)
	}
	assert.Equal(t, Unbounded, clf.GetParams()["max_depth"], "failed SetParams leaves params unchanged")
}

func TestClassifierLogging(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	clf := NewClassifier[int](WithLogger(logger))
	require.NoError(t, clf.Fit(scenarioX, scenarioY))

	assert.True(t, logger.ContainsMessage("fit started"))
	assert.True(t, logger.ContainsMessage("split selected"))
	assert.True(t, logger.ContainsMessage("fit finished"))
	assert.True(t, logger.ContainsField(log.TreeNodesKey, float64(3)))
	assert.True(t, logger.ContainsField(log.TreeDepthKey, float64(1)))
	assert.True(t, logger.ContainsField(log.SamplesKey, float64(8)))
}

func TestClassifierDefaultLoggerUsesProvider(t *testing.T) {
	provider, _ := log.NewTestLoggerProvider(log.LevelInfo)
	log.SetProvider(provider)
	t.Cleanup(func() { log.SetProvider(log.NewProvider(io.Discard, log.LevelError)) })

	clf := NewClassifier[int]()
	require.NoError(t, clf.Fit(scenarioX, scenarioY))

	logger := provider.Logger()
	assert.True(t, logger.ContainsMessage("fit finished"))
	assert.False(t, logger.ContainsMessage("split selected"), "debug records stay below the provider level")
	assert.True(t, logger.ContainsField(log.ComponentKey, "tree"))
	assert.True(t, logger.ContainsField(log.ModelNameKey, modelName))
}

func TestClassifierSaveLoad(t *testing.T) {
	X, y := randomDataset(31, 150, 3, 3)
	clf := NewClassifier[int](MaxDepth(4))
	require.NoError(t, clf.Fit(X, y))

	path := filepath.Join(t.TempDir(), "tree.gob")
	require.NoError(t, clf.Save(path))

	loaded := NewClassifier[int]()
	require.NoError(t, loaded.Load(path))

	want, err := clf.Predict(X)
	require.NoError(t, err)
	got, err := loaded.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	a, _ := clf.Tree()
	b, _ := loaded.Tree()
	assert.Equal(t, a, b)
}

func TestClassifierLoadMissingFile(t *testing.T) {
	clf := NewClassifier[int]()
	assert.Error(t, clf.Load(filepath.Join(t.TempDir(), "missing.gob")))
}

func TestClassifierSetTreeValidates(t *testing.T) {
	clf := NewClassifier[int]()
	assert.Error(t, clf.SetTree(nil))
	assert.Error(t, clf.SetTree(&Tree[int]{}))

	_, err := clf.Tree()
	assert.Error(t, err)

	require.NoError(t, clf.SetTree(scenarioTree(t)))
	got, err := clf.PredictOne([]float64{4, 4})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestClassifierConcurrentFitAndPredict(t *testing.T) {
	clf := NewClassifier[int]()
	require.NoError(t, clf.Fit(scenarioX, scenarioY))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, clf.Fit(scenarioX, scenarioY))
		}()
		go func() {
			defer wg.Done()
			got, err := clf.Predict(scenarioX)
			assert.NoError(t, err)
			assert.Equal(t, scenarioY, got)
		}()
	}
	wg.Wait()
}
