package tree

import (
	"sync"
	"time"

	"github.com/YuminosukeSato/scitree/core/model"
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

const modelName = "DecisionTree"

// Classifier holds the hyperparameters of a decision tree and, after a
// successful Fit, the fitted Tree. Prediction methods are safe for
// concurrent use, including concurrently with Fit: callers observe either
// the previous tree or the new one.
type Classifier[L comparable] struct {
	state *model.StateManager

	mu   sync.RWMutex
	cfg  config
	tree *Tree[L]
}

// Compile-time interface checks.
var (
	_ model.ParameterGetter = (*Classifier[int])(nil)
	_ model.ParameterSetter = (*Classifier[int])(nil)
)

// NewClassifier returns an unfitted classifier. Options are validated by Fit.
func NewClassifier[L comparable](opts ...Option) *Classifier[L] {
	return &Classifier[L]{
		state: model.NewStateManager(),
		cfg:   newConfig(opts),
	}
}

// Fit builds a new tree from X and y and replaces the current one. On error
// the previously fitted tree, if any, is kept.
func (c *Classifier[L]) Fit(X [][]float64, y []L) (err error) {
	defer errors.Recover(&err, "DecisionTree.Fit")

	c.mu.RLock()
	cfg := c.cfg
	c.mu.RUnlock()

	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("tree").With(log.ModelNameKey, modelName)
	}
	logger := cfg.logger

	if err := cfg.validate(); err != nil {
		return err
	}
	if err := validateTraining(X, y); err != nil {
		return err
	}

	logger.Debug("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(X),
		log.FeaturesKey, len(X[0]),
		log.MaxDepthKey, cfg.maxDepth,
		log.CriterionKey, string(cfg.criterion),
	)
	start := time.Now()

	t := build(X, y, cfg)

	c.mu.Lock()
	c.tree = t
	c.mu.Unlock()
	c.state.MarkFitted(t.NFeatures, len(X))

	logger.Info("fit finished",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(X),
		log.FeaturesKey, t.NFeatures,
		log.ClassesKey, len(t.Classes),
		log.TreeDepthKey, t.Depth(),
		log.TreeNodesKey, t.NodeCount(),
		log.TreeLeavesKey, t.LeafCount(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func (c *Classifier[L]) fitted(method string) (*Tree[L], error) {
	if err := c.state.RequireFitted(modelName, method); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tree == nil {
		return nil, errors.NewNotFittedError(modelName, method)
	}
	return c.tree, nil
}

// Tree returns the fitted tree.
func (c *Classifier[L]) Tree() (*Tree[L], error) {
	return c.fitted("Tree")
}

// PredictOne returns the predicted label for a single row.
func (c *Classifier[L]) PredictOne(row []float64) (L, error) {
	t, err := c.fitted("PredictOne")
	if err != nil {
		var zero L
		return zero, err
	}
	return t.PredictOne(row)
}

// Predict returns one label per row of X, in order.
func (c *Classifier[L]) Predict(X [][]float64) ([]L, error) {
	t, err := c.fitted("Predict")
	if err != nil {
		return nil, err
	}
	return t.Predict(X)
}

// PredictProba returns, for each row of X, the class distribution of its
// leaf aligned with Classes.
func (c *Classifier[L]) PredictProba(X [][]float64) ([][]float64, error) {
	t, err := c.fitted("PredictProba")
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if out[i], err = t.proba(i, row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Classes returns the labels seen during fitting, in first-seen order.
func (c *Classifier[L]) Classes() ([]L, error) {
	t, err := c.fitted("Classes")
	if err != nil {
		return nil, err
	}
	return append([]L(nil), t.Classes...), nil
}

// GetParams returns the hyperparameters under scikit-learn names.
func (c *Classifier[L]) GetParams() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.params()
}

// SetParams updates hyperparameters by scikit-learn name. It does not refit.
func (c *Classifier[L]) SetParams(params map[string]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.apply(params)
}

// SetTree installs an already fitted tree, for example one decoded from
// JSON. The tree is validated first.
func (c *Classifier[L]) SetTree(t *Tree[L]) error {
	if t == nil {
		return errors.NewValueError("DecisionTree.SetTree", "nil tree")
	}
	if err := t.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.tree = t
	c.mu.Unlock()
	c.state.MarkFitted(t.NFeatures, t.Nodes[0].Samples)
	return nil
}

// Save writes the fitted tree to path in gob format.
func (c *Classifier[L]) Save(path string) error {
	t, err := c.fitted("Save")
	if err != nil {
		return err
	}
	return model.SaveModel(t, path)
}

// Load replaces the current tree with one written by Save.
func (c *Classifier[L]) Load(path string) error {
	var t Tree[L]
	if err := model.LoadModel(&t, path); err != nil {
		return err
	}
	return c.SetTree(&t)
}
