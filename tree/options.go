package tree

import (
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

// Unbounded disables the depth cap.
const Unbounded = -1

// CriterionType names the impurity measure used to score splits.
type CriterionType string

const (
	// CriterionEntropy scores splits by information gain (Shannon entropy).
	CriterionEntropy CriterionType = "entropy"
	// CriterionGini scores splits by the decrease in Gini impurity.
	CriterionGini CriterionType = "gini"
)

func (c CriterionType) impurity() (func(counts []int, n int) float64, error) {
	switch c {
	case CriterionEntropy, "":
		return entropyCounts, nil
	case CriterionGini:
		return giniCounts, nil
	default:
		return nil, errors.NewValidationError("criterion", "must be \"entropy\" or \"gini\"", string(c))
	}
}

type config struct {
	maxDepth        int
	criterion       CriterionType
	minSamplesSplit int
	minSamplesLeaf  int
	logger          log.Logger
}

func defaultConfig() config {
	return config{
		maxDepth:        Unbounded,
		criterion:       CriterionEntropy,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
	}
}

func (c config) validate() error {
	if c.maxDepth < Unbounded {
		return errors.NewValidationError("max_depth", "must be >= 0, or Unbounded (-1)", c.maxDepth)
	}
	if c.minSamplesSplit < 2 {
		return errors.NewValidationError("min_samples_split", "must be >= 2", c.minSamplesSplit)
	}
	if c.minSamplesLeaf < 1 {
		return errors.NewValidationError("min_samples_leaf", "must be >= 1", c.minSamplesLeaf)
	}
	_, err := c.criterion.impurity()
	return err
}

func (c config) params() map[string]interface{} {
	return map[string]interface{}{
		"max_depth":         c.maxDepth,
		"criterion":         string(c.criterion),
		"min_samples_split": c.minSamplesSplit,
		"min_samples_leaf":  c.minSamplesLeaf,
	}
}

// apply sets the parameters named in params. Unknown names and values of the
// wrong type are rejected and c is left untouched.
func (c *config) apply(params map[string]interface{}) error {
	next := *c
	for name, v := range params {
		switch name {
		case "max_depth":
			n, ok := toInt(v)
			if !ok {
				return errors.NewValidationError(name, "must be an integer", v)
			}
			next.maxDepth = n
		case "min_samples_split":
			n, ok := toInt(v)
			if !ok {
				return errors.NewValidationError(name, "must be an integer", v)
			}
			next.minSamplesSplit = n
		case "min_samples_leaf":
			n, ok := toInt(v)
			if !ok {
				return errors.NewValidationError(name, "must be an integer", v)
			}
			next.minSamplesLeaf = n
		case "criterion":
			switch s := v.(type) {
			case string:
				next.criterion = CriterionType(s)
			case CriterionType:
				next.criterion = s
			default:
				return errors.NewValidationError(name, "must be a string", v)
			}
		default:
			return errors.NewValidationError(name, "unknown parameter", v)
		}
	}
	if err := next.validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// toInt accepts the integer shapes produced by Go callers and by JSON/YAML
// decoders. Floats must be integral.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case nil:
		return Unbounded, true
	default:
		return 0, false
	}
}

// Option configures Build and NewClassifier.
type Option func(*config)

// MaxDepth caps the number of decision levels between the root and any leaf.
// MaxDepth(0) yields a single leaf; Unbounded removes the cap.
func MaxDepth(d int) Option {
	return func(c *config) { c.maxDepth = d }
}

// Criterion selects the impurity measure. The default is CriterionEntropy.
func Criterion(crit CriterionType) Option {
	return func(c *config) { c.criterion = crit }
}

// MinSamplesSplit is the smallest subset that may be split. Default 2.
func MinSamplesSplit(n int) Option {
	return func(c *config) { c.minSamplesSplit = n }
}

// MinSamplesLeaf is the fewest rows a split may send to either side. Default 1.
func MinSamplesLeaf(n int) Option {
	return func(c *config) { c.minSamplesLeaf = n }
}

// WithLogger routes fit and split logging to l instead of the package logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, o := range opts {
		o(&c)
	}
	return c
}
