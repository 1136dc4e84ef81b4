package main

import (
	"bytes"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/tree"
)

// Config holds the hyperparameters and logging settings that can be given in
// a YAML file. Command-line flags take precedence over the file.
type Config struct {
	MaxDepth        int    `yaml:"max_depth"`
	Criterion       string `yaml:"criterion"`
	MinSamplesSplit int    `yaml:"min_samples_split"`
	MinSamplesLeaf  int    `yaml:"min_samples_leaf"`
	LogLevel        string `yaml:"log_level"`
}

// DefaultConfig mirrors the tree package defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:        tree.Unbounded,
		Criterion:       string(tree.CriterionEntropy),
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		LogLevel:        "info",
	}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep their
// default values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(raw)) > 0 {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// hyperparameter flags shared by the commands that fit trees.
const (
	flagMaxDepth        = "max-depth"
	flagCriterion       = "criterion"
	flagMinSamplesSplit = "min-samples-split"
	flagMinSamplesLeaf  = "min-samples-leaf"
)

func addTreeFlags(fs *pflag.FlagSet) {
	fs.Int(flagMaxDepth, tree.Unbounded, "maximum number of decision levels, -1 for no limit")
	fs.String(flagCriterion, string(tree.CriterionEntropy), "split criterion: entropy or gini")
	fs.Int(flagMinSamplesSplit, 2, "minimum number of samples required to split a node")
	fs.Int(flagMinSamplesLeaf, 1, "minimum number of samples each side of a split must keep")
}

// applyFlags overrides cfg with the hyperparameter flags the user set
// explicitly. Flags that are not defined on the command are ignored.
func (c *Config) applyFlags(fs *pflag.FlagSet) error {
	var err error
	if fs.Changed(flagMaxDepth) {
		if c.MaxDepth, err = fs.GetInt(flagMaxDepth); err != nil {
			return errors.WithStack(err)
		}
	}
	if fs.Changed(flagCriterion) {
		if c.Criterion, err = fs.GetString(flagCriterion); err != nil {
			return errors.WithStack(err)
		}
	}
	if fs.Changed(flagMinSamplesSplit) {
		if c.MinSamplesSplit, err = fs.GetInt(flagMinSamplesSplit); err != nil {
			return errors.WithStack(err)
		}
	}
	if fs.Changed(flagMinSamplesLeaf) {
		if c.MinSamplesLeaf, err = fs.GetInt(flagMinSamplesLeaf); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// options converts the config into tree options.
func (c Config) options() []tree.Option {
	return []tree.Option{
		tree.MaxDepth(c.MaxDepth),
		tree.Criterion(tree.CriterionType(c.Criterion)),
		tree.MinSamplesSplit(c.MinSamplesSplit),
		tree.MinSamplesLeaf(c.MinSamplesLeaf),
	}
}
