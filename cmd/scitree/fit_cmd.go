package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scitree/metrics"
	"github.com/YuminosukeSato/scitree/model_selection"
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"github.com/YuminosukeSato/scitree/tree"
)

type fitCmdConfig struct {
	*rootCmdConfig
	dataInput    string
	output       string
	classFeature string
	testSize     float64
	seed         uint64
}

func fitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &fitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a tree to a set of data",
		Long:  `Fit a classification tree to CSV data to predict the class column, and write it as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			return config.run(cmd)
		},
	}
	cmd.Flags().StringVarP(&config.dataInput, "input", "i", "", "path to an input CSV file with a header row (defaults to STDIN)")
	cmd.Flags().StringVarP(&config.output, "output", "o", "", "path to a file to which the fitted tree will be written in JSON format (defaults to STDOUT)")
	cmd.Flags().StringVarP(&config.classFeature, "class-feature", "c", "", "name of the column the tree should predict (required)")
	cmd.Flags().Float64Var(&config.testSize, "test-size", 0, "fraction of rows held out to report test accuracy, 0 to train on every row")
	cmd.Flags().Uint64Var(&config.seed, "seed", 42, "seed for the train/test shuffle")
	addTreeFlags(cmd.Flags())
	return cmd
}

func (fc *fitCmdConfig) Validate() error {
	if fc.classFeature == "" {
		return errors.New("required class-feature flag was not set")
	}
	if fc.testSize < 0 || fc.testSize >= 1 {
		return errors.NewValidationError("test-size", "must be in [0, 1)", fc.testSize)
	}
	return nil
}

func (fc *fitCmdConfig) run(cmd *cobra.Command) error {
	logger := fc.logger("fit")
	ds, err := readDatasetFile(fc.dataInput, cmd.InOrStdin(), fc.classFeature, true)
	if err != nil {
		return err
	}

	XTrain, yTrain := ds.X, ds.y
	var XTest [][]float64
	var yTest []string
	if fc.testSize > 0 {
		XTrain, XTest, yTrain, yTest, err = model_selection.TrainTestSplit(ds.X, ds.y, fc.testSize, fc.seed)
		if err != nil {
			return err
		}
	}

	clf := tree.NewClassifier[string](append(fc.cfg.options(), tree.WithLogger(logger))...)
	if err := clf.Fit(XTrain, yTrain); err != nil {
		return errors.Wrap(err, "fitting the tree")
	}
	fitted, err := clf.Tree()
	if err != nil {
		return err
	}

	if err := logAccuracy(logger, clf, "training accuracy", XTrain, yTrain); err != nil {
		return err
	}
	if len(XTest) > 0 {
		if err := logAccuracy(logger, clf, "test accuracy", XTest, yTest); err != nil {
			return err
		}
	}

	return writeModel(fc.output, cmd.OutOrStdout(), &modelFile{
		Features: ds.features,
		Class:    fc.classFeature,
		Params:   clf.GetParams(),
		Tree:     fitted,
	})
}

func logAccuracy(logger log.Logger, clf *tree.Classifier[string], msg string, X [][]float64, y []string) error {
	pred, err := clf.Predict(X)
	if err != nil {
		return err
	}
	acc, err := metrics.AccuracyLabels(y, pred)
	if err != nil {
		return err
	}
	logger.Info(msg,
		log.OperationKey, log.OperationScore,
		log.SamplesKey, len(X),
		log.AccuracyKey, acc,
	)
	return nil
}
