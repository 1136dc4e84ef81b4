package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scitree/model_selection"
	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/pkg/log"
	"github.com/YuminosukeSato/scitree/tree"
)

type cvCmdConfig struct {
	*rootCmdConfig
	dataInput    string
	classFeature string
	folds        int
	shuffle      bool
	seed         uint64
}

func cvCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &cvCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "cv",
		Short: "Estimate accuracy with k-fold cross-validation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.classFeature == "" {
				return errors.New("required class-feature flag was not set")
			}
			ds, err := readDatasetFile(config.dataInput, cmd.InOrStdin(), config.classFeature, true)
			if err != nil {
				return err
			}
			logger := config.logger("cv")
			opts := append(config.cfg.options(), tree.WithLogger(logger))
			res, err := model_selection.CrossValidate(func() *tree.Classifier[string] {
				return tree.NewClassifier[string](opts...)
			}, ds.X, ds.y, model_selection.NewKFold(config.folds, config.shuffle, config.seed))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, s := range res.TestScores {
				fmt.Fprintf(out, "fold %d: %.4f\n", i, s)
			}
			fmt.Fprintf(out, "mean: %.4f (std %.4f)\n", res.MeanScore(), res.StdScore())
			logger.Info("cross-validation finished",
				log.OperationKey, log.OperationScore,
				log.SamplesKey, len(ds.X),
				log.AccuracyKey, res.MeanScore(),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&config.dataInput, "input", "i", "", "path to an input CSV file with a header row (defaults to STDIN)")
	cmd.Flags().StringVarP(&config.classFeature, "class-feature", "c", "", "name of the column the tree should predict (required)")
	cmd.Flags().IntVarP(&config.folds, "folds", "k", 5, "number of folds")
	cmd.Flags().BoolVar(&config.shuffle, "shuffle", true, "shuffle rows before splitting into folds")
	cmd.Flags().Uint64Var(&config.seed, "seed", 42, "seed for the shuffle")
	addTreeFlags(cmd.Flags())
	return cmd
}
