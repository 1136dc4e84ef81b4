package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scitree/metrics"
	"github.com/YuminosukeSato/scitree/pkg/log"
)

type predictCmdConfig struct {
	*rootCmdConfig
	modelInput   string
	dataInput    string
	classFeature string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of every row of a CSV file",
		Long: `Use a fitted tree to predict the class of every row of a CSV file, printing one label per line.
Feature columns are matched by name. If the class column is present, accuracy is logged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.run(cmd)
		},
	}
	cmd.Flags().StringVarP(&config.modelInput, "model", "m", "", "path to a JSON model written by fit (required)")
	cmd.Flags().StringVarP(&config.dataInput, "input", "i", "", "path to an input CSV file with a header row (defaults to STDIN)")
	cmd.Flags().StringVarP(&config.classFeature, "class-feature", "c", "", "name of the class column, if the input has one (defaults to the model's)")
	return cmd
}

func (pc *predictCmdConfig) run(cmd *cobra.Command) error {
	logger := pc.logger("predict")
	m, err := readModel(pc.modelInput)
	if err != nil {
		return err
	}
	class := pc.classFeature
	if class == "" {
		class = m.Class
	}
	ds, err := readDatasetFile(pc.dataInput, cmd.InOrStdin(), class, false)
	if err != nil {
		return err
	}
	X, err := ds.reorder(m.Features)
	if err != nil {
		return err
	}

	pred, err := m.Tree.Predict(X)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, p := range pred {
		fmt.Fprintln(out, p)
	}

	if ds.y != nil && len(pred) > 0 {
		acc, err := metrics.AccuracyLabels(ds.y, pred)
		if err != nil {
			return err
		}
		logger.Info("prediction accuracy",
			log.OperationKey, log.OperationPredict,
			log.PredsKey, len(pred),
			log.AccuracyKey, acc,
		)
	}
	return nil
}
