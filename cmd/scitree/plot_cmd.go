package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scitree/pkg/errors"
	"github.com/YuminosukeSato/scitree/plot"
)

type plotCmdConfig struct {
	*rootCmdConfig
	modelInput string
	output     string
	title      string
}

func plotCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &plotCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render a fitted tree as an image",
		Long:  `Render a fitted tree to an image file. The format follows the output extension (png, svg, pdf, ...).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.output == "" {
				return errors.New("required output flag was not set")
			}
			m, err := readModel(config.modelInput)
			if err != nil {
				return err
			}
			if err := plot.Save(config.output, m.Tree, plot.Options{
				FeatureNames: m.Features,
				Title:        config.title,
			}); err != nil {
				return err
			}
			config.logger("plot").Info("tree rendered", "path", config.output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&config.modelInput, "model", "m", "", "path to a JSON model written by fit (required)")
	cmd.Flags().StringVarP(&config.output, "output", "o", "", "path of the image to write (required)")
	cmd.Flags().StringVar(&config.title, "title", "", "plot title")
	return cmd
}
