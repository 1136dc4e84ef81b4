// Command scitree fits decision trees to CSV data, uses them to predict, and
// renders them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scitree/pkg/log"
)

type rootCmdConfig struct {
	configPath string
	logLevel   string
	cfg        Config
}

func main() {
	if err := cliParser().Execute(); err != nil {
		log.GetLoggerWithName("cli").Error("command failed", err)
		fmt.Fprintln(os.Stderr, "scitree:", err)
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:           "scitree",
		Short:         "scitree grows decision trees for classification",
		Long:          `A tool to grow classification trees from CSV data, use them to make predictions and plot them`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.load(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&config.configPath, "config", "", "path to a YAML file with default hyperparameters and log level")
	rootCmd.PersistentFlags().StringVar(&config.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides the config file)")
	rootCmd.AddCommand(versionCmd(), fitCmd(config), predictCmd(config), plotCmd(config), cvCmd(config))
	return rootCmd
}

// load reads the config file, lets explicitly set flags override it, and
// configures logging to stderr.
func (rc *rootCmdConfig) load(cmd *cobra.Command) error {
	cfg := DefaultConfig()
	if rc.configPath != "" {
		var err error
		if cfg, err = LoadConfig(rc.configPath); err != nil {
			return err
		}
	}
	if err := cfg.applyFlags(cmd.Flags()); err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = rc.logLevel
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetupLoggerWithWriter(cmd.ErrOrStderr(), level)
	rc.cfg = cfg
	return nil
}

func (rc *rootCmdConfig) logger(command string) log.Logger {
	return log.GetLoggerWithName("cli").With(log.ComponentKey, "cli", "command", command)
}
