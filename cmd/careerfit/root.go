package main

import (
	"github.com/spf13/cobra"

	"careerfit-workers/internal/app"
	"careerfit-workers/internal/common/config"
	"careerfit-workers/internal/common/logger"
)

const appName = "careerfit"

var (
	// Used for flags.
	cfgFile string
	debug   bool
	jsonLog bool

	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          appName,
		Short:        "careerfit ranks career archetypes against a student's learning history",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is configs/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	cmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")

	cmd.AddCommand(newServeCmd(), newConsumeCmd(), newPredictCmd(), newCatalogCmd())
	return cmd
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	return config.Load()
}

// newLogger applies the --debug and --json flags over the config's logging
// section. cfg may be nil for commands that run without configuration.
func newLogger(cfg *config.Config) logger.Logger {
	level, format := "info", "console"
	if cfg != nil {
		level, format = cfg.Logging.Level, cfg.Logging.Format
	}
	if debug {
		level = "debug"
	}
	if jsonLog {
		format = "json"
	}
	if cfg == nil {
		return logger.NewStructured(level, format)
	}
	c := *cfg
	c.Logging.Level, c.Logging.Format = level, format
	return app.NewLogger(&c)
}
