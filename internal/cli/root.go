// Package cli wires the voicestudio commands.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Ashish-Jain-dev/voicestudio/internal/api"
	"github.com/Ashish-Jain-dev/voicestudio/internal/config"
	"github.com/Ashish-Jain-dev/voicestudio/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	paths config.Paths
	log   *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voicestudio",
		Short: "Build and test voice AI agents",
		Long:  "Voice Studio manages voice AI agents on a studio backend and runs live voice test sessions against them from the terminal.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}
			cfg, err := config.Load(paths.Config)
			if err != nil {
				cfg = config.Defaults()
			}
			level := logLevel
			if level == "" {
				level = cfg.Logging.Level
			}
			log = logging.NewStyled(cfg.Logging.ConsoleStyle, level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.voicestudio/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newAgentCmd())
	cmd.AddCommand(newTemplatesCmd())
	cmd.AddCommand(newTestCmd())
	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newActivityCmd())
	cmd.AddCommand(newAnalyticsCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// loadConfig loads the resolved config, falling back to defaults when
// no config file exists yet.
func loadConfig() config.Config {
	cfg, err := config.Load(paths.Config)
	if err != nil {
		return config.Defaults()
	}
	return cfg
}

// newAPIClient builds the backend client from configuration.
func newAPIClient(cfg config.Config) *api.Client {
	c := api.New(cfg.API.BaseURL)
	if cfg.API.TimeoutSeconds > 0 {
		c = c.WithUnaryTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second)
	}
	if cfg.API.Token != "" {
		c = c.WithToken(cfg.API.Token)
	}
	return c
}
