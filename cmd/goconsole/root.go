package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "goconsole",
		Short: "Admin console shell: session guard and theme preference",
		Long: `goconsole serves the admin console HTTP shell and manages the persisted
light/dark theme preference.

Configuration is read from GOCONSOLE_* environment variables.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newThemeCmd(), newHashPasswordCmd())
	return root
}

// loadEnv parses the environment and installs the default logger.
func loadEnv() (envConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return envConfig{}, err
	}
	initLogger(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}
