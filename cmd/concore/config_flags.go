package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"concore/internal/config"
)

// loadConfig resolves the --config persistent flag into a config.Config,
// falling back to config.Default() when no path was given.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
