package app

import (
	"fmt"

	"github.com/RyanBlaney/chord-scout/configs"
	"github.com/RyanBlaney/chord-scout/pkg/logging"
)

// loadAndMergeConfig loads configuration from viper and merges CLI flag
// overrides on top.
func loadAndMergeConfig(ctx *Context) (*configs.Config, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load base configuration: %w", err)
	}

	mergeContextOverrides(config, ctx)
	applyLogLevel(config, ctx)

	if err := configs.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// mergeContextOverrides applies CLI flags over the loaded configuration.
// Flags win over config file values, which win over defaults.
func mergeContextOverrides(config *configs.Config, ctx *Context) {
	if ctx.OutputFormat != "" {
		config.OutputFormat = ctx.OutputFormat
	} else {
		ctx.OutputFormat = config.OutputFormat
	}

	if ctx.DatabasePath != "" {
		config.Library.DatabasePath = ctx.DatabasePath
	}

	if ctx.Verbose {
		config.Verbose = true
		config.LogLevel = "debug"
	}
	if ctx.Quiet {
		config.LogLevel = "error"
	}
}

// applyLogLevel pushes the configured log level onto the context logger
// when no explicit verbosity flag was given.
func applyLogLevel(config *configs.Config, ctx *Context) {
	if ctx.Verbose || ctx.Quiet || ctx.Logger == nil {
		return
	}
	ctx.Logger.SetLevel(logging.ParseLevel(config.LogLevel))
}
