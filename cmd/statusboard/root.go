package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/statusboard/internal/config"
	"github.com/okian/statusboard/pkg/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "statusboard",
		Short:         "Dashboard for the development assistant backend",
		Long:          "statusboard shows the backend's health status and greeting message, with manual refresh controls.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd(), newCheckCmd(), newStubCmd())
	return root
}

// setup initializes logging and loads configuration (defaults -> file -> env),
// then applies flag overrides.
func setup(ctx context.Context, cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
		return nil, nil, fmt.Errorf("initialize logging: %w", err)
	}
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, nil, err
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, log, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if f := flags.Lookup("backend-url"); f != nil && f.Changed {
		cfg.BackendURL = f.Value.String()
	}
	if f := flags.Lookup("addr"); f != nil && f.Changed {
		if cmd.Name() == "stub" {
			cfg.StubAddr = f.Value.String()
		} else {
			cfg.Addr = f.Value.String()
		}
	}
	if f := flags.Lookup("timeout"); f != nil && f.Changed {
		d, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.RequestTimeout = d
	}
	return cfg.Validate()
}
