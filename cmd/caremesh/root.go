package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caremesh/caremesh/config"
	"github.com/caremesh/caremesh/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "caremesh",
		Short:         "Conversational health assistant",
		Long:          "caremesh walks a user through identity verification, mood logging, glucose logging and meal planning via specialized conversational agents.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newChatCmd(), newSeedCmd())
	return cmd
}

// loadRuntime resolves configuration and builds the logger shared by commands.
func loadRuntime() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.NewSlogLogger(cfg.Logger.Level, cfg.Logger.Format, os.Stderr)
	return cfg, logger, nil
}
