package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/ManuGH/dagskra/internal/daemon"
	xglog "github.com/ManuGH/dagskra/internal/log"
	"github.com/ManuGH/dagskra/internal/version"
)

func newServeCmd(configPath *string, logOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the schedule page server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath, logOut)
		},
	}
}

func runServe(ctx context.Context, configPath string, logOut io.Writer) error {
	// Safe defaults until the config file is loaded.
	xglog.Configure(xglog.Config{
		Level:   "info",
		Output:  logOut,
		Version: version.Version,
	})

	err := daemon.Run(ctx, daemon.Options{
		ConfigPath: configPath,
		Version:    version.Version,
		LogOutput:  logOut,
	})
	if err != nil {
		xglog.WithComponent("daemon").Error().
			Err(err).
			Str(xglog.FieldEvent, "daemon.failed").
			Str(xglog.FieldConfigPath, configPath).
			Msg("daemon stopped with error")
	}
	return err
}
