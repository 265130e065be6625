package main

import (
	"geo-forensics-service/internal/app"
	"geo-forensics-service/internal/config"
	"geo-forensics-service/internal/platform/logging"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "geoforensics",
		Short:         "Geolocate photographic evidence and measure the resulting trajectory",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("GEOFORENSICS_CONFIG"), "path to a YAML config file")

	cmd.AddCommand(newScanCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))

	return cmd
}

// buildApp loads configuration, installs the logger, and wires the pipeline.
// Logs go to stderr so stdout stays clean for results and the MCP stdio transport.
func (o *rootOptions) buildApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat))

	return app.New(cmd.Context(), cfg)
}
