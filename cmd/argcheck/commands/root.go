package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openfroyo/argcheck/pkg/arguments"
	"github.com/openfroyo/argcheck/pkg/manifest"
	"github.com/openfroyo/argcheck/pkg/settings"
	"github.com/openfroyo/argcheck/pkg/telemetry"
)

var (
	// Global flags
	manifestPath string
	verbose      bool
	jsonOutput   bool

	// Set by commands that expose metrics.
	metricsAddr string
)

// defaultManifests are tried in order when --manifest is not given.
var defaultManifests = []string{"argcheck.yaml", "argcheck.yml", "argcheck.toml", "argcheck.json"}

// errFailed signals a failure that was already printed.
var errFailed = errors.New("validation failed")

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "argcheck",
		Short: "Validate command arguments and configuration",
		Long: `argcheck resolves positional command arguments and validates configuration
files against declarations written in a manifest.

Features:
  - Composable validators (string, integer, arrayof(...), oneof(...), required(...))
  - Kind based conversion of raw tokens
  - YAML, TOML, JSON and CUE configuration files
  - "Did you mean" suggestions for unknown commands and settings
  - Prometheus metrics while watching configuration files`,
		Version:            fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:       true,
		PersistentPreRunE:  setupTelemetry,
		PersistentPostRunE: shutdownTelemetry,
	}

	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "manifest file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newDescribeCommand())
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}

// setupTelemetry loads the environment configuration, applies flag
// overrides and stores the telemetry in the command context.
func setupTelemetry(cmd *cobra.Command, _ []string) error {
	cfg, err := telemetry.LoadConfig(".env")
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.ListenAddress = metricsAddr
	}

	tel, err := telemetry.NewTelemetry(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialise telemetry: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(tel.WithContext(ctx))
	return nil
}

func shutdownTelemetry(cmd *cobra.Command, _ []string) error {
	if tel := telemetry.FromTelemetryContext(cmd.Context()); tel != nil {
		return tel.Shutdown(cmd.Context())
	}
	return nil
}

func telemetryFrom(cmd *cobra.Command) *telemetry.Telemetry {
	if tel := telemetry.FromTelemetryContext(cmd.Context()); tel != nil {
		return tel
	}
	tel, _ := telemetry.NewTelemetry(telemetry.DefaultConfig())
	return tel
}

// loadManifest builds the registry and settings declarations from the
// manifest named by --manifest or the first default manifest found.
func loadManifest() (arguments.Registry, settings.Meta, error) {
	path := manifestPath
	if path == "" {
		for _, candidate := range defaultManifests {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return nil, nil, fmt.Errorf("no manifest found: pass --manifest or create one of %v", defaultManifests)
	}
	return manifest.Build(path)
}
