package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/openfroyo/argcheck/pkg/report"
	"github.com/openfroyo/argcheck/pkg/settings"
)

type checkOutput struct {
	Files    []string          `json:"files"`
	Valid    bool              `json:"valid"`
	Problems settings.Problems `json:"problems,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func newCheckCommand() *cobra.Command {
	var (
		watch        bool
		allowUnknown bool
	)

	cmd := &cobra.Command{
		Use:   "check <config...>",
		Short: "Validate configuration files against the declared settings",
		Long: `Validate configuration files against the settings declared in the manifest.

Files are merged in the order given, later files overriding earlier ones.
Supported formats are YAML, TOML, JSON and CUE, chosen by extension.

With --watch the files are validated again whenever they change, and
Prometheus metrics are served when --metrics-addr is set.`,
		Example: `  # Validate a configuration file
  argcheck check config.yaml

  # Merge a local override and keep validating on change
  argcheck check config.yaml local.toml --watch --metrics-addr :9090`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tel := telemetryFrom(cmd)
			logger := tel.Logger.NewComponentLogger("check").Zerolog()

			_, meta, err := loadManifest()
			if err != nil {
				return err
			}

			opts := []settings.Option{
				settings.WithReporter(report.NewLogReporter(logger)),
				settings.WithRecorder(tel.Metrics),
			}
			if allowUnknown {
				opts = append(opts, settings.AllowUnknown())
			}
			watcher := settings.NewWatcher(args, meta, settings.NewChecker(opts...), settings.WithWatchLogger(logger))

			if !watch {
				res := watcher.Check()
				if err := printCheck(cmd.OutOrStdout(), args, res); err != nil {
					return err
				}
				if res.Err != nil {
					return errFailed
				}
				return nil
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return tel.Metrics.Serve(ctx)
			})
			g.Go(func() error {
				return watcher.Run(ctx, func(res settings.Result) {
					if err := printCheck(cmd.OutOrStdout(), args, res); err != nil {
						logger.Error().Err(err).Msg("Failed to print check result")
					}
				})
			})
			return g.Wait()
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "validate again whenever a file changes")
	cmd.Flags().BoolVar(&allowUnknown, "allow-unknown", false, "do not report undeclared settings")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func printCheck(w io.Writer, files []string, res settings.Result) error {
	out := checkOutput{Files: files, Valid: res.Err == nil}
	var problems settings.Problems
	if errors.As(res.Err, &problems) {
		out.Problems = problems
	} else if res.Err != nil {
		out.Error = res.Err.Error()
	}
	for i := range out.Problems {
		out.Problems[i].Value = jsonValue(out.Problems[i].Value)
	}

	if jsonOutput {
		return writeJSON(w, out)
	}

	switch {
	case out.Valid:
		fmt.Fprintf(w, "Configuration is valid (%d file(s))\n", len(files))
	case out.Error != "":
		fmt.Fprintf(w, "Configuration could not be loaded: %s\n", out.Error)
	default:
		fmt.Fprintf(w, "Configuration has %d problem(s):\n", len(out.Problems))
		for _, p := range out.Problems {
			fmt.Fprintf(w, "\n%s\n", report.Format(p.Path, p.Message, p.Value, report.ContextConfiguration))
		}
	}
	return nil
}
