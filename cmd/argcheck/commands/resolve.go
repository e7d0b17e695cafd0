package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openfroyo/argcheck/pkg/arguments"
	"github.com/openfroyo/argcheck/pkg/report"
)

type resolvedArgument struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
	Error string `json:"error,omitempty"`
}

type resolveOutput struct {
	InvocationID string             `json:"invocation_id"`
	Command      string             `json:"command"`
	Arguments    []resolvedArgument `json:"arguments"`
	Rest         []string           `json:"rest"`
	Valid        bool               `json:"valid"`
}

func newResolveCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "resolve <command> [tokens...]",
		Short: "Resolve positional tokens against a command declaration",
		Long: `Resolve positional tokens against the arguments a command declares.

Each declared argument takes the token at its position, falling back to its
default. The value is converted by the argument's converter and then
validated. Tokens beyond the declared arguments are returned as rest.`,
		Example: `  # Resolve tokens for the serve command
  argcheck resolve serve 8080 localhost

  # Pass tokens that look like flags
  argcheck resolve --json serve -- -1

  # Fail when any argument is invalid
  argcheck resolve --strict serve abc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tel := telemetryFrom(cmd)

			registry, _, err := loadManifest()
			if err != nil {
				return err
			}

			name, tokens := args[0], args[1:]
			logger := tel.Logger.NewComponentLogger("resolve").WithCommand(name).Zerolog()
			if _, err := registry.Lookup(name); err != nil {
				if hint := report.FormatSuggestions(report.Suggest(name, registry.Names())); hint != "" {
					return fmt.Errorf("%w\n%s", err, hint)
				}
				return err
			}

			resolver := arguments.NewResolver(
				arguments.WithReporter(report.NewLogReporter(logger)),
				arguments.WithRecorder(tel.Metrics),
				arguments.WithLogger(logger),
			)
			parsed := resolver.Resolve(name, registry, tokens)

			out := resolveOutput{
				InvocationID: parsed.InvocationID,
				Command:      parsed.Command,
				Arguments:    make([]resolvedArgument, 0, len(parsed.Arguments)),
				Rest:         parsed.Rest,
				Valid:        parsed.Err() == nil,
			}
			for _, arg := range parsed.Arguments {
				ra := resolvedArgument{Name: arg.Name, Value: jsonValue(arg.Value)}
				if arg.Err != nil {
					ra.Error = arg.Err.Error()
				}
				out.Arguments = append(out.Arguments, ra)
			}

			if jsonOutput {
				if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			} else {
				printResolution(cmd, out, parsed)
			}

			if strict && !out.Valid {
				return fmt.Errorf("%w: %d invalid argument(s)", errFailed, len(parsed.Failures()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any argument is invalid")

	return cmd
}

func printResolution(cmd *cobra.Command, out resolveOutput, parsed *arguments.Parsed) {
	w := cmd.OutOrStdout()
	tw := newTable(w)
	fmt.Fprintln(tw, "ARGUMENT\tVALUE\tSTATUS")
	for _, arg := range parsed.Arguments {
		status := "ok"
		if arg.Err != nil {
			status = "invalid"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", arg.Name, displayValue(arg.Value), status)
	}
	_ = tw.Flush()

	if len(out.Rest) > 0 {
		fmt.Fprintf(w, "\nRest: %v\n", out.Rest)
	}
	for _, arg := range parsed.Failures() {
		fmt.Fprintf(w, "\n%s", report.Format(arg.Name, arg.Err.Error(), arg.Value, report.ContextArgument))
		fmt.Fprintln(w)
	}
}
