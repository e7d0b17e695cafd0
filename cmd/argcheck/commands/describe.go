package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openfroyo/argcheck/pkg/arguments"
	"github.com/openfroyo/argcheck/pkg/convert"
	"github.com/openfroyo/argcheck/pkg/report"
	"github.com/openfroyo/argcheck/pkg/settings"
	"github.com/openfroyo/argcheck/pkg/validation"
)

type argumentDoc struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Kind        string `json:"kind,omitempty"`
}

type commandDoc struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Arguments   []argumentDoc `json:"arguments"`
}

type describeOutput struct {
	Commands []commandDoc      `json:"commands"`
	Settings []settings.Entry `json:"settings,omitempty"`
}

func newDescribeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [command]",
		Short: "Show the declared arguments and settings",
		Long: `Show type information for declared command arguments and settings.

Without a command name every command and the settings tree are described.`,
		Example: `  # Describe everything in the manifest
  argcheck describe

  # Describe a single command as JSON
  argcheck describe serve --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, meta, err := loadManifest()
			if err != nil {
				return err
			}

			names := registry.Names()
			var out describeOutput
			if len(args) == 1 {
				if _, err := registry.Lookup(args[0]); err != nil {
					if hint := report.FormatSuggestions(report.Suggest(args[0], names)); hint != "" {
						return fmt.Errorf("%w\n%s", err, hint)
					}
					return err
				}
				names = args[:1]
			} else {
				out.Settings = settings.Describe(meta)
			}

			for _, name := range names {
				out.Commands = append(out.Commands, documentCommand(registry[name]))
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			printDescription(cmd, out)
			return nil
		},
	}

	return cmd
}

func documentCommand(c arguments.Command) commandDoc {
	doc := commandDoc{
		Name:        c.Name,
		Description: c.Description,
		Arguments:   make([]argumentDoc, 0, len(c.Arguments)),
	}
	for _, spec := range c.Arguments {
		desc := describeValidator(spec.Validator)
		ad := argumentDoc{
			Name:        spec.Name,
			Description: spec.Description,
			Type:        desc.Type,
			Required:    desc.Required,
			Default:     spec.Default,
		}
		if spec.Kind != convert.KindUnknown {
			ad.Kind = spec.Kind.String()
		}
		doc.Arguments = append(doc.Arguments, ad)
	}
	return doc
}

func describeValidator(v validation.Validator) validation.TypeDescriptor {
	if v == nil {
		return validation.TypeDescriptor{Type: "any"}
	}
	return v.Describe()
}

func printDescription(cmd *cobra.Command, out describeOutput) {
	w := cmd.OutOrStdout()

	for i, c := range out.Commands {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Command: %s\n", c.Name)
		if c.Description != "" {
			fmt.Fprintf(w, "  %s\n", c.Description)
		}
		if len(c.Arguments) == 0 {
			fmt.Fprintln(w, "  (no arguments)")
			continue
		}

		tw := newTable(w)
		fmt.Fprintln(tw, "  POSITION\tNAME\tTYPE\tDEFAULT")
		for pos, arg := range c.Arguments {
			typ := arg.Type
			if arg.Required {
				typ += " (required)"
			}
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", pos, arg.Name, typ, displayValue(arg.Default))
		}
		_ = tw.Flush()
	}

	if len(out.Settings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Settings:")
		tw := newTable(w)
		fmt.Fprintln(tw, "  PATH\tTYPE")
		for _, e := range out.Settings {
			typ := e.Type
			if typ == "" {
				typ = "any"
			}
			if e.Required {
				typ += " (required)"
			}
			fmt.Fprintf(tw, "  %s\t%s\n", e.Path, strings.TrimSpace(typ))
		}
		_ = tw.Flush()
	}
}
