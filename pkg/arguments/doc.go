// Package arguments turns positional command-line tokens into named, typed
// and validated values.
//
// # Overview
//
// A Command declares an ordered list of ArgumentSpec values. Resolving an
// invocation walks the declarations in order and, for each one:
//
//  1. takes the token at the same position, or the declared default when the
//     token is missing;
//  2. picks a converter: the explicit Converter, else the validator's own
//     converter, else the table entry for the declared Kind, else the table
//     entry for the default value's kind;
//  3. converts the value and validates it.
//
// Failures never stop resolution. Each failure is stored on its Argument,
// sent to the configured report.Reporter and resolution continues with the
// converted, invalid value. Callers decide whether to abort by inspecting
// Parsed.Err.
//
// Tokens are consumed positionally: Rest is always the input with as many
// leading tokens removed as there are declared arguments.
//
// # Usage Example
//
//	registry := arguments.NewRegistry()
//	_ = registry.Register(arguments.Command{
//	    Name: "scale",
//	    Arguments: []arguments.ArgumentSpec{
//	        {Name: "count", Validator: validation.Integer, Default: 1},
//	    },
//	})
//
//	resolver := arguments.NewResolver(arguments.WithReporter(reporter))
//	parsed := resolver.Resolve("scale", registry, os.Args[2:])
//	if err := parsed.Err(); err != nil {
//	    os.Exit(2)
//	}
package arguments
