package arguments

import (
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openfroyo/argcheck/pkg/convert"
	"github.com/openfroyo/argcheck/pkg/report"
	"github.com/openfroyo/argcheck/pkg/validation"
)

// Recorder receives resolution statistics.
type Recorder interface {
	RecordResolution(command string, arguments, failures int)
	RecordValidationFailure(ctx report.Context, class validation.FailureClass)
}

// Argument is one resolved argument.
type Argument struct {
	Name  string
	Value any
	// Err is the validation failure, if any. Value still holds the
	// converted input.
	Err error
}

// Parsed is the result of resolving one invocation.
type Parsed struct {
	InvocationID string
	Command      string
	// Arguments holds one entry per declared argument, in declaration order.
	Arguments []Argument
	// Rest holds the tokens left after positional consumption.
	Rest []string
}

// Values returns the resolved values keyed by argument name.
func (p *Parsed) Values() map[string]any {
	values := make(map[string]any, len(p.Arguments))
	for _, arg := range p.Arguments {
		values[arg.Name] = arg.Value
	}
	return values
}

// Get returns the value stored for name.
func (p *Parsed) Get(name string) (any, bool) {
	for _, arg := range p.Arguments {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// Failures returns the arguments that did not validate.
func (p *Parsed) Failures() []Argument {
	var failed []Argument
	for _, arg := range p.Arguments {
		if arg.Err != nil {
			failed = append(failed, arg)
		}
	}
	return failed
}

// Err joins every argument failure, or returns nil.
func (p *Parsed) Err() error {
	var errs []error
	for _, arg := range p.Arguments {
		if arg.Err != nil {
			errs = append(errs, arg.Err)
		}
	}
	return errors.Join(errs...)
}

// Resolver resolves positional arguments. The zero value is not usable; use
// NewResolver.
type Resolver struct {
	reporter   report.Reporter
	converters convert.Table
	logger     zerolog.Logger
	recorder   Recorder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithReporter sets the reporter that receives validation failures.
func WithReporter(r report.Reporter) Option {
	return func(res *Resolver) {
		res.reporter = r
	}
}

// WithConverters replaces the converter table used for declared and default
// kinds.
func WithConverters(t convert.Table) Option {
	return func(res *Resolver) {
		res.converters = t
	}
}

// WithLogger sets the debug logger.
func WithLogger(l zerolog.Logger) Option {
	return func(res *Resolver) {
		res.logger = l
	}
}

// WithRecorder sets the statistics recorder.
func WithRecorder(rec Recorder) Option {
	return func(res *Resolver) {
		res.recorder = rec
	}
}

// NewResolver creates a resolver using convert.DefaultTable and no reporter.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		converters: convert.DefaultTable,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve resolves tokens for command with a default resolver.
func Resolve(command string, registry Registry, tokens []string) *Parsed {
	return NewResolver().Resolve(command, registry, tokens)
}

// Resolve resolves tokens against the declaration of command. Unknown
// commands and commands without arguments leave every token in Rest.
func (r *Resolver) Resolve(command string, registry Registry, tokens []string) *Parsed {
	parsed := &Parsed{
		InvocationID: uuid.NewString(),
		Command:      command,
		Arguments:    []Argument{},
	}

	cmd, ok := registry[command]
	if !ok || len(cmd.Arguments) == 0 {
		parsed.Rest = slices.Clone(tokens)
		r.finish(parsed)
		return parsed
	}

	for i, spec := range cmd.Arguments {
		var value any
		if i < len(tokens) {
			value = tokens[i]
		}
		if value == nil && spec.Default != nil {
			value = spec.Default
		}

		if conv := r.converterFor(spec); value != nil && conv != nil {
			value = conv(value)
		}

		arg := Argument{Name: spec.Name, Value: value}
		if err := validation.IsValid(value, spec.Validator); err != nil {
			arg.Err = &ArgumentError{Name: spec.Name, Value: value, Err: err}
			r.fail(spec.Name, value, err)
		}
		parsed.Arguments = append(parsed.Arguments, arg)
	}

	consumed := min(len(cmd.Arguments), len(tokens))
	parsed.Rest = slices.Clone(tokens[consumed:])
	r.finish(parsed)
	return parsed
}

func (r *Resolver) converterFor(spec ArgumentSpec) convert.Converter {
	if spec.Converter != nil {
		return spec.Converter
	}
	if spec.Validator != nil {
		if c := spec.Validator.Describe().Converter; c != nil {
			return c
		}
	}
	if spec.Kind != convert.KindUnknown {
		return r.converters.Lookup(spec.Kind)
	}
	if spec.Default != nil {
		return r.converters.For(spec.Default)
	}
	return nil
}

func (r *Resolver) fail(name string, value any, err error) {
	if r.reporter != nil {
		r.reporter.Report(name, err.Error(), value, report.ContextArgument)
	}
	if r.recorder != nil {
		r.recorder.RecordValidationFailure(report.ContextArgument, validation.ClassOf(err))
	}
}

func (r *Resolver) finish(parsed *Parsed) {
	failures := len(parsed.Failures())
	if r.recorder != nil {
		r.recorder.RecordResolution(parsed.Command, len(parsed.Arguments), failures)
	}
	r.logger.Debug().
		Str("invocation_id", parsed.InvocationID).
		Str("command", parsed.Command).
		Int("arguments", len(parsed.Arguments)).
		Int("failures", failures).
		Int("rest", len(parsed.Rest)).
		Msg("Resolved arguments")
}
