package arguments

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/openfroyo/argcheck/pkg/convert"
	"github.com/openfroyo/argcheck/pkg/validation"
)

// ArgumentSpec declares one positional argument.
type ArgumentSpec struct {
	// Name is the key the resolved value is stored under.
	Name string `validate:"required"`

	// Description is used for documentation only.
	Description string

	// Validator constrains the value. nil means unconstrained.
	Validator validation.Validator

	// Default replaces a missing token.
	Default any

	// Converter coerces the raw value. It takes priority over every other
	// converter source.
	Converter convert.Converter

	// Kind selects a converter from the resolver's table when neither
	// Converter nor the validator provide one.
	Kind convert.Kind
}

// Command declares the arguments of a command.
type Command struct {
	Name        string `validate:"required"`
	Description string
	Arguments   []ArgumentSpec `validate:"unique=Name,dive"`
}

// Registry maps command names to their declarations.
type Registry map[string]Command

var declarations = validator.New(validator.WithRequiredStructEnabled())

// NewRegistry creates an empty registry.
func NewRegistry() Registry {
	return make(Registry)
}

// Register validates and adds a command declaration.
func (r Registry) Register(cmd Command) error {
	if err := declarations.Struct(cmd); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: command %q: field %s failed %q", ErrInvalidDeclaration, cmd.Name, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: command %q: %v", ErrInvalidDeclaration, cmd.Name, err)
	}
	if _, exists := r[cmd.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.Name)
	}
	r[cmd.Name] = cmd
	return nil
}

// Lookup returns the declaration for name.
func (r Registry) Lookup(name string) (Command, error) {
	cmd, ok := r[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd, nil
}

// Names returns the registered command names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
