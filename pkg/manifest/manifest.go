package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/openfroyo/argcheck/pkg/arguments"
	"github.com/openfroyo/argcheck/pkg/convert"
	"github.com/openfroyo/argcheck/pkg/settings"
	"github.com/openfroyo/argcheck/pkg/validation"
)

var (
	// ErrInvalidManifest is returned when a manifest fails its declaration checks.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrUnsupportedFormat is returned for manifests with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
)

// Manifest is the decoded form of a manifest file.
type Manifest struct {
	Commands []CommandDecl `yaml:"commands" toml:"commands" json:"commands" validate:"unique=Name,dive"`
	Settings map[string]any `yaml:"settings" toml:"settings" json:"settings"`
}

// CommandDecl declares a command.
type CommandDecl struct {
	Name        string         `yaml:"name" toml:"name" json:"name" validate:"required"`
	Description string         `yaml:"description" toml:"description" json:"description,omitempty"`
	Arguments   []ArgumentDecl `yaml:"arguments" toml:"arguments" json:"arguments" validate:"unique=Name,dive"`
}

// ArgumentDecl declares one positional argument.
type ArgumentDecl struct {
	Name        string `yaml:"name" toml:"name" json:"name" validate:"required"`
	Description string `yaml:"description" toml:"description" json:"description,omitempty"`
	Validator   string `yaml:"validator" toml:"validator" json:"validator,omitempty"`
	Default     any    `yaml:"default" toml:"default" json:"default,omitempty"`
	Kind        string `yaml:"kind" toml:"kind" json:"kind,omitempty" validate:"omitempty,oneof=auto unknown string boolean bool integer int float number array list object map"`
}

var declarations = validator.New(validator.WithRequiredStructEnabled())

// Load reads a manifest file. The format is chosen by extension.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	m, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest %s: %w", path, err)
	}
	return m, nil
}

// Decode parses manifest data in the format named by ext and checks the
// declarations.
func Decode(ext string, data []byte) (*Manifest, error) {
	var m Manifest

	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	case "toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	case "json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := m.Check(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Check validates the declarations without building validators.
func (m *Manifest) Check() error {
	if err := declarations.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Param() != "" {
				return fmt.Errorf("%w: %s failed %s=%s", ErrInvalidManifest, fe.Namespace(), fe.Tag(), fe.Param())
			}
			return fmt.Errorf("%w: %s failed %s", ErrInvalidManifest, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return nil
}

// Registry builds the command registry.
func (m *Manifest) Registry() (arguments.Registry, error) {
	reg := arguments.NewRegistry()
	for _, decl := range m.Commands {
		cmd := arguments.Command{
			Name:        decl.Name,
			Description: decl.Description,
			Arguments:   make([]arguments.ArgumentSpec, 0, len(decl.Arguments)),
		}
		for _, arg := range decl.Arguments {
			spec, err := arg.spec()
			if err != nil {
				return nil, fmt.Errorf("%w: command %q argument %q: %v", ErrInvalidManifest, decl.Name, arg.Name, err)
			}
			cmd.Arguments = append(cmd.Arguments, spec)
		}
		if err := reg.Register(cmd); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (a ArgumentDecl) spec() (arguments.ArgumentSpec, error) {
	v, err := parseExpr(a.Validator)
	if err != nil {
		return arguments.ArgumentSpec{}, err
	}
	kind, err := convert.ParseKind(a.Kind)
	if err != nil {
		return arguments.ArgumentSpec{}, err
	}
	return arguments.ArgumentSpec{
		Name:        a.Name,
		Description: a.Description,
		Validator:   v,
		Default:     a.Default,
		Kind:        kind,
	}, nil
}

// Meta builds the settings declaration tree. Nested tables become nested
// sections; every leaf must be a validator expression.
func (m *Manifest) Meta() (settings.Meta, error) {
	return buildMeta("", m.Settings)
}

func buildMeta(prefix string, node map[string]any) (settings.Meta, error) {
	meta := make(settings.Meta, len(node))

	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch value := node[key].(type) {
		case map[string]any:
			section, err := buildMeta(path, value)
			if err != nil {
				return nil, err
			}
			meta[key] = section
		case string:
			v, err := parseExpr(value)
			if err != nil {
				return nil, fmt.Errorf("%w: setting %q: %v", ErrInvalidManifest, path, err)
			}
			meta[key] = v
		case nil:
			meta[key] = nil
		default:
			return nil, fmt.Errorf("%w: setting %q: expected a validator expression or a table, got %T", ErrInvalidManifest, path, value)
		}
	}
	return meta, nil
}

func parseExpr(expr string) (validation.Validator, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	return validation.Parse(expr)
}

// Build loads a manifest and returns both the registry and the settings
// declarations.
func Build(path string) (arguments.Registry, settings.Meta, error) {
	m, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	reg, err := m.Registry()
	if err != nil {
		return nil, nil, err
	}
	meta, err := m.Meta()
	if err != nil {
		return nil, nil, err
	}
	return reg, meta, nil
}
