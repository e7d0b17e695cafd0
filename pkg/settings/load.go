package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// Load reads a configuration file. The format is chosen by extension.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses configuration data in the format named by ext, with or
// without the leading dot.
func Decode(ext string, data []byte) (map[string]any, error) {
	var out map[string]any

	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	case "toml":
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	case "json":
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	case "cue":
		val := cuecontext.New().CompileBytes(data)
		if err := val.Err(); err != nil {
			return nil, err
		}
		if err := val.Validate(cue.Concrete(true)); err != nil {
			return nil, err
		}
		if err := val.Decode(&out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if out == nil {
		out = make(map[string]any)
	}
	return out, nil
}

// LoadAll loads every path and merges them in order.
func LoadAll(paths ...string) (map[string]any, error) {
	merged := make(map[string]any)
	for _, path := range paths {
		cfg, err := Load(path)
		if err != nil {
			return nil, err
		}
		merged = Merge(merged, cfg)
	}
	return merged, nil
}

// Merge deep merges src over dst and returns a new map. Nested maps merge
// recursively; every other value in src replaces the one in dst. Neither
// input is modified.
func Merge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = clone(v)
	}
	for k, v := range src {
		if srcMap, ok := asMap(v); ok {
			if dstMap, ok := asMap(out[k]); ok {
				out[k] = Merge(dstMap, srcMap)
				continue
			}
		}
		out[k] = clone(v)
	}
	return out
}

func clone(v any) any {
	if m, ok := asMap(v); ok {
		return Merge(nil, m)
	}
	if s, ok := v.([]any); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = clone(item)
		}
		return out
	}
	return v
}

// asMap converts string keyed maps of any value type to map[string]any.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return m, true
	case Meta:
		return map[string]any(m), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
