package settings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openfroyo/argcheck/pkg/report"
	"github.com/openfroyo/argcheck/pkg/validation"
)

// ClassUnknownSetting marks keys that have no declaration in the Meta.
const ClassUnknownSetting validation.FailureClass = "unknown_setting"

// Meta declares the accepted configuration shape. Values are either
// validation.Validator leaves or nested Meta (or map[string]any) sections.
// A nil leaf accepts anything.
type Meta map[string]any

// Recorder receives configuration validation statistics.
type Recorder interface {
	RecordValidationFailure(ctx report.Context, class validation.FailureClass)
	RecordConfigurationCheck(problems int)
}

// Problem is a single invalid, missing or unknown setting.
type Problem struct {
	Path        string                  `json:"path"`
	Message     string                  `json:"message"`
	Value       any                     `json:"value,omitempty"`
	Class       validation.FailureClass `json:"class"`
	Suggestions []string                `json:"suggestions,omitempty"`
}

// Problems is the error returned by Validate.
type Problems []Problem

// Error implements the error interface.
func (p Problems) Error() string {
	if len(p) == 0 {
		return "configuration is valid"
	}
	parts := make([]string, len(p))
	for i, problem := range p {
		parts[i] = fmt.Sprintf("%s: %s", problem.Path, firstLine(problem.Message))
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Checker validates configuration objects.
type Checker struct {
	reporter     report.Reporter
	recorder     Recorder
	allowUnknown bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithReporter sets the reporter that receives every problem.
func WithReporter(r report.Reporter) Option {
	return func(c *Checker) {
		c.reporter = r
	}
}

// WithRecorder sets the statistics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Checker) {
		c.recorder = r
	}
}

// AllowUnknown disables reporting of undeclared keys.
func AllowUnknown() Option {
	return func(c *Checker) {
		c.allowUnknown = true
	}
}

// NewChecker creates a configuration checker.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks config against meta with a checker reporting to reporter.
func Validate(config map[string]any, meta Meta, reporter report.Reporter) error {
	return NewChecker(WithReporter(reporter)).Validate(config, meta)
}

// Validate checks config against meta. Every problem is reported; the
// returned error is Problems or nil.
func (c *Checker) Validate(config map[string]any, meta Meta) error {
	var problems Problems
	c.walk("", config, meta, &problems)

	if c.recorder != nil {
		c.recorder.RecordConfigurationCheck(len(problems))
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

func (c *Checker) walk(prefix string, config map[string]any, meta Meta, problems *Problems) {
	for _, key := range sortedKeys(config) {
		path := join(prefix, key)
		value := config[key]

		node, declared := meta[key]
		if !declared {
			if !c.allowUnknown {
				suggestions := report.Suggest(key, sortedKeys(meta))
				msg := "Was not a known setting."
				if s := report.FormatSuggestions(suggestions); s != "" {
					msg += "\n" + s
				}
				c.add(problems, Problem{Path: path, Message: msg, Value: value, Class: ClassUnknownSetting, Suggestions: suggestions})
			}
			continue
		}
		c.check(path, value, node, problems)
	}

	for _, key := range sortedKeys(meta) {
		if _, present := config[key]; present {
			continue
		}
		node := meta[key]
		if section, ok := asMeta(node); ok {
			c.walk(join(prefix, key), nil, section, problems)
			continue
		}
		if v, ok := node.(validation.Validator); ok && v.Describe().Required {
			c.check(join(prefix, key), nil, v, problems)
		}
	}
}

func (c *Checker) check(path string, value, node any, problems *Problems) {
	if section, ok := asMeta(node); ok {
		sub, isMap := asMap(value)
		if !isMap {
			c.add(problems, Problem{Path: path, Message: "Was not an object!", Value: value, Class: validation.ClassShapeMismatch})
			return
		}
		c.walk(path, sub, section, problems)
		return
	}

	v, _ := node.(validation.Validator)
	if err := validation.IsValid(value, v); err != nil {
		class := validation.ClassOf(err)
		if class == "" {
			class = validation.ClassShapeMismatch
		}
		c.add(problems, Problem{Path: path, Message: err.Error(), Value: value, Class: class})
	}
}

func (c *Checker) add(problems *Problems, p Problem) {
	*problems = append(*problems, p)
	if c.reporter != nil {
		c.reporter.Report(p.Path, p.Message, p.Value, report.ContextConfiguration)
	}
	if c.recorder != nil {
		c.recorder.RecordValidationFailure(report.ContextConfiguration, p.Class)
	}
}

// Entry is the documentation of a single setting.
type Entry struct {
	Path     string `json:"path"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Describe flattens meta into entries sorted by path.
func Describe(meta Meta) []Entry {
	var entries []Entry
	describeInto("", meta, &entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

func describeInto(prefix string, meta Meta, entries *[]Entry) {
	for key, node := range meta {
		path := join(prefix, key)
		if section, ok := asMeta(node); ok {
			describeInto(path, section, entries)
			continue
		}
		var desc validation.TypeDescriptor
		if v, ok := node.(validation.Validator); ok {
			desc = v.Describe()
		}
		*entries = append(*entries, Entry{Path: path, Type: desc.Type, Required: desc.Required})
	}
}

func asMeta(node any) (Meta, bool) {
	switch m := node.(type) {
	case Meta:
		return m, true
	case map[string]any:
		return Meta(m), true
	}
	return nil, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
