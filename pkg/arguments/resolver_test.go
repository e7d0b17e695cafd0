package arguments

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/openfroyo/argcheck/pkg/convert"
	"github.com/openfroyo/argcheck/pkg/report"
	"github.com/openfroyo/argcheck/pkg/validation"
)

type recorder struct {
	resolutions []string
	failures    []validation.FailureClass
}

func (r *recorder) RecordResolution(command string, arguments, failures int) {
	r.resolutions = append(r.resolutions, command)
}

func (r *recorder) RecordValidationFailure(ctx report.Context, class validation.FailureClass) {
	r.failures = append(r.failures, class)
}

func countRegistry() Registry {
	return Registry{
		"scale": {
			Name: "scale",
			Arguments: []ArgumentSpec{
				{Name: "count", Validator: validation.Integer, Default: 1},
			},
		},
	}
}

func TestResolve_DefaultSubstituted(t *testing.T) {
	parsed := Resolve("scale", countRegistry(), []string{})

	if diff := cmp.Diff(map[string]any{"count": 1}, parsed.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if len(parsed.Rest) != 0 {
		t.Errorf("Rest = %v, want empty", parsed.Rest)
	}
	if err := parsed.Err(); err != nil {
		t.Errorf("unexpected failure: %v", err)
	}
	if parsed.InvocationID == "" {
		t.Error("expected an invocation id")
	}
}

func TestResolve_InvalidValueIsReportedAndKept(t *testing.T) {
	var collector report.Collector
	rec := &recorder{}
	r := NewResolver(WithReporter(&collector), WithRecorder(rec))

	parsed := r.Resolve("scale", countRegistry(), []string{"abc"})

	value, ok := parsed.Get("count")
	if !ok {
		t.Fatal("count missing from result")
	}
	f, isFloat := value.(float64)
	if !isFloat || !math.IsNaN(f) {
		t.Errorf("count = %v, want NaN", value)
	}
	if len(parsed.Rest) != 0 {
		t.Errorf("Rest = %v, want empty", parsed.Rest)
	}

	reports := collector.Reports()
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	if reports[0].Name != "count" || reports[0].Message != "Was not an integer!" || reports[0].Context != report.ContextArgument {
		t.Errorf("report = %+v", reports[0])
	}

	err := parsed.Err()
	var argErr *ArgumentError
	if !errors.As(err, &argErr) || argErr.Name != "count" {
		t.Errorf("Err() = %v, want *ArgumentError for count", err)
	}
	if validation.ClassOf(err) != validation.ClassShapeMismatch {
		t.Errorf("class = %q", validation.ClassOf(err))
	}

	if diff := cmp.Diff([]string{"scale"}, rec.resolutions); diff != "" {
		t.Errorf("resolutions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]validation.FailureClass{validation.ClassShapeMismatch}, rec.failures); diff != "" {
		t.Errorf("failures mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_RestIsPositional(t *testing.T) {
	registry := Registry{
		"copy": {
			Name: "copy",
			Arguments: []ArgumentSpec{
				{Name: "src", Validator: validation.Required(validation.Path)},
				{Name: "count", Validator: validation.Integer, Default: 1},
			},
		},
	}

	parsed := Resolve("copy", registry, []string{"a.txt", "nope", "extra"})

	if diff := cmp.Diff([]string{"extra"}, parsed.Rest); diff != "" {
		t.Errorf("Rest mismatch (-want +got):\n%s", diff)
	}
	if len(parsed.Failures()) != 1 {
		t.Errorf("Failures() = %v, want one", parsed.Failures())
	}

	names := make([]string, len(parsed.Arguments))
	for i, arg := range parsed.Arguments {
		names[i] = arg.Name
	}
	if diff := cmp.Diff([]string{"src", "count"}, names); diff != "" {
		t.Errorf("declaration order lost (-want +got):\n%s", diff)
	}
}

func TestResolve_MissingTokenWithoutDefault(t *testing.T) {
	registry := Registry{
		"run": {
			Name: "run",
			Arguments: []ArgumentSpec{
				{Name: "script"},
				{Name: "target", Validator: validation.Required(validation.String)},
			},
		},
	}

	var collector report.Collector
	parsed := NewResolver(WithReporter(&collector)).Resolve("run", registry, []string{"lint"})

	if diff := cmp.Diff(map[string]any{"script": "lint", "target": nil}, parsed.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if parsed.Rest == nil || len(parsed.Rest) != 0 {
		t.Errorf("Rest = %#v, want empty", parsed.Rest)
	}
	if collector.Len() != 1 {
		t.Fatalf("got %d reports, want 1", collector.Len())
	}
	if validation.ClassOf(parsed.Err()) != validation.ClassEmpty {
		t.Errorf("class = %q, want empty", validation.ClassOf(parsed.Err()))
	}
}

func TestResolve_UnknownOrEmptyCommand(t *testing.T) {
	registry := Registry{"version": {Name: "version"}}
	tokens := []string{"a", "b"}

	for _, command := range []string{"version", "missing"} {
		t.Run(command, func(t *testing.T) {
			parsed := Resolve(command, registry, tokens)
			if len(parsed.Arguments) != 0 {
				t.Errorf("Arguments = %v, want none", parsed.Arguments)
			}
			if diff := cmp.Diff(tokens, parsed.Rest); diff != "" {
				t.Errorf("Rest mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_RestDoesNotAliasInput(t *testing.T) {
	tokens := []string{"1", "x"}
	parsed := Resolve("scale", countRegistry(), tokens)
	parsed.Rest[0] = "changed"
	if tokens[1] != "x" {
		t.Error("Rest shares memory with the input tokens")
	}
}

func TestResolve_ConverterPriority(t *testing.T) {
	upper := func(raw any) any { return strings.ToUpper(raw.(string)) }
	exclaim := func(raw any) any { return raw.(string) + "!" }

	tests := []struct {
		name string
		spec ArgumentSpec
		want any
	}{
		{
			name: "explicit converter wins",
			spec: ArgumentSpec{Name: "v", Converter: upper, Validator: validation.Convert(validation.String, exclaim), Default: 1},
			want: "ABC",
		},
		{
			name: "validator converter before default kind",
			spec: ArgumentSpec{Name: "v", Validator: validation.Convert(validation.String, exclaim), Default: 1},
			want: "abc!",
		},
		{
			name: "declared kind before default kind",
			spec: ArgumentSpec{Name: "v", Kind: convert.KindString, Default: 1},
			want: "abc",
		},
		{
			name: "default kind",
			spec: ArgumentSpec{Name: "v", Default: true},
			want: "abc",
		},
		{
			name: "no converter",
			spec: ArgumentSpec{Name: "v"},
			want: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := Registry{"cmd": {Name: "cmd", Arguments: []ArgumentSpec{tt.spec}}}
			parsed := Resolve("cmd", registry, []string{"abc"})
			if got, _ := parsed.Get("v"); got != tt.want {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_DeclaredKindConverts(t *testing.T) {
	registry := Registry{
		"serve": {
			Name: "serve",
			Arguments: []ArgumentSpec{
				{Name: "port", Kind: convert.KindInteger, Validator: validation.Integer},
				{Name: "tls", Kind: convert.KindBoolean, Validator: validation.Boolean},
				{Name: "hosts", Validator: validation.ArrayOf(validation.String), Default: []string{"localhost"}},
			},
		},
	}

	parsed := Resolve("serve", registry, []string{"8080", "yes", "a,b"})
	want := map[string]any{"port": 8080, "tls": true, "hosts": []any{"a", "b"}}
	if diff := cmp.Diff(want, parsed.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if err := parsed.Err(); err != nil {
		t.Errorf("unexpected failure: %v", err)
	}
}

func TestResolve_CustomTable(t *testing.T) {
	table := convert.Table{convert.KindInteger: func(any) any { return 99 }}
	parsed := NewResolver(WithConverters(table)).Resolve("scale", countRegistry(), []string{"5"})
	if got, _ := parsed.Get("count"); got != 99 {
		t.Errorf("count = %v, want 99", got)
	}
}
