package settings

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/openfroyo/argcheck/pkg/report"
	"github.com/openfroyo/argcheck/pkg/validation"
)

func testMeta() Meta {
	return Meta{
		"name":  validation.Required(validation.String),
		"debug": validation.Boolean,
		"server": Meta{
			"host": validation.String,
			"port": validation.Required(validation.Integer),
		},
		"tags": validation.ArrayOf(validation.String),
	}
}

type countingRecorder struct {
	failures map[validation.FailureClass]int
	checks   []int
}

func (r *countingRecorder) RecordValidationFailure(_ report.Context, class validation.FailureClass) {
	if r.failures == nil {
		r.failures = make(map[validation.FailureClass]int)
	}
	r.failures[class]++
}

func (r *countingRecorder) RecordConfigurationCheck(problems int) {
	r.checks = append(r.checks, problems)
}

func TestValidate_Valid(t *testing.T) {
	config := map[string]any{
		"name":   "api",
		"debug":  false,
		"server": map[string]any{"host": "localhost", "port": 8080},
		"tags":   []any{"a", "b"},
	}

	collector := &report.Collector{}
	if err := Validate(config, testMeta(), collector); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if collector.Len() != 0 {
		t.Errorf("unexpected reports: %v", collector.Reports())
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	config := map[string]any{
		"debug":  "yes",
		"server": map[string]any{"host": "localhost", "prot": 8080},
		"tags":   []any{"a", 1},
	}

	collector := &report.Collector{}
	recorder := &countingRecorder{}
	err := NewChecker(WithReporter(collector), WithRecorder(recorder)).Validate(config, testMeta())

	var problems Problems
	if !errors.As(err, &problems) {
		t.Fatalf("expected Problems, got %v", err)
	}

	var paths []string
	for _, p := range problems {
		paths = append(paths, p.Path)
	}
	wantPaths := []string{"debug", "server.prot", "server.port", "tags", "name"}
	if diff := cmp.Diff(wantPaths, paths); diff != "" {
		t.Errorf("problem paths mismatch (-want +got):\n%s", diff)
	}

	unknown := problems[1]
	if unknown.Class != ClassUnknownSetting {
		t.Errorf("unknown key class = %q", unknown.Class)
	}
	if diff := cmp.Diff([]string{"port"}, unknown.Suggestions); diff != "" {
		t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(unknown.Message, "Did you mean port?") {
		t.Errorf("unknown key message = %q", unknown.Message)
	}

	if problems[2].Class != validation.ClassEmpty {
		t.Errorf("missing required class = %q", problems[2].Class)
	}
	if problems[0].Message != "Was not a boolean!" {
		t.Errorf("debug message = %q", problems[0].Message)
	}

	if collector.Len() != len(problems) {
		t.Errorf("reported %d problems, want %d", collector.Len(), len(problems))
	}
	for _, r := range collector.Reports() {
		if r.Context != report.ContextConfiguration {
			t.Errorf("report %q context = %q", r.Name, r.Context)
		}
	}

	if diff := cmp.Diff([]int{5}, recorder.checks); diff != "" {
		t.Errorf("recorded checks mismatch (-want +got):\n%s", diff)
	}
	if recorder.failures[ClassUnknownSetting] != 1 || recorder.failures[validation.ClassEmpty] != 2 {
		t.Errorf("recorded failures = %v", recorder.failures)
	}

	if !strings.HasPrefix(err.Error(), "invalid configuration: debug: Was not a boolean!") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestValidate_SectionMustBeObject(t *testing.T) {
	config := map[string]any{"name": "api", "server": "localhost:8080"}

	err := Validate(config, testMeta(), nil)
	var problems Problems
	if !errors.As(err, &problems) || len(problems) != 1 {
		t.Fatalf("expected a single problem, got %v", err)
	}
	if problems[0].Path != "server" || problems[0].Message != "Was not an object!" {
		t.Errorf("problem = %+v", problems[0])
	}
}

func TestValidate_AllowUnknown(t *testing.T) {
	config := map[string]any{"name": "api", "extra": 1, "server": map[string]any{"port": 1}}

	if err := NewChecker(AllowUnknown()).Validate(config, testMeta()); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_NilLeafAcceptsAnything(t *testing.T) {
	meta := Meta{"anything": nil}
	if err := Validate(map[string]any{"anything": []int{1}}, meta, nil); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(testMeta())
	want := []Entry{
		{Path: "debug", Type: "Boolean"},
		{Path: "name", Type: "String", Required: true},
		{Path: "server.host", Type: "String"},
		{Path: "server.port", Type: "Integer", Required: true},
		{Path: "tags", Type: "[String]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}
}
