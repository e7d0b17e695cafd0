package report

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// Context tells where a failed value came from.
type Context string

const (
	// ContextArgument marks positional command arguments.
	ContextArgument Context = "argument"

	// ContextConfiguration marks configuration settings.
	ContextConfiguration Context = "configuration"
)

// Reporter receives validation failures.
type Reporter interface {
	Report(name, message string, value any, ctx Context)
}

// Report is a single delivered failure.
type Report struct {
	Name    string  `json:"name"`
	Message string  `json:"message"`
	Value   any     `json:"value"`
	Context Context `json:"context"`
}

// Format renders a failure as a user facing message.
func Format(name, message string, value any, ctx Context) string {
	bold := color.New(color.Bold).SprintFunc()
	return fmt.Sprintf("Validation failed for %s %s with value %s.\n%s",
		ctx, bold(name), formatValue(value), message)
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// LogReporter writes failures to a zerolog logger at error level.
type LogReporter struct {
	logger zerolog.Logger
}

// NewLogReporter creates a reporter writing to logger.
func NewLogReporter(logger zerolog.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// Report implements Reporter.
func (r *LogReporter) Report(name, message string, value any, ctx Context) {
	title := "An argument was not valid"
	if ctx == ContextConfiguration {
		title = "A setting was not valid"
	}

	r.logger.Error().
		Str("context", string(ctx)).
		Str("name", name).
		Str("value", formatValue(value)).
		Msg(title + ".\n\n" + Format(name, message, value, ctx))
}

// Collector stores reports in memory. It is safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	reports []Report
}

// Report implements Reporter.
func (c *Collector) Report(name, message string, value any, ctx Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, Report{Name: name, Message: message, Value: value, Context: ctx})
}

// Reports returns a copy of everything reported so far.
func (c *Collector) Reports() []Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Report(nil), c.reports...)
}

// Len returns the number of reports.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reports)
}

// Multi fans a report out to several reporters.
type Multi []Reporter

// Report implements Reporter.
func (m Multi) Report(name, message string, value any, ctx Context) {
	for _, r := range m {
		if r != nil {
			r.Report(name, message, value, ctx)
		}
	}
}
