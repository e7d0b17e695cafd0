package telemetry

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openfroyo/argcheck/pkg/report"
	"github.com/openfroyo/argcheck/pkg/validation"
)

// Metrics provides Prometheus metrics for argument and configuration
// validation. A disabled Metrics is a no-op.
type Metrics struct {
	config MetricsConfig

	resolutions        *prometheus.CounterVec
	argumentsResolved  *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	configChecks       *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with the given configuration.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{config: cfg}, nil
	}

	namespace := cfg.Namespace
	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Total number of argument resolutions",
			},
			[]string{"command", "valid"},
		),
		argumentsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "arguments_resolved_total",
				Help:      "Total number of positional arguments resolved",
			},
			[]string{"command"},
		),
		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Total number of validation failures",
			},
			[]string{"context", "class"},
		),
		configChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "configuration_checks_total",
				Help:      "Total number of configuration validations",
			},
			[]string{"valid"},
		),
	}

	for _, c := range []prometheus.Collector{m.resolutions, m.argumentsResolved, m.validationFailures, m.configChecks} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordResolution records one argument resolution.
func (m *Metrics) RecordResolution(command string, arguments, failures int) {
	if m.resolutions == nil {
		return
	}
	m.resolutions.WithLabelValues(command, strconv.FormatBool(failures == 0)).Inc()
	m.argumentsResolved.WithLabelValues(command).Add(float64(arguments))
}

// RecordValidationFailure records a failed validation by context and class.
func (m *Metrics) RecordValidationFailure(ctx report.Context, class validation.FailureClass) {
	if m.validationFailures == nil {
		return
	}
	if class == "" {
		class = "unknown"
	}
	m.validationFailures.WithLabelValues(string(ctx), string(class)).Inc()
}

// RecordConfigurationCheck records one configuration validation run.
func (m *Metrics) RecordConfigurationCheck(problems int) {
	if m.configChecks == nil {
		return
	}
	m.configChecks.WithLabelValues(strconv.FormatBool(problems == 0)).Inc()
}

// Registry returns the Prometheus registry, or nil when disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Serve exposes metrics over HTTP until ctx is cancelled. It returns
// immediately when metrics are disabled.
func (m *Metrics) Serve(ctx context.Context) error {
	if !m.config.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(m.config.Path, m.Handler())

	server := &http.Server{
		Addr:              m.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
