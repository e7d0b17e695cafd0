// Package telemetry provides logging and metrics for argcheck.
//
// # Overview
//
// Logging is built on zerolog. Logger wraps a zerolog.Logger configured from
// LoggingConfig (level, console or JSON format, output) and can be carried in a
// context.Context.
//
// Metrics are Prometheus counters for argument resolutions, validation
// failures by context and class, and configuration checks. A Metrics created
// from a disabled configuration records nothing, so callers never need nil
// checks. Metrics satisfies arguments.Recorder and settings.Recorder.
//
// # Configuration
//
// LoadConfig reads ARGCHECK_ prefixed environment variables, after loading any
// dotenv files given:
//
//	ARGCHECK_LOG_LEVEL=debug
//	ARGCHECK_LOG_FORMAT=json
//	ARGCHECK_METRICS_ENABLED=true
//	ARGCHECK_METRICS_LISTEN_ADDRESS=:9090
//
// # Usage Example
//
//	cfg, err := telemetry.LoadConfig(".env")
//	if err != nil {
//	    return err
//	}
//	tel, err := telemetry.NewTelemetry(cfg)
//	if err != nil {
//	    return err
//	}
//	resolver := arguments.NewResolver(
//	    arguments.WithLogger(tel.Logger.Zerolog()),
//	    arguments.WithRecorder(tel.Metrics),
//	)
package telemetry
