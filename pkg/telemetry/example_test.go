package telemetry_test

import (
	"context"

	"github.com/openfroyo/argcheck/pkg/arguments"
	"github.com/openfroyo/argcheck/pkg/report"
	"github.com/openfroyo/argcheck/pkg/telemetry"
	"github.com/openfroyo/argcheck/pkg/validation"
)

// Example_resolverWiring shows telemetry attached to an argument resolver.
func Example_resolverWiring() {
	cfg := telemetry.DefaultConfig()
	cfg.Metrics.Enabled = true

	tel, err := telemetry.NewTelemetry(cfg)
	if err != nil {
		panic(err)
	}
	ctx := tel.WithContext(context.Background())

	logger := telemetry.FromContext(ctx).NewComponentLogger("resolver")
	resolver := arguments.NewResolver(
		arguments.WithLogger(logger.Zerolog()),
		arguments.WithRecorder(tel.Metrics),
		arguments.WithReporter(report.NewLogReporter(logger.Zerolog())),
	)

	registry := arguments.Registry{
		"scale": {Name: "scale", Arguments: []arguments.ArgumentSpec{
			{Name: "replicas", Validator: validation.Integer, Default: 1},
		}},
	}
	_ = resolver.Resolve("scale", registry, []string{"3"})
}
