package telemetry

import (
	"context"
	"testing"
)

func TestEnabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	if Enabled(false) {
		t.Error("Telemetry should be disabled without config or endpoint")
	}
	if !Enabled(true) {
		t.Error("Telemetry should be enabled when configured")
	}

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")
	if !Enabled(false) {
		t.Error("Telemetry should be enabled when an endpoint is set")
	}
}

func TestTracersStartSpans(t *testing.T) {
	ctx := context.Background()

	_, span := Tracer("test").Start(ctx, "test.span")
	span.End()

	_, noopSpan := NoopTracer().Start(ctx, "test.noop")
	if noopSpan.IsRecording() {
		t.Error("No-op spans should not record")
	}
	noopSpan.End()
}
