package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/zjrosen/carillon/internal/config"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{}, &bytes.Buffer{})

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_StdoutExporterEmitsSpans(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.TelemetryConfig{Enabled: true, Exporter: "stdout"}

	shutdown, err := Setup(context.Background(), cfg, &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "quiz.run")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "quiz.run")
}
