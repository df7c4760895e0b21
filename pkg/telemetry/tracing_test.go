package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{"defaults", Options{}, Options{ServiceName: "storefront", Endpoint: "localhost:4318"}},
		{"ratio below zero", Options{ServiceName: "svc", Endpoint: "otel:4318", SampleRatio: -1}, Options{ServiceName: "svc", Endpoint: "otel:4318"}},
		{"ratio above one", Options{SampleRatio: 3}, Options{ServiceName: "storefront", Endpoint: "localhost:4318", SampleRatio: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := tt.in
			assert.Equal(t, tt.want, *normalize(&in))
		})
	}
}

func TestStartSpan_RecordsToInstalledProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	rec := tracetest.NewSpanRecorder()
	shutdown := install(sdktrace.WithSpanProcessor(rec), Options{SampleRatio: 1})

	ctx, span := StartSpan(context.Background(), "cart.add", attribute.Int("product.id", 7))
	require.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, shutdown(ctx))

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "cart.add", ended[0].Name())
	assert.Equal(t, InstrumentationName, ended[0].InstrumentationScope().Name)
	assert.Contains(t, ended[0].Attributes(), attribute.Int("product.id", 7))
}

func TestInstall_ZeroRatioDropsRootSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	rec := tracetest.NewSpanRecorder()
	shutdown := install(sdktrace.WithSpanProcessor(rec), Options{SampleRatio: 0})
	defer func() { _ = shutdown(context.Background()) }()

	_, span := StartSpan(context.Background(), "dropped")
	span.End()

	assert.False(t, span.SpanContext().IsSampled())
	assert.Empty(t, rec.Ended())
}
