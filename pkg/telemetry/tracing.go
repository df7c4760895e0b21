package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName — имя трейсера для спанов самого сервиса.
const InstrumentationName = "github.com/Gunvolt24/storefront"

// Options — параметры экспорта трейсов.
type Options struct {
	ServiceName string
	Endpoint    string  // host:port OTLP/HTTP коллектора
	SampleRatio float64 // доля корневых трейсов [0..1]
	Attributes  []attribute.KeyValue
}

// ShutdownFunc — сброс буфера и остановка провайдера.
type ShutdownFunc func(context.Context) error

// SetupTracing настраивает OTLP/HTTP экспорт и глобальные провайдер/пропагатор.
func SetupTracing(ctx context.Context, opts Options) (ShutdownFunc, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(normalize(&opts).Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	return install(sdktrace.WithBatcher(exporter), opts), nil
}

// install — провайдер с заданным процессором спанов; вынесено для тестов.
func install(processor sdktrace.TracerProviderOption, opts Options) ShutdownFunc {
	normalize(&opts)

	attrs := append([]attribute.KeyValue{
		semconv.ServiceName(opts.ServiceName),
		attribute.String("telemetry.sdk", "opentelemetry"),
	}, opts.Attributes...)

	tp := sdktrace.NewTracerProvider(
		processor,
		// решение родителя уважаем, семплируем только корневые спаны
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(semconv.SchemaURL, attrs...)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)
	return tp.Shutdown
}

func normalize(opts *Options) *Options {
	if opts.ServiceName == "" {
		opts.ServiceName = "storefront"
	}
	if opts.Endpoint == "" {
		opts.Endpoint = "localhost:4318"
	}
	if opts.SampleRatio < 0 {
		opts.SampleRatio = 0
	}
	if opts.SampleRatio > 1 {
		opts.SampleRatio = 1
	}
	return opts
}

// Tracer — трейсер сервиса из глобального провайдера (no-op, пока трейсинг не включён).
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// StartSpan — спан с атрибутами; вызывающий обязан вызвать span.End().
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}
