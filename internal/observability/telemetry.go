package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Afrovis/castle-wars/internal/logging"
)

// Атрибуты span'а одного взаимодействия редактора
var (
	attrOutcome    = attribute.Key("editor.outcome")
	attrBlockCount = attribute.Key("editor.block_count")
)

// InitTelemetry настраивает OTLP-экспортер и глобальный TracerProvider.
// Endpoint коллектора берётся из стандартных OTEL_* переменных окружения
// (по умолчанию localhost:4318). Возвращает функцию shutdown.
func InitTelemetry(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(provider)

	logging.Info("📡 OpenTelemetry инициализирован (service=%s)", serviceName)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return provider.Shutdown(ctx)
	}, nil
}

// RecordDecision помечает текущий span исходом взаимодействия и размером
// мира после применения решения. Без активного span'а вызов безвреден.
func RecordDecision(ctx context.Context, outcome string, blockCount int) {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return
	}
	span.SetAttributes(
		attrOutcome.String(outcome),
		attrBlockCount.Int(blockCount),
	)
}
