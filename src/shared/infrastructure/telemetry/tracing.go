package telemetry

import (
	"context"
	"io"
	"log"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName es el nombre de instrumentación usado por los casos de uso del PDV
const TracerName = "vendendo-facil/pos"

// Tracer retorna el tracer del proveedor global. Sin Setup es un no-op.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// Setup instala un TracerProvider que escribe los spans en w (stdout en producción).
// Retorna la función de cierre que vacía el batcher.
func Setup(serviceName, version string, w io.Writer) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		)),
	)
	otel.SetTracerProvider(tp)

	log.Printf("✅ Tracing enabled for %s (stdout exporter)", serviceName)
	return tp.Shutdown, nil
}

// WrapHandler instrumenta el handler HTTP completo con otelhttp
func WrapHandler(next http.Handler, operation string) http.Handler {
	return otelhttp.NewHandler(next, operation)
}
