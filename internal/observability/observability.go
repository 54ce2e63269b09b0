// Package observability builds the process logger and, when enabled, the
// OpenTelemetry trace and log pipelines.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Options configures Setup.
type Options struct {
	ServiceName string
	// Level is one of debug, info, warn, error.
	Level string
	// Format is text or json; ignored when OTel is enabled.
	Format      string
	OTelEnabled bool
	// Writer receives log lines and exported telemetry, default os.Stdout.
	Writer io.Writer
}

// Telemetry holds the configured logger and tracer.
type Telemetry struct {
	Logger *slog.Logger
	Tracer trace.Tracer

	shutdown []func(context.Context) error
}

// Shutdown flushes and stops every pipeline started by Setup.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var err error
	for _, fn := range t.shutdown {
		err = errors.Join(err, fn(ctx))
	}
	t.shutdown = nil
	return err
}

// Setup builds the logger and tracer. With OTel enabled it installs global
// trace and propagation providers exporting to Writer and routes slog
// through the OTel log bridge.
func Setup(ctx context.Context, opts Options) (*Telemetry, error) {
	if opts.ServiceName == "" {
		opts.ServiceName = "hostelcore"
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if !opts.OTelEnabled {
		return &Telemetry{
			Logger: NewLogger(opts.Writer, level, opts.Format),
			Tracer: noop.NewTracerProvider().Tracer(opts.ServiceName),
		}, nil
	}

	res := resource.NewSchemaless(attribute.String("service.name", opts.ServiceName))
	tel := &Telemetry{}

	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(opts.Writer))
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter), sdktrace.WithResource(res))
	tel.shutdown = append(tel.shutdown, tp.Shutdown)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logExporter, err := stdoutlog.New(stdoutlog.WithWriter(opts.Writer))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("log exporter: %w", err), tel.Shutdown(ctx))
	}
	lp := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)), sdklog.WithResource(res))
	tel.shutdown = append(tel.shutdown, lp.Shutdown)

	handler := otelslog.NewHandler(opts.ServiceName, otelslog.WithLoggerProvider(lp))
	tel.Logger = slog.New(levelHandler{Handler: handler, level: level})
	tel.Tracer = tp.Tracer(opts.ServiceName)
	return tel, nil
}

// NewLogger returns a text or JSON slog logger at level.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// ParseLevel maps a level name to slog.Level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", name, err)
	}
	return level, nil
}

// levelHandler drops records below level before they reach the bridge.
type levelHandler struct {
	slog.Handler
	level slog.Level
}

func (h levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level && h.Handler.Enabled(ctx, l)
}

func (h levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelHandler{Handler: h.Handler.WithAttrs(attrs), level: h.level}
}

func (h levelHandler) WithGroup(name string) slog.Handler {
	return levelHandler{Handler: h.Handler.WithGroup(name), level: h.level}
}
