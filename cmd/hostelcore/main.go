// Command hostelcore serves the boarding and hostel administration API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"hostelcore/internal/adapters/httpapi"
	"hostelcore/internal/backup"
	"hostelcore/internal/blob"
	"hostelcore/internal/config"
	"hostelcore/internal/core"
	"hostelcore/internal/fixtures"
	"hostelcore/internal/infra/cache"
	"hostelcore/internal/infra/ids"
	"hostelcore/internal/infra/persistence/memory"
	"hostelcore/internal/observability"
)

var exitFunc = os.Exit

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "hostelcore: %v\n", err)
		stop()
		exitFunc(1)
	}
}

// app holds everything run starts, so tests can build it without serving.
type app struct {
	cfg       config.Config
	telemetry *observability.Telemetry
	service   *core.Service
	handler   http.Handler
	closers   []io.Closer
}

func (a *app) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, a.closers[i].Close())
	}
	return err
}

func run(ctx context.Context, envFiles []string, stdout io.Writer) error {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	a, err := build(ctx, cfg, stdout)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return serve(ctx, a)
}

func build(ctx context.Context, cfg config.Config, stdout io.Writer) (*app, error) {
	tel, err := observability.Setup(ctx, observability.Options{
		ServiceName: cfg.ServiceName,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		OTelEnabled: cfg.OTelEnabled,
		Writer:      stdout,
	})
	if err != nil {
		return nil, fmt.Errorf("observability: %w", err)
	}
	a := &app{cfg: cfg, telemetry: tel}
	a.closers = append(a.closers, shutdownCloser{ctx: ctx, tel: tel})
	logger := tel.Logger

	fail := func(err error) (*app, error) {
		_ = a.Close()
		return nil, err
	}

	gen, err := ids.New(ids.Strategy(cfg.IDStrategy))
	if err != nil {
		return fail(err)
	}
	store, storeCloser, err := core.OpenPersistentStore(core.StorageOptions{
		Driver:      core.StorageDriver(cfg.StorageDriver),
		SQLitePath:  cfg.SQLitePath,
		PostgresDSN: cfg.PostgresDSN,
		MySQLDSN:    cfg.MySQLDSN,
	}, core.NewDefaultRulesEngine(), memory.WithIDGenerator(gen))
	if err != nil {
		return fail(fmt.Errorf("open %s store: %w", cfg.StorageDriver, err))
	}
	a.closers = append(a.closers, storeCloser)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := core.NewPrometheusMetricsRecorder(reg)
	if err != nil {
		return fail(err)
	}
	a.service = core.NewService(store,
		core.WithLogger(logger),
		core.WithMetricsRecorder(metrics),
		core.WithTracer(core.NewOTelTracer(tel.Tracer)),
		core.WithAuditRecorder(core.NewSlogAuditRecorder(logger)),
	)

	if cfg.SeedFixtures {
		seed, err := fixtures.Default()
		if err != nil {
			return fail(err)
		}
		applied, err := fixtures.Apply(ctx, store, seed)
		if err != nil {
			return fail(fmt.Errorf("seed fixtures: %w", err))
		}
		logger.InfoContext(ctx, "fixtures", "applied", applied, "revision", store.Revision())
	}

	blobs, err := blob.Open(ctx, blob.Options{
		Driver: blob.Driver(cfg.Blob.Driver),
		FSRoot: cfg.Blob.FSRoot,
		S3: blob.S3Options{
			Bucket:          cfg.Blob.S3Bucket,
			Region:          cfg.Blob.S3Region,
			Endpoint:        cfg.Blob.S3Endpoint,
			AccessKeyID:     cfg.Blob.S3AccessKeyID,
			SecretAccessKey: cfg.Blob.S3SecretAccessKey,
			PathStyle:       cfg.Blob.S3PathStyle,
		},
	})
	if err != nil {
		return fail(fmt.Errorf("open %s blob store: %w", cfg.Blob.Driver, err))
	}
	if c, ok := blobs.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	archiver := backup.New(store, blobs, backup.WithLogger(logger), backup.WithRetention(cfg.Blob.Retain))

	responses, err := openCache(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}
	a.closers = append(a.closers, responses)

	a.handler, err = httpapi.Handler(httpapi.Options{
		Service:    a.service,
		Archiver:   archiver,
		Cache:      responses,
		CacheTTL:   cfg.CacheTTL,
		Logger:     logger,
		Registerer: reg,
		Gatherer:   reg,
	})
	if err != nil {
		return fail(err)
	}
	return a, nil
}

// openCache prefers Redis when an address is configured.
func openCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (cache.Cache, error) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(0), nil
	}
	r := cache.NewRedis(cache.RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err := r.Ping(ctx); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
	}
	logger.InfoContext(ctx, "response cache", "backend", "redis", "addr", cfg.RedisAddr)
	return r, nil
}

func serve(ctx context.Context, a *app) error {
	logger := a.telemetry.Logger
	srv := &http.Server{Addr: a.cfg.HTTPAddr, Handler: a.handler}

	errc := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "listening", "addr", a.cfg.HTTPAddr, "storage", a.cfg.StorageDriver)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	logger.InfoContext(shutdownCtx, "shutting down", "timeout", a.cfg.ShutdownTimeout)
	return srv.Shutdown(shutdownCtx)
}

type shutdownCloser struct {
	ctx context.Context
	tel *observability.Telemetry
}

func (s shutdownCloser) Close() error {
	return s.tel.Shutdown(context.WithoutCancel(s.ctx))
}
