package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"auditarmor/internal/chain"
	chainhandler "auditarmor/internal/chain/handler"
	chainmetrics "auditarmor/internal/chain/metrics"
	"auditarmor/internal/chain/publisher"
	evidencehandler "auditarmor/internal/evidence/handler"
	evidenceservice "auditarmor/internal/evidence/service"
	fleethandler "auditarmor/internal/fleet/handler"
	fleetservice "auditarmor/internal/fleet/service"
	fleetstore "auditarmor/internal/fleet/store"
	"auditarmor/internal/frontend"
	httpapi "auditarmor/internal/http"
	"auditarmor/internal/platform/config"
	"auditarmor/internal/platform/httpserver"
	"auditarmor/internal/platform/logger"
	"auditarmor/internal/platform/metrics"
	"auditarmor/internal/platform/redis"
	ratelimitmetrics "auditarmor/internal/ratelimit/metrics"
	ratelimitmw "auditarmor/internal/ratelimit/middleware"
	"auditarmor/internal/ratelimit/store/bucket"
	"auditarmor/pkg/platform/circuit"
	"auditarmor/pkg/platform/middleware/metadata"
)

// main wires dependencies and runs the server until SIGINT or SIGTERM.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	pub, err := newPublisher(ctx, cfg, log, reg)
	if err != nil {
		return err
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.Warn("failed to close chain publisher", "error", err)
		}
	}()

	auditLog, err := chain.New(cfg.DataDir,
		chain.WithLogger(log),
		chain.WithMetrics(chainmetrics.New(reg)),
		chain.WithFileLock(cfg.ChainFileLock),
		chain.WithNotifier(pub),
	)
	if err != nil {
		return fmt.Errorf("open audit chain: %w", err)
	}
	length, err := auditLog.Length(ctx)
	if err != nil {
		return fmt.Errorf("read audit chain: %w", err)
	}
	log.Info("audit chain opened", "path", auditLog.Path(), "length", length)

	limitStore, sweeper, closeStore, err := newBucketStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()
	limiter := ratelimitmw.New(limitStore, log,
		ratelimitmw.WithDisabled(cfg.RateLimit.Limit <= 0),
		ratelimitmw.WithMetrics(ratelimitmetrics.New(reg)),
	)

	clients, err := metadata.NewResolver(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("parse TRUSTED_PROXIES: %w", err)
	}

	router := httpapi.NewRouter(httpapi.Config{
		Logger:         log,
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		ClientMetadata: clients.Middleware,
		API: []httpapi.Registrar{
			fleethandler.New(fleetservice.New(fleetstore.NewSeededStore(), auditLog), log),
			chainhandler.New(auditLog, log),
		},
		Upload: []httpapi.Registrar{
			evidencehandler.New(evidenceservice.New(auditLog, log), cfg.MaxUploadBytes, log),
		},
		UploadLimit: limiter.RateLimit("upload", cfg.RateLimit.Limit, cfg.RateLimit.Window),
		Frontend:    frontend.New(cfg.FrontendDir, log),
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting audit-armor", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	if sweeper != nil {
		g.Go(func() error {
			sweeper(gctx, cfg.RateLimit.Window)
			return nil
		})
	}
	return g.Wait()
}

// newPublisher always announces to the log sink and adds Kafka when brokers
// are configured.
func newPublisher(ctx context.Context, cfg config.Server, log *slog.Logger, reg prometheus.Registerer) (*publisher.Publisher, error) {
	sinks := []publisher.Sink{publisher.NewLogSink(log)}
	if len(cfg.Kafka.Brokers) > 0 {
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		kafka, err := publisher.NewKafkaSink(dialCtx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		sinks = append(sinks, kafka)
		log.Info("announcing chain appends to kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}
	return publisher.New(sinks,
		publisher.WithBuffer(cfg.Kafka.PublishBuffer),
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetrics(reg)),
	), nil
}

type sweepFunc func(ctx context.Context, window time.Duration)

// newBucketStore picks the rate limit backend. With Redis configured the
// shared store is primary and a local store takes over while Redis fails.
// The returned sweeper prunes the local store and is nil when there is none
// to prune.
func newBucketStore(ctx context.Context, cfg config.Server, log *slog.Logger) (ratelimitmw.BucketStore, sweepFunc, func(), error) {
	local := bucket.NewInMemoryBucketStore()
	sweeper := func(ctx context.Context, window time.Duration) {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := local.Sweep(window); n > 0 {
					log.Debug("swept idle rate limit windows", "removed", n)
				}
			}
		}
	}
	if cfg.RateLimit.Limit <= 0 || cfg.RateLimit.Window <= 0 {
		return local, nil, func() {}, nil
	}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		return local, sweeper, func() {}, nil
	}
	log.Info("rate limiting backed by redis")
	store := ratelimitmw.NewFallbackStore(
		bucket.NewRedisBucketStore(client),
		local,
		circuit.New("redis", circuit.WithFailureThreshold(5), circuit.WithCooldown(30*time.Second)),
		log,
	)
	closeClient := func() {
		if err := client.Close(); err != nil {
			log.Warn("failed to close redis client", "error", err)
		}
	}
	return store, sweeper, closeClient, nil
}
