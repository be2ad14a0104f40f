package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payledger/internal/config"
	"github.com/GlebRadaev/payledger/internal/events"
	"github.com/GlebRadaev/payledger/internal/handlers"
	"github.com/GlebRadaev/payledger/internal/metrics"
	"github.com/GlebRadaev/payledger/internal/pg"
	"github.com/GlebRadaev/payledger/internal/processor"
	"github.com/GlebRadaev/payledger/internal/repo"
	"github.com/GlebRadaev/payledger/internal/service"
	"github.com/GlebRadaev/payledger/pkg/auth"
	"github.com/GlebRadaev/payledger/pkg/clients"
	"github.com/GlebRadaev/payledger/pkg/logger"
)

const guardTTL = time.Minute

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg       *config.Config
	api       *handlers.Handlers
	srv       *service.Services
	repo      *repo.Repositories
	scheduler *processor.TimerScheduler
	publisher events.Multi

	closers []io.Closer
	errCh   chan error
	wg      sync.WaitGroup
	ready   bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	if err := a.setup(ctx, cfg); err != nil {
		return err
	}

	if err := processor.Recover(ctx, a.srv.Resumers...); err != nil {
		zap.L().Error("recovery failed: ", zap.Error(err))
		return fmt.Errorf("can't resume pending work: %w", err)
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

// setup wires storage, the deferred processor and the HTTP layer for cfg.
func (a *Application) setup(ctx context.Context, cfg *config.Config) error {
	a.cfg = cfg

	repos, err := a.initStorage(ctx)
	if err != nil {
		return err
	}
	a.repo = repos

	var guard processor.Guard = processor.NewLocalGuard()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		a.closers = append(a.closers, client)
		guard = processor.NewRedisGuard(client, guardTTL)
		zap.L().Info("using redis in-flight guard", zap.String("addr", cfg.RedisAddr))
	}
	a.scheduler = processor.NewTimerScheduler(processor.NewWorkerPool(cfg.Workers), guard)
	a.scheduler.Start(ctx)

	a.publisher = events.Multi{events.LogPublisher{}}
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		kafka := events.NewKafkaPublisher(brokers, cfg.KafkaTopic)
		a.closers = append(a.closers, kafka)
		a.publisher = append(a.publisher, kafka)
	}
	if cfg.WebhookURL != "" {
		a.publisher = append(a.publisher, events.NewWebhookPublisher(cfg.WebhookURL, clients.NewHTTPClient()))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	rt := processor.Runtime{
		Scheduler: a.scheduler,
		Outcome:   processor.RandomOutcome{},
		Clock:     processor.SystemClock{},
		Events:    a.publisher,
		Metrics:   metrics.New(reg),

		RetryDelay: guardTTL,
	}

	a.srv = service.New(a.repo, rt, cfg.Simulation)
	a.api = handlers.New(a.srv, auth.NewJWTService(cfg.JWTSecret),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return nil
}

func (a *Application) initStorage(ctx context.Context) (*repo.Repositories, error) {
	if a.cfg.Database == "" {
		zap.L().Warn("DATABASE_URI is empty, ledger is kept in memory")
		return repo.NewMemory(), nil
	}

	pool, err := pg.NewPool(ctx, a.cfg.Database)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return nil, fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		pool.Close()
		zap.L().Error("migrations failed: ", zap.Error(err))
		return nil, fmt.Errorf("can't run migrations: %w", err)
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		pool.Close()
	}()

	return repo.New(pg.New(pool), pg.NewTXManager(pool)), nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			zap.L().Warn("close failed", zap.Error(err))
		}
	}

	return appErr
}
