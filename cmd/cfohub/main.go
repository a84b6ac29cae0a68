package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/cfohub/cfohub/internal/app"
	"github.com/cfohub/cfohub/internal/auth"
	"github.com/cfohub/cfohub/internal/fixtures"
	jobmetrics "github.com/cfohub/cfohub/internal/jobs"
	"github.com/cfohub/cfohub/internal/observability"
	"github.com/cfohub/cfohub/internal/platform/cache"
	"github.com/cfohub/cfohub/internal/platform/snapshot"
	"github.com/cfohub/cfohub/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("cfohub stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	provider, err := fixtures.NewProvider()
	if err != nil {
		return err
	}

	db, err := snapshot.Open(cfg.SnapshotPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("snapshot close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	stores := app.NewStores(provider)
	defer stores.Observe(metrics.StoreObserver())()
	unbind, err := stores.Bind(ctx, db, logger)
	if err != nil {
		return err
	}
	defer unbind()

	var revoker auth.Revoker
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, token revocation and jobs disabled", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		revoker = cache.NewDenylist(redisClient, "")
	}
	jobsEnabled := cfg.JobsEnabled && redisClient != nil

	deps := app.ServiceDeps{Logger: logger, LoginURL: cfg.LoginURL}
	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	var inspector *asynq.Inspector
	if jobsEnabled {
		client := jobs.NewClient(redisOpts)
		defer func() {
			if err := client.Close(); err != nil {
				logger.Warn("jobs client close", slog.Any("error", err))
			}
		}()
		deps.Mailer, deps.Omie, deps.Scheduler = client, client, client

		inspector = asynq.NewInspector(redisOpts)
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
	}
	services := app.NewServices(stores, deps)
	defer services.Close()

	authService, err := auth.NewService(auth.Options{
		Secret:        cfg.JWTSecret,
		TTL:           cfg.JWTTTL,
		AdminEmail:    cfg.AuthAdminEmail,
		AdminPassword: cfg.AuthAdminPassword,
	}, revoker)
	if err != nil {
		return err
	}
	if cfg.AuthDisabled {
		logger.Warn("authentication disabled for /v1")
	}

	router := app.NewRouter(app.RouterParams{
		Logger:      logger,
		Config:      cfg,
		Provider:    provider,
		AuthService: authService,
		Services:    services,
		JobHandler:  jobs.NewHandler(inspector, logger),
		Metrics:     metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if jobsEnabled {
		worker, err := newWorker(logger, redisOpts, services, jobmetrics.NewMetrics(metrics.Registerer()))
		if err != nil {
			return err
		}
		g.Go(func() error {
			if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown", slog.Any("error", err))
		}
		return nil
	})
	return g.Wait()
}

func newWorker(logger *slog.Logger, opts asynq.RedisClientOpt, services *app.Services, metrics *jobmetrics.Metrics) (*jobs.Worker, error) {
	mail := &jobs.MailJob{Logger: logger, Metrics: metrics}
	omie := jobs.NewOmieSyncJob(services.Folha, logger, metrics)
	reminders := jobs.NewReminderJob(services.Lembretes, logger, metrics)
	return jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: opts,
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeSendEmail, Handler: mail.Handle},
			{Type: jobs.TaskOmieSync, Handler: omie.Handle},
			{Type: jobs.TaskReminderGenerate, Handler: reminders.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: jobs.ReminderCronSpec, Task: jobs.NewReminderGenerateTask(), Options: []asynq.Option{asynq.MaxRetry(1)}},
		},
	})
}
