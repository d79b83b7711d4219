package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/freelance-directory/internal/api/http"
	"github.com/spec-kit/freelance-directory/internal/api/http/handlers"
	"github.com/spec-kit/freelance-directory/internal/auth"
	"github.com/spec-kit/freelance-directory/internal/cache"
	"github.com/spec-kit/freelance-directory/internal/config"
	"github.com/spec-kit/freelance-directory/internal/events"
	"github.com/spec-kit/freelance-directory/internal/mail"
	"github.com/spec-kit/freelance-directory/internal/observability"
	"github.com/spec-kit/freelance-directory/internal/persistence"
	"github.com/spec-kit/freelance-directory/internal/repository"
	"github.com/spec-kit/freelance-directory/internal/service"
	"github.com/spec-kit/freelance-directory/internal/validation"
	"github.com/spec-kit/freelance-directory/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, cfg.App.Name, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	dispatcher := events.NewInMemoryDispatcher(logger)
	mailer := mail.New(cfg.Mail, logger)
	directoryCache := cache.NewDirectoryCache(redis, cfg.Directory.CacheTTL())

	notifications := service.NewNotificationService(mailer, logger, service.NotificationConfig{
		SiteName: cfg.App.Name,
		From:     cfg.Mail.From,
	})
	worker.RegisterSubscribers(dispatcher, notifications, directoryCache)

	accountService := service.NewAccountService(*cfg, service.AccountDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	directoryService := service.NewDirectoryService(cfg.Directory, userRepo, directoryCache, logger)
	likeService := service.NewLikeService(userRepo, dispatcher)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Accounts:       handlers.NewAccountsHandler(accountService, validation.New()),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		Likes:          handlers.NewLikesHandler(likeService),
		AuthMiddleware: auth.NewAuthMiddleware(accountService.TokenManager(), userRepo),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
