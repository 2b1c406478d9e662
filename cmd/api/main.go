package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/mail"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/security"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/storage"
	"github.com/spec-kit/helpdesk-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	profileRepo := repository.NewProfileRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	assetRepo := repository.NewAssetRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	var limiter security.LoginLimiter
	switch cfg.RateLimit.Backend {
	case "redis":
		limiter = security.NewRedisLimiter(redis.Client, cfg.RateLimit)
	default:
		memLimiter := security.NewMemoryLimiter(cfg.RateLimit)
		defer memLimiter.Stop()
		limiter = memLimiter
	}

	store, err := storage.NewObjectStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init object store", zap.Error(err))
	}

	mailer := mail.NewMailer(cfg.SMTP, logger)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	auditRecorder := service.NewAuditRecorder(auditRepo, logger)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		ProfileRepo: profileRepo,
		ResetRepo:   resetRepo,
		Tokens:      tokens,
		Limiter:     limiter,
		Mailer:      mailer,
		Audit:       auditRecorder,
		Logger:      logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		CommentRepo:    commentRepo,
		AttachmentRepo: attachmentRepo,
		ProfileRepo:    profileRepo,
		AuditRepo:      auditRepo,
		Audit:          auditRecorder,
		Dispatcher:     dispatcher,
		Store:          store,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		TicketRepo:  ticketRepo,
		AssetRepo:   assetRepo,
		AuditRepo:   auditRepo,
		ProfileRepo: profileRepo,
	})
	assetService := service.NewAssetService(service.AssetDependencies{
		AssetRepo:   assetRepo,
		ProfileRepo: profileRepo,
		Audit:       auditRecorder,
	})
	adminService := service.NewAdminService(service.AdminDependencies{
		LocationRepo: locationRepo,
		ProfileRepo:  profileRepo,
		Audit:        auditRecorder,
		BcryptCost:   cfg.Auth.BcryptCost,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		TicketRepo:  ticketRepo,
		ProfileRepo: profileRepo,
		Mailer:      mailer,
		Logger:      logger,
	})
	worker.StartNotificationWorker(dispatcher, notificationService)

	authMiddleware := auth.NewAuthMiddleware(tokens, profileRepo)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		StaffTickets:   handlers.NewStaffTicketsHandler(ticketService),
		Reports:        handlers.NewReportsHandler(reportService),
		Assets:         handlers.NewAssetsHandler(assetService),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
