package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/atlasboard/tracker-service/internal/api/http"
	"github.com/atlasboard/tracker-service/internal/api/http/handlers"
	"github.com/atlasboard/tracker-service/internal/auth"
	"github.com/atlasboard/tracker-service/internal/config"
	"github.com/atlasboard/tracker-service/internal/observability"
	"github.com/atlasboard/tracker-service/internal/persistence"
	"github.com/atlasboard/tracker-service/internal/repository"
	"github.com/atlasboard/tracker-service/internal/service"
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
	userRepo := repository.NewUserRepository(pool)
	teamRepo := repository.NewTeamRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	epicRepo := repository.NewEpicRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	statusRepo := repository.NewStatusRepository(pool)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	summaryService := service.NewSummaryService(cfg.AI, redis, logger)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.CORS.AllowedOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userRepo, teamRepo),
		Teams:          handlers.NewTeamsHandler(teamRepo, userRepo),
		Projects:       handlers.NewProjectsHandler(projectRepo, teamRepo),
		Epics:          handlers.NewEpicsHandler(epicRepo, projectRepo, statusRepo, userRepo, commentRepo, summaryService),
		Tickets:        handlers.NewTicketsHandler(ticketRepo, epicRepo, statusRepo, userRepo, commentRepo, summaryService),
		Comments:       handlers.NewCommentsHandler(commentRepo, epicRepo, ticketRepo),
		Statuses:       handlers.NewStatusesHandler(statusRepo),
		Metrics:        metrics,
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
