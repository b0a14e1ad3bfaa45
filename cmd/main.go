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

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"

	"github.com/cricboard/league-system/config"
	"github.com/cricboard/league-system/db"
	"github.com/cricboard/league-system/handlers"
	"github.com/cricboard/league-system/live"
	"github.com/cricboard/league-system/notify"
	"github.com/cricboard/league-system/repositories"
	api "github.com/cricboard/league-system/routes"
	"github.com/cricboard/league-system/services"
	"github.com/cricboard/league-system/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Инициализация загрузчика файлов (Cloudflare R2), если настроен
	var uploader storage.FileUploader
	if cfg.UploadsConfigured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 not configured, logo uploads disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Публикация обновлений матчей: websocket всегда, NATS опционально
	sinks := []notify.Publisher{notify.NewHubPublisher(wsHub)}
	if cfg.NATSURL != "" {
		natsConn, err := nats.Connect(cfg.NATSURL, nats.Name("league-system"))
		if err != nil {
			logger.Error("failed to connect to NATS", slog.Any("error", err))
			os.Exit(1)
		}
		defer natsConn.Close()
		sinks = append(sinks, notify.NewNATSPublisher(natsConn, "league.matches"))
		logger.Info("NATS publisher initialized", slog.String("url", cfg.NATSURL))
	}
	publisher := notify.NewFanout(logger, sinks...)

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	seasonRepo := repositories.NewPostgresSeasonRepository(dbConn)
	scheduleRepo := repositories.NewPostgresGroupScheduleRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo)
	seasonService := services.NewSeasonService(seasonRepo)
	teamService := services.NewTeamService(teamRepo, userRepo, uploader, logger)
	scheduleService := services.NewScheduleService(seasonRepo, teamRepo, scheduleRepo, matchRepo, logger)
	fixtureService := services.NewFixtureService(seasonRepo, teamRepo, scheduleRepo, matchRepo, logger)
	standingsService := services.NewStandingsService(scheduleRepo, matchRepo)
	matchService := services.NewMatchService(matchRepo, publisher, logger)
	logger.Info("services initialized")

	// Запуск автоматического планировщика расписаний
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	trigger := services.NewScheduleAutoTrigger(
		seasonRepo,
		scheduleService,
		clockwork.NewRealClock(),
		cfg.SchedulerInterval,
		logger,
	)
	go trigger.Run(schedulerCtx)

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	seasonHandler := handlers.NewSeasonHandler(seasonService, fixtureService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, standingsService)
	matchHandler := handlers.NewMatchHandler(matchService)
	teamHandler := handlers.NewTeamHandler(teamService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		seasonHandler,
		scheduleHandler,
		matchHandler,
		teamHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		stopScheduler()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
