package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	backend "github.com/tutor-crm/backend"
	"github.com/tutor-crm/backend/internal/app"
	"github.com/tutor-crm/backend/internal/cache"
	"github.com/tutor-crm/backend/internal/config"
	"github.com/tutor-crm/backend/internal/controller"
	"github.com/tutor-crm/backend/internal/controller/handlers"
	"github.com/tutor-crm/backend/internal/repository"
	"github.com/tutor-crm/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Sugar().Fatalw("Failed to create pg pool", "error", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Sugar().Fatalw("Failed to ping database", "error", err)
	}

	migrator, err := app.NewMigrator(pool, backend.Migrations)
	if err != nil {
		logger.Sugar().Fatalw("Failed to create migrator", "error", err)
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Sugar().Fatalw("Failed to run migrations", "error", err)
	}
	if err := migrator.Close(); err != nil {
		logger.Sugar().Warnw("Failed to close migrator", "error", err)
	}

	events := cache.New(cfg.RedisAddr, logger)
	defer events.Close()

	studentRepo := repository.NewStudentRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	statusRepo := repository.NewStatusRepository(pool)
	bookRepo := repository.NewBookRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	scheduler := app.NewScheduler(userRepo, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	authService := service.NewAuthService(userRepo, logger, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	studentService := service.NewStudentService(studentRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	statusService := service.NewStatusService(statusRepo, logger)
	bookService := service.NewBookService(bookRepo, events, logger)
	lessonService := service.NewLessonService(lessonRepo, studentRepo, categoryRepo, statusRepo, events, logger)
	calendarService := service.NewCalendarService(bookRepo, lessonRepo, categoryRepo, events, logger, cfg.DefaultLessonMinutes)
	statisticsService := service.NewStatisticsService(lessonRepo, bookRepo, studentRepo, categoryRepo, logger, cfg.TaxRatePercent)

	router := controller.NewRouter(controller.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Student:    handlers.NewStudentHandler(studentService),
		Category:   handlers.NewCategoryHandler(categoryService),
		Status:     handlers.NewStatusHandler(statusService),
		Book:       handlers.NewBookHandler(bookService),
		Lesson:     handlers.NewLessonHandler(lessonService),
		Calendar:   handlers.NewCalendarHandler(calendarService),
		Statistics: handlers.NewStatisticsHandler(statisticsService),
	}, authService, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infow("Starting HTTP server",
			"addr", cfg.HTTPAddr,
			"environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalw("HTTP server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorw("Graceful shutdown failed", "error", err)
	}
}
