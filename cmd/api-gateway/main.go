package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/campus-timetable-api/api/swagger"
	"github.com/noah-isme/campus-timetable-api/internal/handler"
	"github.com/noah-isme/campus-timetable-api/internal/middleware"
	"github.com/noah-isme/campus-timetable-api/internal/repository"
	"github.com/noah-isme/campus-timetable-api/internal/service"
	"github.com/noah-isme/campus-timetable-api/pkg/cache"
	"github.com/noah-isme/campus-timetable-api/pkg/config"
	"github.com/noah-isme/campus-timetable-api/pkg/database"
	"github.com/noah-isme/campus-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-timetable-api/pkg/middleware/requestid"
)

// @title Campus Timetable API
// @version 0.1.0
// @description Timetable generation, exam scheduling, seating, and invigilation
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer redisClient.Close()

	courseRepo := repository.NewCourseRepository(db)
	professorRepo := repository.NewProfessorRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	examRepo := repository.NewExamRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsService := service.NewMetricsService()

	timetableService := service.NewTimetableService(
		courseRepo, slotRepo, roomRepo, availabilityRepo, studentRepo,
		timetableRepo, sessionRepo, cacheRepo, metricsService,
		nil, logr,
		service.TimetableConfig{
			MinBreakMinutes: cfg.Scheduler.MinBreakMinutes,
			WorkingDays:     cfg.Scheduler.WorkingDays,
			CacheEnabled:    cfg.Cache.Enabled,
			ViewTTL:         cfg.Cache.ViewTTL,
			StatsTTL:        cfg.Cache.StatsTTL,
		},
	)
	examService := service.NewExamService(
		courseRepo, roomRepo, enrollmentRepo, professorRepo, availabilityRepo, examRepo,
		nil, logr,
		service.ExamConfig{SeatingSeed: cfg.Exams.SeatingSeed},
	)
	catalogService := service.NewCatalogService(
		courseRepo, professorRepo, studentRepo, roomRepo, slotRepo,
		availabilityRepo, enrollmentRepo, nil, logr,
	)
	importService := service.NewImportService(courseRepo, professorRepo, studentRepo, roomRepo, nil, logr)
	exportService := service.NewExportService(timetableRepo, sessionRepo, examRepo, courseRepo, logr)
	authService := service.NewAuthService(nil, logr, service.AuthConfig(cfg.Auth))

	var pusher service.CalendarPusher
	if cfg.Calendar.Enabled {
		pusher = service.LogCalendarPusher{Logger: logr}
	}
	calendarService := service.NewCalendarService(
		timetableRepo, sessionRepo, pusher, logr,
		service.CalendarConfig{Workers: cfg.Calendar.Workers},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	calendarService.Start(ctx)
	defer calendarService.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, cfg.APIPrefix, handler.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Timetables: handler.NewTimetableHandler(timetableService, calendarService),
		Exams:      handler.NewExamHandler(examService),
		Courses:    handler.NewCourseHandler(catalogService),
		Professors: handler.NewProfessorHandler(catalogService),
		Students:   handler.NewStudentHandler(catalogService),
		Rooms:      handler.NewRoomHandler(catalogService),
		Slots:      handler.NewSlotHandler(catalogService),
		Imports:    handler.NewImportHandler(importService),
		Exports:    handler.NewExportHandler(exportService),
	}, authService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}
