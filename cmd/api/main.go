package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/jagrati-dev/jagrati-api/api/swagger"
	"github.com/jagrati-dev/jagrati-api/internal/handler"
	"github.com/jagrati-dev/jagrati-api/internal/middleware"
	"github.com/jagrati-dev/jagrati-api/internal/models"
	"github.com/jagrati-dev/jagrati-api/internal/repository"
	"github.com/jagrati-dev/jagrati-api/internal/service"
	"github.com/jagrati-dev/jagrati-api/pkg/cache"
	"github.com/jagrati-dev/jagrati-api/pkg/config"
	"github.com/jagrati-dev/jagrati-api/pkg/database"
	"github.com/jagrati-dev/jagrati-api/pkg/logger"
	"github.com/jagrati-dev/jagrati-api/pkg/mailer"
	corsmiddleware "github.com/jagrati-dev/jagrati-api/pkg/middleware/cors"
	reqidmiddleware "github.com/jagrati-dev/jagrati-api/pkg/middleware/requestid"
	"github.com/jagrati-dev/jagrati-api/pkg/storage"
)

// @title Jagrati API
// @version 1.0.0
// @description Administration backend for the Jagrati volunteer teaching programme
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var mail mailer.Mailer = mailer.NewSMTP(cfg.SMTP)
	mail = mailer.WithObserver(mail, metricsSvc)

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	joinRequestRepo := repository.NewJoinRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	volunteerRepo := repository.NewVolunteerRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	syllabusRepo := repository.NewSyllabusRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	eventRepo := repository.NewEventRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Services.
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, redisClient != nil)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	notificationSvc := service.NewNotificationService(notificationRepo, validate, logr).WithMetrics(metricsSvc)
	joinRequestSvc := service.NewJoinRequestService(joinRequestRepo, notificationSvc, mail, cfg.SMTP.AdminEmail, validate, logr)
	userSvc := service.NewUserService(userRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, userRepo, attendanceRepo, validate, logr)
	volunteerSvc := service.NewVolunteerService(volunteerRepo, attendanceRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, validate, logr)
	syllabusSvc := service.NewSyllabusService(syllabusRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, validate, logr)
	eventSvc := service.NewEventService(eventRepo, notificationSvc, validate, logr)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, notificationSvc, validate, logr)

	var dashboardSvc *service.DashboardService
	if cfg.Dashboard.Enabled {
		dashboardSvc = service.NewDashboardService(statsRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	}

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc = service.NewExportService(attendanceRepo, store, signer, service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
		}, logr, nil, nil)
	}

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	joinRequestHandler := handler.NewJoinRequestHandler(joinRequestSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	classHandler := handler.NewClassHandler(classSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	volunteerHandler := handler.NewVolunteerHandler(volunteerSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	syllabusHandler := handler.NewSyllabusHandler(syllabusSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := middleware.JWT(authSvc)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	staffOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleVolunteer)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", auth, authHandler.Me)
		api.POST("/auth/change-password", auth, authHandler.ChangePassword)

		// Prospective volunteers submit without a session.
		api.POST("/join-requests", joinRequestHandler.Submit)
		api.GET("/join-requests", auth, adminOnly, joinRequestHandler.List)
		api.GET("/join-requests/:id", auth, adminOnly, joinRequestHandler.Get)
		api.PUT("/join-requests/:id/process", auth, adminOnly, joinRequestHandler.Process)

		api.GET("/notifications", auth, notificationHandler.List)
		api.GET("/notifications/unseen-count", auth, notificationHandler.UnseenCount)

		api.GET("/users", auth, adminOnly, userHandler.List)
		api.POST("/users", auth, adminOnly, userHandler.Create)
		api.GET("/users/:id", auth, middleware.RBAC(string(models.RoleAdmin), "SELF"), userHandler.Get)
		api.PUT("/users/:id", auth, adminOnly, userHandler.Update)
		api.DELETE("/users/:id", auth, adminOnly, userHandler.Deactivate)

		api.GET("/classes", auth, staffOnly, classHandler.List)
		api.GET("/classes/:id", auth, staffOnly, classHandler.Get)
		api.POST("/classes", auth, adminOnly, classHandler.Create)
		api.PUT("/classes/:id", auth, adminOnly, classHandler.Update)
		api.DELETE("/classes/:id", auth, adminOnly, classHandler.Delete)

		api.GET("/students", auth, staffOnly, studentHandler.List)
		api.GET("/students/villages", auth, staffOnly, studentHandler.Villages)
		api.GET("/students/:id", auth, middleware.RBAC(string(models.RoleAdmin), string(models.RoleVolunteer), "SELF"), studentHandler.Get)
		api.POST("/students", auth, staffOnly, studentHandler.Enroll)
		api.PUT("/students/:id", auth, staffOnly, studentHandler.UpdateProfile)

		api.GET("/volunteers", auth, staffOnly, volunteerHandler.List)
		api.GET("/volunteers/catalogues", auth, staffOnly, volunteerHandler.Catalogues)
		api.GET("/volunteers/:id", auth, staffOnly, volunteerHandler.Get)
		api.PUT("/volunteers/:id/profile", auth, middleware.RBAC(string(models.RoleAdmin), "SELF"), volunteerHandler.UpsertProfile)
		api.POST("/volunteers/:id/hobbies", auth, middleware.RBAC(string(models.RoleAdmin), "SELF"), volunteerHandler.AddHobby)
		api.DELETE("/volunteers/:id/hobbies/:hobbyId", auth, middleware.RBAC(string(models.RoleAdmin), "SELF"), volunteerHandler.RemoveHobby)
		api.POST("/volunteers/:id/skills", auth, middleware.RBAC(string(models.RoleAdmin), "SELF"), volunteerHandler.AddSkill)
		api.DELETE("/volunteers/:id/skills/:skillId", auth, middleware.RBAC(string(models.RoleAdmin), "SELF"), volunteerHandler.RemoveSkill)

		api.GET("/subjects", auth, staffOnly, subjectHandler.List)
		api.POST("/subjects", auth, adminOnly, subjectHandler.Create)
		api.DELETE("/subjects/:id", auth, adminOnly, subjectHandler.Delete)
		api.GET("/subjects/:id/department", auth, staffOnly, subjectHandler.Department)
		api.POST("/subjects/:id/volunteers", auth, staffOnly, subjectHandler.AddVolunteer)
		api.DELETE("/subjects/:id/volunteers/:volunteerId", auth, staffOnly, subjectHandler.RemoveVolunteer)

		api.GET("/syllabus", auth, staffOnly, syllabusHandler.List)
		api.GET("/syllabus/:id", auth, staffOnly, syllabusHandler.Get)
		api.POST("/syllabus", auth, staffOnly, syllabusHandler.Create)
		api.PUT("/syllabus/:id", auth, staffOnly, syllabusHandler.Update)
		api.DELETE("/syllabus/:id", auth, staffOnly, syllabusHandler.Delete)

		api.POST("/attendance", auth, staffOnly, attendanceHandler.Mark)
		api.GET("/attendance", auth, staffOnly, attendanceHandler.List)
		api.GET("/attendance/classes/:id/dates", auth, staffOnly, attendanceHandler.ClassDates)

		api.GET("/events", auth, staffOnly, eventHandler.List)
		api.GET("/events/:id", auth, staffOnly, eventHandler.Get)
		api.POST("/events", auth, adminOnly, eventHandler.Create)
		api.PUT("/events/:id", auth, adminOnly, eventHandler.Update)
		api.DELETE("/events/:id", auth, adminOnly, eventHandler.Delete)

		api.GET("/feedback/classes", auth, staffOnly, feedbackHandler.ListClassFeedback)
		api.POST("/feedback/classes", auth, staffOnly, feedbackHandler.CreateClassFeedback)
		api.POST("/feedback/students", auth, staffOnly, feedbackHandler.CreateStudentFeedback)
		api.GET("/feedback/students/:id", auth, staffOnly, feedbackHandler.ListStudentFeedback)

		if dashboardSvc != nil {
			api.GET("/dashboard", auth, staffOnly, dashboardHandler.Stats)
		}

		if exportSvc != nil {
			exportHandler := handler.NewExportHandler(exportSvc)
			api.POST("/exports/attendance", auth, staffOnly, exportHandler.Generate)
			// Download links carry their own signed, expiring token.
			api.GET("/exports/download/:token", exportHandler.Download)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sweeper *service.InactivitySweeper
	if cfg.Inactivity.Enabled {
		sweeper = service.NewInactivitySweeper(userRepo, dashboardSvc, logr, service.InactivityConfig{
			WindowDays:    cfg.Inactivity.WindowDays,
			SweepInterval: cfg.Inactivity.SweepInterval,
		})
		sweeper.Start(ctx)
	}

	if exportSvc != nil {
		go func() {
			ticker := time.NewTicker(cfg.Exports.CleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					exportSvc.Cleanup()
				}
			}
		}()
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	if sweeper != nil {
		sweeper.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	logr.Info("server stopped")
}
