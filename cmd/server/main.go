package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "ritualplanner/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ritualplanner/internal/auth"
	"ritualplanner/internal/cache"
	"ritualplanner/internal/config"
	"ritualplanner/internal/db"
	"ritualplanner/internal/handler"
	"ritualplanner/internal/mail"
	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
	"ritualplanner/internal/router"
	"ritualplanner/internal/scheduler"
	"ritualplanner/internal/service"
	"ritualplanner/pkg/logging"
)

// @title RitualPlanner API
// @version 1.0
// @description Scheduling and billing backend for ritual service professionals with JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logging.Setup()
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		slog.Error("database init", "error", err)
		os.Exit(1)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		slog.Info("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Payment{},
			&model.BillItem{},
			&model.Bill{},
			&model.TemplateItem{},
			&model.Template{},
			&model.Task{},
			&model.Note{},
			&model.Client{},
			&model.CoWorker{},
			&model.HelpMessage{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				slog.Warn("failed to drop table (may not exist)", "error", err)
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Note{},
		&model.Client{},
		&model.CoWorker{},
		&model.Template{},
		&model.TemplateItem{},
		&model.Bill{},
		&model.BillItem{},
		&model.Task{},
		&model.Payment{},
		&model.HelpMessage{},
	); err != nil {
		slog.Error("auto-migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)
	clientRepo := repository.NewClientRepository(gormDB)
	coWorkerRepo := repository.NewCoWorkerRepository(gormDB)
	templateRepo := repository.NewTemplateRepository(gormDB)
	billRepo := repository.NewBillRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)
	helpRepo := repository.NewHelpMessageRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	otpStore := auth.NewOTPStore(cacheClient)
	mailer := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, otpStore, mailer)
	noteService := service.NewNoteService(noteRepo)
	clientService := service.NewClientService(clientRepo)
	coWorkerService := service.NewCoWorkerService(coWorkerRepo)
	templateService := service.NewTemplateService(templateRepo)
	billService := service.NewBillService(billRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo)
	paymentService := service.NewPaymentService(paymentRepo, cacheClient)
	helpService := service.NewHelpService(helpRepo)
	reminderService := service.NewReminderService(noteRepo, userRepo, mailer)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)
	clientHandler := handler.NewClientHandler(clientService)
	coWorkerHandler := handler.NewCoWorkerHandler(coWorkerService)
	templateHandler := handler.NewTemplateHandler(templateService)
	billHandler := handler.NewBillHandler(billService)
	taskHandler := handler.NewTaskHandler(taskService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	helpHandler := handler.NewHelpHandler(helpService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		noteHandler,
		clientHandler,
		coWorkerHandler,
		templateHandler,
		billHandler,
		taskHandler,
		paymentHandler,
		helpHandler,
	)

	// Background reminder sweep
	sched := scheduler.New(time.Local)
	if _, err := sched.ScheduleInterval(cfg.ReminderInterval, func() {
		sweepCtx, cancel := reminderContext()
		defer cancel()
		sent, err := reminderService.Sweep(sweepCtx, time.Now())
		if err != nil {
			slog.Warn("reminder sweep", "error", err)
			return
		}
		if sent > 0 {
			slog.Info("reminder sweep", "reminders_sent", sent)
		}
	}); err != nil {
		slog.Error("schedule reminder sweep", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	// Log swagger full path
	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
	}
	slog.Info("swagger documentation available", "url", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		slog.Error("server start", "error", err)
		os.Exit(1)
	}
}

// reminderContext bounds a single sweep run.
func reminderContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Minute)
}
