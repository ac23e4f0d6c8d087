package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookAppointmentHandler "github.com/m04kA/SMC-WebsiteService/internal/api/handlers/book_appointment"
	homeHandler "github.com/m04kA/SMC-WebsiteService/internal/api/handlers/home"
	sendTestEmailHandler "github.com/m04kA/SMC-WebsiteService/internal/api/handlers/send_test_email"
	submitContactHandler "github.com/m04kA/SMC-WebsiteService/internal/api/handlers/submit_contact"
	"github.com/m04kA/SMC-WebsiteService/internal/api/middleware"
	"github.com/m04kA/SMC-WebsiteService/internal/config"
	"github.com/m04kA/SMC-WebsiteService/internal/infra/mail"
	apptRepo "github.com/m04kA/SMC-WebsiteService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-WebsiteService/internal/service/notifier"
	bookAppointmentUC "github.com/m04kA/SMC-WebsiteService/internal/usecase/book_appointment"
	submitContactUC "github.com/m04kA/SMC-WebsiteService/internal/usecase/submit_contact"
	"github.com/m04kA/SMC-WebsiteService/internal/view"
	"github.com/m04kA/SMC-WebsiteService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WebsiteService/pkg/logger"
	"github.com/m04kA/SMC-WebsiteService/pkg/metrics"
	"github.com/m04kA/SMC-WebsiteService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-WebsiteService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-WebsiteService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database")

	// Инициализируем рендерер представлений
	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal("Failed to initialize view renderer: %v", err)
	}

	// Инициализируем почтовый транспорт
	sendTimeout := time.Duration(cfg.Mail.SendTimeout) * time.Second
	var mailSender notifier.MailSender
	switch cfg.Mail.Provider {
	case "smtp":
		mailSender = mail.NewSMTPSender(
			cfg.Mail.SMTPHost,
			cfg.Mail.SMTPPort,
			cfg.Mail.Username,
			cfg.Mail.Password,
			cfg.Mail.From,
			sendTimeout,
		)
	case "sendgrid":
		mailSender = mail.NewSendGridSender(cfg.Mail.SendGridAPIKey, cfg.Mail.From, sendTimeout)
	default:
		mailSender = mail.NewNoopSender()
	}
	log.Info("Mail transport initialized (provider=%s, admin=%s)", mailSender.Name(), cfg.Mail.AdminEmail)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Инициализируем репозиторий (с метриками или без)
	var appointmentRepository *apptRepo.Repository

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = apptRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = apptRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис уведомлений и запускаем воркер доставки
	var notifierMetrics notifier.Metrics
	if cfg.Metrics.Enabled {
		notifierMetrics = metricsCollector
	}
	notifierSvc := notifier.NewService(mailSender, notifier.Config{
		AdminEmail:  cfg.Mail.AdminEmail,
		QueueSize:   cfg.Mail.QueueSize,
		SendTimeout: sendTimeout,
	}, log, notifierMetrics)

	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	notifierDone := make(chan struct{})
	go func() {
		defer close(notifierDone)
		notifierSvc.Run(notifierCtx)
	}()

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		notifierSvc,
		txMgr,
		log,
	)
	submitContactUseCase := submitContactUC.NewUseCase(notifierSvc, log)

	// Инициализируем handlers
	home := homeHandler.NewHandler(renderer, log)
	submitContact := submitContactHandler.NewHandler(submitContactUseCase, renderer, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, renderer, log)
	sendTestEmail := sendTestEmailHandler.NewHandler(notifierSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Публичные страницы сайта
	r.HandleFunc("/", home.Handle).Methods(http.MethodGet)
	r.HandleFunc("/contact", submitContact.HandleForm).Methods(http.MethodGet)
	r.HandleFunc("/contact", submitContact.Handle).Methods(http.MethodPost)
	r.HandleFunc("/appointment", bookAppointment.HandleForm).Methods(http.MethodGet)
	r.HandleFunc("/appointment", bookAppointment.Handle).Methods(http.MethodPost)

	// Проверка почтового транспорта
	r.HandleFunc("/test-email", sendTestEmail.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем воркер уведомлений: он дорабатывает очередь и выходит
	stopNotifier()
	select {
	case <-notifierDone:
	case <-shutdownCtx.Done():
		log.Error("Notifier worker did not stop in time")
	}

	log.Info("Server stopped gracefully")
}
