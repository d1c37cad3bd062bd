package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/create_booking"
	createScheduleHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/create_schedule"
	createAdjustmentHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/create_seats_adjustment"
	deleteScheduleHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/delete_schedule"
	getBookingHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/get_booking"
	getRemainingSeatsHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/get_remaining_seats"
	getScheduleHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/get_schedule"
	getUserBookingsHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/get_user_bookings"
	listSchedulesHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/list_schedules"
	listAdjustmentsHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/list_seats_adjustments"
	updateBookingStatusHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/update_booking_status"
	updateScheduleHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/update_schedule"
	updateAdjustmentHandler "github.com/m04kA/ParkBookingService/internal/api/handlers/update_seats_adjustment"
	"github.com/m04kA/ParkBookingService/internal/api/middleware"
	"github.com/m04kA/ParkBookingService/internal/config"
	"github.com/m04kA/ParkBookingService/internal/domain"
	activityRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/activity"
	adjustmentRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/adjustment"
	bookingRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/ParkBookingService/internal/infra/storage/schedule"
	adjustmentsService "github.com/m04kA/ParkBookingService/internal/service/adjustments"
	"github.com/m04kA/ParkBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/ParkBookingService/internal/service/bookings"
	schedulesService "github.com/m04kA/ParkBookingService/internal/service/schedules"
	createBookingUC "github.com/m04kA/ParkBookingService/internal/usecase/create_booking"
	getRemainingSeatsUC "github.com/m04kA/ParkBookingService/internal/usecase/get_remaining_seats"
	updateBookingStatusUC "github.com/m04kA/ParkBookingService/internal/usecase/update_booking_status"
	"github.com/m04kA/ParkBookingService/pkg/dbmetrics"
	"github.com/m04kA/ParkBookingService/pkg/logger"
	"github.com/m04kA/ParkBookingService/pkg/metrics"
	"github.com/m04kA/ParkBookingService/pkg/txmanager"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting ParkBookingService...")
	log.Info("Configuration loaded from %s", *configPath)

	location, err := cfg.Park.Location()
	if err != nil {
		log.Fatal("Failed to load park timezone: %v", err)
	}
	daySpanning := domain.NewDaySpanningPolicy(cfg.Park.DaySpanningSlugs)
	log.Info("Park timezone=%s, day-spanning activities=%v", location, cfg.Park.DaySpanningSlugs)

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
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка над БД: с метриками собирает статистику запросов и пула
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	activityRepository := activityRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	adjustmentRepository := adjustmentRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Калькулятор свободных мест
	calculator := availability.NewCalculator(
		scheduleRepository,
		adjustmentRepository,
		bookingRepository,
		daySpanning,
		location,
		log,
	)

	// Инициализируем сервисы
	scheduleSvc := schedulesService.NewService(scheduleRepository, activityRepository, daySpanning, log)
	adjustmentSvc := adjustmentsService.NewService(adjustmentRepository, scheduleRepository, location, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	getRemainingSeatsUseCase := getRemainingSeatsUC.NewUseCase(calculator, metricsCollector, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		calculator,
		txMgr,
		metricsCollector,
		log,
	)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		calculator,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getRemainingSeats := getRemainingSeatsHandler.NewHandler(getRemainingSeatsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	createSchedule := createScheduleHandler.NewHandler(scheduleSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	listSchedules := listSchedulesHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)
	createAdjustment := createAdjustmentHandler.NewHandler(adjustmentSvc, log)
	updateAdjustment := updateAdjustmentHandler.NewHandler(adjustmentSvc, log)
	listAdjustments := listAdjustmentsHandler.NewHandler(adjustmentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные места расписания на дату
	api.HandleFunc("/schedules/{scheduleId}/remaining-seats", getRemainingSeats.Handle).Methods(http.MethodGet)

	// Реестр расписаний
	api.HandleFunc("/schedules/{scheduleId}", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/activities/{activityId}/schedules", listSchedules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireAdmin)

	// --- Расписания ---
	admin.HandleFunc("/activities/{activityId}/schedules", createSchedule.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/schedules/{scheduleId}", updateSchedule.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/schedules/{scheduleId}", deleteSchedule.Handle).Methods(http.MethodDelete)

	// --- Корректировки мест ---
	admin.HandleFunc("/schedules/{scheduleId}/seats-adjustments", createAdjustment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/schedules/{scheduleId}/seats-adjustments", listAdjustments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/seats-adjustments/{adjustmentId}", updateAdjustment.Handle).Methods(http.MethodPut)

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
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
