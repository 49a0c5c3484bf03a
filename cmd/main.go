package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-DetailingBooking/internal/api"
	approveRescheduleHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/approve_reschedule"
	createBookingHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/create_booking"
	generateSlotsHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/generate_slots"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_booking"
	getScheduleHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_schedule"
	getSlotBookingsHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/get_slot_bookings"
	rejectRescheduleHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/reject_reschedule"
	requestRescheduleHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/request_reschedule"
	setSlotBlockHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/set_slot_block"
	updateBookingStatusHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/update_booking_status"
	updateScheduleDayHandler "github.com/m04kA/SMC-DetailingBooking/internal/api/handlers/update_schedule_day"
	"github.com/m04kA/SMC-DetailingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/customer"
	rescheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/reschedule"
	scheduleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/schedule"
	slotRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/slot"
	vehicleRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/loyaltyservice"
	"github.com/m04kA/SMC-DetailingBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-DetailingBooking/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-DetailingBooking/internal/service/bookings"
	capacityService "github.com/m04kA/SMC-DetailingBooking/internal/service/capacity"
	eventsService "github.com/m04kA/SMC-DetailingBooking/internal/service/events"
	scheduleService "github.com/m04kA/SMC-DetailingBooking/internal/service/schedule"
	approveRescheduleUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/approve_reschedule"
	createBookingUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/generate_slots"
	listSlotsUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/list_available_slots"
	rejectRescheduleUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/reject_reschedule"
	requestRescheduleUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/request_reschedule"
	setSlotBlockUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/set_slot_block"
	updateStatusUC "github.com/m04kA/SMC-DetailingBooking/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-DetailingBooking/migrations"
	"github.com/m04kA/SMC-DetailingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
	"github.com/m04kA/SMC-DetailingBooking/pkg/metrics"
	"github.com/m04kA/SMC-DetailingBooking/pkg/sqlbuilder"
	"github.com/m04kA/SMC-DetailingBooking/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-DetailingBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	dialect, err := sqlbuilder.ParseDialect(cfg.Database.Driver)
	if err != nil {
		log.Fatal("Invalid database driver: %v", err)
	}

	db, err := sql.Open(dialect.DriverName(), cfg.Database.DSN())
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
	log.Info("Successfully connected to database (driver=%s)", dialect)

	applied, err := migrations.Up(context.Background(), db, dialect)
	if err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied: %d", applied)

	// Репозитории работают через обёртку метрик или напрямую с *sql.DB
	var (
		executor dbmetrics.DBExecutor = db
		beginner                      = txmanager.FromSQL(db)
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		beginner = wrappedDB
		log.Info("Database metrics collection started")
	}

	sb := sqlbuilder.New(dialect)
	bookingRepository := bookingRepo.NewRepository(executor, sb)
	slotRepository := slotRepo.NewRepository(executor, sb)
	customerRepository := customerRepo.NewRepository(executor, sb)
	vehicleRepository := vehicleRepo.NewRepository(executor, sb)
	rescheduleRepository := rescheduleRepo.NewRepository(executor, sb)
	scheduleRepository := scheduleRepo.NewRepository(executor, sb)
	txMgr := txmanager.NewTransactionManager(beginner)

	// Инициализируем интеграции
	var notifier eventsService.Notifier = notifications.NewLogPublisher(log)
	if cfg.Notifications.Enabled {
		publisher, err := notifications.NewPublisher(cfg.Notifications.URL, cfg.Notifications.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to notifications broker: %v", err)
		}
		defer publisher.Close()
		notifier = publisher
		log.Info("Notifications publisher initialized (exchange=%s)", cfg.Notifications.Exchange)
	}

	var loyalty eventsService.LoyaltyClient
	if cfg.LoyaltyService.Enabled {
		loyalty = loyaltyservice.NewClient(
			cfg.LoyaltyService.URL,
			time.Duration(cfg.LoyaltyService.Timeout)*time.Second,
			log,
		)
		log.Info("Loyalty client initialized (url=%s, timeout=%ds)", cfg.LoyaltyService.URL, cfg.LoyaltyService.Timeout)
	}

	// Инициализируем сервисы
	defaults, err := scheduleService.DefaultTemplate(cfg.Schedule)
	if err != nil {
		log.Fatal("Invalid default schedule: %v", err)
	}

	location := cfg.Booking.Location()
	collaboratorTimeout := time.Duration(cfg.LoyaltyService.Timeout) * time.Second

	capacitySvc := capacityService.NewService(slotRepository, metricsCollector, log)
	eventsSvc := eventsService.NewService(notifier, loyalty, metricsCollector, collaboratorTimeout, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, defaults, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		customerRepository,
		vehicleRepository,
		rescheduleRepository,
		log,
	)

	// Инициализируем use cases
	listSlotsUseCase := listSlotsUC.NewUseCase(slotRepository, location, log)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		scheduleSvc,
		metricsCollector,
		cfg.Booking.HorizonDays,
		location,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		vehicleRepository,
		capacitySvc,
		txMgr,
		eventsSvc,
		metricsCollector,
		log,
	)
	updateStatusUseCase := updateStatusUC.NewUseCase(
		bookingRepository,
		capacitySvc,
		txMgr,
		eventsSvc,
		metricsCollector,
		log,
	)
	requestRescheduleUseCase := requestRescheduleUC.NewUseCase(
		bookingRepository,
		slotRepository,
		rescheduleRepository,
		txMgr,
		metricsCollector,
		cfg.Booking.RescheduleTTL(),
		location,
		log,
	)
	approveRescheduleUseCase := approveRescheduleUC.NewUseCase(
		bookingRepository,
		rescheduleRepository,
		capacitySvc,
		txMgr,
		eventsSvc,
		metricsCollector,
		log,
	)
	rejectRescheduleUseCase := rejectRescheduleUC.NewUseCase(rescheduleRepository, metricsCollector, log)
	setSlotBlockUseCase := setSlotBlockUC.NewUseCase(slotRepository, log)

	// Инициализируем handlers
	h := &api.Handlers{
		ListSlots:         getAvailableSlotsHandler.NewHandler(listSlotsUseCase, log),
		CreateBooking:     createBookingHandler.NewHandler(createBookingUseCase, log),
		GetBooking:        getBookingHandler.NewHandler(bookingSvc, log),
		UpdateStatus:      updateBookingStatusHandler.NewHandler(updateStatusUseCase, log),
		RequestReschedule: requestRescheduleHandler.NewHandler(requestRescheduleUseCase, log),
		ApproveReschedule: approveRescheduleHandler.NewHandler(approveRescheduleUseCase, log),
		RejectReschedule:  rejectRescheduleHandler.NewHandler(rejectRescheduleUseCase, log),
		GenerateSlots:     generateSlotsHandler.NewHandler(generateSlotsUseCase, log),
		SetSlotBlock:      setSlotBlockHandler.NewHandler(setSlotBlockUseCase, log),
		GetSlotBookings:   getSlotBookingsHandler.NewHandler(bookingSvc, log),
		GetSchedule:       getScheduleHandler.NewHandler(scheduleSvc, log),
		UpdateScheduleDay: updateScheduleDayHandler.NewHandler(scheduleSvc, log),
	}

	opts := api.Options{Logger: log}
	if cfg.Metrics.Enabled {
		opts.Metrics = metricsCollector
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		defer limiter.Close()
		opts.RateLimiter = limiter
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	r := api.NewRouter(h, opts)

	// Фоновые задачи: генерация слотов на горизонт и истечение заявок на перенос
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	sched := scheduler.New(
		generateSlotsUseCase,
		rescheduleRepository,
		time.Duration(cfg.Booking.GenerateInterval)*time.Minute,
		time.Duration(cfg.Booking.ExpireInterval)*time.Second,
		log,
	)
	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		sched.Start(schedulerCtx)
	}()

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopScheduler()
	<-schedulerDone

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
