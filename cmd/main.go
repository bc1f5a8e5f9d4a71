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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "modernc.org/sqlite"

	deleteBookingHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/delete_booking"
	deleteSeriesHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/delete_series"
	exportBookingsHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/export_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/get_booking"
	getBusinessHoursHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/get_business_hours"
	getScheduleHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/get_schedule"
	getUtilizationHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/get_utilization"
	healthHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/list_bookings"
	referenceHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/reference"
	scheduleBookingHandler "github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/schedule_booking"
	"github.com/m04kA/SMC-RoomScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-RoomScheduler/internal/config"
	"github.com/m04kA/SMC-RoomScheduler/internal/engine"
	"github.com/m04kA/SMC-RoomScheduler/internal/infra/cache"
	"github.com/m04kA/SMC-RoomScheduler/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/booking"
	referenceRepo "github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/reference"
	"github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/schema"
	bookingsService "github.com/m04kA/SMC-RoomScheduler/internal/service/bookings"
	referenceService "github.com/m04kA/SMC-RoomScheduler/internal/service/reference"
	getAvailableSlotsUC "github.com/m04kA/SMC-RoomScheduler/internal/usecase/get_available_slots"
	getScheduleUC "github.com/m04kA/SMC-RoomScheduler/internal/usecase/get_schedule"
	getUtilizationUC "github.com/m04kA/SMC-RoomScheduler/internal/usecase/get_utilization"
	scheduleBookingUC "github.com/m04kA/SMC-RoomScheduler/internal/usecase/schedule_booking"
	"github.com/m04kA/SMC-RoomScheduler/pkg/logger"
	"github.com/m04kA/SMC-RoomScheduler/pkg/metrics"
	"github.com/m04kA/SMC-RoomScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RoomScheduler/pkg/txmanager"
)

const configPath = "config.toml"

// referenceCache общий интерфейс redis-кэша и заглушки
type referenceCache interface {
	referenceService.Cache
	Close() error
}

// eventPublisher общий интерфейс kafka-издателя и заглушки
type eventPublisher interface {
	scheduleBookingUC.EventPublisher
	Close() error
}

func main() {
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

	log.Info("Starting SMC-RoomScheduler...")
	log.Info("Configuration loaded from %s (driver=%s, timezone=%s)",
		configPath, cfg.Database.Driver, cfg.Schedule.Timezone)

	// Календари: часы по умолчанию и переопределения по локациям
	loc, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}
	defaultHours, err := cfg.Schedule.BusinessHours.Parse()
	if err != nil {
		log.Fatal("Invalid business hours: %v", err)
	}
	overrideHours, err := cfg.Schedule.OverrideHours()
	if err != nil {
		log.Fatal("Invalid location overrides: %v", err)
	}
	overrides := make(map[int64]engine.Calendar, len(overrideHours))
	for locationID, hours := range overrideHours {
		overrides[locationID] = engine.NewCalendar(hours, loc)
	}
	calendars := engine.NewCalendarSet(engine.NewCalendar(defaultHours, loc), overrides)
	log.Info("Business calendar ready (overrides=%d, slot=%d min)", len(overrides), cfg.Schedule.SlotMinutes)

	// Подключаемся к базе данных
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	if cfg.Database.Driver == psqlbuilder.DriverSQLite {
		// sqlite допускает одного писателя
		db.SetMaxOpenConns(1)
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (driver=%s, db=%s)", cfg.Database.Driver, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := schema.Migrate(context.Background(), db, cfg.Database.Driver); err != nil {
			log.Fatal("Failed to migrate database: %v", err)
		}
		log.Info("Database schema is up to date")
	}

	// Инициализируем метрики; при выключенных метриках коллекторы пишут в приватный реестр
	var registerer prometheus.Registerer = prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		registerer = prometheus.DefaultRegisterer
	}
	metricsCollector := metrics.New(cfg.Metrics.ServiceName, registerer)
	metricsCollector.RegisterDB(db, cfg.Database.DBName)
	if cfg.Metrics.Enabled {
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Кэш справочников
	var refCache referenceCache = cache.Noop{}
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedis(context.Background(), cache.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      time.Duration(cfg.Cache.TTL) * time.Second,
			Prefix:   cfg.Metrics.ServiceName + ":",
		})
		if err != nil {
			log.Warn("Redis cache unavailable, continuing without cache: %v", err)
		} else {
			refCache = redisCache
			log.Info("Reference cache enabled (addr=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTL)
		}
	}
	defer refCache.Close()

	// Издатель событий
	var publisher eventPublisher = events.Noop{}
	if cfg.Events.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		log.Info("Booking events enabled (brokers=%v, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}
	defer publisher.Close()

	// Инициализируем репозитории и transaction manager
	bookingRepository := bookingRepo.NewRepository(db, cfg.Database.Driver)
	referenceRepository := referenceRepo.NewRepository(db, cfg.Database.Driver)
	txMgr := txmanager.NewTransactionManager(db, cfg.Database.Driver == psqlbuilder.DriverPostgres)

	// Инициализируем сервисы
	referenceSvc := referenceService.NewService(referenceRepository, refCache, log)
	bookingSvc := bookingsService.NewService(bookingRepository, referenceSvc, publisher, loc, log)

	// Инициализируем use cases
	scheduleBookingUseCase := scheduleBookingUC.NewUseCase(
		bookingRepository,
		referenceSvc,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	getScheduleUseCase := getScheduleUC.NewUseCase(
		bookingRepository,
		referenceSvc,
		calendars,
		cfg.Schedule.SlotMinutes,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		referenceSvc,
		calendars,
		cfg.Schedule.SlotMinutes,
		log,
	)
	getUtilizationUseCase := getUtilizationUC.NewUseCase(
		bookingRepository,
		referenceSvc,
		calendars,
		log,
	)

	// Инициализируем handlers
	scheduleBooking := scheduleBookingHandler.NewHandler(scheduleBookingUseCase, loc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	deleteSeries := deleteSeriesHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, loc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, loc, log)
	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, loc, log)
	getUtilization := getUtilizationHandler.NewHandler(getUtilizationUseCase, loc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, loc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(referenceSvc, calendars, cfg.Schedule.SlotMinutes, log)
	references := referenceHandler.NewHandler(referenceSvc, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		api.Use(limiter.Middleware)
		log.Info("Rate limit enabled (%.1f rps, burst %d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PROTECTED ROUTES (bearer-токен, если auth включен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer))
		log.Info("JWT auth enabled for /api/v1")
	}

	// --- Бронирования ---
	protected.HandleFunc("/bookings", scheduleBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/export", exportBookings.Handle).Methods(http.MethodGet)

	// Серия регистрируется раньше одиночного удаления
	protected.HandleFunc("/bookings/series/{seriesId}", deleteSeries.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Представления ---
	protected.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/utilization", getUtilization.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{roomId:[0-9]+}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)

	// --- Справочники ---
	protected.HandleFunc("/locations", references.ListLocations).Methods(http.MethodGet)
	protected.HandleFunc("/locations", references.CreateLocation).Methods(http.MethodPost)
	protected.HandleFunc("/rooms", references.ListRooms).Methods(http.MethodGet)
	protected.HandleFunc("/rooms", references.CreateRoom).Methods(http.MethodPost)
	protected.HandleFunc("/staff", references.ListStaff).Methods(http.MethodGet)
	protected.HandleFunc("/staff", references.UpsertStaff).Methods(http.MethodPut)

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
