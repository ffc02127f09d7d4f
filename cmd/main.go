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

	cancelBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_booking"
	getMySalonHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_my_salon"
	getSalonHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_salon"
	getSalonBookingsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_salon_bookings"
	getUserBookingsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_user_bookings"
	getWorkingHoursHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/get_working_hours"
	listSalonsHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/list_salons"
	listServicesHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/list_services"
	updateSalonHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/update_salon"
	updateServiceHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/update_service"
	updateWorkingHoursHandler "github.com/m04kA/Salon-BookingService/internal/api/handlers/update_working_hours"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/config"
	"github.com/m04kA/Salon-BookingService/internal/infra/cache"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	serviceRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/service"
	workingHoursRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/workinghours"
	bookingsService "github.com/m04kA/Salon-BookingService/internal/service/bookings"
	catalogService "github.com/m04kA/Salon-BookingService/internal/service/catalog"
	salonsService "github.com/m04kA/Salon-BookingService/internal/service/salons"
	createBookingUC "github.com/m04kA/Salon-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/logger"
	"github.com/m04kA/Salon-BookingService/pkg/metrics"
	"github.com/m04kA/Salon-BookingService/pkg/retry"
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

	log.Info("Starting Salon-BookingService...")
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

	// Проверяем соединение с повторами: база может стартовать дольше сервиса
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 30*time.Second)
	err = retry.Do(pingCtx, retry.DefaultPolicy, func() error {
		return db.PingContext(pingCtx)
	}, nil)
	cancelPing()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Исполнитель запросов: с метриками или без
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(executor)
	salonRepository := salonRepo.NewRepository(executor)
	serviceRepository := serviceRepo.NewRepository(executor)
	workingHoursRepository := workingHoursRepo.NewRepository(executor)

	// Кеш доступности (advisory, с коротким TTL)
	// При выключенном Redis или нулевом TTL все операции кеша - no-op
	var availabilityCache *cache.AvailabilityCache
	if cfg.Redis.Enabled && cfg.Booking.AvailabilityCacheTTL > 0 {
		redisClient := cache.NewRedisClient(cfg.Redis)
		defer cache.Close(redisClient)

		redisCtx, cancelRedis := context.WithTimeout(context.Background(), 10*time.Second)
		err = retry.Do(redisCtx, retry.DefaultPolicy, func() error {
			return cache.Ping(redisCtx, redisClient)
		}, nil)
		cancelRedis()
		if err != nil {
			// Кеш не критичен: работаем без него
			log.Warn("Redis unavailable, availability cache disabled: %v", err)
		} else {
			ttl := time.Duration(cfg.Booking.AvailabilityCacheTTL) * time.Second
			availabilityCache = cache.NewAvailabilityCache(redisClient, ttl, metricsCollector)
			log.Info("Availability cache enabled (redis=%s, ttl=%s)", cfg.Redis.Address, ttl)
		}
	}

	// Инициализируем сервисы
	bookingsSvc := bookingsService.NewService(bookingRepository, salonRepository, availabilityCache, log)
	catalogSvc := catalogService.NewService(serviceRepository, workingHoursRepository, salonRepository, availabilityCache, log)
	salonsSvc := salonsService.NewService(salonRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		workingHoursRepository,
		salonRepository,
		serviceRepository,
		availabilityCache,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		workingHoursRepository,
		salonRepository,
		serviceRepository,
		availabilityCache,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingsSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingsSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(catalogSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(catalogSvc, log)
	listSalons := listSalonsHandler.NewHandler(salonsSvc, log)
	getSalon := getSalonHandler.NewHandler(salonsSvc, log)
	updateSalon := updateSalonHandler.NewHandler(salonsSvc, log)
	getMySalon := getMySalonHandler.NewHandler(salonsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit))
		log.Info("Rate limit middleware enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог салонов
	api.HandleFunc("/salons", listSalons.Handle).Methods(http.MethodGet)

	// Профиль салона
	api.HandleFunc("/salons/{salonId}", getSalon.Handle).Methods(http.MethodGet)

	// Активные услуги салона
	api.HandleFunc("/salons/{salonId}/services", listServices.Handle).Methods(http.MethodGet)

	// Расписание недели салона
	api.HandleFunc("/salons/{salonId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)

	// Доступные слоты для записи
	api.HandleFunc("/salons/{salonId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования или блока
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования (мягкое удаление)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// История бронирований клиента
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Салон текущего владельца
	protected.HandleFunc("/users/me/salon", getMySalon.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для владельцев) ---
	// Бронирования салона с фильтрацией
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// Обновление профиля салона
	protected.HandleFunc("/salons/{salonId}", updateSalon.Handle).Methods(http.MethodPut)

	// Создание услуги
	protected.HandleFunc("/salons/{salonId}/services", createService.Handle).Methods(http.MethodPost)

	// Обновление и удаление услуги
	protected.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

	// Замена расписания недели
	protected.HandleFunc("/salons/{salonId}/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)

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

	log.Info("Server stopped gracefully")
}
