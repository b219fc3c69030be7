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

	cancelBookingHandler "github.com/m04kA/SMC-WorkspaceService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-WorkspaceService/internal/api/handlers/create_booking"
	createRoomHandler "github.com/m04kA/SMC-WorkspaceService/internal/api/handlers/create_room"
	getAvailableRoomsHandler "github.com/m04kA/SMC-WorkspaceService/internal/api/handlers/get_available_rooms"
	getAvailableSlotsHandler "github.com/m04kA/SMC-WorkspaceService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-WorkspaceService/internal/api/handlers/get_booking"
	getTeamBookingsHandler "github.com/m04kA/SMC-WorkspaceService/internal/api/handlers/get_team_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-WorkspaceService/internal/api/handlers/get_user_bookings"
	listRoomsHandler "github.com/m04kA/SMC-WorkspaceService/internal/api/handlers/list_rooms"
	"github.com/m04kA/SMC-WorkspaceService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkspaceService/internal/config"
	"github.com/m04kA/SMC-WorkspaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-WorkspaceService/internal/infra/storage/room"
	"github.com/m04kA/SMC-WorkspaceService/internal/integrations/events"
	teamServiceClient "github.com/m04kA/SMC-WorkspaceService/internal/integrations/teamservice"
	bookingsService "github.com/m04kA/SMC-WorkspaceService/internal/service/bookings"
	roomsService "github.com/m04kA/SMC-WorkspaceService/internal/service/rooms"
	cancelBookingUC "github.com/m04kA/SMC-WorkspaceService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-WorkspaceService/internal/usecase/create_booking"
	getAvailableRoomsUC "github.com/m04kA/SMC-WorkspaceService/internal/usecase/get_available_rooms"
	getAvailableSlotsUC "github.com/m04kA/SMC-WorkspaceService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-WorkspaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkspaceService/pkg/logger"
	"github.com/m04kA/SMC-WorkspaceService/pkg/metrics"
	"github.com/m04kA/SMC-WorkspaceService/pkg/txmanager"
)

// eventPublisher публикует события бронирований (Kafka или no-op)
type eventPublisher interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
	BookingCancelled(ctx context.Context, booking *domain.Booking) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if v := os.Getenv("SMC_CONFIG"); v != "" {
		configPath = v
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

	log.Info("Starting SMC-WorkspaceService...")
	log.Info("Configuration loaded from %s", configPath)

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

	// Без метрик обертка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Менеджер транзакций с повтором при конфликтах сериализации
	txOpts := []txmanager.Option{
		txmanager.WithRetries(
			cfg.Booking.TxMaxRetries,
			time.Duration(cfg.Booking.TxInitialBackoffMs)*time.Millisecond,
			time.Duration(cfg.Booking.TxMaxBackoffMs)*time.Millisecond,
		),
	}
	if metricsCollector != nil {
		txOpts = append(txOpts, txmanager.WithRetryObserver(metricsCollector))
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB, txOpts...)

	// Инициализируем интеграционных клиентов
	teamClient := teamServiceClient.NewClient(
		cfg.TeamService.URL,
		time.Duration(cfg.TeamService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (TeamService=%s timeout=%ds)",
		cfg.TeamService.URL, cfg.TeamService.Timeout)

	// Публикация событий
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(
			cfg.Events.Brokers,
			cfg.Events.Topic,
			time.Duration(cfg.Events.WriteTimeoutMs)*time.Millisecond,
			log,
		)
		if err != nil {
			log.Fatal("Failed to create event publisher: %v", err)
		}
		publisher = kafkaPublisher
		log.Info("Booking events enabled (topic=%s, brokers=%v)", cfg.Events.Topic, cfg.Events.Brokers)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	roomRepository := roomRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, teamClient, log)
	roomSvc := roomsService.NewService(roomRepository, cfg.Catalog.AdminUserIDs, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		teamClient,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		teamClient,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	getAvailableRoomsUseCase := getAvailableRoomsUC.NewUseCase(roomRepository, bookingRepository, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(roomRepository, bookingRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getTeamBookings := getTeamBookingsHandler.NewHandler(bookingSvc, log)
	getAvailableRooms := getAvailableRoomsHandler.NewHandler(getAvailableRoomsUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	createRoom := createRoomHandler.NewHandler(roomSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог комнат
	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)

	// Доступные комнаты (опционально на конкретный слот)
	api.HandleFunc("/rooms/available", getAvailableRooms.Handle).Methods(http.MethodGet)

	// Расписание комнаты на день
	api.HandleFunc("/rooms/{roomId:[0-9]+}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{token}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{token}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя и команды
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/teams/{teamId}/bookings", getTeamBookings.Handle).Methods(http.MethodGet)

	// --- Каталог (для администраторов) ---
	protected.HandleFunc("/rooms", createRoom.Handle).Methods(http.MethodPost)

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
