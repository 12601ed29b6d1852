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

	checkAvailabilityHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/check_availability"
	createGroupReservationHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/create_group_reservation"
	createReservationHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/delete_reservation"
	getGuestReservationsHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/get_guest_reservations"
	getReservationHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/get_reservation"
	setRoomStateHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/set_room_state"
	sweepExpiredHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/sweep_expired"
	transitionReservationHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/transition_reservation"
	updateReservationHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/update_reservation"
	"github.com/m04kA/HMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/HMS-ReservationService/internal/config"
	"github.com/m04kA/HMS-ReservationService/internal/infra/notify"
	guestRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/guest"
	reservationRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
	reservationsService "github.com/m04kA/HMS-ReservationService/internal/service/reservations"
	roomsService "github.com/m04kA/HMS-ReservationService/internal/service/rooms"
	checkAvailabilityUC "github.com/m04kA/HMS-ReservationService/internal/usecase/check_availability"
	createGroupReservationUC "github.com/m04kA/HMS-ReservationService/internal/usecase/create_group_reservation"
	createReservationUC "github.com/m04kA/HMS-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/logger"
	"github.com/m04kA/HMS-ReservationService/pkg/metrics"
	"github.com/m04kA/HMS-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/HMS-ReservationService/pkg/txmanager"
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

	log.Info("Starting HMS-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Эмиттер событий: Kafka или лог, если публикация выключена
	var emitter reservationsService.EventEmitter
	if cfg.Notifications.Enabled {
		producer := notify.NewProducer(cfg.Notifications.Brokers, cfg.Notifications.Topic)
		defer producer.Close()
		emitter = producer
		log.Info("Kafka event producer initialized (brokers=%v, topic=%s)",
			cfg.Notifications.Brokers, cfg.Notifications.Topic)
	} else {
		emitter = notify.NewLogEmitter(log)
		log.Info("Notifications disabled, events will be logged")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		guestRepository       *guestRepo.Repository
		roomRepository        *roomRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	// Интерфейс менеджера транзакций, общий для usecases и сервисов
	// TODO: вынести в pkg, чтобы не объявлять локально
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		guestRepository = guestRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		guestRepository = guestRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		roomRepository,
		txMgr,
		emitter,
		log,
	)
	roomSvc := roomsService.NewService(
		roomRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		guestRepository,
		roomRepository,
		reservationRepository,
		txMgr,
		emitter,
		log,
	)
	createGroupReservationUseCase := createGroupReservationUC.NewUseCase(
		guestRepository,
		roomRepository,
		reservationRepository,
		txMgr,
		emitter,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(roomRepository, log)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	createGroupReservation := createGroupReservationHandler.NewHandler(createGroupReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationSvc, log)
	transitionReservation := transitionReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	getGuestReservations := getGuestReservationsHandler.NewHandler(reservationSvc, log)
	sweepExpired := sweepExpiredHandler.NewHandler(reservationSvc, log)
	setRoomState := setRoomStateHandler.NewHandler(roomSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные комнаты на интервал дат
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Групповое бронирование (все комнаты или ни одной)
	protected.HandleFunc("/reservations/group", createGroupReservation.Handle).Methods(http.MethodPost)

	// Ручной запуск очистки просроченных pending-броней
	protected.HandleFunc("/reservations/sweep-expired", sweepExpired.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Изменение дат, числа гостей и заметок
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)

	// Переход статуса (подтверждение, завершение, отмена)
	protected.HandleFunc("/reservations/{reservationId}/status", transitionReservation.Handle).Methods(http.MethodPatch)

	// Удаление бронирования (pending не удаляется)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// История бронирований гостя
	protected.HandleFunc("/guests/{guestId}/reservations", getGuestReservations.Handle).Methods(http.MethodGet)

	// --- Комнаты ---
	// Ручная смена операционного состояния (occupied запрещен)
	protected.HandleFunc("/rooms/{roomId}/state", setRoomState.Handle).Methods(http.MethodPatch)

	// Фоновая очистка просроченных броней
	stopSweeperCh := make(chan struct{})
	if cfg.Sweeper.Enabled {
		interval := time.Duration(cfg.Sweeper.IntervalMinutes) * time.Minute
		go runSweeper(reservationSvc, interval, stopSweeperCh, log)
		log.Info("Expiration sweeper started (interval=%s)", interval)
	}

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

	// Останавливаем фоновую очистку
	if cfg.Sweeper.Enabled {
		close(stopSweeperCh)
		log.Info("Expiration sweeper stopped")
	}

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

// runSweeper периодически отменяет просроченные pending-брони.
// Ошибка одного прохода логируется и не останавливает цикл.
func runSweeper(svc *reservationsService.Service, interval time.Duration, stop <-chan struct{}, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			result, err := svc.SweepExpired(context.Background())
			if err != nil {
				log.Error("Sweeper run failed: %v", err)
				continue
			}
			if result.Count() > 0 || result.Failed > 0 {
				log.Info("Sweeper run finished: cancelled=%d, failed=%d", result.Count(), result.Failed)
			}
		case <-stop:
			return
		}
	}
}
