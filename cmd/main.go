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

	getSelectionHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_selection"
	getWeekSlotsHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_week_slots"
	nextWeekHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/next_week"
	previousWeekHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/previous_week"
	resetSelectionHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/reset_selection"
	selectDayHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/select_day"
	toggleSlotHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/toggle_slot"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/config"
	selectionRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/selection"
	sessionRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/session"
	cartServiceClient "github.com/m04kA/SMC-SlotService/internal/integrations/cartservice"
	selectionService "github.com/m04kA/SMC-SlotService/internal/service/selection"
	generateWeekSlotsUC "github.com/m04kA/SMC-SlotService/internal/usecase/generate_week_slots"
	toggleSlotUC "github.com/m04kA/SMC-SlotService/internal/usecase/toggle_slot"
	"github.com/m04kA/SMC-SlotService/pkg/logger"
	"github.com/m04kA/SMC-SlotService/pkg/metrics"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
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

	log.Info("Starting SMC-SlotService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Инициализируем интеграционного клиента корзины
	cartClient := cartServiceClient.NewClient(
		cfg.CartService.URL,
		time.Duration(cfg.CartService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CartService=%s timeout=%ds)",
		cfg.CartService.URL, cfg.CartService.Timeout)

	// Инициализируем репозитории и transaction manager
	sessionRepository := sessionRepo.NewRepository(db)
	selectionRepository := selectionRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	genConfig := cfg.Slots.ToGenerationConfig()
	maxRanges := cfg.Slots.MaxSelectedRanges

	// Инициализируем сервисы
	selectionSvc := selectionService.NewService(
		sessionRepository,
		selectionRepository,
		maxRanges,
		log,
	)

	// Инициализируем use cases
	generateWeekSlotsUseCase := generateWeekSlotsUC.NewUseCase(
		sessionRepository,
		selectionRepository,
		cartClient,
		genConfig,
		maxRanges,
		log,
	)

	toggleSlotUseCase := toggleSlotUC.NewUseCase(
		sessionRepository,
		selectionRepository,
		cartClient,
		txMgr,
		genConfig,
		maxRanges,
		log,
	)

	// Подключаем бизнес-метрики use cases (если включены)
	if cfg.Metrics.Enabled {
		generateWeekSlotsUseCase = generateWeekSlotsUseCase.WithMetrics(metricsCollector)
		toggleSlotUseCase = toggleSlotUseCase.WithMetrics(metricsCollector)
	}

	// Инициализируем handlers
	getWeekSlots := getWeekSlotsHandler.NewHandler(generateWeekSlotsUseCase, log)
	toggleSlot := toggleSlotHandler.NewHandler(toggleSlotUseCase, log)
	nextWeek := nextWeekHandler.NewHandler(selectionSvc, log)
	previousWeek := previousWeekHandler.NewHandler(selectionSvc, log)
	selectDay := selectDayHandler.NewHandler(selectionSvc, log)
	getSelection := getSelectionHandler.NewHandler(selectionSvc, log)
	resetSelection := resetSelectionHandler.NewHandler(selectionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Все ручки планировщика требуют X-User-ID header
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Календарь недели ---
	// Текущая неделя слотов с состоянием выбора
	protected.HandleFunc("/sessions/{sessionId}/week", getWeekSlots.Handle).Methods(http.MethodGet)

	// Навигация по неделям
	protected.HandleFunc("/sessions/{sessionId}/week/next", nextWeek.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/week/previous", previousWeek.Handle).Methods(http.MethodPost)

	// Выбор дня в текущей неделе
	protected.HandleFunc("/sessions/{sessionId}/day", selectDay.Handle).Methods(http.MethodPost)

	// --- Выбор временных диапазонов ---
	// Переключение слота (добавление или удаление диапазона)
	protected.HandleFunc("/sessions/{sessionId}/selection/toggle", toggleSlot.Handle).Methods(http.MethodPost)

	// Текущее состояние выбора
	protected.HandleFunc("/sessions/{sessionId}/selection", getSelection.Handle).Methods(http.MethodGet)

	// Полный сброс выбора
	protected.HandleFunc("/sessions/{sessionId}/selection", resetSelection.Handle).Methods(http.MethodDelete)

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
