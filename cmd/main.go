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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	changeMonthHandler "github.com/m04kA/SMC-BookingWidget/internal/api/handlers/change_month"
	createSessionHandler "github.com/m04kA/SMC-BookingWidget/internal/api/handlers/create_session"
	endSessionHandler "github.com/m04kA/SMC-BookingWidget/internal/api/handlers/end_session"
	getSessionHandler "github.com/m04kA/SMC-BookingWidget/internal/api/handlers/get_session"
	submitAppointmentHandler "github.com/m04kA/SMC-BookingWidget/internal/api/handlers/submit_appointment"
	updateSelectionHandler "github.com/m04kA/SMC-BookingWidget/internal/api/handlers/update_selection"
	"github.com/m04kA/SMC-BookingWidget/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWidget/internal/config"
	sessionRepo "github.com/m04kA/SMC-BookingWidget/internal/infra/storage/session"
	"github.com/m04kA/SMC-BookingWidget/internal/integrations/scheduling"
	sessionService "github.com/m04kA/SMC-BookingWidget/internal/service/session"
	changeMonthUC "github.com/m04kA/SMC-BookingWidget/internal/usecase/change_month"
	endSessionUC "github.com/m04kA/SMC-BookingWidget/internal/usecase/end_session"
	getSessionUC "github.com/m04kA/SMC-BookingWidget/internal/usecase/get_session"
	startSessionUC "github.com/m04kA/SMC-BookingWidget/internal/usecase/start_session"
	submitAppointmentUC "github.com/m04kA/SMC-BookingWidget/internal/usecase/submit_appointment"
	updateSelectionUC "github.com/m04kA/SMC-BookingWidget/internal/usecase/update_selection"
	"github.com/m04kA/SMC-BookingWidget/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingWidget/pkg/logger"
	"github.com/m04kA/SMC-BookingWidget/pkg/metrics"
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

	log.Info("Starting SMC-BookingWidget...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Фоновые задачи останавливаются вместе с сервером
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Хранилище сессий
	store, cleaner, closeStore, err := openSessionStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to open session storage: %v", err)
	}
	defer closeStore()

	if cleaner != nil {
		janitor := sessionService.NewJanitor(cleaner, cfg.CleanupInterval(), log)
		go janitor.Run(bgCtx)
		log.Info("Expired session cleanup every %s", cfg.CleanupInterval())
	}

	// Клиент бэкенда расписания
	schedulingClient := scheduling.NewClient(cfg.Backend.URL, cfg.BackendTimeout(), log)
	log.Info("Scheduling backend client initialized (url=%s, timeout=%ds)", cfg.Backend.URL, cfg.Backend.Timeout)

	// Сервисы
	sessions := sessionService.NewManager(store, nil, log)
	inflight := sessionService.NewInflight()

	// Инициализируем use cases
	changeMonthUseCase := changeMonthUC.NewUseCase(sessions, schedulingClient, inflight, metricsCollector, log)
	startSessionUseCase := startSessionUC.NewUseCase(
		sessions,
		changeMonthUseCase,
		metricsCollector,
		startSessionUC.Defaults{
			CompanyID: cfg.Backend.CompanyID,
			Timezone:  cfg.Widget.DefaultTimezone,
		},
		log,
	)
	getSessionUseCase := getSessionUC.NewUseCase(sessions, log)
	updateSelectionUseCase := updateSelectionUC.NewUseCase(sessions, log)
	submitAppointmentUseCase := submitAppointmentUC.NewUseCase(
		sessions,
		schedulingClient,
		changeMonthUseCase,
		metricsCollector,
		log,
	)
	endSessionUseCase := endSessionUC.NewUseCase(sessions, inflight, log)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(startSessionUseCase, log)
	getSession := getSessionHandler.NewHandler(getSessionUseCase, log)
	updateSelection := updateSelectionHandler.NewHandler(updateSelectionUseCase, log)
	changeMonth := changeMonthHandler.NewHandler(changeMonthUseCase, log)
	submitAppointment := submitAppointmentHandler.NewHandler(submitAppointmentUseCase, log)
	endSession := endSessionHandler.NewHandler(endSessionUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Ограничение частоты для операций, создающих нагрузку на бэкенд
	limit := func(h http.HandlerFunc) http.HandlerFunc { return h }
	if cfg.RateLimit.Enabled {
		trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute, trustedProxies)
		limit = limiter.LimitFunc
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-bgCtx.Done():
					return
				case <-ticker.C:
					limiter.Cleanup()
				}
			}
		}()
		log.Info("Rate limit enabled (rps=%.1f, burst=%d, trusted_proxies=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst, len(trustedProxies))
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Сессии виджета ---
	api.HandleFunc("/sessions", limit(createSession.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", endSession.Handle).Methods(http.MethodDelete)

	// --- Форма записи ---
	api.HandleFunc("/sessions/{sessionId}/selection", updateSelection.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/sessions/{sessionId}/month", changeMonth.Handle).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{sessionId}/appointments", limit(submitAppointment.Handle)).Methods(http.MethodPost)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{changeMonthHandler.SupersededHeader},
		MaxAge:         600,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(r),
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stopBackground()

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

// openSessionStore открывает хранилище сессий, выбранное в конфигурации.
// cleaner == nil, если хранилище удаляет истекшие сессии само (Redis TTL).
func openSessionStore(cfg *config.Config, log *logger.Logger) (
	sessionService.Repository, sessionService.ExpiredCleaner, func(), error,
) {
	ttl := cfg.SessionTTL()

	switch cfg.Sessions.Storage {
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("failed to ping redis %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("Session storage: redis (addr=%s, ttl=%s)", cfg.Redis.Addr, ttl)
		return sessionRepo.NewRedisRepository(client, ttl, cfg.Redis.KeyPrefix), nil, func() { _ = client.Close() }, nil

	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}

		var executor sessionRepo.DBExecutor = db
		if cfg.Metrics.Enabled {
			executor = dbmetrics.New(db, cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
			log.Info("Database metrics collection started")
		}
		log.Info("Session storage: postgres (host=%s, db=%s, ttl=%s)", cfg.Database.Host, cfg.Database.DBName, ttl)
		repo := sessionRepo.NewPostgresRepository(executor, ttl, nil)
		return repo, repo, func() { _ = db.Close() }, nil

	default:
		log.Info("Session storage: memory (ttl=%s)", ttl)
		repo := sessionRepo.NewMemoryRepository(ttl, nil)
		return repo, repo, func() {}, nil
	}
}
