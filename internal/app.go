package internal

import (
	"context"
	"fmt"
	"listing-service/internal/adapters/catalog_api_client"
	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/adapters/metrics"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/configs"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"
	fluentlogger "listing-service/pkg/fluent_logger"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
	closeStore   func()
}

// NewCatalogClient собирает клиент каталога из конфига. metrics может быть nil.
func NewCatalogClient(cfg *configs.AppConfig, metrics port.CatalogMetricsPort) *catalog_api_client.Client {
	return catalog_api_client.NewClient(catalog_api_client.Config{
		BaseURL:          cfg.CatalogApi.URL,
		Timeout:          cfg.CatalogApi.Timeout,
		PhotoFallbackURL: cfg.CatalogApi.PhotoFallbackURL,
		Metrics:          metrics,
	})
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	baseLogger, fluentClient, err := NewLogger(appConfig, true)
	if err != nil {
		return nil, err
	}

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{"fluent_enabled": appConfig.FluentBit.Enabled})

	// --- 2. ИНФРАСТРУКТУРА ---
	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()
	initCtx = contextkeys.ContextWithLogger(initCtx, appLogger)

	catalogMetrics := metrics.NewCatalogMetrics()

	catalogClient := NewCatalogClient(appConfig, catalogMetrics)

	favoritesStore, closeStore, err := NewFavoritesStore(initCtx, appConfig, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize favorites store", err, port.Fields{"store": appConfig.Favorites.Store})
		closeFluent(fluentClient)
		return nil, err
	}

	favorites := usecase.NewFavoritesController(favoritesStore)
	if err := favorites.Load(initCtx); err != nil {
		closeStore()
		closeFluent(fluentClient)
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	// --- 3. USE CASES ---
	searchUC := usecase.NewSearchListingsUseCase(catalogClient, appConfig.CatalogApi.Timeout, appConfig.CatalogApi.MaxPageSize)
	featuredUC := usecase.NewFetchFeaturedUseCase(catalogClient, usecase.FetchFeaturedConfig{
		MaxRetries:       appConfig.Featured.MaxRetries,
		BaseDelay:        appConfig.Featured.BaseDelay,
		PhotoFallbackURL: appConfig.CatalogApi.PhotoFallbackURL,
		Metrics:          catalogMetrics,
	})
	getPropertyUC := usecase.NewGetPropertyUseCase(catalogClient)
	updatePropertyUC := usecase.NewUpdatePropertyUseCase(catalogClient, catalogClient)

	appLogger.Info("All use cases initialized", nil)

	listingsHandlers := rest.NewListingsHandler(searchUC, featuredUC, getPropertyUC, updatePropertyUC, appConfig.CatalogApi.PageSize)
	favoritesHandlers := rest.NewFavoritesHandler(favorites)
	apiServer := rest.NewServer(rest.ServerConfig{
		Port:               appConfig.Rest.PORT,
		CorsAllowedOrigins: appConfig.Rest.CorsAllowedOrigins,
	}, listingsHandlers, favoritesHandlers, catalogMetrics.Handler(), baseLogger)

	return &App{
		config:       appConfig,
		apiServer:    apiServer,
		logger:       appLogger,
		fluentClient: fluentClient,
		closeStore:   closeStore,
	}, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		if a.closeStore != nil {
			a.closeStore()
		}

		a.logger.Info("Application shut down gracefully.", nil)

		// fluent закрываем последним, после него логировать уже некуда
		closeFluent(a.fluentClient)
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
		return err
	}
}

// NewLogger собирает stdout (tint/slog) и, если включен, Fluent Bit логгер.
// async задает режим отправки в Fluent Bit: CLI пишет синхронно.
func NewLogger(cfg *configs.AppConfig, async bool) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Writer:   os.Stderr,
		Level:    parseLogLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.StdoutLogger.IsJSON,
		UseColor: !cfg.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
			Async:     async,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(cfg.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			closeFluent(fluentClient)
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		closeFluent(fluentClient)
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	return multiLogger.WithFields(port.Fields{"service_name": cfg.AppName}), fluentClient, nil
}

func closeFluent(client *fluent.Fluent) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		// fluent может быть уже недоступен, пишем в stdout
		fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
