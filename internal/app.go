package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	logger_adapter "tool-catalog-service/internal/adapters/logger"
	rabbitmq_adapter "tool-catalog-service/internal/adapters/rabbitmq"
	"tool-catalog-service/internal/adapters/rest"
	"tool-catalog-service/internal/configs"
	"tool-catalog-service/internal/constants"
	"tool-catalog-service/internal/contextkeys"
	"tool-catalog-service/internal/core/port"
	"tool-catalog-service/internal/core/usecase"
	fluentlogger "tool-catalog-service/pkg/fluent_logger"
	"tool-catalog-service/pkg/rabbitmq/rabbitmq_common"
	"tool-catalog-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const shutdownTimeout = 15 * time.Second

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	connector    StoreConnector
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
	baseLogger   port.LoggerPort

	rabbitManager  *rabbitmq_common.ConnectionManager
	eventsProducer *rabbitmq_producer.Publisher
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := NewLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	// --- ХРАНИЛИЩЕ ---
	connector, err := NewStoreConnector(appConfig)
	if err != nil {
		appLogger.Error("Failed to create store connector", err, nil)
		closeFluent(fluentClient)
		return nil, err
	}
	appLogger.Info("Store connector configured", port.Fields{"driver": appConfig.Store.Driver})

	if appConfig.Store.SeedOnStart {
		seedCtx, cancel := context.WithTimeout(contextkeys.ContextWithLogger(context.Background(), appLogger), appConfig.Store.ConnectTimeout)
		_, err := SeedStore(seedCtx, connector)
		cancel()
		if err != nil {
			// недоступное хранилище не мешает старту: поиск вернёт 503
			appLogger.Error("Failed to seed store on start", err, nil)
		}
	}

	// --- АНАЛИТИКА ПОИСКА ---
	var (
		events         port.SearchEventsPort
		rabbitManager  *rabbitmq_common.ConnectionManager
		eventsProducer *rabbitmq_producer.Publisher
	)
	if appConfig.RabbitMQ.Enabled {
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		rabbitManager, err = rabbitmq_common.NewManager(rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}, connManagerBridge)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			_ = connector.Close(context.Background())
			closeFluent(fluentClient)
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}

		eventsProducer, err = rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			ExchangeName:             appConfig.RabbitMQ.Exchange,
			ExchangeType:             constants.CatalogExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
		}, rabbitManager)
		if err != nil {
			appLogger.Error("Failed to create event producer", err, nil)
			_ = rabbitManager.Close()
			_ = connector.Close(context.Background())
			closeFluent(fluentClient)
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}

		searchEvents, err := rabbitmq_adapter.NewSearchEventsAdapter(eventsProducer, constants.RoutingKeyToolSearchPerformed)
		if err != nil {
			_ = eventsProducer.Close()
			_ = rabbitManager.Close()
			_ = connector.Close(context.Background())
			closeFluent(fluentClient)
			return nil, err
		}
		events = searchEvents
		appLogger.Info("RabbitMQ search events publisher initialized.", port.Fields{"exchange": appConfig.RabbitMQ.Exchange})
	}

	// ИНИЦИАЛИЗАЦИЯ USE CASES
	retry := usecase.NewBoundedRetry(connector, appConfig.Search.RetryDelay)
	aggregator := usecase.NewFacetAggregator(retry)
	searchToolsUseCase := usecase.NewSearchToolsUseCase(usecase.NewFilterCompiler(), usecase.NewQueryExecutor(retry), aggregator, events)
	getFilterOptionsUseCase := usecase.NewGetFilterOptionsUseCase(aggregator)
	getStoreStatusUseCase := usecase.NewGetStoreStatusUseCase(connector)
	appLogger.Info("All use cases initialized.", nil)

	// REST API Server
	apiServer := rest.NewServer(rest.ServerConfig{
		Port:               appConfig.Rest.PORT,
		CorsAllowedOrigins: appConfig.Rest.CorsAllowedOrigins,
	},
		rest.NewSearchHandler(searchToolsUseCase, getFilterOptionsUseCase),
		rest.NewHealthHandler(getStoreStatusUseCase),
		baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return &App{
		config:         appConfig,
		connector:      connector,
		apiServer:      apiServer,
		fluentClient:   fluentClient,
		logger:         appLogger,
		baseLogger:     baseLogger,
		rabbitManager:  rabbitManager,
		eventsProducer: eventsProducer,
	}, nil
}

// Run запускает HTTP сервер и ждёт сигнала завершения
func (a *App) Run() error {
	defer a.shutdown()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		return err
	}
}

func (a *App) shutdown() {
	a.logger.Info("Shutdown sequence initiated...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.apiServer.Stop(ctx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	if a.eventsProducer != nil {
		if err := a.eventsProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.rabbitManager != nil {
		if err := a.rabbitManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}

	if err := a.connector.Close(ctx); err != nil {
		a.logger.Error("Error closing store connection", err, nil)
	} else {
		a.logger.Info("Store connection closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)
	closeFluent(a.fluentClient)
}

// NewLogger собирает stdout и, если включен, Fluent Bit логгер в один
func NewLogger(appConfig *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
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

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})
	return baseLogger, fluentClient, nil
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
