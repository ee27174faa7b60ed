// Package main is the entry point for the hotel search assistant service.
//
//	@title						Hotel Search Assistant API
//	@version					1.0.0
//	@description				A conversational hotel search service that fills search criteria across dialogue turns and returns normalized Google Hotels results.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/hotel-search/hotel-search-assistant/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
//
//	@externalDocs.description	Technical Documentation
//	@externalDocs.url			https://github.com/hotel-search/hotel-search-assistant/blob/main/docs/architecture.md
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redis "github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/hotel-search/hotel-search-assistant/docs"

	// Application layers
	hotelhttp "github.com/hotel-search/hotel-search-assistant/internal/adapter/http"
	"github.com/hotel-search/hotel-search-assistant/internal/adapter/http/middleware"
	"github.com/hotel-search/hotel-search-assistant/internal/adapter/provider/serpapi"
	"github.com/hotel-search/hotel-search-assistant/internal/config"
	"github.com/hotel-search/hotel-search-assistant/internal/infrastructure/logger"
	"github.com/hotel-search/hotel-search-assistant/internal/infrastructure/timeutil"
	"github.com/hotel-search/hotel-search-assistant/internal/reasoner"
	"github.com/hotel-search/hotel-search-assistant/internal/storage/history"
	"github.com/hotel-search/hotel-search-assistant/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Setup middleware
	middleware.Setup(e, log.Logger)

	// Setup routes
	if err := setupRoutes(e, cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e)
}

// setupLogger builds the application logger from config and installs it as
// both the package-global logger and zerolog's default.
func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	appLogger := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "hotel-search-assistant",
	})
	logger.SetGlobal(appLogger)
	log.Logger = appLogger.Logger
}

// setupRoutes wires the application layers and registers the HTTP routes.
func setupRoutes(e *echo.Echo, cfg *config.Config) error {
	// Hotel provider
	client := serpapi.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.CallTimeout)
	provider := serpapi.NewAdapter(client, &serpapi.Config{
		ResultLimit:   cfg.Search.ResultLimit,
		LookupTimeout: cfg.Search.LookupTimeout,
	}, log.Logger)

	// Search use case
	searchUseCase := usecase.NewHotelSearchUseCase(provider, &usecase.SearchConfig{
		SearchTimeout: cfg.Search.GlobalTimeout,
	}, log.Logger)

	// Reasoner
	gemini, err := reasoner.NewGemini(context.Background(), cfg.Reasoner.APIKey, cfg.Reasoner.Model)
	if err != nil {
		return fmt.Errorf("initialize reasoner: %w", err)
	}

	// Conversation history store: Redis when configured, in-memory otherwise
	store := newHistoryStore(cfg)

	// Conversation use case
	conversationUseCase := usecase.NewConversationUseCase(
		gemini, searchUseCase, store, timeutil.NewRealClock(), log.Logger)

	// Handler and routes
	handler := hotelhttp.NewHotelHandler(searchUseCase, conversationUseCase)
	hotelhttp.RegisterRoutes(e, handler)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return nil
}

// newHistoryStore selects the conversation history backend from config.
func newHistoryStore(cfg *config.Config) history.Store {
	if cfg.History.RedisAddr == "" {
		log.Info().Msg("Using in-memory conversation history store")
		return history.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.History.RedisAddr,
		DB:   cfg.History.RedisDB,
	})

	log.Info().
		Str("addr", cfg.History.RedisAddr).
		Int("db", cfg.History.RedisDB).
		Msg("Using Redis conversation history store")
	return history.NewRedisStore(client, cfg.History.TTL)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
