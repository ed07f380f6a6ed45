package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/config"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/handlers"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/llm"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/router"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/scenario"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/service"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/tripflow"
	"github.com/ibenstewart/3-hr-demo-sub000/api-server/internal/websocket"
	"github.com/ibenstewart/3-hr-demo-sub000/shared/logging"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Booking engine
	var (
		bookingRunner tripflow.StepRunner
		ready         func(context.Context) error
	)
	if cfg.Booking.Engine == config.EngineTemporal {
		temporalClient, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
			Logger:    logging.Temporal(logger),
		})
		if err != nil {
			logger.Fatal("Failed to create Temporal client", zap.Error(err))
		}
		defer temporalClient.Close()

		bookingRunner = service.NewTemporalRunner(temporalClient, cfg.Temporal.TaskQueue, cfg.Temporal.PollInterval, scenario.Confirmation, logger)
		ready = func(ctx context.Context) error {
			_, err := temporalClient.CheckHealth(ctx, &client.CheckHealthRequest{})
			return err
		}
		logger.Info("Connected to Temporal server", zap.String("host", cfg.Temporal.HostPort), zap.String("task_queue", cfg.Temporal.TaskQueue))
	}

	// Live updates
	hub := websocket.NewHub(logger, nil)
	go hub.Run(ctx)

	// Initialize services
	tripService := service.NewTripService(ctx, scenario.NewStore(), service.Options{
		Delays: tripflow.Delays{
			Thinking: tripflow.JitterDelay(cfg.Booking.StepDelayBase, cfg.Booking.StepDelayJitter),
			Approval: tripflow.FixedDelay(cfg.Booking.ApprovalDelay),
			Booking:  tripflow.JitterDelay(cfg.Booking.StepDelayBase, cfg.Booking.StepDelayJitter),
		},
		BookingRunner: bookingRunner,
		Publisher:     hub,
		IdleTTL:       cfg.Server.SessionIdleTTL,
		Logger:        logger,
	})
	defer tripService.Close()
	go tripService.RunJanitor(ctx, time.Minute)

	// Model proxy
	var generator llm.Generator
	if cfg.HasLLM() {
		gemini, err := llm.NewGeminiGenerator(ctx, cfg.LLM.APIKey, cfg.LLM.Model, logger)
		if err != nil {
			logger.Fatal("Failed to create Gemini client", zap.Error(err))
		}
		defer gemini.Close()
		generator = llm.WithTimeout(gemini, cfg.LLM.Timeout)
	} else {
		logger.Warn("GEMINI_API_KEY not set, plan-trip and marketing-generate will return errors with fallbacks")
	}

	// Initialize handlers
	h := handlers.NewHandler(tripService, handlers.Options{
		Generator: generator,
		Streamer:  hub,
		Brand:     cfg.Brand,
		Ready:     ready,
		Logger:    logger,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.SetupRouter(h, router.OptionsFromConfig(cfg, logger)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("API Server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Env),
			zap.String("booking_engine", cfg.Booking.Engine))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Server stopped")
}
