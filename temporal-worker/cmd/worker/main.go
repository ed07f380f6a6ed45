package main

import (
	"log"

	"github.com/ibenstewart/3-hr-demo-sub000/shared/logging"
	"github.com/ibenstewart/3-hr-demo-sub000/shared/models"
	"github.com/ibenstewart/3-hr-demo-sub000/temporal-worker/internal/activities"
	"github.com/ibenstewart/3-hr-demo-sub000/temporal-worker/internal/config"
	"github.com/ibenstewart/3-hr-demo-sub000/temporal-worker/internal/workflows"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
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

	// Connect to Temporal
	logger.Info("Connecting to Temporal", zap.String("host", cfg.HostPort), zap.String("namespace", cfg.Namespace))
	c, err := client.Dial(client.Options{
		HostPort:  cfg.HostPort,
		Namespace: cfg.Namespace,
		Logger:    logging.Temporal(logger),
	})
	if err != nil {
		logger.Fatal("Failed to connect to Temporal", zap.Error(err))
	}
	defer c.Close()
	logger.Info("Connected to Temporal")

	// Create worker
	w := worker.New(c, cfg.TaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize: cfg.MaxConcurrentActivities,
	})

	// Register workflows
	w.RegisterWorkflowWithOptions(workflows.BookingWorkflow, workflow.RegisterOptions{Name: models.BookingWorkflowName})

	// Create and register activities
	ledger := activities.NewLedger()
	acts := activities.NewActivities(ledger)
	w.RegisterActivityWithOptions(acts.IssueConfirmation, activity.RegisterOptions{Name: models.IssueConfirmationName})

	// Start worker
	logger.Info("Starting Temporal worker", zap.String("task_queue", cfg.TaskQueue))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Fatal("Worker failed", zap.Error(err))
	}
	logger.Info("Worker stopped", zap.Int("confirmations_issued", ledger.Len()))
}
