package main

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"wealth/internal/amqp"
	"wealth/internal/cli"
	"wealth/internal/config"
	"wealth/internal/log"
	gsheet "wealth/internal/sheets/google"
	"wealth/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger, (*config.Config).ValidateWorker)

	logger.Info("Starting wealth-worker")

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	sheetsClient, err := gsheet.New(context.Background(), gsheet.Config{
		SpreadsheetID: cfg.GoogleSpreadsheetID,
		IncomesSheet:  cfg.IncomesSheetName,
		ExpensesSheet: cfg.ExpensesSheetName,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldComponent, log.ComponentSheets, log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldComponent, log.ComponentAMQP, log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirror := worker.NewMirrorWorker(repo, sheetsClient, logger.Logger)
	runner := worker.NewRunner(amqpClient, mirror, logger.Logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		logger.Info("Shutting down worker...")
		if err := runner.Stop(ctx); err != nil {
			logger.Warn("Worker did not stop cleanly", log.FieldError, err)
		}
	})

	if err := runner.Start(ctx); err != nil {
		logger.Error("Failed to start worker", log.FieldError, err)
		os.Exit(1)
	}

	select {
	case <-done:
	case <-runner.Done():
		if err := runner.Err(); err != nil {
			logger.Error("Worker stopped with error", log.FieldError, err)
			os.Exit(1)
		}
		<-done
	}
}
