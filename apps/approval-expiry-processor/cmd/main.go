package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ledgerline/ledgerline-api/apps/approval-expiry-processor/internal/processor"
	awsclient "github.com/ledgerline/ledgerline-api/libs/go/client/aws"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/services"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Application holds all dependencies for the Lambda handler
type Application struct {
	expiryProcessor *processor.ExpiryProcessor
	logger          *zap.Logger
}

// HandleRequest is the scheduled Lambda handler
func (app *Application) HandleRequest(ctx context.Context) error {
	app.logger.Info("Starting approval expiry processor execution")

	results, err := app.expiryProcessor.ProcessStaleApprovals(ctx)
	if err != nil {
		app.logger.Error("Error expiring stale approvals", zap.Error(err))
		return fmt.Errorf("error expiring stale approvals: %w", err)
	}

	app.logger.Info("Approval expiry results",
		zap.Int("batches", results.Batches),
		zap.Int("expired", results.Expired),
	)
	return nil
}

func main() {
	err := godotenv.Load("../../.env")
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v. Proceeding with environment variables/secrets.", err)
	}

	stage, err := awsclient.StageFromEnv()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger.InitLogger(stage)
	logger.Info("Lambda Cold Start: Initializing approval expiry processor for stage", zap.String("stage", stage))
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()

	secretsClient, err := awsclient.NewSecretsManagerClient(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize AWS Secrets Manager client", zap.Error(err))
	}

	dsn, err := secretsClient.ResolveDatabaseDSN(ctx, stage)
	if err != nil {
		logger.Fatal("Failed to resolve database DSN", zap.Error(err))
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal("Unable to parse database DSN", zap.Error(err))
	}
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 15
	connPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal("Unable to create connection pool", zap.Error(err))
	}

	dbQueries := db.New(connPool)
	txRunner := helpers.NewPoolTxRunner(connPool, 3)
	auditService := services.NewDiscountAuditService(dbQueries)
	settingsService := services.NewDiscountSettingsService(dbQueries, nil, auditService)

	// Expiry never requests new approvals, so no notifier is needed
	approvalService := services.NewDiscountApprovalService(dbQueries, txRunner, settingsService, nil, auditService)

	maxBatches, _ := strconv.Atoi(os.Getenv("EXPIRY_MAX_BATCHES"))

	app := &Application{
		expiryProcessor: processor.NewExpiryProcessor(approvalService, maxBatches),
		logger:          logger.Log,
	}

	if stage == helpers.StageLocal {
		// Local development - run once
		if err := app.HandleRequest(ctx); err != nil {
			logger.Fatal("Error in HandleRequest", zap.Error(err))
		}
	} else {
		lambda.Start(app.HandleRequest)
	}
}
