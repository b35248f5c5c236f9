package server

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerline/ledgerline-api/apps/api/handlers"
	awsclient "github.com/ledgerline/ledgerline-api/libs/go/client/aws"
	redisclient "github.com/ledgerline/ledgerline-api/libs/go/client/redis"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/interfaces"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"github.com/ledgerline/ledgerline-api/libs/go/middleware"
	"github.com/ledgerline/ledgerline-api/libs/go/services"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handler Definitions
var (
	discountHandler           *handlers.DiscountHandler
	discountRuleHandler       *handlers.DiscountRuleHandler
	discountApprovalHandler   *handlers.DiscountApprovalHandler
	discountAllocationHandler *handlers.DiscountAllocationHandler
	discountSettingsHandler   *handlers.DiscountSettingsHandler
	healthHandler             *handlers.HealthHandler

	// Database
	dbQueries *db.Queries

	handlerFactory *handlers.HandlerFactory
	rateLimiter    *middleware.RateLimiter
)

func InitializeHandlers() {
	// Load environment variables from .env file for local development
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err) // Use basic log before logger init
	}

	stage, err := awsclient.StageFromEnv()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// --- Initialize Logger (AFTER stage validation) ---
	logger.InitLogger(stage)
	logger.Info("Initializing handlers for stage", zap.String("stage", stage))

	ctx := context.Background()

	secretsClient, err := awsclient.NewSecretsManagerClient(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize AWS Secrets Manager client", zap.Error(err))
	}

	dsn, err := secretsClient.ResolveDatabaseDSN(ctx, stage)
	if err != nil {
		logger.Fatal("Failed to resolve database DSN", zap.Error(err))
	}

	// --- Resend API Key ---
	resendAPIKey, err := secretsClient.GetSecretString(ctx, "RESEND_API_KEY_ARN", "RESEND_API_KEY")
	if err != nil || resendAPIKey == "" {
		logger.Log.Warn("Failed to get Resend API Key. Approval emails will be disabled.", zap.Error(err))
		resendAPIKey = ""
	}

	// --- Database Pool Initialization ---
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal("Unable to parse database DSN", zap.Error(err))
	}
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Minute * 30
	poolConfig.MaxConnIdleTime = time.Minute * 15

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal("Unable to create connection pool with config", zap.Error(err))
	}

	if os.Getenv("RUN_MIGRATIONS") != "false" {
		if err := db.Migrate(ctx, dbpool); err != nil {
			logger.Fatal("Failed to apply database migrations", zap.Error(err))
		}
	}

	dbQueries = db.New(dbpool)

	handlerFactory = handlers.NewHandlerFactory(buildServices(ctx, dbpool, resendAPIKey))

	discountHandler = handlerFactory.NewDiscountHandler()
	discountRuleHandler = handlerFactory.NewDiscountRuleHandler()
	discountApprovalHandler = handlerFactory.NewDiscountApprovalHandler()
	discountAllocationHandler = handlerFactory.NewDiscountAllocationHandler()
	discountSettingsHandler = handlerFactory.NewDiscountSettingsHandler()
	healthHandler = handlerFactory.NewHealthHandler()
}

// buildServices wires the discount engine and its collaborators over the pool
func buildServices(ctx context.Context, dbpool *pgxpool.Pool, resendAPIKey string) handlers.HandlerFactoryConfig {
	txRunner := helpers.NewPoolTxRunner(dbpool, 3)
	currencyService := services.NewCurrencyService(dbQueries)
	auditService := services.NewDiscountAuditService(dbQueries)

	settingsService := services.NewDiscountSettingsService(dbQueries, newSettingsCache(ctx), auditService)

	approvalService := services.NewDiscountApprovalService(
		dbQueries,
		txRunner,
		settingsService,
		newApprovalNotifier(resendAPIKey),
		auditService,
	)
	allocationService := services.NewDiscountAllocationService(
		dbQueries,
		txRunner,
		currencyService,
		settingsService,
		newEventPublisher(ctx),
		auditService,
	)

	promotions := services.NewPromotionalRuleSource(dbQueries)
	engine := services.NewDiscountService(services.DiscountServiceDeps{
		Queries:  dbQueries,
		Tx:       txRunner,
		Currency: currencyService,
		Policies: settingsService,
		Sources: []interfaces.RuleSource{
			services.NewPricingRuleSource(dbQueries),
			promotions,
			services.NewVolumeTierSource(dbQueries),
		},
		Promotions:  promotions,
		Approvals:   approvalService,
		Allocations: allocationService,
		Audit:       auditService,
	})

	return handlers.HandlerFactoryConfig{
		DiscountEngine:    engine,
		EarlyPayment:      services.NewEarlyPaymentService(dbQueries, currencyService),
		RuleService:       services.NewDiscountRuleService(dbQueries, txRunner, auditService),
		ApprovalService:   approvalService,
		AllocationService: allocationService,
		SettingsService:   settingsService,
		Currency:          currencyService,
		Logger:            logger.Log,
	}
}

// newSettingsCache returns a Redis-backed policy cache when REDIS_ADDR is set
func newSettingsCache(ctx context.Context) interfaces.SettingsCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logger.Info("REDIS_ADDR not set, discount settings will be read from the database on every request")
		return nil
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	client, err := redisclient.NewClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), redisDB, logger.Log)
	if err != nil {
		logger.Log.Warn("Redis unavailable, discount settings cache disabled", zap.Error(err))
		return nil
	}

	ttl := 5 * time.Minute
	if raw := os.Getenv("SETTINGS_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			ttl = parsed
		}
	}
	return redisclient.NewSettingsCache(client, ttl)
}

// newEventPublisher hands discount events to SQS when DISCOUNT_EVENTS_QUEUE_URL
// is set and logs them otherwise
func newEventPublisher(ctx context.Context) interfaces.EventPublisher {
	queueURL := os.Getenv("DISCOUNT_EVENTS_QUEUE_URL")
	if queueURL == "" {
		logger.Info("DISCOUNT_EVENTS_QUEUE_URL not set, discount events will only be logged")
		return services.NewLoggingEventPublisher()
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Log.Warn("Unable to load AWS config for SQS, falling back to log publisher", zap.Error(err))
		return services.NewLoggingEventPublisher()
	}
	return awsclient.NewSQSEventPublisher(sqs.NewFromConfig(cfg), queueURL, awsclient.DefaultRetryConfig, logger.Log)
}

// newApprovalNotifier emails approvers through resend when a key and at least
// one approver address are configured
func newApprovalNotifier(resendAPIKey string) interfaces.ApprovalNotifier {
	approvers := splitAndTrim(os.Getenv("APPROVAL_NOTIFY_EMAILS"))
	if resendAPIKey == "" || len(approvers) == 0 {
		return nil
	}

	fromEmail := os.Getenv("EMAIL_FROM_ADDRESS")
	if fromEmail == "" {
		fromEmail = "noreply@ledgerline.app"
	}
	fromName := os.Getenv("EMAIL_FROM_NAME")
	if fromName == "" {
		fromName = "Ledgerline"
	}
	reviewURL := os.Getenv("APPROVAL_REVIEW_URL")
	if reviewURL == "" {
		reviewURL = "https://app.ledgerline.app/discounts/approvals/"
	}
	return services.NewEmailService(resendAPIKey, fromEmail, fromName, approvers, reviewURL, logger.Log)
}

func InitializeRoutes(router *gin.Engine) {
	router.Use(configureCORS())

	router.Use(middleware.CorrelationIDMiddleware())

	rateLimiter = middleware.NewRateLimiter(envInt("RATE_LIMIT_RPS", 20), envInt("RATE_LIMIT_BURST", 40))
	router.Use(rateLimiter.Middleware())

	router.Use(middleware.RequestLoggingMiddleware())
	if os.Getenv("GIN_MODE") != "release" {
		router.Use(middleware.DebugBodyLoggingMiddleware())
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/:stage/health", healthHandler.Health)
	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.WorkspaceContextMiddleware())
	{
		discounts := v1.Group("/discounts")
		{
			discounts.POST("/preview", middleware.ValidateInput(middleware.PreviewDiscountValidation), discountHandler.PreviewDiscounts)
			discounts.POST("/calculate", middleware.ValidateInput(middleware.CalculateDiscountValidation), discountHandler.CalculateDiscount)
			discounts.GET("/available", discountHandler.GetAvailableDiscounts)
			discounts.POST("/validate-code", middleware.ValidateInput(middleware.PreviewDiscountValidation), discountHandler.ValidatePromoCode)
			discounts.POST("/early-payment/evaluate", middleware.ValidateInput(middleware.EarlyPaymentValidation), discountHandler.EvaluateEarlyPayment)

			rules := discounts.Group("/rules")
			{
				rules.GET("", middleware.ValidateQueryParams(middleware.ListQueryValidation), discountRuleHandler.ListRules)
				rules.POST("", middleware.ValidateInput(middleware.CreateDiscountRuleValidation), discountRuleHandler.CreateRule)
				rules.GET("/:id", discountRuleHandler.GetRule)
				rules.POST("/:id/deactivate", discountRuleHandler.DeactivateRule)
			}

			approvals := discounts.Group("/approvals")
			{
				approvals.GET("", middleware.ValidateQueryParams(middleware.ListQueryValidation), discountApprovalHandler.ListApprovals)
				approvals.GET("/:id", discountApprovalHandler.GetApproval)
				approvals.POST("/:id/approve", discountApprovalHandler.ApproveDiscount)
				approvals.POST("/:id/reject", middleware.ValidateInput(middleware.RejectDiscountValidation), discountApprovalHandler.RejectDiscount)
			}

			allocations := discounts.Group("/allocations")
			{
				allocations.GET("", discountAllocationHandler.ListAllocations)
				allocations.POST("", middleware.ValidateInput(middleware.AllocateDiscountValidation), discountAllocationHandler.AllocateDiscount)
				allocations.GET("/:id", discountAllocationHandler.GetAllocation)
				allocations.POST("/:id/apply", discountAllocationHandler.ApplyAllocation)
				allocations.POST("/:id/void", middleware.ValidateInput(middleware.VoidAllocationValidation), discountAllocationHandler.VoidAllocation)
			}

			discounts.GET("/settings", discountSettingsHandler.GetSettings)
			discounts.PUT("/settings", middleware.ValidateInput(middleware.UpdateDiscountSettingsValidation), discountSettingsHandler.UpdateSettings)
		}
	}
}

func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	if origins := splitAndTrim(os.Getenv("CORS_ALLOWED_ORIGINS")); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}

	if methods := splitAndTrim(os.Getenv("CORS_ALLOWED_METHODS")); len(methods) > 0 {
		corsConfig.AllowMethods = methods
	} else {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}

	if headers := splitAndTrim(os.Getenv("CORS_ALLOWED_HEADERS")); len(headers) > 0 {
		corsConfig.AllowHeaders = headers
	} else {
		corsConfig.AllowHeaders = []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			"X-API-Key", "X-Workspace-ID", "X-User-ID", "X-Correlation-ID",
		}
	}

	corsConfig.ExposeHeaders = []string{"Content-Length", "X-Correlation-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"
	corsConfig.MaxAge = 12 * time.Hour

	return cors.New(corsConfig)
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
