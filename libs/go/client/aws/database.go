package aws

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"go.uber.org/zap"
)

type rdsSecret struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResolveDatabaseDSN builds the Postgres connection string for stage.
// Deployed stages read RDS credentials from RDS_SECRET_ARN and combine them
// with DB_HOST, DB_NAME and DB_SSLMODE; local reads DATABASE_URL.
func (c *SecretsManagerClient) ResolveDatabaseDSN(ctx context.Context, stage string) (string, error) {
	if stage != helpers.StageProd && stage != helpers.StageDev {
		dsn, err := c.GetSecretString(ctx, "DATABASE_URL_ARN", "DATABASE_URL")
		if err != nil {
			return "", fmt.Errorf("failed to get DATABASE_URL: %w", err)
		}
		if dsn == "" {
			return "", fmt.Errorf("DATABASE_URL is required for local development")
		}
		return dsn, nil
	}

	dbEndpoint := c.lookup("DB_HOST")
	dbName := c.lookup("DB_NAME")
	dbSSLMode := c.lookup("DB_SSLMODE")
	if dbEndpoint == "" || dbName == "" {
		return "", fmt.Errorf("missing required DB environment variables for deployed stage (DB_HOST, DB_NAME)")
	}
	if dbSSLMode == "" {
		dbSSLMode = "require"
		logger.Log.Warn("DB_SSLMODE not set, defaulting to 'require'")
	}

	var secret rdsSecret
	if err := c.GetSecretJSON(ctx, "RDS_SECRET_ARN", "", &secret); err != nil {
		return "", fmt.Errorf("failed to retrieve or parse RDS secret: %w", err)
	}
	if secret.Username == "" || secret.Password == "" {
		return "", fmt.Errorf("username or password not found in RDS secret")
	}

	logger.Log.Info("Constructed DSN from Secrets Manager credentials", zap.String("stage", stage))
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(secret.Username),
		url.QueryEscape(secret.Password),
		dbEndpoint, dbName, dbSSLMode), nil
}

// StageFromEnv reads STAGE, defaulting to local
func StageFromEnv() (string, error) {
	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = helpers.StageLocal
	}
	if !helpers.IsValidStage(stage) {
		return "", fmt.Errorf("invalid STAGE %q: must be one of %s, %s, %s",
			stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}
	return stage, nil
}
