package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"go.uber.org/zap"
)

// SecretsAPI is the part of the Secrets Manager client used here
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerClient resolves the API's secrets (database DSN, resend key)
// from Secrets Manager, falling back to plain environment variables locally.
type SecretsManagerClient struct {
	svc    SecretsAPI
	lookup func(string) string
}

// NewSecretsManagerClient uses the default AWS configuration chain
func NewSecretsManagerClient(ctx context.Context) (*SecretsManagerClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewSecretsManagerClientWithAPI(secretsmanager.NewFromConfig(cfg), os.Getenv), nil
}

// NewSecretsManagerClientWithAPI builds a client over an existing API and env lookup
func NewSecretsManagerClientWithAPI(svc SecretsAPI, lookup func(string) string) *SecretsManagerClient {
	if lookup == nil {
		lookup = os.Getenv
	}
	return &SecretsManagerClient{svc: svc, lookup: lookup}
}

func (c *SecretsManagerClient) fetch(ctx context.Context, arnEnvVar string) (string, bool) {
	arn := c.lookup(arnEnvVar)
	if arn == "" {
		logger.Log.Debug("Secret ARN not configured", zap.String("arn_env_var", arnEnvVar))
		return "", false
	}

	out, err := c.svc.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(arn)})
	if err != nil || out.SecretString == nil || *out.SecretString == "" {
		logger.Log.Warn("Failed to retrieve secret from Secrets Manager, falling back to env var",
			zap.String("arn_env_var", arnEnvVar),
			zap.Error(err))
		return "", false
	}
	return *out.SecretString, true
}

// GetSecretString returns the secret behind arnEnvVar. A secret stored as a
// single-key JSON object yields that key's value. When the ARN is unset or
// the fetch fails the value of fallbackEnvVar is used.
func (c *SecretsManagerClient) GetSecretString(ctx context.Context, arnEnvVar, fallbackEnvVar string) (string, error) {
	if secret, ok := c.fetch(ctx, arnEnvVar); ok {
		var single map[string]string
		if err := json.Unmarshal([]byte(secret), &single); err == nil && len(single) == 1 {
			for _, v := range single {
				return v, nil
			}
		}
		return secret, nil
	}

	if v := c.lookup(fallbackEnvVar); v != "" {
		logger.Log.Info("Using secret from environment variable", zap.String("env_var", fallbackEnvVar))
		return v, nil
	}
	return "", fmt.Errorf("secret not found using ARN env var '%s' or direct env var '%s'", arnEnvVar, fallbackEnvVar)
}

// GetSecretJSON unmarshals a JSON secret into target. The fallback env var
// must hold JSON as well.
func (c *SecretsManagerClient) GetSecretJSON(ctx context.Context, arnEnvVar, fallbackEnvVar string, target interface{}) error {
	secret, ok := c.fetch(ctx, arnEnvVar)
	if !ok {
		secret = c.lookup(fallbackEnvVar)
	}
	if secret == "" {
		return fmt.Errorf("secret not found using ARN env var '%s' or direct env var '%s'", arnEnvVar, fallbackEnvVar)
	}
	if err := json.Unmarshal([]byte(secret), target); err != nil {
		return fmt.Errorf("failed to parse JSON secret %s: %w", arnEnvVar, err)
	}
	return nil
}
