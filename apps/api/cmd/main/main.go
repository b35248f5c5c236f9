//go:build lambda
// +build lambda

package main

import (
	"context"

	"github.com/ledgerline/ledgerline-api/apps/api/server"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Ledgerline Discount API
// @version         1.0
// @description     Discount discovery, approval and allocation for invoices and POS sales

// @host      localhost:8000
// @BasePath  /api/v1

// @securityDefinitions.apikey WorkspaceID
// @in header
// @name X-Workspace-ID

var ginLambda *ginadapter.GinLambda

func init() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// InitializeHandlers sets up the logger for the configured stage
	server.InitializeHandlers()
	server.InitializeRoutes(r)

	ginLambda = ginadapter.New(r)
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.Debug("Received Lambda request",
		zap.String("path", req.Path),
		zap.String("request", spew.Sdump(req)),
	)

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer func() {
		_ = logger.Sync()
	}()
	lambda.Start(Handler)
}
