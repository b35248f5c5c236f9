//go:build !lambda
// +build !lambda

package main

import (
	"log"
	"os"

	"github.com/ledgerline/ledgerline-api/apps/api/server"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load("../../.env")
	if err != nil {
		// Variables may be set directly in the environment instead
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Initialize logger first
	logger.InitLogger(helpers.StageLocal)

	r := gin.Default()
	server.InitializeHandlers()
	server.InitializeRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
