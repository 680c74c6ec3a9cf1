package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"squad-extractor/internal/api"
	"squad-extractor/internal/types"
	"squad-extractor/utils"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	logger := utils.NewLogger(false)

	config := types.DefaultConfig()
	if err := config.ApplyEnv(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	// Get port from environment variable, default to 8080
	serverPort := "8080"
	if envPort := os.Getenv("API_PORT"); envPort != "" {
		serverPort = envPort
		fmt.Printf("Using port from environment variable API_PORT: %s\n", serverPort)
	} else {
		fmt.Printf("No API_PORT environment variable found, using default: %s\n", serverPort)
	}

	origins := []string{"*"}
	if env := os.Getenv("CORS_ALLOW_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	fetcher := utils.NewPageFetcher(config, logger)
	defer fetcher.Close()

	server := api.NewServer(config, logger, fetcher)

	logger.Infof("Starting API server on port %s", serverPort)
	logger.Info("Available endpoints:")
	logger.Info("  POST /extract - Extract a single page")
	logger.Info("  POST /crawl   - Crawl from a tournament page")
	logger.Info("  GET  /health  - Health check")

	log.Fatal(http.ListenAndServe(":"+serverPort, server.Router(origins)))
}
