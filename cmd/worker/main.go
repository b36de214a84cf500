package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/evergreenmedia/podcast-api/internal/config"
	"github.com/evergreenmedia/podcast-api/internal/queue"
)

// The worker consumes catalog.events and appends them to the audit log. It
// runs as a separate process from the API server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.AMQPURL == "" {
		log.Println("RABBITMQ_URL not set, using local default")
	}

	log.Println("catalog worker starting")
	if err := queue.StartCatalogConsumer(cfg.AMQPURL); err != nil {
		log.Fatalf("catalog worker stopped: %v", err)
	}
}
