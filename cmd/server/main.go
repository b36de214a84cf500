package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/evergreenmedia/podcast-api/internal/config"
	"github.com/evergreenmedia/podcast-api/internal/database"
	"github.com/evergreenmedia/podcast-api/internal/handler"
	"github.com/evergreenmedia/podcast-api/internal/repository"
	"github.com/evergreenmedia/podcast-api/internal/router"
	"github.com/evergreenmedia/podcast-api/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	shows := repository.NewShowRepo(db)
	partners := repository.NewPartnerRepo(db)
	events := service.NewEventPublisher(cfg.AMQPURL)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, rdb,
		users,
		handler.NewAuthHandler(cfg, users),
		handler.NewShowHandler(shows, events),
		handler.NewPartnerHandler(cfg, users, partners, events),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
