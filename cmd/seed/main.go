// Command seed creates the initial admin account if it does not exist yet.
// Credentials come from ADMIN_EMAIL/ADMIN_PASSWORD (with development
// defaults); run it once against a fresh database.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/evergreenmedia/podcast-api/internal/config"
	"github.com/evergreenmedia/podcast-api/internal/database"
	"github.com/evergreenmedia/podcast-api/internal/model"
	"github.com/evergreenmedia/podcast-api/internal/repository"
	"github.com/evergreenmedia/podcast-api/internal/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@evergreen.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "adminpassword"
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepo(db)
	if _, err := users.GetByEmail(ctx, email); err == nil {
		log.Printf("admin user %s already exists", email)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Fatalf("lookup admin: %v", err)
	}

	hash, err := utils.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	u, err := users.Create(ctx, "Admin User", email, hash, model.RoleAdmin)
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("admin user created: id=%s email=%s", u.ID, u.Email)
}
