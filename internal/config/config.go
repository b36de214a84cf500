// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration. It is built once in main and
// injected into constructors; nothing in the application reads secrets from
// the environment after startup. Every value has a development default that
// must be overridden in a real deployment.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign access tokens
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
	AMQPURL      string // RabbitMQ URL for catalog events (empty disables publishing)
}

// Load reads configuration from the environment, falling back to local
// development defaults. Running with the default JWT secret outside dev is
// logged loudly at startup.
func Load() Config {
	cfg := Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "8000"),
		DBUser:       getenv("DB_USER", "root"),
		DBPass:       getenv("DB_PASSWORD", "rootpassword"),
		DBHost:       getenv("DB_HOST", "127.0.0.1"),
		DBPort:       getenv("DB_PORT", "3306"),
		DBName:       getenv("DB_NAME", "evergreen"),
		JWTSecret:    getenv("JWT_SECRET", defaultJWTSecret),
		AccessTTLMin: getenvInt("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:   getenvInt("BCRYPT_COST", 10),
		AMQPURL:      firstenv("RABBITMQ_URL", "AMQP_URL"),
	}
	if cfg.JWTSecret == defaultJWTSecret && cfg.Env != "dev" {
		log.Printf("WARNING: JWT_SECRET is not set; using the insecure development default")
	}
	return cfg
}

const defaultJWTSecret = "dev-secret-change-me"

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func firstenv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
