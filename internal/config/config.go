package config

import (
	"errors"
	"os"
	"time"
)

// Config holds everything the process reads from the environment. It is
// loaded once in main and passed down; nothing else touches os.Getenv.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string

	JWTSecret string
	TokenTTL  time.Duration

	StripeSecretKey string
	StripeTimeout   time.Duration
	ClientSiteURL   string

	CORSOrigins []string

	TextbeltKey string
}

// Load reads the environment. The JWT secret is the one value the service
// cannot run without.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	cfg := &Config{
		Port:            getenv("API_PORT", "8080"),
		MongoURI:        getenv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase:   getenv("MONGO_DATABASE", "medvault"),
		JWTSecret:       secret,
		TokenTTL:        15 * 24 * time.Hour,
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		StripeTimeout:   10 * time.Second,
		ClientSiteURL:   getenv("CLIENT_SITE_URL", "http://localhost:5173"),
		CORSOrigins:     []string{getenv("CORS_ORIGIN", "http://localhost:5173")},
		TextbeltKey:     os.Getenv("TEXTBELT_API_KEY"),
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
