package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	AppPort       string
	AppEnv        string
	BaseURL       string
	StatusPageURL string
}

// LoadConfig reads application settings from the environment. Gateway
// environment selection (test vs live) is a property of the provider
// record, not of this config.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        os.Getenv("DB_PORT"),
		AppPort:       os.Getenv("APP_PORT"),
		AppEnv:        os.Getenv("APP_ENV"),
		BaseURL:       os.Getenv("BASE_URL"),
		StatusPageURL: os.Getenv("STATUS_PAGE_URL"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.StatusPageURL == "" {
		cfg.StatusPageURL = "/payment/status"
	}

	return cfg
}
