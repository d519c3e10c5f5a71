package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	AppPort         string
	AppEnv          string
	GatewayBaseURL  string
	GatewayUser     string
	GatewayPassword string
	CheckoutBaseURL string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          os.Getenv("DB_PORT"),
		AppPort:         os.Getenv("APP_PORT"),
		AppEnv:          os.Getenv("APP_ENV"),
		GatewayBaseURL:  os.Getenv("GATEWAY_BASE_URL"),
		GatewayUser:     os.Getenv("GATEWAY_USER"),
		GatewayPassword: os.Getenv("GATEWAY_PASSWORD"),
		CheckoutBaseURL: os.Getenv("CHECKOUT_BASE_URL"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
