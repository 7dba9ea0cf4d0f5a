package config

import (
	"os"
	"strconv"
)

type Config struct {
	DB_USERNAME string
	DB_PASSWORD string
	DB_HOST     string
	DB_PORT     string
	DB_NAME     string
	DISABLE_TLS string

	// Token signing
	JWT_SECRET    string
	JWT_TTL_HOURS int

	// Outbound reminder email
	SMTP_HOST     string
	SMTP_PORT     int
	SMTP_USERNAME string
	SMTP_PASSWORD string
	SMTP_FROM     string

	// Due-soon scan schedule (standard 5-field cron expression)
	NOTIFY_CRON string

	PORT string

	// Otel
	OTEL_EXPORTER_OTLP_ENDPOINT string
}

func ReadConfig() *Config {
	return &Config{
		DB_USERNAME: os.Getenv("DB_USERNAME"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_NAME:     os.Getenv("DB_NAME"),
		DISABLE_TLS: os.Getenv("DISABLE_TLS"),

		JWT_SECRET:    GetEnvOrDefault("JWT_SECRET", "dev-only-secret"),
		JWT_TTL_HOURS: getEnvAsInt("JWT_TTL_HOURS", 24),

		SMTP_HOST:     GetEnvOrDefault("SMTP_HOST", "localhost"),
		SMTP_PORT:     getEnvAsInt("SMTP_PORT", 587),
		SMTP_USERNAME: os.Getenv("SMTP_USERNAME"),
		SMTP_PASSWORD: os.Getenv("SMTP_PASSWORD"),
		SMTP_FROM:     GetEnvOrDefault("SMTP_FROM", "noreply@taskhive.local"),

		NOTIFY_CRON: GetEnvOrDefault("NOTIFY_CRON", "0 11 * * *"),

		PORT: GetEnvOrDefault("PORT", "6060"),

		OTEL_EXPORTER_OTLP_ENDPOINT: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
