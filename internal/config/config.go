package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultPort      = "8080"
	defaultJWTTTL    = "24h"
	defaultMediaDir  = "./media"
	defaultMediaBase = "/media"
)

// Config — рантайм-настройки сервиса, собираемые из окружения.
type Config struct {
	Port        string
	BaseURL     string // внешний адрес для коротких ссылок
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration

	StorageBackend string // "disk" (по умолчанию) или "s3"
	MediaDir       string
	MediaBase      string
	S3Bucket       string
	S3Region       string
	AWSAccessKey   string
	AWSSecretKey   string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", defaultPort),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		StorageBackend: getEnv("STORAGE_BACKEND", "disk"),
		MediaDir:       getEnv("MEDIA_DIR", defaultMediaDir),
		MediaBase:      getEnv("MEDIA_BASE", defaultMediaBase),
		S3Bucket:       os.Getenv("AWS_S3_BUCKET"),
		S3Region:       os.Getenv("AWS_S3_REGION"),
		AWSAccessKey:   os.Getenv("AWS_ACCESS_KEY"),
		AWSSecretKey:   os.Getenv("AWS_SECRET_KEY"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	if cfg.StorageBackend == "s3" && cfg.S3Bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET is required for s3 storage backend")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", defaultJWTTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
