package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

func Init() {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	if os.Getenv("DB_DSN") == "" {
		Logger.Fatal("DB_DSN is not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		Logger.Fatal("JWT_SECRET is not set")
	}
	if CacheBackend() == CacheBackendRedis && os.Getenv("REDIS_ADDR") == "" {
		Logger.Fatal("REDIS_ADDR is not set")
	}
}

// CacheBackend selects the feed-cache adapter. Defaults to redis.
func CacheBackend() string {
	if os.Getenv("CACHE_BACKEND") == CacheBackendMemory {
		return CacheBackendMemory
	}
	return CacheBackendRedis
}

// MediaDir is the root directory for uploaded post images.
func MediaDir() string {
	if dir := os.Getenv("MEDIA_DIR"); dir != "" {
		return dir
	}
	return "media"
}
