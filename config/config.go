// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"os"
	"strconv"
	"time"
)

// ユーザーディレクトリ・クレデンシャルストアのバックエンド種別。
const (
	BackendMemory   = "memory"
	BackendDatabase = "database"
	BackendRedis    = "redis"
)

// Config はアプリケーション設定を表す。
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	LogLevel    string

	// Hawkクレデンシャル発行設定
	Algorithm       string
	KeyLifespan     time.Duration
	UserDirectory   string
	CredentialStore string
	DefaultUser     DefaultUser

	// /login のレート制限（クライアントIP単位）
	LoginRateLimit float64
	LoginRateBurst int

	GoogleCloudProject string
	OtelEnabled        bool
	OtelEndpoint       string
	OtelServiceName    string
	OtelSamplingRate   float64
}

// DefaultUser はインメモリディレクトリに登録する固定ユーザー。
type DefaultUser struct {
	ID           string
	Username     string
	PasswordHash string
}

// Load は環境変数から設定を読み込む。
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		Algorithm:       getEnv("HAWK_ALGORITHM", "sha256"),
		KeyLifespan:     getDuration("HAWK_KEY_LIFESPAN", time.Hour),
		UserDirectory:   getEnv("USER_DIRECTORY", BackendMemory),
		CredentialStore: getEnv("CREDENTIAL_STORE", BackendRedis),
		DefaultUser: DefaultUser{
			ID:           getEnv("DEFAULT_USER_ID", "1"),
			Username:     getEnv("DEFAULT_USER_NAME", "john"),
			PasswordHash: os.Getenv("DEFAULT_USER_PASSWORD_HASH"),
		},
		LoginRateLimit:     getFloat("LOGIN_RATE_LIMIT", 5),
		LoginRateBurst:     getInt("LOGIN_RATE_BURST", 10),
		GoogleCloudProject: os.Getenv("GOOGLE_CLOUD_PROJECT"),
		OtelEnabled:        getBool("OTEL_ENABLED", false),
		OtelEndpoint:       getEnv("OTEL_ENDPOINT", "localhost:4317"),
		OtelServiceName:    getEnv("OTEL_SERVICE_NAME", "hawk-credential-service"),
		OtelSamplingRate:   getFloat("OTEL_SAMPLING_RATE", 1.0),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func getFloat(key string, defaultVal float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getInt(key string, defaultVal int) int {
	i, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return i
}

func getBool(key string, defaultVal bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return b
}
