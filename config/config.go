package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration

	RedisAddr string
	RedisDB   int
	CacheTTL  time.Duration

	ESAddr  string
	ESIndex string

	UploadDir    string
	UploadMaxMB  int64
	S3Bucket     string
	S3Region     string
	PublicOrigin string
}

// Load reads configuration from the environment. JWT_SECRET has no
// default: tokens signed with a guessable key are worthless.
func Load() (Config, error) {
	dbHost := envString("DB_HOST", "postgres")
	dbPort := envString("DB_PORT", "5432")
	dbUser := envString("DB_USER", "blog")
	dbPass := envString("DB_PASSWORD", "blogpass")
	dbName := envString("DB_NAME", "blogdb")
	dbSSL := envString("DB_SSLMODE", "disable")

	cfg := Config{
		Addr: ":" + envString("APP_PORT", "8080"),
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbUser, dbPass, dbHost, dbPort, dbName, dbSSL),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  envDuration("TOKEN_TTL", 30*24*time.Hour),

		RedisAddr: envString("REDIS_ADDR", "redis:6379"),
		RedisDB:   envInt("REDIS_DB", 0),
		CacheTTL:  envDuration("CACHE_TTL", 5*time.Minute),

		ESAddr:  envString("ES_ADDR", "http://elasticsearch:9200"),
		ESIndex: envString("ES_INDEX", "posts"),

		UploadDir:    envString("UPLOAD_DIR", "uploads"),
		UploadMaxMB:  int64(envInt("UPLOAD_MAX_MB", 5)),
		S3Bucket:     os.Getenv("S3_BUCKET"),
		S3Region:     envString("S3_REGION", "us-east-1"),
		PublicOrigin: envString("PUBLIC_ORIGIN", ""),
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
