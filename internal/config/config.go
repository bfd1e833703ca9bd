package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort       string
	MongoURI       string
	MongoDatabase  string
	RedisAddress   string
	NATSURL        string
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
	JWTSecret      string
	SMTPHost       string
	SMTPPort       int
	SMTPEmail      string
	SMTPPassword   string
	OTLPEndpoint   string
}

// Load reads configuration from the environment, with a .env file as an
// optional local override source.
func Load() (*Config, error) {
	// Missing .env is fine; the environment is the source of truth.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "real_estate")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET", "listing-images")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	cfg := &Config{
		HTTPPort:       v.GetString("HTTP_PORT"),
		MongoURI:       v.GetString("MONGO_URI"),
		MongoDatabase:  v.GetString("MONGO_DATABASE"),
		RedisAddress:   v.GetString("REDIS_ADDRESS"),
		NATSURL:        v.GetString("NATS_URL"),
		MinIOEndpoint:  v.GetString("MINIO_ENDPOINT"),
		MinIOAccessKey: v.GetString("MINIO_ACCESS_KEY"),
		MinIOSecretKey: v.GetString("MINIO_SECRET_KEY"),
		MinIOBucket:    v.GetString("MINIO_BUCKET"),
		MinIOUseSSL:    v.GetBool("MINIO_USE_SSL"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		SMTPHost:       v.GetString("SMTP_HOST"),
		SMTPPort:       v.GetInt("SMTP_PORT"),
		SMTPEmail:      v.GetString("SMTP_EMAIL"),
		SMTPPassword:   v.GetString("SMTP_PASSWORD"),
		OTLPEndpoint:   v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}
