// File: internal/config/config.go
package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Address     string `env:"HTTP_ADDRESS" env-default:":8080"`
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`

	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	// JWT_SECRET 由 token 簽發端直接讀取環境變數，這裡僅確認啟動時已設定
	JWTSecret      string        `env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"60m"`

	WorkerCount int `env:"WORKER_COUNT" env-default:"1"`

	S3Endpoint  string `env:"S3_ENDPOINT" env-default:"http://localhost:9000"`
	S3Region    string `env:"S3_REGION" env-default:"us-east-1"`
	S3Bucket    string `env:"S3_BUCKET" env-default:"report-images"`
	S3AccessKey string `env:"S3_ACCESS_KEY" env-default:""`
	S3SecretKey string `env:"S3_SECRET_KEY" env-default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
