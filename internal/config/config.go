package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name        string `envconfig:"APP_NAME" default:"Khusela"`
		Port        int    `envconfig:"PORT" default:"8080"`
		ClientURL   string `envconfig:"CLIENT_URL" default:"http://localhost:5173"`
		Environment string `envconfig:"APP_ENV" default:"development"`
	}

	DB struct {
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Port         int    `envconfig:"DB_PORT" default:"5432"`
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:""`
		Name         string `envconfig:"DB_NAME" default:"khusela"`
		SSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
		TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"8h"`
	}

	// An empty address leaves logout revocation disabled.
	Redis struct {
		Address  string `envconfig:"REDIS_ADDR"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
	}

	Storage struct {
		Endpoint        string        `envconfig:"R2_ENDPOINT"`
		Region          string        `envconfig:"R2_REGION" default:"auto"`
		Bucket          string        `envconfig:"R2_BUCKET_NAME" default:"khusela-documents"`
		AccessKeyID     string        `envconfig:"R2_ACCESS_KEY_ID"`
		SecretAccessKey string        `envconfig:"R2_SECRET_ACCESS_KEY"`
		SignedURLTTL    time.Duration `envconfig:"R2_SIGNED_URL_TTL" default:"15m"`
		MaxUploadBytes  int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	}

	Notify struct {
		Enabled   bool   `envconfig:"NOTIFY_ENABLED" default:"false"`
		AWSRegion string `envconfig:"NOTIFY_AWS_REGION" default:"af-south-1"`
		FromEmail string `envconfig:"NOTIFY_FROM_EMAIL" default:"no-reply@khusela.co.za"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
