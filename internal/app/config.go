package app

import (
	"fmt"

	server "github.com/admin/kundali-service/internal/adapters/primary/http"
	alerterAdapter "github.com/admin/kundali-service/internal/adapters/secondary/alerter"
	astroApi "github.com/admin/kundali-service/internal/adapters/secondary/astroApi"
	"github.com/admin/kundali-service/internal/adapters/secondary/gemini"
	kafkaAdapter "github.com/admin/kundali-service/internal/adapters/secondary/kafka"
	"github.com/admin/kundali-service/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/kundali-service/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/kundali-service/internal/adapters/secondary/storage/s3"
	"github.com/admin/kundali-service/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config все секции кроме ASTRO_API и GEMINI опциональны
type Config struct {
	Log      *logger.Config         `envconfig:"LOG"`
	Server   *server.Config         `envconfig:"APISERVER"`
	AstroAPI *astroApi.Config       `envconfig:"ASTRO_API"`
	Gemini   *gemini.Config         `envconfig:"GEMINI"`
	Postgres *pg.Config             `envconfig:"POSTGRES"`
	Redis    *redisAdapter.Config   `envconfig:"REDIS"`
	S3       *s3Adapter.Config      `envconfig:"S3"`
	Kafka    *kafkaAdapter.Config   `envconfig:"KAFKA"`
	Alerter  *alerterAdapter.Config `envconfig:"ALERTER"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.AstroAPI == nil || c.AstroAPI.BaseURL == "" {
		return fmt.Errorf("astro API base url is required")
	}
	if !c.Gemini.IsConfigured() {
		return fmt.Errorf("gemini API key is required")
	}
	return nil
}
