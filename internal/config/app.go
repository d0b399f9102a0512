package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/researchbot/pkg/log"
)

type AppConfig struct {
	// HTTP listen address for the API transport.
	Addr string `env:"RESEARCHBOT_ADDR" envDefault:":8080"`

	// Context Management
	MaxContextLength int    `env:"MAX_CONTEXT_LENGTH" envDefault:"30"`
	StoragePath      string `env:"CONTEXT_STORAGE_PATH" envDefault:"data/contexts"`

	// Allow selecting the provider
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"groq"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	if c.MaxContextLength < 1 {
		log.FromCtx(ctx).Fatal().
			Int("max_context_length", c.MaxContextLength).
			Msg("MAX_CONTEXT_LENGTH must be at least 1")
	}
	return c
}

func (c AppConfig) GetStoragePath() string {
	return c.StoragePath
}
