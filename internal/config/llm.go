package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/researchbot/pkg/log"
)

type GroqConfig struct {
	APIKey string `env:"GROQ_API_KEY,required,notEmpty"`
	Model  string `env:"DEFAULT_MODEL" envDefault:"llama3-8b-8192"`
}

func NewGroqConfig(ctx context.Context) *GroqConfig {
	c := &GroqConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Groq config")
	}
	return c
}

type CustomLLMConfig struct {
	BaseURL string `env:"CUSTOM_LLM_BASE_URL,required,notEmpty"`
	APIKey  string `env:"CUSTOM_LLM_API_KEY"`
	Model   string `env:"DEFAULT_MODEL,required,notEmpty"`
}

func NewCustomLLMConfig(ctx context.Context) *CustomLLMConfig {
	c := &CustomLLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse custom LLM config")
	}
	return c
}
