package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/researchbot/internal/config"
	"github.com/sandevgo/researchbot/internal/core"
	"github.com/sandevgo/researchbot/pkg/log"
)

// NewProvider creates the appropriate Completer based on configuration.
func NewProvider(ctx context.Context, cfg *config.AppConfig) (core.Completer, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Msg("starting llm provider")

	switch cfg.LLMProvider {
	case "groq":
		groqCfg := config.NewGroqConfig(ctx)
		return NewGroq(groqCfg.APIKey, groqCfg.Model), nil
	case "custom":
		customCfg := config.NewCustomLLMConfig(ctx)
		return NewCustomOpenAI(customCfg.BaseURL, customCfg.APIKey, customCfg.Model), nil
	case "stub":
		return NewStub(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
