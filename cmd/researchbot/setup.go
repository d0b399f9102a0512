package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/researchbot/internal/config"
	"github.com/sandevgo/researchbot/internal/providers/llm"
	"github.com/sandevgo/researchbot/internal/providers/research"
	"github.com/sandevgo/researchbot/internal/service/assistant"
	"github.com/sandevgo/researchbot/internal/storage/sessionfile"
	"github.com/sandevgo/researchbot/internal/store"
	"github.com/sandevgo/researchbot/internal/topics"
	"github.com/sandevgo/researchbot/internal/transport/httpapi"
	"github.com/sandevgo/researchbot/pkg/log"
	"github.com/sandevgo/researchbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Storage + context store
	storage, err := sessionfile.NewFileStore(appCfg.GetStoragePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize session storage")
	}

	contextStore, err := store.New(storage, appCfg.MaxContextLength, topics.Detect)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize context store")
	}

	// 3. AI Provider
	completer, err := llm.NewProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Research search + assistant facade
	searcher := research.NewService()
	a := assistant.New(contextStore, completer, searcher)

	// 5. Transport
	services = append(services, httpapi.NewService(ctx, appCfg.Addr, a, contextStore))

	return services
}

func initEnv(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn().Err(err).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Msg("loaded .env file")
	return nil
}
