// Package httpapi is the inbound HTTP transport. It owns session cookies,
// request decoding, and the mapping from store errors to status codes; all
// conversation logic lives behind the assistant facade.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sandevgo/researchbot/internal/service/assistant"
	"github.com/sandevgo/researchbot/internal/store"
	"github.com/sandevgo/researchbot/pkg/log"
)

type Service struct {
	server    *http.Server
	assistant *assistant.Assistant
	store     *store.Store
}

func NewService(ctx context.Context, addr string, a *assistant.Assistant, st *store.Store) *Service {
	s := &Service{
		assistant: a,
		store:     st,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/context", s.handleGetContext)
	mux.HandleFunc("POST /api/clear-context", s.handleClearContext)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/topics", s.handleTopics)
	mux.HandleFunc("POST /api/search-papers", s.handleSearchPapers)
	mux.HandleFunc("POST /api/analyze-paper", s.handleAnalyzePaper)
	mux.HandleFunc("POST /api/literature-review", s.handleLiteratureReview)
	mux.HandleFunc("GET /api/research-papers", s.handleResearchPapers)
	mux.HandleFunc("GET /api/research-findings", s.handleResearchFindings)
	mux.HandleFunc("GET /api/citations", s.handleCitations)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		// Hand every request the app context so handlers log through it.
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	return s
}

func (s *Service) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.server.Addr).Msg("starting http api")
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
