// Package assistant orchestrates the two real call patterns over the
// context store: ingesting a user turn through the completion collaborator,
// and ingesting research artifacts from the search collaborator. It holds
// no state of its own.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/researchbot/internal/core"
	"github.com/sandevgo/researchbot/internal/providers/research"
	"github.com/sandevgo/researchbot/internal/store"
	"github.com/sandevgo/researchbot/pkg/log"
)

const (
	maxResearchItems = 3
	greeting         = "Hello! I'm your AI research assistant. How can I help with your research today?"
)

type Assistant struct {
	store     *store.Store
	completer core.Completer
	searcher  core.PaperSearcher
}

func New(st *store.Store, completer core.Completer, searcher core.PaperSearcher) *Assistant {
	return &Assistant{
		store:     st,
		completer: completer,
		searcher:  searcher,
	}
}

// ProcessInput stores the user turn, calls the completion collaborator with
// the formatted context, stores the reply, and records any citations found
// in it. No session lock is held during the provider call.
func (a *Assistant) ProcessInput(ctx context.Context, sessionID, input, mode string, params map[string]string) (string, error) {
	if err := a.store.AddMessage(ctx, sessionID, input, core.RoleUser, nil); err != nil {
		return "", err
	}

	merged := make(map[string]string, len(params)+1)
	for k, v := range params {
		merged[k] = v
	}
	if isResearchRequest(input) {
		mode = ModeResearch
		merged["topic"] = extractTopic(input)
	}

	history, err := a.store.GetFormattedContext(ctx, sessionID, true, maxResearchItems)
	if err != nil {
		return "", err
	}
	if len(history) == 0 {
		return greeting, nil
	}

	reply, err := a.complete(ctx, mode, merged, history)
	if err != nil {
		return "", err
	}

	if err := a.store.AddMessage(ctx, sessionID, reply, core.RoleAssistant, nil); err != nil {
		return "", err
	}

	a.recordCitations(ctx, sessionID, reply)

	return reply, nil
}

// AnalyzePaper runs the paper-analysis prompt, stores the analysis as an
// assistant turn, and attaches the paper to the session's research state.
func (a *Assistant) AnalyzePaper(ctx context.Context, sessionID, title string, authors []string, abstract string) (string, error) {
	if title == "" {
		return "", core.NewValidationError("title", "must not be empty")
	}
	if abstract == "" {
		return "", core.NewValidationError("abstract", "must not be empty")
	}

	history := a.historyOrEmpty(ctx, sessionID)

	params := map[string]string{
		"title":    title,
		"authors":  strings.Join(authors, ", "),
		"abstract": abstract,
	}
	analysis, err := a.complete(ctx, ModePaperAnalysis, params, history)
	if err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Analysis of paper '%s':\n\n%s", title, analysis)
	if err := a.store.AddMessage(ctx, sessionID, msg, core.RoleAssistant, nil); err != nil {
		return "", err
	}

	if _, err := a.store.AddPaper(ctx, sessionID, store.PaperInput{
		Title:     title,
		Authors:   authors,
		Abstract:  abstract,
		Relevance: 1.0,
	}); err != nil {
		return "", err
	}

	return analysis, nil
}

// LiteratureReview synthesizes the session's research into a review and
// stores it as an assistant turn.
func (a *Assistant) LiteratureReview(ctx context.Context, sessionID, topic string) (string, error) {
	if topic == "" {
		return "", core.NewValidationError("topic", "must not be empty")
	}

	history := a.historyOrEmpty(ctx, sessionID)

	review, err := a.complete(ctx, ModeLiteratureReview, map[string]string{"topic": topic}, history)
	if err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Literature review on %s:\n\n%s", topic, review)
	if err := a.store.AddMessage(ctx, sessionID, msg, core.RoleAssistant, nil); err != nil {
		return "", err
	}

	return review, nil
}

// SearchPapers queries the search collaborator and ingests the hits into
// the session: each paper, a derived key finding, and finally the query
// itself as a topic.
func (a *Assistant) SearchPapers(ctx context.Context, sessionID, query string, maxResults int) ([]core.SearchResult, error) {
	if query == "" {
		return nil, core.NewValidationError("query", "must not be empty")
	}

	results, err := a.searcher.Search(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("paper search: %w", err)
	}

	if err := a.IngestSearchResults(ctx, sessionID, query, results); err != nil {
		return nil, err
	}
	return results, nil
}

// IngestSearchResults records a batch of search hits against the session.
func (a *Assistant) IngestSearchResults(ctx context.Context, sessionID, query string, results []core.SearchResult) error {
	for _, r := range results {
		relevance := r.Relevance
		if relevance == 0 {
			relevance = 1.0
		}

		if _, err := a.store.AddPaper(ctx, sessionID, store.PaperInput{
			Title:     r.Title,
			Authors:   r.Authors,
			Abstract:  r.Abstract,
			URL:       r.URL,
			Year:      r.Year,
			Relevance: relevance,
		}); err != nil {
			return err
		}

		if _, err := a.store.AddFinding(ctx, sessionID, store.FindingInput{
			Content:   research.KeyFinding(r.Abstract),
			Source:    r.Title,
			Relevance: relevance,
		}); err != nil {
			return err
		}
	}

	return a.store.AddTopic(ctx, sessionID, query)
}

func (a *Assistant) complete(ctx context.Context, mode string, params map[string]string, history []core.Message) (string, error) {
	a.debugTokens(ctx, history)

	reply, err := a.completer.Complete(ctx, systemPrompt(mode, params), history, temperature(mode))
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	return reply, nil
}

// historyOrEmpty reads the formatted context, treating a cold session as an
// empty transcript.
func (a *Assistant) historyOrEmpty(ctx context.Context, sessionID string) []core.Message {
	history, err := a.store.GetFormattedContext(ctx, sessionID, true, maxResearchItems)
	if err != nil {
		return nil
	}
	return history
}

// recordCitations is best-effort: a persistence hiccup here must not undo
// an already delivered reply.
func (a *Assistant) recordCitations(ctx context.Context, sessionID, reply string) {
	for _, c := range detectCitations(reply) {
		if _, err := a.store.AddCitation(ctx, sessionID, c.Text, c.Source, nil, 0); err != nil {
			log.FromCtx(ctx).Error().Err(err).Str("session", sessionID).Msg("failed to record citation")
		}
	}
}

var (
	tokenizerOnce sync.Once
	tokenizer     *tiktoken.Tiktoken
)

// debugTokens logs the prompt size in tokens. Tokenization is skipped
// entirely unless debug logging is on.
func (a *Assistant) debugTokens(ctx context.Context, history []core.Message) {
	logger := log.FromCtx(ctx)
	if !logger.Debug().Enabled() {
		return
	}

	tokenizerOnce.Do(func() {
		tk, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			logger.Warn().Err(err).Msg("failed to load tokenizer, token gauge disabled")
			return
		}
		tokenizer = tk
	})
	if tokenizer == nil {
		return
	}

	total := 0
	for _, m := range history {
		total += len(tokenizer.Encode(m.Content, nil, nil))
	}
	logger.Debug().Int("messages", len(history)).Int("tokens", total).Msg("prompt size")
}
