package core

import "context"

// Completer is the outbound completion collaborator. It is fallible and may
// be slow; callers must not hold any session lock while waiting on it.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, history []Message, temperature float64) (string, error)
}

// SearchResult is one hit from the research-search collaborator.
type SearchResult struct {
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Abstract  string   `json:"abstract"`
	URL       string   `json:"url,omitempty"`
	Year      int      `json:"year,omitempty"`
	Relevance float64  `json:"relevance"`
}

// PaperSearcher finds research papers for a query.
type PaperSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}
