// Package research is the outbound research-search collaborator: a paper
// search service with supporting heuristics for findings, citations, and
// relevance scoring. Backed by a built-in sample corpus.
package research

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/sandevgo/researchbot/internal/core"
	"github.com/sandevgo/researchbot/pkg/log"
)

type Service struct{}

var _ core.PaperSearcher = (*Service)(nil)

func NewService() *Service {
	return &Service{}
}

// Search matches the query against corpus topics and paper titles and
// returns the most relevant hits. An unmatched query falls back to a random
// sample so the assistant always has material to work with.
func (s *Service) Search(ctx context.Context, query string, maxResults int) ([]core.SearchResult, error) {
	queryLower := strings.ToLower(query)

	var results []core.SearchResult
	for topic, papers := range sampleCorpus {
		if strings.Contains(topic, queryLower) || anyTitleMatches(papers, queryLower) {
			results = append(results, papers...)
		}
	}

	if len(results) == 0 {
		results = randomSample(maxResults)
		log.FromCtx(ctx).Debug().Str("query", query).Msg("no corpus match, falling back to random sample")
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

func anyTitleMatches(papers []core.SearchResult, queryLower string) bool {
	for _, p := range papers {
		if strings.Contains(strings.ToLower(p.Title), queryLower) {
			return true
		}
	}
	return false
}

func randomSample(n int) []core.SearchResult {
	var all []core.SearchResult
	for _, papers := range sampleCorpus {
		all = append(all, papers...)
	}
	rand.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// KeyFinding extracts the key sentence of an abstract: the second-to-last
// sentence, where papers usually state their main result.
func KeyFinding(abstract string) string {
	sentences := strings.Split(abstract, ".")
	if len(sentences) > 1 {
		return strings.TrimSpace(sentences[len(sentences)-2]) + "."
	}
	return abstract
}

// FormatCitation renders "Authors (Year). Title." with the usual et-al.
// shortening for more than two authors.
func FormatCitation(title string, authors []string, year int) string {
	var authorStr string
	switch {
	case len(authors) > 2:
		authorStr = authors[0] + " et al."
	case len(authors) > 0:
		authorStr = strings.Join(authors, " & ")
	default:
		authorStr = "Unknown"
	}
	yearStr := "n.d."
	if year != 0 {
		yearStr = strconv.Itoa(year)
	}
	return authorStr + " (" + yearStr + "). " + title + "."
}

// ScoreRelevance rescores results against a query by word overlap with
// title and abstract, scaled into [0.5, 1.0], and returns them relevance
// descending.
func ScoreRelevance(results []core.SearchResult, query string) []core.SearchResult {
	queryWords := wordSet(query)

	scored := make([]core.SearchResult, len(results))
	for i, r := range results {
		docWords := wordSet(r.Title + " " + r.Abstract)
		overlap := 0
		for w := range queryWords {
			if docWords[w] {
				overlap++
			}
		}
		relevance := 0.5 + float64(overlap)*0.1
		if relevance > 1.0 {
			relevance = 1.0
		}
		scored[i] = r
		scored[i].Relevance = relevance
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Relevance > scored[j].Relevance
	})
	return scored
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}
