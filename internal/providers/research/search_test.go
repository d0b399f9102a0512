package research

import (
	"context"
	"strings"
	"testing"

	"github.com/sandevgo/researchbot/internal/core"
)

func TestSearch_MatchesTopic(t *testing.T) {
	t.Parallel()
	svc := NewService()

	results, err := svc.Search(context.Background(), "machine learning", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Relevance > results[i-1].Relevance {
			t.Errorf("results not relevance-descending at index %d", i)
		}
	}
}

func TestSearch_MatchesTitle(t *testing.T) {
	t.Parallel()
	svc := NewService()

	results, err := svc.Search(context.Background(), "attention", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected title match for 'attention'")
	}
}

func TestSearch_FallsBackToSample(t *testing.T) {
	t.Parallel()
	svc := NewService()

	results, err := svc.Search(context.Background(), "zzz-nothing-matches", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 || len(results) > 3 {
		t.Fatalf("expected 1..3 fallback results, got %d", len(results))
	}
}

func TestKeyFinding(t *testing.T) {
	tests := []struct {
		name     string
		abstract string
		want     string
	}{
		{
			name:     "second to last sentence",
			abstract: "First sentence. The key result sentence. ",
			want:     "The key result sentence.",
		},
		{
			name:     "no sentence boundary",
			abstract: "just one fragment without period",
			want:     "just one fragment without period",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyFinding(tt.abstract); got != tt.want {
				t.Errorf("KeyFinding() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCitation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		authors []string
		year    int
		want    string
	}{
		{
			name:    "many authors",
			title:   "Attention Is All You Need",
			authors: []string{"Vaswani", "Shazeer", "Parmar"},
			year:    2017,
			want:    "Vaswani et al. (2017). Attention Is All You Need.",
		},
		{
			name:    "two authors",
			title:   "XGBoost",
			authors: []string{"Chen", "Guestrin"},
			year:    2016,
			want:    "Chen & Guestrin (2016). XGBoost.",
		},
		{
			name:    "no year",
			title:   "Untitled Draft",
			authors: []string{"Someone"},
			year:    0,
			want:    "Someone (n.d.). Untitled Draft.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCitation(tt.title, tt.authors, tt.year); got != tt.want {
				t.Errorf("FormatCitation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreRelevance_BoundsAndOrder(t *testing.T) {
	results := []core.SearchResult{
		{Title: "unrelated topic entirely", Abstract: "nothing shared here"},
		{Title: "graph neural networks", Abstract: "a study of neural networks on graphs"},
	}

	scored := ScoreRelevance(results, "neural networks on graphs")
	for _, r := range scored {
		if r.Relevance < 0.5 || r.Relevance > 1.0 {
			t.Errorf("relevance %f out of [0.5, 1.0]", r.Relevance)
		}
	}
	if !strings.Contains(scored[0].Title, "neural") {
		t.Errorf("expected overlapping paper first, got %q", scored[0].Title)
	}
}
