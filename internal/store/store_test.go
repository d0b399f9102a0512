package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sandevgo/researchbot/internal/core"
	"github.com/sandevgo/researchbot/internal/storage/sessionfile"
	"github.com/sandevgo/researchbot/internal/topics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxLen int) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := sessionfile.NewFileStore(dir)
	require.NoError(t, err)
	s, err := New(fs, maxLen, topics.Detect)
	require.NoError(t, err)
	return s, dir
}

func contents(msgs []core.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Content
	}
	return out
}

func TestAddMessage_TrimKeepsAnchorAndRecent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 3)

	roles := []string{core.RoleUser, core.RoleAssistant, core.RoleUser, core.RoleAssistant, core.RoleUser}
	for i, role := range roles {
		require.NoError(t, s.AddMessage(ctx, "s1", fmt.Sprintf("M%d", i+1), role, nil))

		rec, err := s.GetContext(ctx, "s1")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(rec.Messages), 3, "bound must hold after every call")
	}

	rec, err := s.GetContext(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"M1", "M4", "M5"}, contents(rec.Messages))
}

func TestAddMessage_NoTrimBelowBound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 30)

	require.NoError(t, s.AddMessage(ctx, "s1", "hello", core.RoleUser, nil))
	require.NoError(t, s.AddMessage(ctx, "s1", "hi there", core.RoleAssistant, nil))

	rec, err := s.GetContext(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "hi there"}, contents(rec.Messages))
}

func TestAddMessage_RejectsUnknownRole(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, 10)

	err := s.AddMessage(context.Background(), "s1", "hi", "moderator", nil)
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAddMessage_DetectsTopicsOnUserTurnsOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 10)

	require.NoError(t, s.AddMessage(ctx, "s1", "tell me about machine learning", core.RoleUser, nil))
	require.NoError(t, s.AddMessage(ctx, "s1", "deep learning is a subfield", core.RoleAssistant, nil))

	got, err := s.GetTopics(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"machine learning"}, got, "assistant turns must not contribute topics")
}

func TestAddTopic_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 10)

	require.NoError(t, s.AddTopic(ctx, "s1", "quantum computing"))
	require.NoError(t, s.AddTopic(ctx, "s1", "quantum computing"))
	require.NoError(t, s.AddTopic(ctx, "s1", "robotics"))

	got, err := s.GetTopics(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"quantum computing", "robotics"}, got)
}

func TestGenerateSummary_Scenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 30)

	require.NoError(t, s.AddMessage(ctx, "s1", "hello", core.RoleUser, nil))
	require.NoError(t, s.AddMessage(ctx, "s1", "hi there", core.RoleAssistant, nil))

	summary, err := s.GenerateSummary(ctx, "s1")
	require.NoError(t, err)
	assert.Contains(t, summary, "2 messages")
	assert.Contains(t, summary, "1 questions")
	assert.Contains(t, summary, "0 papers")
	assert.Contains(t, summary, "0 findings")
	assert.Contains(t, summary, "0 citations")
	assert.Contains(t, summary, "No specific topics")

	rec, err := s.GetContext(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, summary, rec.Meta.Summary)
}

func TestGenerateSummary_EmptyTranscript(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 30)

	require.NoError(t, s.AddTopic(ctx, "s1", "AI"))

	summary, err := s.GenerateSummary(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestRanking_StableDescending(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 30)

	relevances := []float64{0.2, 0.9, 0.9, 0.1}
	for i, r := range relevances {
		_, err := s.AddFinding(ctx, "s1", FindingInput{
			Content:   fmt.Sprintf("F%d", i),
			Relevance: r,
		})
		require.NoError(t, err)
	}

	got, err := s.GetResearchFindings(ctx, "s1", 3)
	require.NoError(t, err)

	want := []string{"F1", "F2", "F0"}
	require.Len(t, got, 3)
	for i, f := range got {
		assert.Equal(t, want[i], f.Content)
	}
}

func TestRelevanceClamped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 30)

	p, err := s.AddPaper(ctx, "s1", PaperInput{Title: "T", Abstract: "A", Relevance: 1.7})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Relevance)

	f, err := s.AddFinding(ctx, "s1", FindingInput{Content: "C", Relevance: -0.3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, f.Relevance)
}

func TestAddPaper_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 30)

	var verr *core.ValidationError
	_, err := s.AddPaper(ctx, "s1", PaperInput{Abstract: "A"})
	require.ErrorAs(t, err, &verr)
	_, err = s.AddPaper(ctx, "s1", PaperInput{Title: "T"})
	require.ErrorAs(t, err, &verr)

	// Failed validation must not create a durable record.
	_, err = s.GetContext(ctx, "s1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestClearContext_RemovesMemoryAndDisk(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, dir := newTestStore(t, 30)

	require.NoError(t, s.AddMessage(ctx, "s1", "hello", core.RoleUser, nil))
	require.FileExists(t, filepath.Join(dir, "s1.yaml"))

	require.NoError(t, s.ClearContext(ctx, "s1"))

	_, err := s.GetContext(ctx, "s1")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, statErr := os.Stat(filepath.Join(dir, "s1.yaml"))
	assert.True(t, os.IsNotExist(statErr), "durable record must be gone")
}

func TestClearContext_StaleEntryIsNotWrittenThrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 10)

	require.NoError(t, s.AddMessage(ctx, "s1", "m1", core.RoleUser, nil))

	// Hold on to the live entry the way a racing goroutine that looked it
	// up just before the clear would.
	s.mu.Lock()
	stale := s.sessions["s1"]
	s.mu.Unlock()

	require.NoError(t, s.ClearContext(ctx, "s1"))
	assert.True(t, stale.gone, "cleared entry must be marked stale")
	assert.Nil(t, stale.rec)

	// Put the stale entry back in the map to stand in for the window where
	// a racer already fetched it; the next writer must bypass it and land
	// on a fresh entry.
	s.mu.Lock()
	s.sessions["s1"] = stale
	s.mu.Unlock()

	require.NoError(t, s.AddMessage(ctx, "s1", "m2", core.RoleUser, nil))

	s.mu.Lock()
	fresh := s.sessions["s1"]
	s.mu.Unlock()
	assert.NotSame(t, stale, fresh)
	assert.Nil(t, stale.rec, "stale entry must never be revived")

	rec, err := s.GetContext(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, contents(rec.Messages))
}

func TestGetContext_MissLeavesNoMapEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 10)

	for i := 0; i < 5; i++ {
		_, err := s.GetContext(ctx, fmt.Sprintf("ghost-%d", i))
		require.ErrorIs(t, err, core.ErrNotFound)
	}

	s.mu.Lock()
	entries := len(s.sessions)
	s.mu.Unlock()
	assert.Zero(t, entries, "probing unknown ids must not grow the session map")
}

func TestAddCitation_CopiesAuthors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 10)

	authors := []string{"Vaswani"}
	_, err := s.AddCitation(ctx, "s1", "Attention Is All You Need (2017)", "arXiv", authors, 2017)
	require.NoError(t, err)

	authors[0] = "mutated"

	citations, err := s.GetCitations(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, citations, 1)
	assert.Equal(t, []string{"Vaswani"}, citations[0].Authors)
}

func TestRehydration_AfterEviction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := sessionfile.NewFileStore(dir)
	require.NoError(t, err)

	s1, err := New(fs, 30, topics.Detect)
	require.NoError(t, err)
	require.NoError(t, s1.AddMessage(ctx, "s1", "explain neural networks", core.RoleUser, nil))
	_, err = s1.AddPaper(ctx, "s1", PaperInput{Title: "T", Authors: []string{"A"}, Abstract: "Abs", Relevance: 0.8})
	require.NoError(t, err)

	// A fresh store over the same directory stands in for a process restart.
	s2, err := New(fs, 30, topics.Detect)
	require.NoError(t, err)
	rec, err := s2.GetContext(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"explain neural networks"}, contents(rec.Messages))
	// "explain" matches the AI keyword, then the exact phrase.
	assert.Equal(t, []string{"AI", "neural networks"}, rec.Meta.Topics)
	require.Len(t, rec.Research.Papers, 1)
	assert.Equal(t, "T", rec.Research.Papers[0].Title)
}

func TestGetFormattedContext_SynthesizesResearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 30)

	require.NoError(t, s.AddMessage(ctx, "s1", "hello", core.RoleUser, nil))
	for i, r := range []float64{0.4, 0.9} {
		_, err := s.AddFinding(ctx, "s1", FindingInput{Content: fmt.Sprintf("finding %d", i), Relevance: r})
		require.NoError(t, err)
	}
	_, err := s.AddPaper(ctx, "s1", PaperInput{
		Title: "Attention Is All You Need", Authors: []string{"Vaswani", "Shazeer"},
		Abstract: "Transformers.", Relevance: 0.95,
	})
	require.NoError(t, err)

	got, err := s.GetFormattedContext(ctx, "s1", true, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, core.RoleUser, got[0].Role)
	assert.Equal(t, core.RoleSystem, got[1].Role)
	assert.Equal(t, "Research finding: finding 1", got[1].Content)
	assert.Equal(t, core.RoleSystem, got[2].Role)
	assert.Contains(t, got[2].Content, "Research paper: Attention Is All You Need")
	assert.Contains(t, got[2].Content, "Authors: Vaswani, Shazeer")
	assert.Contains(t, got[2].Content, "Abstract: Transformers.")

	// Synthetic entries must not leak back into the record.
	rec, err := s.GetContext(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, rec.Messages, 1)
}

func TestGetFormattedContext_WithoutResearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 30)

	require.NoError(t, s.AddMessage(ctx, "s1", "hello", core.RoleUser, nil))
	_, err := s.AddFinding(ctx, "s1", FindingInput{Content: "f", Relevance: 0.5})
	require.NoError(t, err)

	got, err := s.GetFormattedContext(ctx, "s1", false, 3)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpdateUserPreferences_Merges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 30)

	require.NoError(t, s.UpdateUserPreferences(ctx, "s1", map[string]string{"style": "concise", "lang": "en"}))
	require.NoError(t, s.UpdateUserPreferences(ctx, "s1", map[string]string{"style": "verbose"}))

	rec, err := s.GetContext(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"style": "verbose", "lang": "en"}, rec.Meta.UserPreferences)
}

func TestLastUpdated_MonotonicNonDecreasing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 30)

	require.NoError(t, s.AddMessage(ctx, "s1", "one", core.RoleUser, nil))
	first, err := s.GetContext(ctx, "s1")
	require.NoError(t, err)

	require.NoError(t, s.AddMessage(ctx, "s1", "two", core.RoleUser, nil))
	second, err := s.GetContext(ctx, "s1")
	require.NoError(t, err)

	assert.False(t, second.Meta.LastUpdated.Before(first.Meta.LastUpdated))
}

func TestConcurrentAppends_SameSessionKeepBound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newTestStore(t, 5)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.AddMessage(ctx, "shared", fmt.Sprintf("M%d", i), core.RoleUser, nil)
		}(i)
	}
	wg.Wait()

	rec, err := s.GetContext(ctx, "shared")
	require.NoError(t, err)
	assert.Len(t, rec.Messages, 5)
}

func TestPersistFailure_SurfacesAndDoesNotReportSuccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := New(&failingStorage{}, 10, nil)
	require.NoError(t, err)

	err = s.AddMessage(ctx, "s1", "hello", core.RoleUser, nil)
	var perr *core.PersistenceError
	require.ErrorAs(t, err, &perr)
}

type failingStorage struct{}

func (f *failingStorage) Save(ctx context.Context, id string, rec *core.SessionRecord) error {
	return core.NewPersistenceError("save", id, errors.New("disk full"))
}

func (f *failingStorage) Load(ctx context.Context, id string) (*core.SessionRecord, error) {
	return nil, core.ErrNotFound
}

func (f *failingStorage) Delete(ctx context.Context, id string) error {
	return nil
}
