package sessionfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/sandevgo/researchbot/internal/core"
)

func sampleRecord(t *testing.T) *core.SessionRecord {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := core.NewSessionRecord(now)
	rec.Messages = []core.Message{
		{Role: core.RoleUser, Content: "tell me about transformers", CreatedAt: now, Metadata: map[string]string{"source": "web"}},
		{Role: core.RoleAssistant, Content: "They are attention-based models.", CreatedAt: now.Add(time.Second)},
	}
	rec.Meta.Topics = []string{"AI", "machine learning", "deep learning"}
	rec.Meta.Summary = "short chat"
	rec.Meta.UserPreferences = map[string]string{"style": "concise"}
	rec.Research.Papers = []core.Paper{
		{Title: "Attention Is All You Need", Authors: []string{"Vaswani", "Shazeer"}, Abstract: "Transformers.", URL: "https://arxiv.org/abs/1706.03762", Year: 2017, CreatedAt: now, Relevance: 0.95},
		{Title: "BERT", Authors: []string{"Devlin"}, Abstract: "Bidirectional encoders.", CreatedAt: now, Relevance: 0.9},
	}
	rec.Research.Findings = []core.Finding{
		{Content: "Attention beats recurrence.", Source: "Attention Is All You Need", CreatedAt: now, Relevance: 0.8},
	}
	rec.Research.Citations = []core.Citation{
		{Text: "Vaswani et al. (2017). Attention Is All You Need.", Source: "arXiv", Authors: []string{"Vaswani"}, Year: 2017, CreatedAt: now},
	}
	return rec
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	want := sampleRecord(t)
	if err := fs.Save(ctx, "s1", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := fs.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !reflect.DeepEqual(want, got) {
		t.Errorf("round-trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestFileStore_TopicOrderPreserved(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	rec := core.NewSessionRecord(time.Now().UTC())
	rec.Meta.Topics = []string{"zeta", "alpha", "mid"}
	if err := fs.Save(ctx, "order", rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := fs.Load(ctx, "order")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got.Meta.Topics, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("topic order changed: %v", got.Meta.Topics)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	t.Parallel()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	_, err = fs.Load(context.Background(), "never-existed")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_DeleteIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := fs.Save(ctx, "gone", sampleRecord(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := fs.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "gone.yaml")); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}
	if err := fs.Delete(ctx, "gone"); err != nil {
		t.Fatalf("second Delete should be a no-op, got %v", err)
	}
}

func TestFileStore_RejectsUnsafeIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	for _, id := range []string{"", "../escape", "a/b", `a\b`} {
		var verr *core.ValidationError
		if err := fs.Save(ctx, id, sampleRecord(t)); !errors.As(err, &verr) {
			t.Errorf("Save(%q): expected ValidationError, got %v", id, err)
		}
	}
}

func TestFileStore_CorruptFileIsPersistenceError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(":\n\t- broken"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	_, err = fs.Load(ctx, "bad")
	var perr *core.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}
