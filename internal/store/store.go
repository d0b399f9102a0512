// Package store is the session-scoped context store. It owns every
// SessionRecord in memory, enforces the bounded-retention trimming policy,
// and writes every mutation through to durable storage before reporting
// success. Durable storage is the long-lived owner; memory is a cache.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/researchbot/internal/core"
	"github.com/sandevgo/researchbot/pkg/log"
	"github.com/sandevgo/researchbot/pkg/retry"
)

// DetectorFunc maps message text to detected topics. The store only runs it
// for user-role messages and owns the dedup/append/persist around it.
type DetectorFunc func(text string) []string

type session struct {
	mu  sync.Mutex
	rec *core.SessionRecord
	// gone marks an entry evicted from the map; holders must drop it and
	// look the id up again instead of writing through a stale lock.
	gone bool
}

// Store guards each session record with its own lock so concurrent requests
// for the same session never interleave a trim with an append, while
// unrelated sessions proceed fully in parallel.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session

	storage          core.SessionStorage
	detect           DetectorFunc
	maxContextLength int
	retrier          *retry.Retrier
}

func New(storage core.SessionStorage, maxContextLength int, detect DetectorFunc) (*Store, error) {
	if maxContextLength < 1 {
		return nil, fmt.Errorf("max context length must be at least 1, got %d", maxContextLength)
	}
	if detect == nil {
		detect = func(string) []string { return nil }
	}
	return &Store{
		sessions:         make(map[string]*session),
		storage:          storage,
		detect:           detect,
		maxContextLength: maxContextLength,
		retrier:          retry.NewRetrier(retry.NewDiskConfig()),
	}, nil
}

// PaperInput carries the caller-supplied fields of a new paper.
type PaperInput struct {
	Title     string
	Authors   []string
	Abstract  string
	URL       string
	Year      int
	Relevance float64
}

// FindingInput carries the caller-supplied fields of a new finding.
type FindingInput struct {
	Content   string
	Source    string
	Relevance float64
}

// AddMessage appends a message, runs topic detection for user turns, trims
// the transcript to the configured bound, and persists.
func (s *Store) AddMessage(ctx context.Context, id, content, role string, metadata map[string]string) error {
	switch role {
	case core.RoleUser, core.RoleAssistant, core.RoleSystem:
	default:
		return core.NewValidationError("role", fmt.Sprintf("unknown role %q", role))
	}

	return s.mutate(ctx, id, func(rec *core.SessionRecord, now time.Time) error {
		rec.Messages = append(rec.Messages, core.Message{
			Role:      role,
			Content:   content,
			CreatedAt: now,
			Metadata:  metadata,
		})

		if role == core.RoleUser {
			for _, topic := range s.detect(content) {
				appendTopic(rec, topic)
			}
		}

		s.trim(rec)
		return nil
	})
}

// AddPaper appends a research paper. Duplicates are allowed; uniqueness is
// not an invariant for research artifacts.
func (s *Store) AddPaper(ctx context.Context, id string, in PaperInput) (core.Paper, error) {
	if in.Title == "" {
		return core.Paper{}, core.NewValidationError("title", "must not be empty")
	}
	if in.Abstract == "" {
		return core.Paper{}, core.NewValidationError("abstract", "must not be empty")
	}

	var paper core.Paper
	err := s.mutate(ctx, id, func(rec *core.SessionRecord, now time.Time) error {
		paper = core.Paper{
			Title:     in.Title,
			Authors:   append([]string{}, in.Authors...),
			Abstract:  in.Abstract,
			URL:       in.URL,
			Year:      in.Year,
			CreatedAt: now,
			Relevance: clamp01(in.Relevance),
		}
		rec.Research.Papers = append(rec.Research.Papers, paper)
		return nil
	})
	return paper, err
}

func (s *Store) AddFinding(ctx context.Context, id string, in FindingInput) (core.Finding, error) {
	if in.Content == "" {
		return core.Finding{}, core.NewValidationError("content", "must not be empty")
	}

	var finding core.Finding
	err := s.mutate(ctx, id, func(rec *core.SessionRecord, now time.Time) error {
		finding = core.Finding{
			Content:   in.Content,
			Source:    in.Source,
			CreatedAt: now,
			Relevance: clamp01(in.Relevance),
		}
		rec.Research.Findings = append(rec.Research.Findings, finding)
		return nil
	})
	return finding, err
}

func (s *Store) AddCitation(ctx context.Context, id, text, source string, authors []string, year int) (core.Citation, error) {
	if text == "" {
		return core.Citation{}, core.NewValidationError("text", "must not be empty")
	}
	if source == "" {
		return core.Citation{}, core.NewValidationError("source", "must not be empty")
	}

	var citation core.Citation
	err := s.mutate(ctx, id, func(rec *core.SessionRecord, now time.Time) error {
		citation = core.Citation{
			Text:      text,
			Source:    source,
			Authors:   slices.Clone(authors),
			Year:      year,
			CreatedAt: now,
		}
		rec.Research.Citations = append(rec.Research.Citations, citation)
		return nil
	})
	return citation, err
}

// AddTopic is idempotent: a topic already present (exact match) leaves the
// record untouched and skips the durable write.
func (s *Store) AddTopic(ctx context.Context, id, topic string) error {
	if topic == "" {
		return core.NewValidationError("topic", "must not be empty")
	}

	return s.withSession(ctx, id, true, func(e *session) error {
		if !appendTopic(e.rec, topic) {
			return nil
		}
		e.rec.Meta.LastUpdated = s.now()
		return s.persist(ctx, id, e.rec)
	})
}

// GetContext returns a deep copy of the session record, rehydrating from
// durable storage on a memory miss.
func (s *Store) GetContext(ctx context.Context, id string) (*core.SessionRecord, error) {
	var out *core.SessionRecord
	err := s.withSession(ctx, id, false, func(e *session) error {
		out = e.rec.Clone()
		return nil
	})
	return out, err
}

// GetFormattedContext returns the transcript plus, when requested, the
// top-ranked findings and papers rendered as synthetic system entries. The
// synthetic entries exist only in the returned slice; they are never written
// back into the record.
func (s *Store) GetFormattedContext(ctx context.Context, id string, includeResearch bool, maxResearchItems int) ([]core.Message, error) {
	var out []core.Message
	err := s.withSession(ctx, id, false, func(e *session) error {
		rec := e.rec
		out = make([]core.Message, len(rec.Messages))
		copy(out, rec.Messages)

		if !includeResearch {
			return nil
		}

		findings := TopByRelevance(rec.Research.Findings, maxResearchItems, func(f core.Finding) float64 { return f.Relevance })
		for _, f := range findings {
			out = append(out, core.Message{
				Role:      core.RoleSystem,
				Content:   "Research finding: " + f.Content,
				CreatedAt: f.CreatedAt,
			})
		}

		papers := TopByRelevance(rec.Research.Papers, maxResearchItems, func(p core.Paper) float64 { return p.Relevance })
		for _, p := range papers {
			out = append(out, core.Message{
				Role:      core.RoleSystem,
				Content:   fmt.Sprintf("Research paper: %s\nAuthors: %s\nAbstract: %s", p.Title, strings.Join(p.Authors, ", "), p.Abstract),
				CreatedAt: p.CreatedAt,
			})
		}
		return nil
	})
	return out, err
}

// GenerateSummary composes the deterministic session summary, stores it in
// the record, and persists. An empty transcript yields an empty summary
// without a durable write.
func (s *Store) GenerateSummary(ctx context.Context, id string) (string, error) {
	var summary string
	err := s.withSession(ctx, id, false, func(e *session) error {
		rec := e.rec
		if len(rec.Messages) == 0 {
			return nil
		}

		topicStr := "No specific topics"
		if len(rec.Meta.Topics) > 0 {
			topicStr = strings.Join(rec.Meta.Topics, ", ")
		}

		userMessages := 0
		for _, m := range rec.Messages {
			if m.Role == core.RoleUser {
				userMessages++
			}
		}

		summary = fmt.Sprintf(
			"Conversation with %d messages about %s. User has asked %d questions. Research includes %d papers, %d findings, and %d citations.",
			len(rec.Messages), topicStr, userMessages,
			len(rec.Research.Papers), len(rec.Research.Findings), len(rec.Research.Citations),
		)

		rec.Meta.Summary = summary
		rec.Meta.LastUpdated = s.now()
		return s.persist(ctx, id, rec)
	})
	return summary, err
}

// ClearContext drops the in-memory record and removes the durable one. A
// following GetContext reports not-found until the id is used again.
func (s *Store) ClearContext(ctx context.Context, id string) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	s.mu.Unlock()

	if ok {
		// Wait out any in-flight mutation, then mark the entry stale so a
		// goroutine that fetched it before the clear retries its lookup.
		e.mu.Lock()
		e.rec = nil
		s.evict(id, e)
		e.mu.Unlock()
	}

	return s.storage.Delete(ctx, id)
}

func (s *Store) GetResearchPapers(ctx context.Context, id string, max int) ([]core.Paper, error) {
	var out []core.Paper
	err := s.withSession(ctx, id, false, func(e *session) error {
		out = TopByRelevance(e.rec.Research.Papers, max, func(p core.Paper) float64 { return p.Relevance })
		return nil
	})
	return out, err
}

func (s *Store) GetResearchFindings(ctx context.Context, id string, max int) ([]core.Finding, error) {
	var out []core.Finding
	err := s.withSession(ctx, id, false, func(e *session) error {
		out = TopByRelevance(e.rec.Research.Findings, max, func(f core.Finding) float64 { return f.Relevance })
		return nil
	})
	return out, err
}

func (s *Store) GetCitations(ctx context.Context, id string) ([]core.Citation, error) {
	var out []core.Citation
	err := s.withSession(ctx, id, false, func(e *session) error {
		out = append(out, e.rec.Research.Citations...)
		return nil
	})
	return out, err
}

func (s *Store) GetTopics(ctx context.Context, id string) ([]string, error) {
	var out []string
	err := s.withSession(ctx, id, false, func(e *session) error {
		out = append(out, e.rec.Meta.Topics...)
		return nil
	})
	return out, err
}

// UpdateUserPreferences merges the given preferences into the record;
// existing keys not present in the update are kept.
func (s *Store) UpdateUserPreferences(ctx context.Context, id string, preferences map[string]string) error {
	return s.mutate(ctx, id, func(rec *core.SessionRecord, now time.Time) error {
		for k, v := range preferences {
			rec.Meta.UserPreferences[k] = v
		}
		return nil
	})
}

// mutate runs fn under the session lock with lazy creation, refreshes
// LastUpdated, and write-through persists. fn returning an error aborts
// before any durable write.
func (s *Store) mutate(ctx context.Context, id string, fn func(rec *core.SessionRecord, now time.Time) error) error {
	return s.withSession(ctx, id, true, func(e *session) error {
		now := s.now()
		if err := fn(e.rec, now); err != nil {
			return err
		}
		if now.After(e.rec.Meta.LastUpdated) {
			e.rec.Meta.LastUpdated = now
		}
		return s.persist(ctx, id, e.rec)
	})
}

// withSession locks the session entry for id, rehydrating from durable
// storage on a memory miss. With create=false an absent record is
// core.ErrNotFound; otherwise a fresh record is created lazily. An entry
// that went stale between lookup and lock is dropped and the lookup retried,
// so two writers for one id can never proceed under different locks.
func (s *Store) withSession(ctx context.Context, id string, create bool, fn func(e *session) error) error {
	if id == "" {
		return core.NewValidationError("session_id", "must not be empty")
	}

	for {
		s.mu.Lock()
		e, ok := s.sessions[id]
		if !ok {
			e = &session{}
			s.sessions[id] = e
		}
		s.mu.Unlock()

		e.mu.Lock()
		if e.gone {
			e.mu.Unlock()
			s.dropStale(id, e)
			continue
		}

		if e.rec == nil {
			rec, err := s.storage.Load(ctx, id)
			switch {
			case err == nil:
				normalize(rec)
				e.rec = rec
				log.FromCtx(ctx).Debug().Str("session", id).Msg("session rehydrated from storage")
			case errors.Is(err, core.ErrNotFound):
				if !create {
					s.evict(id, e)
					e.mu.Unlock()
					return core.ErrNotFound
				}
				e.rec = core.NewSessionRecord(s.now())
			default:
				s.evict(id, e)
				e.mu.Unlock()
				return err
			}
		}

		err := fn(e)
		e.mu.Unlock()
		return err
	}
}

// evict marks e stale and unmaps it if it is still the current entry for id.
// Empty placeholders left by failed lookups are removed here so probing an
// unknown id cannot grow the map. Caller holds e.mu.
func (s *Store) evict(id string, e *session) {
	e.gone = true
	s.dropStale(id, e)
}

func (s *Store) dropStale(id string, e *session) {
	s.mu.Lock()
	if s.sessions[id] == e {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
}

// persist writes the record through to storage with a bounded retry.
// Validation failures are not retried.
func (s *Store) persist(ctx context.Context, id string, rec *core.SessionRecord) error {
	var saveErr error
	err := s.retrier.Do(ctx, func() error {
		saveErr = s.storage.Save(ctx, id, rec)
		var verr *core.ValidationError
		if errors.As(saveErr, &verr) {
			return nil
		}
		return saveErr
	})
	if err != nil {
		return err
	}
	return saveErr
}

// trim bounds the transcript: the first message is kept as the anchor turn
// and the most recent maxContextLength-1 follow it; only interior history
// is dropped.
func (s *Store) trim(rec *core.SessionRecord) {
	if len(rec.Messages) <= s.maxContextLength {
		return
	}
	excess := len(rec.Messages) - s.maxContextLength
	trimmed := make([]core.Message, 0, s.maxContextLength)
	trimmed = append(trimmed, rec.Messages[0])
	trimmed = append(trimmed, rec.Messages[excess+1:]...)
	rec.Messages = trimmed
}

func (s *Store) now() time.Time {
	return time.Now().UTC()
}

// appendTopic adds topic unless already present (exact match). Reports
// whether the record changed.
func appendTopic(rec *core.SessionRecord, topic string) bool {
	for _, t := range rec.Meta.Topics {
		if t == topic {
			return false
		}
	}
	rec.Meta.Topics = append(rec.Meta.Topics, topic)
	return true
}

// normalize repairs nil maps/slices on records loaded from hand-edited or
// older files.
func normalize(rec *core.SessionRecord) {
	if rec.Messages == nil {
		rec.Messages = []core.Message{}
	}
	if rec.Meta.Topics == nil {
		rec.Meta.Topics = []string{}
	}
	if rec.Meta.UserPreferences == nil {
		rec.Meta.UserPreferences = map[string]string{}
	}
	if rec.Research.Papers == nil {
		rec.Research.Papers = []core.Paper{}
	}
	if rec.Research.Findings == nil {
		rec.Research.Findings = []core.Finding{}
	}
	if rec.Research.Citations == nil {
		rec.Research.Citations = []core.Citation{}
	}
}
