package core

import "time"

const (
	AppName       = "ResearchBot"
	AppUserAgent  = "ResearchBot/0.1"
	RepositoryURL = "https://github.com/sandevgo/researchbot"
	Version       = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of a session transcript. Insertion order is the
// chronological order of the conversation.
type Message struct {
	Role      string            `yaml:"role" json:"role"`
	Content   string            `yaml:"content" json:"content"`
	CreatedAt time.Time         `yaml:"created_at" json:"created_at"`
	Metadata  map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Paper is a research paper attached to a session. Relevance is a ranking
// score in [0,1]; it never drives eviction.
type Paper struct {
	Title     string    `yaml:"title" json:"title"`
	Authors   []string  `yaml:"authors" json:"authors"`
	Abstract  string    `yaml:"abstract" json:"abstract"`
	URL       string    `yaml:"url,omitempty" json:"url,omitempty"`
	Year      int       `yaml:"year,omitempty" json:"year,omitempty"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
	Relevance float64   `yaml:"relevance" json:"relevance"`
}

type Finding struct {
	Content   string    `yaml:"content" json:"content"`
	Source    string    `yaml:"source,omitempty" json:"source,omitempty"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
	Relevance float64   `yaml:"relevance" json:"relevance"`
}

type Citation struct {
	Text      string    `yaml:"text" json:"text"`
	Source    string    `yaml:"source" json:"source"`
	Authors   []string  `yaml:"authors,omitempty" json:"authors,omitempty"`
	Year      int       `yaml:"year,omitempty" json:"year,omitempty"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
}

// SessionMeta carries per-session bookkeeping. Topics preserve insertion
// order and contain no duplicates.
type SessionMeta struct {
	CreatedAt       time.Time         `yaml:"created_at" json:"created_at"`
	LastUpdated     time.Time         `yaml:"last_updated" json:"last_updated"`
	Topics          []string          `yaml:"topics" json:"topics"`
	Summary         string            `yaml:"summary" json:"summary"`
	UserPreferences map[string]string `yaml:"user_preferences" json:"user_preferences"`
}

type Research struct {
	Papers    []Paper    `yaml:"papers" json:"papers"`
	Findings  []Finding  `yaml:"findings" json:"findings"`
	Citations []Citation `yaml:"citations" json:"citations"`
}

// SessionRecord is the complete durable state of one session.
type SessionRecord struct {
	Messages []Message   `yaml:"messages" json:"messages"`
	Meta     SessionMeta `yaml:"metadata" json:"metadata"`
	Research Research    `yaml:"research" json:"research"`
}

// NewSessionRecord returns an empty record with fresh timestamps.
func NewSessionRecord(now time.Time) *SessionRecord {
	return &SessionRecord{
		Messages: []Message{},
		Meta: SessionMeta{
			CreatedAt:       now,
			LastUpdated:     now,
			Topics:          []string{},
			UserPreferences: map[string]string{},
		},
		Research: Research{
			Papers:    []Paper{},
			Findings:  []Finding{},
			Citations: []Citation{},
		},
	}
}

// Clone returns a deep copy so callers can read a record without holding
// the session lock.
func (r *SessionRecord) Clone() *SessionRecord {
	if r == nil {
		return nil
	}
	out := &SessionRecord{
		Messages: make([]Message, len(r.Messages)),
		Meta: SessionMeta{
			CreatedAt:       r.Meta.CreatedAt,
			LastUpdated:     r.Meta.LastUpdated,
			Topics:          append([]string{}, r.Meta.Topics...),
			Summary:         r.Meta.Summary,
			UserPreferences: make(map[string]string, len(r.Meta.UserPreferences)),
		},
		Research: Research{
			Papers:    make([]Paper, len(r.Research.Papers)),
			Findings:  append([]Finding{}, r.Research.Findings...),
			Citations: make([]Citation, len(r.Research.Citations)),
		},
	}
	for i, m := range r.Messages {
		out.Messages[i] = m
		if m.Metadata != nil {
			meta := make(map[string]string, len(m.Metadata))
			for k, v := range m.Metadata {
				meta[k] = v
			}
			out.Messages[i].Metadata = meta
		}
	}
	for k, v := range r.Meta.UserPreferences {
		out.Meta.UserPreferences[k] = v
	}
	for i, p := range r.Research.Papers {
		out.Research.Papers[i] = p
		out.Research.Papers[i].Authors = append([]string{}, p.Authors...)
	}
	for i, c := range r.Research.Citations {
		out.Research.Citations[i] = c
		if c.Authors != nil {
			out.Research.Citations[i].Authors = append([]string{}, c.Authors...)
		}
	}
	return out
}
