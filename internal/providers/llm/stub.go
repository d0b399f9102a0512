package llm

import (
	"context"
	"sync"

	"github.com/sandevgo/researchbot/internal/core"
)

// Stub is a canned Completer for tests and offline runs. It records every
// call so tests can assert on what was sent.
type Stub struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Calls     []StubCall
}

type StubCall struct {
	SystemPrompt string
	History      []core.Message
	Temperature  float64
}

var _ core.Completer = (*Stub)(nil)

func NewStub(responses ...string) *Stub {
	return &Stub{Responses: responses}
}

func (s *Stub) Complete(ctx context.Context, systemPrompt string, history []core.Message, temperature float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, StubCall{
		SystemPrompt: systemPrompt,
		History:      history,
		Temperature:  temperature,
	})

	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Responses) == 0 {
		return "I have nothing further to add.", nil
	}
	reply := s.Responses[0]
	if len(s.Responses) > 1 {
		s.Responses = s.Responses[1:]
	}
	return reply, nil
}
