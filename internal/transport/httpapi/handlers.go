package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sandevgo/researchbot/internal/core"
	"github.com/sandevgo/researchbot/pkg/log"
)

const defaultMaxItems = 5

type chatRequest struct {
	Message string            `json:"message"`
	Mode    string            `json:"mode,omitempty"`
	Params  map[string]string `json:"params,omitempty"`
}

func (s *Service) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}
	if req.Mode == "" {
		req.Mode = "default"
	}

	id := sessionID(w, r)
	reply, err := s.assistant.ProcessInput(r.Context(), id, req.Message, req.Mode, req.Params)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"response":   reply,
		"session_id": id,
	})
}

func (s *Service) handleGetContext(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)

	rec, err := s.store.GetContext(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Service) handleClearContext(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)

	if err := s.store.ClearContext(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)

	summary, err := s.store.GenerateSummary(r.Context(), id)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Service) handleTopics(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)

	topics, err := s.store.GetTopics(r.Context(), id)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		writeStoreError(w, r, err)
		return
	}
	if topics == nil {
		topics = []string{}
	}

	writeJSON(w, http.StatusOK, map[string][]string{"topics": topics})
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

func (s *Service) handleSearchPapers(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decode(w, r, &req) {
		return
	}
	if req.MaxResults < 1 {
		req.MaxResults = 5
	}

	id := sessionID(w, r)
	results, err := s.assistant.SearchPapers(r.Context(), id, req.Query, req.MaxResults)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]core.SearchResult{"papers": results})
}

type analyzeRequest struct {
	Title    string   `json:"title"`
	Authors  []string `json:"authors,omitempty"`
	Abstract string   `json:"abstract"`
}

func (s *Service) handleAnalyzePaper(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, &req) {
		return
	}

	id := sessionID(w, r)
	analysis, err := s.assistant.AnalyzePaper(r.Context(), id, req.Title, req.Authors, req.Abstract)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

type reviewRequest struct {
	Topic string `json:"topic"`
}

func (s *Service) handleLiteratureReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decode(w, r, &req) {
		return
	}

	id := sessionID(w, r)
	review, err := s.assistant.LiteratureReview(r.Context(), id, req.Topic)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"review": review})
}

func (s *Service) handleResearchPapers(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)

	papers, err := s.store.GetResearchPapers(r.Context(), id, queryMax(r))
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		writeStoreError(w, r, err)
		return
	}
	if papers == nil {
		papers = []core.Paper{}
	}

	writeJSON(w, http.StatusOK, map[string][]core.Paper{"papers": papers})
}

func (s *Service) handleResearchFindings(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)

	findings, err := s.store.GetResearchFindings(r.Context(), id, queryMax(r))
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		writeStoreError(w, r, err)
		return
	}
	if findings == nil {
		findings = []core.Finding{}
	}

	writeJSON(w, http.StatusOK, map[string][]core.Finding{"findings": findings})
}

func (s *Service) handleCitations(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)

	citations, err := s.store.GetCitations(r.Context(), id)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		writeStoreError(w, r, err)
		return
	}
	if citations == nil {
		citations = []core.Citation{}
	}

	writeJSON(w, http.StatusOK, map[string][]core.Citation{"citations": citations})
}

func queryMax(r *http.Request) int {
	if v := r.URL.Query().Get("max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultMaxItems
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeStoreError maps store error types to status codes: validation to 400,
// missing session to 404, anything else to 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	default:
		log.FromCtx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
