package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mentallyspammed1/neonsearch/repository"
	"github.com/Mentallyspammed1/neonsearch/search"
)

const apiVersion = "1.0.0"

// RootHandler reports the service name and version.
func (s *Server) RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"message": "Video Search API",
		"version": apiVersion,
	})
}

// SearchHandler runs one aggregated search across the requested sources.
func (s *Server) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "missing query parameter", http.StatusBadRequest)
		return
	}

	resp, err := s.aggregator.Search(r.Context(), req)
	if err != nil {
		if errors.Is(err, search.ErrNoActiveSources) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error("search failed", zap.String("query", req.Query), zap.Error(err))
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}

	if s.history != nil {
		if err := s.history.RecordQuery(req.Query); err != nil {
			s.logger.Warn("failed to record query history", zap.Error(err))
		}
	}

	writeJSON(w, resp)
}

// SourcesHandler lists every registered source and its enabled flag.
func (s *Server) SourcesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]any{"sources": s.registry.Sources()})
}

// ToggleSourceHandler flips a source's enabled flag.
func (s *Server) ToggleSourceHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.PathValue("name")
	enabled, err := s.registry.Toggle(name)
	if err != nil {
		http.Error(w, "source not found", http.StatusNotFound)
		return
	}

	s.logger.Info("source toggled", zap.String("source", name), zap.Bool("enabled", enabled))
	writeJSON(w, map[string]any{
		"source":  name,
		"enabled": enabled,
	})
}

// SuggestionsHandler returns up to five suggestions for a partial
// query: history-ranked prior queries first, static expansions after.
func (s *Server) SuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}

	var suggestions []string
	if s.history != nil {
		prior, err := s.history.TopQueries(q, 3)
		if err != nil {
			s.logger.Warn("failed to read query history", zap.Error(err))
		} else {
			suggestions = prior
		}
	}

	for _, expansion := range []string{
		fmt.Sprintf("%s hd", q),
		fmt.Sprintf("%s compilation", q),
		fmt.Sprintf("best %s", q),
	} {
		if len(suggestions) >= 5 {
			break
		}
		if !slices.Contains(suggestions, expansion) {
			suggestions = append(suggestions, expansion)
		}
	}

	writeJSON(w, map[string]any{"suggestions": suggestions})
}

// StatusHandler creates (POST) or lists (GET) status-check audit records.
func (s *Server) StatusHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createStatusCheck(w, r)
	case http.MethodGet:
		s.listStatusChecks(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) createStatusCheck(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ClientName string `json:"client_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(input.ClientName) == "" {
		http.Error(w, "missing client_name parameter", http.StatusBadRequest)
		return
	}

	check := &repository.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: input.ClientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.statusRepo.InsertOne(r.Context(), check); err != nil {
		s.logger.Error("failed to insert status check", zap.Error(err))
		http.Error(w, "failed to store status check", http.StatusInternalServerError)
		return
	}

	writeJSON(w, check)
}

func (s *Server) listStatusChecks(w http.ResponseWriter, r *http.Request) {
	checks, err := s.statusRepo.List(r.Context(), 1000)
	if err != nil {
		s.logger.Error("failed to list status checks", zap.Error(err))
		http.Error(w, "failed to list status checks", http.StatusInternalServerError)
		return
	}
	if checks == nil {
		checks = []repository.StatusCheck{}
	}
	writeJSON(w, checks)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
