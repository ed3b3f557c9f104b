package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lexforge/ragengine/internal/chunk"
	"github.com/lexforge/ragengine/internal/models"
	"github.com/lexforge/ragengine/internal/service"
	"github.com/lexforge/ragengine/internal/vectorindex"
)

type queryRequest struct {
	Question      string                           `json:"question"`
	TopK          int                              `json:"top_k,omitempty"`
	BaseThreshold float64                          `json:"base_threshold,omitempty"`
	DeadlineMS    int                              `json:"query_deadline_ms,omitempty"`
	Filter        map[string]models.MetadataValue `json:"filter,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.svc.Query(r.Context(), req.Question, service.QueryOptions{
		TopK:          req.TopK,
		BaseThreshold: req.BaseThreshold,
		DeadlineMS:    req.DeadlineMS,
		Filter:        vectorindex.Filter(req.Filter),
	})
	if err != nil {
		if _, ok := err.(*service.ValidationError); ok {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("query failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

type analyzeRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.svc.Analyze(req.Question)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

type documentInput struct {
	ID       string                          `json:"id"`
	Title    string                          `json:"title"`
	Type     chunk.DocType                   `json:"type"`
	Text     string                          `json:"text"`
	Metadata map[string]models.MetadataValue `json:"metadata,omitempty"`
}

func (s *Server) handleIngestDocument(w http.ResponseWriter, r *http.Request) {
	var input documentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("ingest document request", zap.String("id", input.ID), zap.String("title", input.Title))

	result, err := s.svc.Ingest(r.Context(), input.ID, input.Title, input.Type, input.Text, input.Metadata)
	if err != nil {
		if _, ok := err.(*service.ValidationError); ok {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("ingest failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":             input.ID,
		"status":         "indexed",
		"chunks_written": result.ChunksWritten,
		"warnings":       result.Warnings,
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete document request", zap.String("id", id))
	if err := s.svc.Delete(r.Context(), id); err != nil {
		s.logger.Error("deletion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
