package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kaiwahq/kaiwa/internal/extract"
	"github.com/kaiwahq/kaiwa/internal/models"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("chat request",
		zap.String("query", req.Query),
		zap.Int("document_length", len(req.Document)),
	)

	chunks := s.retriever.Retrieve(req.Document, req.Query)
	answerText, fallback := s.composer.Compose(r.Context(), req.Query, chunks)

	display := chunks
	if limit := s.config.Retrieval.ContextLimit; len(display) > limit {
		display = display[:limit]
	}
	if display == nil {
		display = []models.ScoredChunk{}
	}

	s.respondJSON(w, http.StatusOK, models.ChatResponse{
		Answer:      answerText,
		Chunks:      display,
		Query:       req.Query,
		TotalChunks: len(chunks),
		Fallback:    fallback,
		RequestID:   uuid.New().String(),
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req models.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid base64 file data")
		return
	}
	maxBytes := s.config.Ingest.MaxFileSizeMB * 1024 * 1024
	if len(data) > maxBytes {
		s.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("file too large, maximum size: %dMB", s.config.Ingest.MaxFileSizeMB))
		return
	}
	s.logger.Debug("extract request",
		zap.String("file_name", req.FileName),
		zap.Int("file_size", len(data)),
	)

	text, err := s.extractor.Extract(data, req.FileName)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFormat) || errors.Is(err, extract.ErrNoText) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("extraction failed", zap.String("file_name", req.FileName), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.respondJSON(w, http.StatusOK, models.ExtractResponse{
		Text:       text,
		FileName:   req.FileName,
		FileSize:   len(data),
		TextLength: utf8.RuneCountInString(text),
		RequestID:  uuid.New().String(),
	})
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
