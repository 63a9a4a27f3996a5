package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// handleCreateResume stores pre-extracted resume text.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	var req types.CreateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "filename is required")
		return
	}

	id, err := s.store.CreateResume(r.Context(), req.Filename, req.RawText)
	if err != nil {
		s.logger.Error("failed to create resume", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to create resume")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleListResumes returns all stored resumes, oldest first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	resumes, err := s.store.FetchResumes(r.Context(), nil)
	if err != nil {
		s.logger.Error("failed to list resumes", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list resumes")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": resumes})
}

// handleGetResume returns one stored resume by id.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to get resume", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get resume")
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, resume)
}

// handleDeleteResume removes a stored resume.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid resume id")
		return
	}

	deleted, err := s.store.DeleteResume(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to delete resume", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete resume")
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "resume not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
