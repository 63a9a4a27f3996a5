package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handleListRankings returns ranking history metadata, newest first.
func (s *Server) handleListRankings(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	rankings, err := s.store.ListRankings(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list rankings", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list rankings")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"rankings": rankings})
}

// handleGetRanking returns one persisted ranking run, including the full
// ranked list and job analysis.
func (s *Server) handleGetRanking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid ranking id")
		return
	}

	rec, err := s.store.GetRanking(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to get ranking", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to get ranking")
		return
	}
	if rec == nil {
		s.errorResponse(w, http.StatusNotFound, "ranking not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}
