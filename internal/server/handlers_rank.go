package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/InnoShay/HireSight-sub000/internal/pipeline"
	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// handleRank runs the full two-phase ranking and returns the final list in a
// single response. Callers who want the quick pass use /rank/stream instead.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req types.RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "job_description is required")
		return
	}

	result, err := s.runner.Run(r.Context(), pipeline.Options{
		JobDescription: req.JobDescription,
		ResumeIDs:      req.ResumeIDs,
	})
	if err != nil {
		s.logger.Error("ranking failed", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.saveRanking(r, req.JobDescription, result)
	s.jsonResponse(w, http.StatusOK, types.RankResponse{
		Ranked:     result.Ranked,
		JDAnalysis: result.JobAnalysis,
	})
}

// handleRankStream runs the pipeline and streams progress over SSE: "phase"
// events for stage transitions, one "quick" event carrying the provisional
// semantic-only ranking, and a terminal "complete" or "error" event.
func (s *Server) handleRankStream(w http.ResponseWriter, r *http.Request) {
	var req types.RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "job_description is required")
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.runner.Run(r.Context(), pipeline.Options{
		JobDescription: req.JobDescription,
		ResumeIDs:      req.ResumeIDs,
		OnQuick: func(ranked []types.Candidate) {
			sse.WriteEvent("quick", map[string]any{"ranked": ranked}) //nolint:errcheck
		},
		OnProgress: func(event pipeline.ProgressEvent) {
			sse.WriteEvent("phase", event) //nolint:errcheck
		},
	})
	if err != nil {
		s.logger.Error("ranking failed", zap.Error(err))
		sse.WriteError(err.Error())
		return
	}

	s.saveRanking(r, req.JobDescription, result)
	sse.WriteEvent("complete", types.RankResponse{ //nolint:errcheck
		Ranked:     result.Ranked,
		JDAnalysis: result.JobAnalysis,
	})
}

// saveRanking persists a completed run for the history view. Persistence is
// best effort: a storage hiccup must not turn a finished ranking into an error.
func (s *Server) saveRanking(r *http.Request, jobDescription string, result *pipeline.Result) {
	id, err := s.store.SaveRanking(r.Context(), jobDescription, result.JobAnalysis, result.Ranked)
	if err != nil {
		s.logger.Warn("failed to save ranking history", zap.Error(err))
		return
	}
	s.logger.Info("ranking saved", zap.String("ranking_id", id.String()),
		zap.Int("candidates", len(result.Ranked)))
}
